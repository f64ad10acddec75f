// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package vtree implements the binary tree over variables that an SDD is
// structured against. A vtree is a full binary tree: every leaf holds
// exactly one VarLabel, every internal node has exactly two children, and
// the variables in its two subtrees partition the variables of the node
// itself. Manager wraps a built VTree with the lookups the sdd package
// needs on every apply call: which node hosts a given variable, and the
// least common ancestor of two nodes.
package vtree

import (
	"fmt"

	"github.com/dalzilio/sddgo/varset"
)

// NodeID indexes a node within a VTree, starting at 0; -1 (noNode) means
// "absent".
type NodeID int32

const noNode NodeID = -1

// Node is one node of a VTree: a leaf (Left == Right == noNode, Var holds
// the variable) or an internal node (Left and Right both set, Var unused).
type Node struct {
	Parent      NodeID
	Left, Right NodeID
	Var         varset.VarLabel
	vars        varset.Set // all variables under this node, including itself
}

// IsLeaf reports whether n is a leaf.
func (n Node) IsLeaf() bool {
	return n.Left == noNode && n.Right == noNode
}

// VTree is a full binary tree over a fixed set of variables.
type VTree struct {
	nodes []Node
	root  NodeID
	depth []int32 // depth[i] = distance from nodes[i] to root
}

// Root returns the id of the tree's root node.
func (t *VTree) Root() NodeID {
	return t.root
}

// Node returns the node stored at id.
func (t *VTree) Node(id NodeID) Node {
	return t.nodes[id]
}

// NumNodes returns the total number of nodes (leaves and internal) in t.
func (t *VTree) NumNodes() int {
	return len(t.nodes)
}

// Vars returns the set of variables appearing under id's subtree.
func (t *VTree) Vars(id NodeID) varset.Set {
	return t.nodes[id].vars
}

// builder accumulates nodes as a VTree is constructed bottom-up.
type builder struct {
	nodes []Node
}

func (b *builder) leaf(v varset.VarLabel) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{Parent: noNode, Left: noNode, Right: noNode, Var: v, vars: varset.SetFrom(v)})
	return id
}

func (b *builder) internal(left, right NodeID) NodeID {
	id := NodeID(len(b.nodes))
	vars := b.nodes[left].vars.Union(b.nodes[right].vars)
	b.nodes = append(b.nodes, Node{Parent: noNode, Left: left, Right: right, vars: vars})
	b.nodes[left].Parent = id
	b.nodes[right].Parent = id
	return id
}

func (b *builder) finish(root NodeID) *VTree {
	t := &VTree{nodes: b.nodes, root: root}
	t.depth = make([]int32, len(t.nodes))
	var walk func(id NodeID, d int32)
	walk = func(id NodeID, d int32) {
		t.depth[id] = d
		n := t.nodes[id]
		if !n.IsLeaf() {
			walk(n.Left, d+1)
			walk(n.Right, d+1)
		}
	}
	walk(root, 0)
	return t
}

// EvenSplit builds a balanced vtree over vars, splitting the slice in half
// at each level. A single variable becomes a leaf; an empty slice panics,
// as a vtree is never built over zero variables.
func EvenSplit(vars []varset.VarLabel) *VTree {
	if len(vars) == 0 {
		panic("vtree: EvenSplit requires at least one variable")
	}
	b := &builder{}
	var build func(vs []varset.VarLabel) NodeID
	build = func(vs []varset.VarLabel) NodeID {
		if len(vs) == 1 {
			return b.leaf(vs[0])
		}
		mid := len(vs) / 2
		left := build(vs[:mid])
		right := build(vs[mid:])
		return b.internal(left, right)
	}
	root := build(vars)
	return b.finish(root)
}

// LeftLinear builds a left-skewed tree where vars[0] is nested deepest on
// the left spine: ((...(v0, v1), v2)..., vn). The name refers to the shape
// of the recursion (each internal node's left child is itself an internal
// node), not the position of any single variable.
func LeftLinear(vars []varset.VarLabel) *VTree {
	if len(vars) == 0 {
		panic("vtree: LeftLinear requires at least one variable")
	}
	b := &builder{}
	cur := b.leaf(vars[0])
	for _, v := range vars[1:] {
		cur = b.internal(cur, b.leaf(v))
	}
	return b.finish(cur)
}

// RightLinear builds a right-skewed tree, the mirror of LeftLinear: each
// internal node's right child nests the remaining variables.
func RightLinear(vars []varset.VarLabel) *VTree {
	if len(vars) == 0 {
		panic("vtree: RightLinear requires at least one variable")
	}
	b := &builder{}
	var build func(vs []varset.VarLabel) NodeID
	build = func(vs []varset.VarLabel) NodeID {
		if len(vs) == 1 {
			return b.leaf(vs[0])
		}
		return b.internal(b.leaf(vs[0]), build(vs[1:]))
	}
	root := build(vars)
	return b.finish(root)
}

// Shape describes the exact binary structure a VTree should take: a leaf
// wraps a single variable, an internal node wraps two subshapes. It exists
// so a caller that already has its own recursive decomposition of the
// variables (dtree.ToVTree's post-order dtree walk, in particular) can
// reproduce that decomposition exactly via FromShape, instead of being
// limited to EvenSplit/LeftLinear/RightLinear's fixed patterns.
type Shape struct {
	Var         varset.VarLabel // valid only when Left and Right are both nil
	Left, Right *Shape
}

// Leaf returns a Shape for a single variable.
func Leaf(v varset.VarLabel) *Shape {
	return &Shape{Var: v}
}

// Internal returns a Shape combining two subshapes, in order.
func Internal(left, right *Shape) *Shape {
	return &Shape{Left: left, Right: right}
}

// FromShape builds a VTree following shape exactly: every Shape leaf
// becomes a vtree leaf and every Shape internal node becomes a vtree
// internal node over the same two children, in the same left-to-right
// order — the caller's own decomposition shape is preserved rather than
// rebalanced.
func FromShape(shape *Shape) *VTree {
	b := &builder{}
	var build func(s *Shape) NodeID
	build = func(s *Shape) NodeID {
		if s.Left == nil && s.Right == nil {
			return b.leaf(s.Var)
		}
		left := build(s.Left)
		right := build(s.Right)
		return b.internal(left, right)
	}
	root := build(shape)
	return b.finish(root)
}

// IsValid checks the structural invariants of a vtree: every variable
// appears in exactly one leaf, every internal node has exactly two
// children, and every leaf is a singleton.
func IsValid(t *VTree) error {
	seen := map[varset.VarLabel]bool{}
	for _, n := range t.nodes {
		if n.IsLeaf() {
			if n.vars.Len() != 1 {
				return fmt.Errorf("vtree: leaf holding %d variables, want 1", n.vars.Len())
			}
			if seen[n.Var] {
				return fmt.Errorf("vtree: variable %s appears in more than one leaf", n.Var)
			}
			seen[n.Var] = true
			continue
		}
		if n.Left == noNode || n.Right == noNode {
			return fmt.Errorf("vtree: internal node missing a child")
		}
	}
	return nil
}
