// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package dtree builds a decomposition tree (dtree) from a CNF formula and
// lifts it to a vtree. A dtree clusters clauses along a variable
// elimination order so that the resulting binary tree's internal nodes
// each separate the formula into two conditionally independent halves,
// the same decomposition a vtree needs for SDD compilation. The
// construction is the standard min-fill elimination / clause-clustering
// one, built in the same append-only-arena style as unique.Table and
// vtree.VTree.
package dtree

import (
	"github.com/dalzilio/sddgo/cnf"
	"github.com/dalzilio/sddgo/varset"
	"github.com/dalzilio/sddgo/vtree"
)

// NodeID indexes a node within a DTree.
type NodeID int32

const noNode NodeID = -1

// Node is one node of a dtree: a leaf wraps a single clause index; an
// internal node combines its two children's clauses and variables.
type Node struct {
	Left, Right NodeID // noNode for a leaf
	Clause      int    // valid only for a leaf: index into the source Cnf
	vars        varset.Set
}

// IsLeaf reports whether n is a leaf.
func (n Node) IsLeaf() bool {
	return n.Left == noNode && n.Right == noNode
}

// DTree is a decomposition tree over the clauses of a Cnf.
type DTree struct {
	nodes []Node
	root  NodeID
}

// Root returns the id of d's root node.
func (d *DTree) Root() NodeID {
	return d.root
}

// Node returns the node stored at id.
func (d *DTree) Node(id NodeID) Node {
	return d.nodes[id]
}

// Vars returns the variables appearing under id's subtree.
func (d *DTree) Vars(id NodeID) varset.Set {
	return d.nodes[id].vars
}

// MinFillOrder computes a variable elimination order over formula's primal
// graph (variables are adjacent if they co-occur in some clause) using the
// greedy min-fill heuristic: at each step, eliminate the variable whose
// elimination adds the fewest "fill" edges (edges needed to make its
// remaining neighbors pairwise adjacent).
func MinFillOrder(formula *cnf.Cnf) []varset.VarLabel {
	n := formula.NumVars()
	adj := make([]map[varset.VarLabel]bool, n)
	for i := range adj {
		adj[i] = make(map[varset.VarLabel]bool)
	}
	for _, cl := range formula.Clauses() {
		for i := 0; i < len(cl); i++ {
			for j := i + 1; j < len(cl); j++ {
				a, b := cl[i].Label, cl[j].Label
				if a == b {
					continue
				}
				adj[a][b] = true
				adj[b][a] = true
			}
		}
	}

	remaining := make(map[varset.VarLabel]bool, n)
	for v := 0; v < n; v++ {
		remaining[varset.VarLabel(v)] = true
	}

	order := make([]varset.VarLabel, 0, n)
	for len(remaining) > 0 {
		var best varset.VarLabel
		bestFill := -1
		for v := range remaining {
			fill := fillCount(v, adj, remaining)
			if bestFill == -1 || fill < bestFill || (fill == bestFill && v < best) {
				best, bestFill = v, fill
			}
		}
		// Eliminate best: connect all its remaining neighbors pairwise.
		var neighbors []varset.VarLabel
		for u := range adj[best] {
			if remaining[u] {
				neighbors = append(neighbors, u)
			}
		}
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				a, b := neighbors[i], neighbors[j]
				adj[a][b] = true
				adj[b][a] = true
			}
		}
		delete(remaining, best)
		order = append(order, best)
	}
	return order
}

// fillCount counts the edges that would need to be added among v's
// remaining neighbors to make them a clique.
func fillCount(v varset.VarLabel, adj []map[varset.VarLabel]bool, remaining map[varset.VarLabel]bool) int {
	var neighbors []varset.VarLabel
	for u := range adj[v] {
		if remaining[u] {
			neighbors = append(neighbors, u)
		}
	}
	fill := 0
	for i := 0; i < len(neighbors); i++ {
		for j := i + 1; j < len(neighbors); j++ {
			if !adj[neighbors[i]][neighbors[j]] {
				fill++
			}
		}
	}
	return fill
}

// builder accumulates dtree nodes bottom-up, mirroring vtree's builder.
type builder struct {
	nodes []Node
}

func (b *builder) leaf(clauseIdx int, vars varset.Set) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{Left: noNode, Right: noNode, Clause: clauseIdx, vars: vars})
	return id
}

func (b *builder) internal(left, right NodeID) NodeID {
	id := NodeID(len(b.nodes))
	vars := b.nodes[left].vars.Union(b.nodes[right].vars)
	b.nodes = append(b.nodes, Node{Left: left, Right: right, Clause: -1, vars: vars})
	return id
}

// FromCnf builds a dtree for formula by clustering clauses along the
// elimination order: each clause starts as
// its own leaf cluster; walking order, every cluster still mentioning the
// current variable is merged (pairwise, left to right) into one cluster;
// whatever distinct clusters remain at the end are merged the same way
// into a single root.
func FromCnf(formula *cnf.Cnf, order []varset.VarLabel) *DTree {
	b := &builder{}
	active := make([]NodeID, 0, formula.NumClauses())
	for i, cl := range formula.Clauses() {
		vars := varset.NewSet(formula.NumVars())
		for _, l := range cl {
			vars.Add(l.Label)
		}
		active = append(active, b.leaf(i, vars))
	}

	for _, v := range order {
		var hit, rest []NodeID
		for _, id := range active {
			if b.nodes[id].vars.Contains(v) {
				hit = append(hit, id)
			} else {
				rest = append(rest, id)
			}
		}
		if len(hit) == 0 {
			continue
		}
		merged := hit[0]
		for _, id := range hit[1:] {
			merged = b.internal(merged, id)
		}
		active = append(rest, merged)
	}

	if len(active) == 0 {
		return &DTree{nodes: nil, root: noNode}
	}
	root := active[0]
	for _, id := range active[1:] {
		root = b.internal(root, id)
	}
	return &DTree{nodes: b.nodes, root: root}
}

// ToVTree lifts d to a vtree over the same variables. It walks d's own
// left/right structure post-order and mirrors it one-for-one into vtree
// internal nodes (via vtree.Internal), rather than discarding the
// decomposition and rebuilding a fresh balanced tree over the flattened
// variable set: the whole point of lifting a dtree is that its binary
// split already separates the formula into two conditionally independent
// halves at every level, and sdd.Manager.CompileDtree relies on that same
// structure when it walks d directly, so the two must agree.
//
// A dtree leaf (a clause) can still mention a variable some earlier
// sibling leaf already mentioned — a vtree leaf, unlike a dtree leaf,
// must hold exactly one variable — so each leaf only contributes the variables not
// already placed by an earlier leaf in this same post-order walk,
// wrapped into a small left-linear chain of its own when it contributes
// more than one. A leaf or subtree that contributes no new variable at
// all collapses away rather than producing a vacuous vtree node.
func ToVTree(d *DTree) *vtree.VTree {
	placed := make(map[varset.VarLabel]bool, d.Vars(d.root).Len())

	var newVarsChain func(vars []varset.VarLabel) *vtree.Shape
	newVarsChain = func(vars []varset.VarLabel) *vtree.Shape {
		shape := vtree.Leaf(vars[0])
		for _, v := range vars[1:] {
			shape = vtree.Internal(shape, vtree.Leaf(v))
		}
		return shape
	}

	var lift func(id NodeID) *vtree.Shape
	lift = func(id NodeID) *vtree.Shape {
		n := d.nodes[id]
		if n.IsLeaf() {
			var fresh []varset.VarLabel
			for _, v := range n.vars.Members() {
				if !placed[v] {
					placed[v] = true
					fresh = append(fresh, v)
				}
			}
			if len(fresh) == 0 {
				return nil
			}
			return newVarsChain(fresh)
		}
		left := lift(n.Left)
		right := lift(n.Right)
		switch {
		case left == nil:
			return right
		case right == nil:
			return left
		default:
			return vtree.Internal(left, right)
		}
	}

	shape := lift(d.root)
	return vtree.FromShape(shape)
}
