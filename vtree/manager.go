// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package vtree

import "github.com/dalzilio/sddgo/varset"

// Manager wraps a built VTree with the lookups the sdd package performs on
// every apply call, caching tree positions and serving LCA queries.
type Manager struct {
	tree   *VTree
	leafOf map[varset.VarLabel]NodeID
}

// NewManager builds a Manager over t, indexing the leaf hosting each
// variable.
func NewManager(t *VTree) *Manager {
	m := &Manager{tree: t, leafOf: make(map[varset.VarLabel]NodeID, t.Vars(t.Root()).Len())}
	for id, n := range t.nodes {
		if n.IsLeaf() {
			m.leafOf[n.Var] = NodeID(id)
		}
	}
	return m
}

// Tree returns the underlying VTree.
func (m *Manager) Tree() *VTree {
	return m.tree
}

// LeafOf returns the node hosting variable v.
func (m *Manager) LeafOf(v varset.VarLabel) (NodeID, bool) {
	id, ok := m.leafOf[v]
	return id, ok
}

// LCA returns the lowest common ancestor of a and b, walking the deeper
// node up to the other's depth and then both in lockstep until they coincide — the tree is
// static and shallow enough (O(numVars)) that this needs no preprocessing
// beyond the per-node depth computed at construction.
func (m *Manager) LCA(a, b NodeID) NodeID {
	da, db := m.tree.depth[a], m.tree.depth[b]
	for da > db {
		a = m.tree.nodes[a].Parent
		da--
	}
	for db > da {
		b = m.tree.nodes[b].Parent
		db--
	}
	for a != b {
		a = m.tree.nodes[a].Parent
		b = m.tree.nodes[b].Parent
	}
	return a
}

// Dominates reports whether a is an ancestor of (or equal to) b.
func (m *Manager) Dominates(a, b NodeID) bool {
	return m.LCA(a, b) == a
}
