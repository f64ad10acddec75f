// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import (
	"github.com/dalzilio/sddgo/cnf"
	"github.com/dalzilio/sddgo/dtree"
)

// clauseSdd returns the SDD for a single clause's disjunction, folding Or
// across its literals — the SDD counterpart of (*bdd.Manager).clauseBdd.
func (m *Manager) clauseSdd(cl cnf.Clause) Ptr {
	res := False
	for _, l := range cl {
		res = m.Or(res, Literal(l.Label, l.Polarity))
	}
	return res
}

// CompileDtree compiles formula into an SDD over the manager's vtree by
// walking d post-order: each leaf yields its clause's disjunction in SDD
// form, each internal dtree node conjoins its children through the apply
// machinery. d must have been built from the same formula (its leaves'
// Clause indices must be valid into formula), typically via
// dtree.FromCnf(formula, dtree.MinFillOrder(formula)).
func (m *Manager) CompileDtree(formula *cnf.Cnf, d *dtree.DTree) Ptr {
	var rec func(id dtree.NodeID) Ptr
	rec = func(id dtree.NodeID) Ptr {
		n := d.Node(id)
		if n.IsLeaf() {
			return m.clauseSdd(formula.Clause(n.Clause))
		}
		return m.And(rec(n.Left), rec(n.Right))
	}
	return rec(d.Root())
}
