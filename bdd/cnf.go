// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"sort"

	"github.com/dalzilio/sddgo/cnf"
	"github.com/dalzilio/sddgo/varset"
)

// clauseBdd returns the BDD for a single clause's disjunction.
func (m *Manager) clauseBdd(cl cnf.Clause) Ptr {
	res := False
	for _, l := range cl {
		lit := m.Ithvar(l.Label)
		if !l.Polarity {
			lit = lit.Negate()
		}
		res = m.Or(res, lit)
	}
	return res
}

// CompileBottomUp compiles formula by conjoining each clause's
// disjunction in turn. Clauses are sorted by size (smallest first) before
// conjoining, a standard heuristic for keeping intermediate BDDs small.
func (m *Manager) CompileBottomUp(formula *cnf.Cnf) Ptr {
	clauses := append([]cnf.Clause(nil), formula.Clauses()...)
	sort.Slice(clauses, func(i, j int) bool { return len(clauses[i]) < len(clauses[j]) })

	res := True
	for _, cl := range clauses {
		res = m.And(res, m.clauseBdd(cl))
		if res == False {
			return False
		}
	}
	return res
}

// CompileWithAssignments conjoins only the clauses not already satisfied
// by model, for callers that have fixed part of the assignment up front.
func (m *Manager) CompileWithAssignments(formula *cnf.Cnf, model varset.PartialModel) Ptr {
	res := True
	for _, cl := range formula.Clauses() {
		if cl.SatisfiedBy(model) {
			continue
		}
		res = m.And(res, m.clauseBdd(cl))
		if res == False {
			return False
		}
	}
	return res
}
