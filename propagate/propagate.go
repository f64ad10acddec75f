// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package propagate implements iterative Boolean constraint propagation
// (unit propagation) over a CNF formula using the standard two-watched-
// literal scheme, in the manner of the UnitPropagate type of the rsdd
// library. The dnnf builder relies on it to prune unreachable branches
// during top-down compilation.
package propagate

import (
	"github.com/dalzilio/sddgo/cnf"
	"github.com/dalzilio/sddgo/varset"
)

// UnitPropagator tracks, for a fixed CNF, which two literals each non-unit
// clause currently watches, plus a stack of PartialModel frames — one frame
// per decision level. For every non-unit clause, the two watched literals
// are distinct and both unassigned, or the clause is satisfied through one
// of them. It never owns clause storage; it only indexes into the Cnf it
// was built from.
type UnitPropagator struct {
	formula *cnf.Cnf

	// watchPos[v] (watchNeg[v]) lists the indices of clauses currently
	// watching the positive (negative) literal of variable v.
	watchPos [][]int
	watchNeg [][]int

	state []varset.PartialModel
}

// New builds a UnitPropagator for formula, performing the initial unit
// propagation implied by its unit clauses. It returns (nil, false) if this
// initial propagation (or an empty clause) proves the formula UNSAT.
func New(formula *cnf.Cnf) (*UnitPropagator, bool) {
	n := formula.NumVars()
	p := &UnitPropagator{
		formula:  formula,
		watchPos: make([][]int, n),
		watchNeg: make([][]int, n),
		state:    []varset.PartialModel{varset.NewPartialModel(n)},
	}

	var units []varset.Literal
	for idx, cl := range formula.Clauses() {
		switch len(cl) {
		case 0:
			return nil, false
		case 1:
			units = append(units, cl[0])
		default:
			p.watch(cl[0], idx)
			p.watch(cl[1], idx)
		}
	}
	for _, u := range units {
		if !p.set(u) {
			return nil, false
		}
	}
	return p, true
}

func (p *UnitPropagator) watch(l varset.Literal, clauseIdx int) {
	if l.Polarity {
		p.watchPos[l.Label] = append(p.watchPos[l.Label], clauseIdx)
	} else {
		p.watchNeg[l.Label] = append(p.watchNeg[l.Label], clauseIdx)
	}
}

func (p *UnitPropagator) cur() varset.PartialModel {
	return p.state[len(p.state)-1]
}

// Assignment returns the partial model at the current decision level.
func (p *UnitPropagator) Assignment() varset.PartialModel {
	return p.cur()
}

// Decide pushes a new decision frame (copying the current assignment) and
// assigns lit, propagating any resulting units. It returns false if this
// decision renders the formula UNSAT at the new frame; the caller must still
// call Backtrack to pop that (failed) frame.
func (p *UnitPropagator) Decide(lit varset.Literal) bool {
	p.state = append(p.state, p.cur().Clone())
	return p.set(lit)
}

// Backtrack pops the most recent decision frame.
func (p *UnitPropagator) Backtrack() {
	p.state = p.state[:len(p.state)-1]
}

// set assigns lit in the current frame and propagates. It returns false iff
// the assignment (transitively) falsifies some clause with no remaining
// unassigned literal to watch, i.e. UNSAT is proven at the current frame.
func (p *UnitPropagator) set(lit varset.Literal) bool {
	cur := p.cur()
	if v, assigned := cur.Get(lit.Label); assigned {
		return v == lit.Polarity
	}
	cur.Set(lit.Label, lit.Polarity)

	// We scan the watchers of ¬lit: each of those clauses has just lost one
	// of its two watched literals (the one that became false). We either
	// find it a new literal to watch, derive a unit, or report UNSAT.
	var watchers *[]int
	if lit.Polarity {
		watchers = &p.watchNeg[lit.Label]
	} else {
		watchers = &p.watchPos[lit.Label]
	}

	var implied []varset.Literal
	i := 0
	for i < len(*watchers) {
		clauseIdx := (*watchers)[i]
		clause := p.formula.Clause(clauseIdx)

		if clause.SatisfiedBy(cur) {
			i++
			continue
		}

		var unassigned []varset.Literal
		for _, l := range clause {
			if _, assigned := cur.Get(l.Label); !assigned {
				unassigned = append(unassigned, l)
			}
		}

		switch len(unassigned) {
		case 0:
			// No assignment left to fall back on: UNSAT.
			return false
		case 1:
			implied = append(implied, unassigned[0])
			i++
		default:
			// Pick a new literal to watch among the unassigned ones, other
			// than one the clause may already be watching from the other
			// side.
			newLit := unassigned[0]
			for _, l := range unassigned {
				list := p.watchPos[l.Label]
				if !l.Polarity {
					list = p.watchNeg[l.Label]
				}
				watched := false
				for _, c := range list {
					if c == clauseIdx {
						watched = true
						break
					}
				}
				if !watched {
					newLit = l
					break
				}
			}
			// swap-remove the old watcher entry, mirroring rsdd's
			// watch_list swap_remove (order of watchers does not matter).
			last := len(*watchers) - 1
			(*watchers)[i] = (*watchers)[last]
			*watchers = (*watchers)[:last]
			p.watch(newLit, clauseIdx)
			// do not advance i: the slot at i now holds a different entry
		}
	}

	for _, u := range implied {
		if !p.set(u) {
			return false
		}
	}
	return true
}
