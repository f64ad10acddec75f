// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package query implements the polynomial-time evaluations supported by
// a compiled diagram: weighted model counting generalized over an
// abstract semiring.Semiring, marginal MAP, maximum expected utility,
// and a branch-and-bound reference implementation used to cross-check
// the other two.
//
// There is no counterpart to this package in github.com/dalzilio/rudd
// (a plain satisfiability/model-counting library has no notion of a
// semiring-polymorphic query); Wmc's recursion follows rudd's Satcount
// (see bdd/query.go), generalized from "count the satisfying
// assignments" to "fold a semiring over them".
package query

import (
	"github.com/dalzilio/sddgo/bdd"
	"github.com/dalzilio/sddgo/sdd"
	"github.com/dalzilio/sddgo/semiring"
	"github.com/dalzilio/sddgo/varset"
)

// Wmc evaluates p's weighted model count over a compiled BDD, under the
// semiring and per-variable weights in wmc. It generalizes
// (*bdd.Manager).Satcount's level-skipping recursion: a node's two
// branches are folded with Plus, each branch first scaled (Times) by the
// weight of its own variable and by a "skip factor" — Plus(low,high)
// weight for every variable the reduced diagram omits between this node
// and its child, since an unconstrained variable must still range over
// both of its polarities in every model of the diagram below it.
func Wmc[S any](m *bdd.Manager, p bdd.Ptr, wmc semiring.WmcParams[S]) S {
	ring := wmc.Ring
	order := m.Order()
	n := int32(order.NumVars())

	levelOf := func(p bdd.Ptr) int32 {
		if p == bdd.True || p == bdd.False {
			return n
		}
		return order.Level(m.Var(p))
	}

	skipFactor := func(from, to int32) S {
		res := ring.One()
		for lvl := from; lvl < to; lvl++ {
			v := order.VarAtLevel(lvl)
			res = ring.Times(res, ring.Plus(wmc.Weight(varset.Lit(v, false)), wmc.Weight(varset.Lit(v, true))))
		}
		return res
	}

	memo := make(map[bdd.Ptr]S)
	var rec func(p bdd.Ptr) S
	rec = func(p bdd.Ptr) S {
		if p == bdd.True {
			return ring.One()
		}
		if p == bdd.False {
			return ring.Zero()
		}
		if v, ok := memo[p]; ok {
			return v
		}
		level := levelOf(p)
		v := m.Var(p)
		low, high := m.Low(p), m.High(p)
		lowVal := ring.Times(skipFactor(level+1, levelOf(low)), rec(low))
		highVal := ring.Times(skipFactor(level+1, levelOf(high)), rec(high))
		res := ring.Plus(
			ring.Times(wmc.Weight(varset.Lit(v, false)), lowVal),
			ring.Times(wmc.Weight(varset.Lit(v, true)), highVal),
		)
		memo[p] = res
		return res
	}

	return ring.Times(skipFactor(0, levelOf(p)), rec(p))
}

// WmcSDD evaluates p's weighted model count over a compiled SDD. Unlike
// Wmc, there is no level-skipping to account for: an SDD decision node's
// elements already partition the full space of its hosting vtree node,
// so the weighted count is simply the semiring sum, over every element,
// of prime-count times sub-count.
func WmcSDD[S any](m *sdd.Manager, p sdd.Ptr, wmc semiring.WmcParams[S]) S {
	ring := wmc.Ring
	memo := make(map[sdd.Ptr]S)
	var rec func(p sdd.Ptr) S
	rec = func(p sdd.Ptr) S {
		switch {
		case p == sdd.True:
			return ring.One()
		case p == sdd.False:
			return ring.Zero()
		case p.IsLiteral():
			return wmc.Weight(varset.Lit(p.Var(), p.Polarity()))
		}
		if v, ok := memo[p]; ok {
			return v
		}
		res := ring.Zero()
		for _, e := range m.Elements(p) {
			res = ring.Plus(res, ring.Times(rec(e.Prime), rec(e.Sub)))
		}
		memo[p] = res
		return res
	}
	return rec(p)
}

// MarginalMap returns the maximum weighted model count of p conjoined
// with some total assignment to vars, together with the assignment that
// achieves it. It enumerates every one of the 2^|vars| assignments: vars
// is expected to be small (the "marginal" variables of an MMAP query,
// not the whole formula), and each assignment's count is a linear-time
// Wmc over the conjoined diagram.
func MarginalMap[S any](m *bdd.Manager, p bdd.Ptr, vars []varset.VarLabel, wmc semiring.WmcParams[S], ring semiring.Ordered[S]) (S, varset.PartialModel) {
	n := m.NumVars()
	var best S
	var bestModel varset.PartialModel
	first := true

	total := 1 << uint(len(vars))
	for mask := 0; mask < total; mask++ {
		cur := p
		for i, v := range vars {
			bit := mask&(1<<uint(i)) != 0
			lit := m.Ithvar(v)
			if !bit {
				lit = lit.Negate()
			}
			cur = m.And(cur, lit)
		}
		val := Wmc(m, cur, wmc)
		if first || ring.Less(best, val) {
			best = val
			first = false
			bestModel = varset.NewPartialModel(n)
			for i, v := range vars {
				bestModel.Set(v, mask&(1<<uint(i)) != 0)
			}
		}
	}
	return best, bestModel
}

// Meu returns the maximum expected utility of p over every total
// assignment to vars, together with the decision achieving it. It is the
// same search as MarginalMap, instantiated over
// semiring.ExpectedUtility: MarginalMap already maximizes by whatever
// ordering its Ordered argument supplies, and ExpectedUtility.Less
// compares the utility coordinate alone, which is exactly what
// distinguishes an MEU query from a plain probability MMAP query.
func Meu(m *bdd.Manager, p bdd.Ptr, vars []varset.VarLabel, wmc semiring.WmcParams[semiring.ExpectedUtility]) (semiring.ExpectedUtility, varset.PartialModel) {
	return MarginalMap(m, p, vars, wmc, semiring.ExpectedUtility{})
}

// Bb is a branch-and-bound counterpart to MarginalMap/Meu, used to
// cross-validate them: it searches the same decision tree over vars,
// depth-first, but prunes a branch as soon as its
// partial conjunction becomes unsatisfiable (cur == bdd.False) instead of
// enumerating every remaining leaf under it — every such leaf would
// evaluate to the semiring's Zero in any case, so the prune changes
// nothing about the result, only the work spent computing it.
func Bb[S any](m *bdd.Manager, p bdd.Ptr, vars []varset.VarLabel, wmc semiring.WmcParams[S], ring semiring.Ordered[S]) (S, varset.PartialModel) {
	n := m.NumVars()
	var best S
	var bestModel varset.PartialModel
	first := true
	record := func(val S, model varset.PartialModel) {
		if first || ring.Less(best, val) {
			best, bestModel, first = val, model, false
		}
	}

	var rec func(idx int, cur bdd.Ptr, model varset.PartialModel)
	rec = func(idx int, cur bdd.Ptr, model varset.PartialModel) {
		if cur == bdd.False {
			record(ring.Zero(), model)
			return
		}
		if idx == len(vars) {
			record(Wmc(m, cur, wmc), model)
			return
		}
		v := vars[idx]
		for _, b := range [2]bool{true, false} {
			lit := m.Ithvar(v)
			if !b {
				lit = lit.Negate()
			}
			nextModel := model.Clone()
			nextModel.Set(v, b)
			rec(idx+1, m.And(cur, lit), nextModel)
		}
	}
	rec(0, p, varset.NewPartialModel(n))
	return best, bestModel
}
