// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"github.com/dalzilio/sddgo/applycache"
	"github.com/dalzilio/sddgo/varset"
)

// iteKey identifies a memoized Ite(f, g, h) call. We reuse
// applycache.Key's three int32 fields directly as the three operands
// rather than as (operator, left, right): Ite already is the single
// ternary primitive every other binary connective in this package is
// derived from, so there is no separate "operator" to discriminate.
type iteKey = applycache.Key

func key(f, g, h Ptr) iteKey {
	return iteKey{Op: int32(f), Left: int32(g), Right: int32(h)}
}

// Not returns the logical complement of p. Unlike every other operation
// in this package, Not never touches the unique table or apply cache: it
// is a constant-time edge flip.
func (m *Manager) Not(p Ptr) Ptr {
	return p.Negate()
}

// And returns f ∧ g, defined as ite(f, g, False).
func (m *Manager) And(f, g Ptr) Ptr {
	return m.Ite(f, g, False)
}

// Or returns f ∨ g, defined as ite(f, True, g).
func (m *Manager) Or(f, g Ptr) Ptr {
	return m.Ite(f, True, g)
}

// Xor returns f ⊕ g.
func (m *Manager) Xor(f, g Ptr) Ptr {
	return m.Ite(f, g.Negate(), g)
}

// Iff returns f ↔ g, defined as ite(f, g, ¬g).
func (m *Manager) Iff(f, g Ptr) Ptr {
	return m.Ite(f, g, g.Negate())
}

// Ite is the standard Shannon-expansion recursion: terminal rules, cache
// normalization, cofactoring on the top variable of (f, g, h), and
// re-interning the result via mk.
func (m *Manager) Ite(f, g, h Ptr) Ptr {
	switch {
	case f == True:
		return g
	case f == False:
		return h
	case g == h:
		return g
	case g == True && h == False:
		return f
	case g == False && h == True:
		return f.Negate()
	}

	// Normalize for the cache: push any complement on f onto the two
	// branches instead, since ite(¬f,g,h) == ite(f,h,g).
	if f.IsComp() {
		f, g, h = f.Negate(), h, g
	}

	k := key(f, g, h)
	if cached, ok := m.cache.Get(k); ok {
		return cached
	}

	x := m.topVar(f, g, h)
	fLow, fHigh := m.cofactor(f, x)
	gLow, gHigh := m.cofactor(g, x)
	hLow, hHigh := m.cofactor(h, x)

	low := m.Ite(fLow, gLow, hLow)
	high := m.Ite(fHigh, gHigh, hHigh)
	res := m.mk(x, low, high)

	m.cache.Put(k, res)
	return res
}

// topVar returns the variable earliest in the manager's VarOrder among
// f, g, h's branching variables.
func (m *Manager) topVar(ptrs ...Ptr) varset.VarLabel {
	n := int32(m.order.NumVars())
	bestLevel := n
	for _, p := range ptrs {
		if p.IsConst() {
			continue
		}
		if lvl := m.order.Level(m.varOf(p)); lvl < bestLevel {
			bestLevel = lvl
		}
	}
	if bestLevel == n {
		return varset.VarLabel(n)
	}
	return m.order.VarAtLevel(bestLevel)
}

// cofactor returns (p|x=0, p|x=1): if p does not branch on x, both
// cofactors are p itself.
func (m *Manager) cofactor(p Ptr, x varset.VarLabel) (Ptr, Ptr) {
	if p.IsConst() || m.varOf(p) != x {
		return p, p
	}
	return m.low(p), m.high(p)
}

// Condition substitutes v ↦ b in f, cofactoring recursively with
// memoization.
func (m *Manager) Condition(f Ptr, v varset.VarLabel, b bool) Ptr {
	memo := make(map[Ptr]Ptr)
	var rec func(p Ptr) Ptr
	rec = func(p Ptr) Ptr {
		if p.IsConst() {
			return p
		}
		pv := m.varOf(p)
		if m.order.Precedes(v, pv) {
			// v does not appear below p in this order; p is unaffected.
			return p
		}
		if pv == v {
			if b {
				return m.high(p)
			}
			return m.low(p)
		}
		if r, ok := memo[p]; ok {
			return r
		}
		low := rec(m.low(p))
		high := rec(m.high(p))
		r := m.mk(pv, low, high)
		memo[p] = r
		return r
	}
	return rec(f)
}

// Exist returns the existential quantification of f over v: condition(f,
// v, true) ∨ condition(f, v, false).
func (m *Manager) Exist(f Ptr, v varset.VarLabel) Ptr {
	return m.Or(m.Condition(f, v, true), m.Condition(f, v, false))
}

// ExistSet existentially quantifies f over every variable in vs.
func (m *Manager) ExistSet(f Ptr, vs varset.Set) Ptr {
	res := f
	for _, v := range vs.Members() {
		res = m.Exist(res, v)
	}
	return res
}
