// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import (
	"fmt"
	"sort"

	"github.com/dalzilio/sddgo/applycache"
	"github.com/dalzilio/sddgo/semantic"
	"github.com/dalzilio/sddgo/unique"
	"github.com/dalzilio/sddgo/varset"
	"github.com/dalzilio/sddgo/vtree"
)

// Operator is one of the two connectives SDD apply supports.
type Operator int32

const (
	OpAnd Operator = iota
	OpOr
)

func (m *Manager) seterror(format string, a ...interface{}) Ptr {
	if m.err != nil {
		format = format + "; " + m.err.Error()
	}
	m.err = fmt.Errorf(format, a...)
	return False
}

// Errored reports whether a prior operation set the manager's error
// state.
func (m *Manager) Errored() bool {
	return m.err != nil
}

// And returns f ∧ g.
func (m *Manager) And(f, g Ptr) Ptr {
	return m.Apply(OpAnd, f, g)
}

// Or returns f ∨ g.
func (m *Manager) Or(f, g Ptr) Ptr {
	return m.Apply(OpOr, f, g)
}

// Not returns ¬p. Like bdd.Ptr, negation is a constant-time edge flip.
func (m *Manager) Not(p Ptr) Ptr {
	return p.Negate()
}

// Apply is the core SDD operation: terminal rules, LCA lookup, an
// elementwise cross product of the two operands' partitions (partitionAt
// lifts an operand living strictly below the LCA into a synthetic
// partition first), and canonicalization of the resulting element list.
func (m *Manager) Apply(op Operator, f, g Ptr) Ptr {
	if r, ok := terminal(op, f, g); ok {
		return r
	}

	a, b := applycache.Canon(int32(f), int32(g))
	k := applycache.Key{Op: int32(op), Left: a, Right: b}
	if cached, ok := m.cache.Get(k); ok {
		return cached
	}

	v := m.vm.LCA(m.vtreeOf(f), m.vtreeOf(g))
	fElems := m.partitionAt(v, f)
	gElems := m.partitionAt(v, g)

	var elems []Element
	for _, e1 := range fElems {
		for _, e2 := range gElems {
			prime := m.Apply(OpAnd, e1.Prime, e2.Prime)
			if prime == False {
				continue
			}
			sub := m.Apply(op, e1.Sub, e2.Sub)
			elems = append(elems, Element{Prime: prime, Sub: sub})
		}
	}

	res := m.canonicalize(v, elems)
	m.cache.Put(k, res)
	return res
}

// terminal applies the constant and same-operand shortcuts that need no
// recursion.
func terminal(op Operator, f, g Ptr) (Ptr, bool) {
	switch op {
	case OpAnd:
		switch {
		case f == False || g == False:
			return False, true
		case f == True:
			return g, true
		case g == True:
			return f, true
		case f == g:
			return f, true
		case f == g.Negate():
			return False, true
		}
	case OpOr:
		switch {
		case f == True || g == True:
			return True, true
		case f == False:
			return g, true
		case g == False:
			return f, true
		case f == g:
			return f, true
		case f == g.Negate():
			return True, true
		}
	}
	return 0, false
}

// VtreeOf returns the vtree node hosting p; p must not be a constant.
func (m *Manager) VtreeOf(p Ptr) vtree.NodeID {
	return m.vtreeOf(p)
}

// Elements returns the (prime, sub) decision elements of p, accounting
// for p's own complement bit. It must only be called on a decision Ptr
// (neither a constant nor a literal).
func (m *Manager) Elements(p Ptr) []Element {
	return m.elementsOf(p)
}

// vtreeOf returns the vtree node hosting p; p must not be a constant.
func (m *Manager) vtreeOf(p Ptr) vtree.NodeID {
	if p.IsLiteral() {
		leaf, _ := m.vm.LeafOf(p.Var())
		return leaf
	}
	return m.table.Item(p.handle()).VtreeIdx
}

// elementsOf returns the element list of a decision Ptr, accounting for
// its own complement bit by negating every sub (valid because the primes
// form a partition, so negating a decision negates each sub in place).
func (m *Manager) elementsOf(p Ptr) []Element {
	n := m.table.Item(p.handle())
	if !p.IsComp() {
		return n.Elements
	}
	out := make([]Element, len(n.Elements))
	for i, e := range n.Elements {
		out[i] = Element{Prime: e.Prime, Sub: e.Sub.Negate()}
	}
	return out
}

// partitionAt returns p's (prime, sub) partition as seen from vtree node
// v = LCA(vtree(f), vtree(g)): p's own elements if p is hosted exactly at
// v, or a synthetic single/two-element partition if p lives strictly
// under v's left or right child.
func (m *Manager) partitionAt(v vtree.NodeID, p Ptr) []Element {
	if p.IsConst() {
		return []Element{{Prime: True, Sub: p}}
	}
	pv := m.vtreeOf(p)
	if pv == v {
		return m.elementsOf(p)
	}
	n := m.vm.Tree().Node(v)
	if m.vm.Dominates(n.Left, pv) {
		return []Element{{Prime: p, Sub: True}, {Prime: p.Negate(), Sub: False}}
	}
	return []Element{{Prime: True, Sub: p}}
}

// canonicalize cleans up a raw element list: drop vacuous elements,
// merge elements sharing a sub (compression), apply the trimming
// shortcuts, sort for a canonical ordering, then intern with the
// complement pushed onto the returned edge.
func (m *Manager) canonicalize(v vtree.NodeID, elems []Element) Ptr {
	live := elems[:0]
	for _, e := range elems {
		if e.Prime == False {
			continue
		}
		live = append(live, e)
	}
	elems = live

	var merged []Element
	for _, e := range elems {
		found := false
		for i := range merged {
			if merged[i].Sub == e.Sub {
				merged[i].Prime = m.Or(merged[i].Prime, e.Prime)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, e)
		}
	}
	elems = merged

	if len(elems) == 1 {
		// The sole element's prime spans the whole partition, per the
		// "{(true, α)}" trimming rule.
		return elems[0].Sub
	}
	if len(elems) == 2 {
		a, b := elems[0], elems[1]
		if a.Sub == True && b.Sub == False && a.Prime == b.Prime.Negate() {
			return a.Prime
		}
		if b.Sub == True && a.Sub == False && b.Prime == a.Prime.Negate() {
			return b.Prime
		}
	}

	sort.Slice(elems, func(i, j int) bool { return elems[i].Prime < elems[j].Prime })

	comp := false
	if elems[0].Sub.IsComp() {
		for i := range elems {
			elems[i].Sub = elems[i].Sub.Negate()
		}
		comp = true
	}

	h, neg := m.intern(node{VtreeIdx: v, Elements: elems})
	p := mkPtr(kindDecision, int32(h), false)
	if neg {
		p = p.Negate()
	}
	if comp {
		p = p.Negate()
	}
	return p
}

// intern returns the canonical handle for n, per the manager's scheme:
// Compression defers to the unique table's ordinary structural dedup;
// Semantic computes n's WMC hash first and folds it into an existing
// entry whose hash (or negated hash) already matches — the check lives
// in semantic.CheckCachedHashAndNeg, shared with dnnf.Builder.mk's
// identical interning check. neg reports that the matched entry is
// logically n's negation (its hash matched 1-hash(n)), so the caller
// must complement the edge it wraps around h.
func (m *Manager) intern(n node) (h unique.Handle, neg bool) {
	if m.scheme == Compression {
		return m.table.GetOrInsert(n), false
	}

	hash := m.semanticHashOf(n)
	if h, neg, ok := semantic.CheckCachedHashAndNeg(m.table, hash); ok {
		return h, neg
	}
	n.Hash = hash.Uint64()
	return m.table.GetOrInsert(n), false
}

// semanticHashOf computes the WMC of n under the manager's random weight
// assignment: since n's elements partition the hosting vtree node's
// space, the weighted model count of their disjunction is simply the sum
// of each element's prime-hash times sub-hash.
func (m *Manager) semanticHashOf(n node) semantic.FiniteField {
	total := semantic.Zero(m.prime)
	for _, e := range n.Elements {
		total = total.Add(m.hashOf(e.Prime).Mul(m.hashOf(e.Sub)))
	}
	return total
}

func (m *Manager) hashOf(p Ptr) semantic.FiniteField {
	switch {
	case p == True:
		return semantic.One(m.prime)
	case p == False:
		return semantic.Zero(m.prime)
	case p.IsLiteral():
		return semantic.HashOfLiteral(m.litWeights, varset.Lit(p.Var(), p.Polarity()))
	case p.IsComp():
		return m.hashOf(p.Negate()).Negate()
	default:
		return semantic.FiniteField{V: m.table.Item(p.handle()).Hash, P: m.prime}
	}
}
