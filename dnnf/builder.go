// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dnnf

import (
	"math/rand"

	"github.com/dalzilio/sddgo/cnf"
	"github.com/dalzilio/sddgo/propagate"
	"github.com/dalzilio/sddgo/semantic"
	"github.com/dalzilio/sddgo/unique"
	"github.com/dalzilio/sddgo/varset"
)

// Builder compiles a Cnf into a Decision-DNNF, interning nodes by
// semantic hash under a fixed random weight assignment.
type Builder struct {
	order   varset.VarOrder
	hashMap *semantic.HashMap
	table   *unique.Table[node]
}

// New returns a Builder over the given variable order, drawing a fresh
// random weight for every (variable, polarity) pair from a source seeded
// by the caller — callers that need reproducible compilation across runs
// should pass a seeded rand.Rand.
func New(order varset.VarOrder, rng *rand.Rand) *Builder {
	return &Builder{
		order:   order,
		hashMap: semantic.CreateSemanticHashMap(allVars(order), semantic.DefaultPrime, rng),
		table:   unique.New[node](semanticHasher{}, structuralEqual{}),
	}
}

func allVars(order varset.VarOrder) []varset.VarLabel {
	vars := make([]varset.VarLabel, order.NumVars())
	for v := range vars {
		vars[v] = varset.VarLabel(v)
	}
	return vars
}

// Compile builds the Decision-DNNF for formula, returning (ptr, true), or
// (False, false) if formula is UNSAT.
func (b *Builder) Compile(formula *cnf.Cnf) (Ptr, bool) {
	prop, ok := propagate.New(formula)
	if !ok {
		return False, false
	}
	root := b.compile(formula, prop)
	// Units propagated at construction are part of the formula too; conjoin
	// them the same way each branch conjoins its own implied literals.
	empty := varset.NewPartialModel(formula.NumVars())
	return b.conjoinImplied(root, empty, prop.Assignment(), varset.VarLabel(formula.NumVars())), true
}

func (b *Builder) compile(formula *cnf.Cnf, prop *propagate.UnitPropagator) Ptr {
	model := prop.Assignment()

	allSat := true
	for _, cl := range formula.Clauses() {
		if cl.FalsifiedBy(model) {
			return False
		}
		if !cl.SatisfiedBy(model) {
			allSat = false
		}
	}
	if allSat {
		return True
	}

	v, ok := b.nextUnassigned(model)
	if !ok {
		// Every variable is assigned and yet some clause is neither
		// satisfied nor falsified: impossible for a total assignment.
		return True
	}

	low := False
	if prop.Decide(varset.Lit(v, false)) {
		low = b.conjoinImplied(b.compile(formula, prop), model, prop.Assignment(), v)
	}
	prop.Backtrack()

	high := False
	if prop.Decide(varset.Lit(v, true)) {
		high = b.conjoinImplied(b.compile(formula, prop), model, prop.Assignment(), v)
	}
	prop.Backtrack()

	return b.mk(v, low, high)
}

// conjoinImplied conjoins onto sub one single-variable decision node for
// every literal unit propagation derived between the before and after
// frames, other than the decided variable itself (that one becomes the
// branch node mk builds above). Without this, a branch's diagram would
// represent the formula *conditioned* on its implied units rather than
// the formula itself, over-counting models — rsdd's topdown_h wraps its
// sub-diagram in exactly the same implied-literal cube.
func (b *Builder) conjoinImplied(sub Ptr, before, after varset.PartialModel, decided varset.VarLabel) Ptr {
	if sub == False {
		return False
	}
	for i := 0; i < after.NumVars(); i++ {
		v := varset.VarLabel(i)
		if v == decided {
			continue
		}
		if _, was := before.Get(v); was {
			continue
		}
		val, assigned := after.Get(v)
		if !assigned {
			continue
		}
		if val {
			sub = b.mk(v, False, sub)
		} else {
			sub = b.mk(v, sub, False)
		}
	}
	return sub
}

func (b *Builder) nextUnassigned(model varset.PartialModel) (varset.VarLabel, bool) {
	n := b.order.NumVars()
	for lvl := int32(0); lvl < int32(n); lvl++ {
		v := b.order.VarAtLevel(lvl)
		if _, assigned := model.Get(v); !assigned {
			return v, true
		}
	}
	return 0, false
}

// mk interns (v, low, high) by semantic hash: a node whose hash collides
// with an existing entry (or whose *negated* hash does) is folded into
// that entry rather than re-inserted, exploiting the duality hash(n) +
// hash(¬n) ≡ 1 (mod P). The check lives in semantic.CheckCachedHashAndNeg
// since sdd.Manager.intern needs the exact same one over its own node
// shape.
func (b *Builder) mk(v varset.VarLabel, low, high Ptr) Ptr {
	if low == high {
		return low
	}
	comp := false
	if high.IsComp() {
		low, high = low.Negate(), high.Negate()
		comp = true
	}

	hash := b.hashMap.NodeHash(v, b.hashOf(low), b.hashOf(high))
	if h, neg, ok := semantic.CheckCachedHashAndNeg(b.table, hash); ok {
		p := litOf(h)
		if neg {
			p = p.Negate()
		}
		return withComp(p, comp)
	}

	h := b.table.GetOrInsert(node{Var: v, Low: low, High: high, Hash: hash.Uint64()})
	return withComp(litOf(h), comp)
}

func withComp(p Ptr, comp bool) Ptr {
	if comp {
		return p.Negate()
	}
	return p
}

// hashOf returns the semantic hash of p: the stored hash for a regular
// node pointer, its field-negation for a complemented one, and the
// constants 1/0 for True/False.
func (b *Builder) hashOf(p Ptr) semantic.FiniteField {
	prime := b.hashMap.Prime
	switch {
	case p == True:
		return semantic.One(prime)
	case p == False:
		return semantic.Zero(prime)
	case p.IsComp():
		return b.hashOf(p.Negate()).Negate()
	default:
		return semantic.FiniteField{V: b.table.Item(p.handle()).Hash, P: prime}
	}
}

// NumLogicallyRedundant counts, among the interned nodes, how many share
// a semantic hash with some earlier node under a second, independent
// weight assignment — a cross-check on the quality of the semantic
// canonicalization, mirroring rsdd's num_logically_redundant.
func (b *Builder) NumLogicallyRedundant(rng *rand.Rand) int {
	alt := semantic.CreateSemanticHashMap(allVars(b.order), b.hashMap.Prime, rng)

	memo := make(map[Ptr]semantic.FiniteField)
	var hashUnder func(p Ptr) semantic.FiniteField
	hashUnder = func(p Ptr) semantic.FiniteField {
		switch {
		case p == True:
			return semantic.One(alt.Prime)
		case p == False:
			return semantic.Zero(alt.Prime)
		case p.IsComp():
			return hashUnder(p.Negate()).Negate()
		}
		if h, ok := memo[p]; ok {
			return h
		}
		n := b.table.Item(p.handle())
		res := alt.NodeHash(n.Var, hashUnder(n.Low), hashUnder(n.High))
		memo[p] = res
		return res
	}

	seen := make(map[uint64]bool)
	collisions := 0
	for _, h := range b.table.Iter() {
		hash := hashUnder(litOf(h)).Uint64()
		if seen[hash] {
			collisions++
		} else {
			seen[hash] = true
		}
	}
	return collisions
}
