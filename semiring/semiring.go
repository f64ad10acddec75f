// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package semiring defines the abstract algebraic contract the query layer
// (package query) evaluates diagrams over: a capability set {zero, one,
// plus, times}, extended with an ordering for maximizing queries.
// Diagrams are semiring-agnostic; a semiring is instantiated once per
// query. This is not a general algebra library — it supplies only the
// contract plus the minimal concrete instances the query layer exercises.
package semiring

import "github.com/dalzilio/sddgo/varset"

// Semiring is the algebraic capability a WMC-style query needs: a additive
// identity (Zero), a multiplicative identity (One), and the two
// combinators Plus and Times. S is typically a small value type (float64,
// a finite-field element, a (probability, utility) pair for MEU).
type Semiring[S any] interface {
	Zero() S
	One() S
	Plus(a, b S) S
	Times(a, b S) S
}

// Ordered extends Semiring with a comparison on its carrier, used by
// maximizing queries (marginal MAP, MEU) and branch-and-bound pruning.
type Ordered[S any] interface {
	Semiring[S]
	Less(a, b S) bool
}

// WmcParams bundles a semiring with the per-variable (low_weight,
// high_weight) pairs a WMC-style query needs.
type WmcParams[S any] struct {
	Ring    Semiring[S]
	weights map[varset.VarLabel][2]S
}

// NewWmcParams returns an empty WmcParams over ring; call SetWeight to
// populate per-variable weights before passing it to a query.
func NewWmcParams[S any](ring Semiring[S]) WmcParams[S] {
	return WmcParams[S]{Ring: ring, weights: make(map[varset.VarLabel][2]S)}
}

// SetWeight records the weight of v being false (low) and true (high).
func (p WmcParams[S]) SetWeight(v varset.VarLabel, low, high S) {
	p.weights[v] = [2]S{low, high}
}

// Weight returns the weight of literal l under p, defaulting to One when
// the variable was never given an explicit weight.
func (p WmcParams[S]) Weight(l varset.Literal) S {
	w, ok := p.weights[l.Label]
	if !ok {
		return p.Ring.One()
	}
	if l.Polarity {
		return w[1]
	}
	return w[0]
}
