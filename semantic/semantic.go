// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package semantic supplies the shared machinery of semantic hashing: the
// finite-field arithmetic and randomized per-variable weight map that both
// dnnf and sdd hash their nodes under to canonicalize by logical
// equivalence instead of by structural identity. It does not know about
// either package's node shape — dnnf.Builder and sdd.Manager each still
// recurse over their own (var, low, high) triple or (prime, sub) element
// list — only the field arithmetic and the check-cached-hash-and-neg
// interning check live here.
package semantic

import (
	"math/rand"

	"github.com/dalzilio/sddgo/unique"
	"github.com/dalzilio/sddgo/varset"
)

// DefaultPrime is the default field modulus: large enough that random
// hash collisions between inequivalent nodes are negligible, small enough
// that a product of two residues never overflows uint64.
const DefaultPrime uint64 = 100000049

// FiniteField is an element of Z/pZ for a fixed prime p, the one concrete
// field semantic hashing needs.
type FiniteField struct {
	V uint64
	P uint64
}

// Zero and One return the additive and multiplicative identities of the
// field with modulus p.
func Zero(p uint64) FiniteField { return FiniteField{V: 0, P: p} }
func One(p uint64) FiniteField  { return FiniteField{V: 1 % p, P: p} }

// Uint64 returns the field element's underlying residue.
func (f FiniteField) Uint64() uint64 { return f.V }

// Add returns f + g mod p.
func (f FiniteField) Add(g FiniteField) FiniteField {
	return FiniteField{V: (f.V + g.V) % f.P, P: f.P}
}

// Mul returns f · g mod p.
func (f FiniteField) Mul(g FiniteField) FiniteField {
	return FiniteField{V: (f.V * g.V) % f.P, P: f.P}
}

// Negate returns 1 - f mod p, so that hash(n) + hash(¬n) = 1 mod p for
// every node n: a function and its complement split the weighted total of
// 1 between them.
func (f FiniteField) Negate() FiniteField {
	return FiniteField{V: (1 + f.P - f.V) % f.P, P: f.P}
}

// HashMap is a randomized weight assignment w: VarLabel → (F_P, F_P),
// shared by dnnf's semantic hasher and sdd's semantic scheme.
type HashMap struct {
	Prime   uint64
	Weights map[varset.VarLabel][2]FiniteField
}

// CreateSemanticHashMap draws a fresh random (low, high) weight pair in
// F_P for every one of vars.
func CreateSemanticHashMap(vars []varset.VarLabel, prime uint64, rng *rand.Rand) *HashMap {
	weights := make(map[varset.VarLabel][2]FiniteField, len(vars))
	for _, v := range vars {
		weights[v] = [2]FiniteField{
			{V: 1 + uint64(rng.Int63n(int64(prime-1))), P: prime},
			{V: 1 + uint64(rng.Int63n(int64(prime-1))), P: prime},
		}
	}
	return &HashMap{Prime: prime, Weights: weights}
}

// Weight returns the weight of lit: the high-weight of its variable if
// lit's polarity is true, otherwise the low-weight.
func (m *HashMap) Weight(lit varset.Literal) FiniteField {
	w := m.Weights[lit.Label]
	if lit.Polarity {
		return w[1]
	}
	return w[0]
}

// NodeHash computes the semantic hash of a prospective (v, low, high) BDD-
// shaped node: w(v).low · hash(low) + w(v).high · hash(high), the WMC of the
// node under m's random weights.
func (m *HashMap) NodeHash(v varset.VarLabel, low, high FiniteField) FiniteField {
	w := m.Weights[v]
	return w[0].Mul(low).Add(w[1].Mul(high))
}

// CreateLiteralWeights draws one random weight per variable in F_P, the
// shape sdd.Manager's Semantic scheme hashes a Literal Ptr under: unlike a
// BDD-shaped node's (low, high) pair, a literal has only one child-free
// value to weight, and its negation's hash falls straight out of the
// field negation below rather than needing a second weight coordinate.
func CreateLiteralWeights(vars []varset.VarLabel, prime uint64, rng *rand.Rand) map[varset.VarLabel]FiniteField {
	weights := make(map[varset.VarLabel]FiniteField, len(vars))
	for _, v := range vars {
		weights[v] = FiniteField{V: 1 + uint64(rng.Int63n(int64(prime-1))), P: prime}
	}
	return weights
}

// HashOfLiteral returns the semantic hash of lit under weights: the
// variable's weight for a positive literal, or the field-negation of that
// weight for a negative one — the complement-duality identity applied
// directly to a literal's hash, since lit and ¬lit partition exactly the
// variable's two models.
func HashOfLiteral(weights map[varset.VarLabel]FiniteField, lit varset.Literal) FiniteField {
	w := weights[lit.Label]
	if lit.Polarity {
		return w
	}
	return w.Negate()
}

// CheckCachedHashAndNeg looks up hash in table, falling back to hash's
// field-negation if the direct lookup misses, per rsdd's
// check_cached_hash_and_neg (canonicalize.rs / semantic.rs): a node whose
// negated hash is already present is logically this node's negation, so the
// caller should return the existing handle complemented rather than intern
// a duplicate. found is false if neither lookup hits.
func CheckCachedHashAndNeg[T any](table *unique.Table[T], hash FiniteField) (h unique.Handle, complemented bool, found bool) {
	if hh, ok := table.GetByHash(hash.Uint64()); ok {
		return hh, false, true
	}
	if hh, ok := table.GetByHash(hash.Negate().Uint64()); ok {
		return hh, true, true
	}
	return 0, false, false
}
