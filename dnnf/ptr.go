// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package dnnf implements a top-down Decision-DNNF compiler: unit
// propagation drives the recursion, and nodes are interned by *semantic
// hash* rather than by their structural (var, low, high) triple, so that
// logically equivalent subtrees collapse into one node even when they
// were built from syntactically different clause orderings.
//
// The interning strategy follows the rsdd library's semantic
// Decision-NNF builder: get_or_insert with a check of both the node's
// hash and its negated hash, adapted onto this module's unique.Table and
// propagate.UnitPropagator.
package dnnf

import (
	"github.com/dalzilio/sddgo/unique"
	"github.com/dalzilio/sddgo/varset"
)

// Ptr is an edge into a Builder's node table, using the same
// complement-edge encoding as bdd.Ptr (see that package's ptr.go for the
// bit layout rationale); the two packages intentionally do not share a
// type since their node tables canonicalize by different notions of
// equality (structural vs. semantic).
type Ptr int32

// True and False are the two Boolean constants.
const (
	True  Ptr = 0
	False Ptr = 1
)

func litOf(h unique.Handle) Ptr {
	return Ptr((int32(h) + 1) << 1)
}

// IsConst reports whether p is one of the two Boolean constants.
func (p Ptr) IsConst() bool {
	return p>>1 == 0
}

// IsComp reports whether p is a complemented edge.
func (p Ptr) IsComp() bool {
	return p&1 == 1
}

func (p Ptr) handle() unique.Handle {
	return unique.Handle(p>>1 - 1)
}

// Negate returns the logical complement of p.
func (p Ptr) Negate() Ptr {
	return p ^ 1
}

// node is the payload interned in a Builder's unique.Table. Hash is
// precomputed by Builder.mk before interning, so the table's Hasher only
// ever needs to read it back, never recompute it recursively.
type node struct {
	Var  varset.VarLabel
	Low  Ptr
	High Ptr
	Hash uint64
}

// semanticHasher implements unique.Hasher[node] by reading back the
// precomputed hash; structuralEqual below implements unique.Equaler[node]
// by structural equality (used only as a fallback inside GetOrInsert once Builder.mk has already ruled
// out a semantic collision via GetByHash).
type semanticHasher struct{}

func (semanticHasher) Hash(n node) uint64 {
	return n.Hash
}

type structuralEqual struct{}

func (structuralEqual) Equal(a, b node) bool {
	return a == b
}
