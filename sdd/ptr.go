// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package sdd implements Sentential Decision Diagrams structured over a
// vtree. Unlike the bdd and dnnf packages, an SDD node is not a simple
// (var, low, high) triple: it is either a Literal, a Boolean constant, or
// a decision node — an ordered list of (prime, sub) elements hosted at
// one vtree node. Implementations sometimes split off a BDD-like node
// shape for vtree leaf-parents; this package represents both uniformly as
// a decision node, since a leaf-parent's partition is exactly a
// two-or-fewer-element decision node once compressed.
//
// The complement-edge / unique-table discipline is carried over from the
// bdd package's Ptr; the two canonicalization schemes follow the rsdd
// library's compression and semantic canonicalizers.
package sdd

import (
	"github.com/dalzilio/sddgo/unique"
	"github.com/dalzilio/sddgo/varset"
	"github.com/dalzilio/sddgo/vtree"
)

const (
	kindConst    = 0
	kindLiteral  = 1
	kindDecision = 2
)

// Ptr is an edge to an SDD value: a Boolean constant, a literal, or a
// decision node handle, tagged in its low bits, with bit 0 always the
// complement flag regardless of kind — Negate is therefore a single
// constant-time XOR no matter what p refers to.
type Ptr int32

// True and False are the two Boolean constants.
const (
	True  Ptr = 0
	False Ptr = 1
)

func mkPtr(kind int32, payload int32, comp bool) Ptr {
	v := (payload << 3) | (kind << 1)
	if comp {
		v |= 1
	}
	return Ptr(v)
}

// Literal returns the SDD for the literal (v, polarity).
func Literal(v varset.VarLabel, polarity bool) Ptr {
	return mkPtr(kindLiteral, int32(v), !polarity)
}

func (p Ptr) kind() int32 {
	return (int32(p) >> 1) & 0x3
}

func (p Ptr) payload() int32 {
	return int32(p) >> 3
}

// IsConst reports whether p is one of the two Boolean constants.
func (p Ptr) IsConst() bool {
	return p.kind() == kindConst
}

// IsLiteral reports whether p is a literal.
func (p Ptr) IsLiteral() bool {
	return p.kind() == kindLiteral
}

// Var returns the variable of a literal Ptr; only valid when IsLiteral.
func (p Ptr) Var() varset.VarLabel {
	return varset.VarLabel(p.payload())
}

// Polarity returns the polarity of a literal Ptr; only valid when
// IsLiteral.
func (p Ptr) Polarity() bool {
	return !p.IsComp()
}

func (p Ptr) handle() unique.Handle {
	return unique.Handle(p.payload())
}

// IsComp reports whether p is a complemented edge.
func (p Ptr) IsComp() bool {
	return p&1 == 1
}

// Negate returns the logical complement of p.
func (p Ptr) Negate() Ptr {
	return p ^ 1
}

// Element is one (prime, sub) pair of a decision node: prime is an SDD
// over the hosting vtree node's left child, sub over its right child.
type Element struct {
	Prime Ptr
	Sub   Ptr
}

// node is a decision node: an ordered list of elements hosted at vtree
// node VtreeIdx. Hash is populated only under the semantic
// canonicalization scheme; it is always zero under compression.
type node struct {
	VtreeIdx vtree.NodeID
	Elements []Element
	Hash     uint64
}
