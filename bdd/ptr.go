// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"encoding/binary"

	"github.com/dalzilio/sddgo/unique"
	"github.com/dalzilio/sddgo/varset"
)

// Ptr is an edge to a BDD node: a unique.Handle into the manager's node
// table plus a complement bit. The low bit of Ptr is the complement flag;
// the remaining bits hold handle+1, so the zero value denotes the
// constant True.
//
// This complement-edge representation has no counterpart in
// github.com/dalzilio/rudd (whose Node is a plain, never-complemented
// int); it halves the number of stored nodes, since a function and its
// negation share one entry, and makes negation a constant-time edge flip.
type Ptr int32

// True and False are the two Boolean constants. They are never stored in
// the node table: IsConst reports them directly from the bit pattern.
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

// Handle returns the node-table handle p refers to. It must not be called
// on a constant Ptr.
func (p Ptr) Handle() unique.Handle {
	return unique.Handle(p>>1 - 1)
}

// Negate returns the logical complement of p, flipping only the
// complement bit: the referenced node (if any) is untouched, so negation
// is a constant-time edge operation.
func (p Ptr) Negate() Ptr {
	return p ^ 1
}

// node is the payload stored in the manager's unique.Table: a decision on
// Var between Low and High, both of which may be complemented edges.
// A node is only ever interned with a regular (non-complemented) High
// edge; the complement, if any, is pushed onto the Ptr returned to the
// caller, which keeps each function/negation pair down to one entry.
type node struct {
	Var  varset.VarLabel
	Low  Ptr
	High Ptr
}

// StructuralKey implements unique.StructuralKeyer, mirroring the
// #(level, low, high) structural hash rudd computes in hashing.go's
// ptrhash/nodehash, packed into bytes for xxhash instead of rudd's
// integer-folding _TRIPLE.
func (n node) StructuralKey() []byte {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(n.Var))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(n.Low))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(n.High))
	return buf[:]
}
