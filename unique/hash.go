// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package unique

import "github.com/cespare/xxhash/v2"

// StructuralKeyer is implemented by items that can be hashed by their bit
// pattern: the packed (var, low-pointer, high-pointer, ...) triple of a
// node, or whatever else identifies an item structurally. Where rudd packs
// this pattern into a fixed-size byte array by hand (see huddhash in
// hudd.go), we ask the item to produce that byte slice once and hash it with
// a vetted non-cryptographic hash (xxhash) rather than rudd's own _PAIR/
// _TRIPLE integer-folding functions.
type StructuralKeyer interface {
	StructuralKey() []byte
}

// DefaultHasher hashes items via their StructuralKey.
type DefaultHasher[T StructuralKeyer] struct{}

// Hash implements Hasher.
func (DefaultHasher[T]) Hash(item T) uint64 {
	return xxhash.Sum64(item.StructuralKey())
}

// StructuralEqual implements Equaler for any comparable type by using Go's
// built-in equality; used together with DefaultHasher whenever T is a plain
// value type (as opposed to a type holding a slice, such as sdd's decision
// node, for which the sdd package supplies its own element-wise equality).
type StructuralEqual[T comparable] struct{}

// Equal implements Equaler.
func (StructuralEqual[T]) Equal(a, b T) bool {
	return a == b
}
