// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// structuralEqual implements unique.Equaler[node] for both
// canonicalization schemes: two decision nodes are equal if they host the
// same vtree node and have identical (already-sorted) element lists. The
// semantic scheme layers a coarser notion (hash collision alone) on top
// via GetByHash, the same two-tier approach dnnf.mk uses.
type structuralEqual struct{}

func (structuralEqual) Equal(a, b node) bool {
	if a.VtreeIdx != b.VtreeIdx || len(a.Elements) != len(b.Elements) {
		return false
	}
	for i := range a.Elements {
		if a.Elements[i] != b.Elements[i] {
			return false
		}
	}
	return true
}

// compressionHasher hashes a node by its structural content (vtree index
// plus every element's prime/sub): nodes compare equal exactly when they
// are structurally identical.
type compressionHasher struct{}

func (compressionHasher) Hash(n node) uint64 {
	buf := make([]byte, 4+8*len(n.Elements))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(n.VtreeIdx))
	for i, e := range n.Elements {
		off := 4 + 8*i
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(e.Prime))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], uint32(e.Sub))
	}
	return xxhash.Sum64(buf)
}

// semanticHasher reads back the Hash field a Manager using the semantic
// scheme precomputes before interning (see apply.go's semanticHashOf),
// mirroring dnnf's semanticHasher.
type semanticHasher struct{}

func (semanticHasher) Hash(n node) uint64 {
	return n.Hash
}
