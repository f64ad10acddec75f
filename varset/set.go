// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package varset

import "github.com/bits-and-blooms/bitset"

// Set is a dense set of VarLabel, used for quantification varsets, vtree leaf
// partitions, and dtree clusters. It is a thin wrapper over
// github.com/bits-and-blooms/bitset so that membership tests over the
// (small, dense) variable universe stay allocation-free; Union and
// Intersection allocate a new bitset for their result.
type Set struct {
	bits *bitset.BitSet
}

// NewSet returns an empty Set with enough backing storage for numVars
// variables (the set can still grow past that if needed).
func NewSet(numVars int) Set {
	return Set{bits: bitset.New(uint(numVars))}
}

// SetFrom returns a Set containing exactly the labels in vs.
func SetFrom(vs ...VarLabel) Set {
	s := NewSet(0)
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add inserts v into the set.
func (s Set) Add(v VarLabel) {
	s.bits.Set(uint(v))
}

// Remove deletes v from the set.
func (s Set) Remove(v VarLabel) {
	s.bits.Clear(uint(v))
}

// Contains reports whether v is a member of the set.
func (s Set) Contains(v VarLabel) bool {
	return s.bits.Test(uint(v))
}

// Len returns the number of members of the set.
func (s Set) Len() int {
	return int(s.bits.Count())
}

// Union returns a new Set containing the members of s and other.
func (s Set) Union(other Set) Set {
	return Set{bits: s.bits.Union(other.bits)}
}

// Intersection returns a new Set containing the members common to s and
// other.
func (s Set) Intersection(other Set) Set {
	return Set{bits: s.bits.Intersection(other.bits)}
}

// Disjoint reports whether s and other share no members.
func (s Set) Disjoint(other Set) bool {
	return s.bits.IntersectionCardinality(other.bits) == 0
}

// Members returns the sorted slice of labels in the set.
func (s Set) Members() []VarLabel {
	res := make([]VarLabel, 0, s.Len())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		res = append(res, VarLabel(i))
	}
	return res
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	return Set{bits: s.bits.Clone()}
}
