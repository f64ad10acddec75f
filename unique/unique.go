// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package unique implements the canonical node table shared by the BDD,
// Decision-DNNF, and SDD builders: an append-only arena of items paired with
// a Robin-Hood open-addressing probe table that deduplicates items by a
// caller-supplied hash. Handles returned by GetOrInsert are stable for the
// lifetime of the table — a resize only reshuffles probe slots, never the
// backing arena, so outstanding handles from in-progress recursive apply
// calls (see bdd, sdd) are never invalidated. This is the Go generalization
// of the "stable-address arena" discipline used throughout
// github.com/dalzilio/rudd's hudd.go, where b.nodes is only ever appended to.
package unique

import "log"

// loadFactorThreshold is the point at which the probe table doubles.
const loadFactorThreshold = 0.7

// Hasher computes a stable hash for a value of type T. Two equal values
// (Equal below) must hash identically; equal hashes do not imply equal
// values (the table falls back to Equal on collision).
type Hasher[T any] interface {
	Hash(item T) uint64
}

// Equaler compares two items of type T for the equality the table should
// preserve (structural equality for the default hasher, something looser
// such as "same negation class" for a semantic hasher).
type Equaler[T any] interface {
	Equal(a, b T) bool
}

// Handle is a stable reference into a Table's arena.
type Handle int32

// slot is an entry in the open-addressing probe table: it stores the
// distance this entry has probed from its ideal bucket (Robin-Hood's
// "richness") and an index into the arena, or -1 if empty.
type slot struct {
	dist int32
	hash uint64
	idx  int32 // index into arena, or -1 if this slot is empty
}

// Table is a generic, append-only unique table: GetOrInsert returns the
// existing handle for an equal item, or stores item in the arena and returns
// a fresh handle.
type Table[T any] struct {
	hasher Hasher[T]
	eq     Equaler[T]
	arena  []T
	slots  []slot
	count  int // number of live entries in the probe table

	access int // accesses to the table, only set with the build tag debug
	hit    int // lookups ending on an existing item
	chain  int // extra probe steps beyond the ideal bucket
}

// New returns an empty Table using the given hasher and equality.
func New[T any](hasher Hasher[T], eq Equaler[T]) *Table[T] {
	t := &Table[T]{hasher: hasher, eq: eq}
	t.slots = newSlots(8)
	return t
}

func newSlots(n int) []slot {
	s := make([]slot, n)
	for i := range s {
		s[i].idx = -1
	}
	return s
}

// Len returns the number of live items in the table.
func (t *Table[T]) Len() int {
	return len(t.arena)
}

// Item returns the item stored at handle h.
func (t *Table[T]) Item(h Handle) T {
	return t.arena[h]
}

// Iter returns every live handle, in insertion (arena) order.
func (t *Table[T]) Iter() []Handle {
	res := make([]Handle, len(t.arena))
	for i := range t.arena {
		res[i] = Handle(i)
	}
	return res
}

// GetByHash returns the first handle whose recorded hash equals h, without
// checking value equality. This supports semantic canonicalization, where
// collision in the hash is itself the intended notion of equivalence.
func (t *Table[T]) GetByHash(hash uint64) (Handle, bool) {
	idx := t.bucketFor(hash)
	dist := int32(0)
	for {
		s := t.slots[idx]
		if s.idx == -1 || dist > s.dist {
			return 0, false
		}
		if s.hash == hash {
			return Handle(s.idx), true
		}
		idx = (idx + 1) % len(t.slots)
		dist++
	}
}

// GetOrInsert returns the existing handle for an item equal (per the
// table's Equaler) to item, inserting it into the arena and probe table if
// no such item is present.
func (t *Table[T]) GetOrInsert(item T) Handle {
	if _DEBUG {
		t.access++
	}
	hash := t.hasher.Hash(item)
	if h, ok := t.find(hash, item); ok {
		if _DEBUG {
			t.hit++
		}
		return h
	}
	if float64(t.count+1) > loadFactorThreshold*float64(len(t.slots)) {
		t.grow()
	}
	idx := int32(len(t.arena))
	t.arena = append(t.arena, item)
	t.robinHoodInsert(hash, idx)
	t.count++
	return Handle(idx)
}

func (t *Table[T]) find(hash uint64, item T) (Handle, bool) {
	idx := t.bucketFor(hash)
	dist := int32(0)
	for {
		s := t.slots[idx]
		if s.idx == -1 || dist > s.dist {
			return 0, false
		}
		if s.hash == hash && t.eq.Equal(t.arena[s.idx], item) {
			return Handle(s.idx), true
		}
		idx = (idx + 1) % len(t.slots)
		dist++
		if _DEBUG {
			t.chain++
		}
	}
}

func (t *Table[T]) bucketFor(hash uint64) int {
	return int(hash % uint64(len(t.slots)))
}

// robinHoodInsert places (hash, idx) into the probe table, swapping with any
// entry it passes that has probed a shorter distance than it has ("steal
// from the rich"), the standard Robin-Hood rebalancing rule.
func (t *Table[T]) robinHoodInsert(hash uint64, idx int32) {
	pos := t.bucketFor(hash)
	cur := slot{dist: 0, hash: hash, idx: idx}
	for {
		existing := t.slots[pos]
		if existing.idx == -1 {
			t.slots[pos] = cur
			return
		}
		if existing.dist < cur.dist {
			t.slots[pos], cur = cur, existing
		}
		cur.dist++
		pos = (pos + 1) % len(t.slots)
	}
}

// grow doubles the probe table and reinserts every live entry via the
// table's hasher. The arena itself is untouched, so every previously
// returned Handle remains valid.
func (t *Table[T]) grow() {
	if _LOGLEVEL > 0 {
		log.Printf("table resize: %d -> %d slots (%d items, %d accesses, %d hits, %d chained probes)\n",
			len(t.slots), 2*len(t.slots), len(t.arena), t.access, t.hit, t.chain)
	}
	old := t.slots
	t.slots = newSlots(len(old) * 2)
	for _, s := range old {
		if s.idx != -1 {
			t.robinHoodInsert(s.hash, s.idx)
		}
	}
}
