// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package applycache implements the bounded associative memo table used by
// the BDD, Decision-DNNF, and SDD builders to skip recomputing binary apply
// operations already seen during a recursive call. It mirrors
// the role of github.com/dalzilio/rudd's cache.go (data4ncache, applycache,
// itecache), generalized with Go generics so the same cache type backs apply,
// ite, and SDD-element caches, and with two selectable implementations: an
// unbounded map (AllTable, rudd's effective behavior for small workloads) and
// a fixed-capacity LRU backed by github.com/hashicorp/golang-lru/v2.
package applycache

import lru "github.com/hashicorp/golang-lru/v2"

// Key identifies a memoized binary operation: Op is a small integer
// discriminating the operator (the caller defines its own enum, as the bdd
// and sdd packages do), and Left/Right are the operand handles. The bdd
// package's ternary Ite has no operator to discriminate and stores its
// three operands in Op/Left/Right instead (see bdd's iteKey); Not never
// reaches the cache.
type Key struct {
	Op    int32
	Left  int32
	Right int32
}

// Canon canonicalizes the operand pair of a commutative binary operator so
// that (a, b) and (b, a) share one cache entry: the smaller identity comes
// first. Operators that are not commutative (notably Ite's three operands)
// must not call this.
func Canon(a, b int32) (int32, int32) {
	if a <= b {
		return a, b
	}
	return b, a
}

// Cache is the contract shared by AllTable and Lru.
type Cache[V any] interface {
	Get(k Key) (V, bool)
	Put(k Key, v V)
	Len() int
}

// AllTable is an unbounded apply cache: every entry put into it is kept for
// the life of the cache. Used for correctness tests and small workloads.
type AllTable[V any] struct {
	m map[Key]V
}

// NewAllTable returns an empty, unbounded cache.
func NewAllTable[V any]() *AllTable[V] {
	return &AllTable[V]{m: make(map[Key]V)}
}

// Get implements Cache.
func (c *AllTable[V]) Get(k Key) (V, bool) {
	v, ok := c.m[k]
	return v, ok
}

// Put implements Cache.
func (c *AllTable[V]) Put(k Key, v V) {
	c.m[k] = v
}

// Len implements Cache.
func (c *AllTable[V]) Len() int {
	return len(c.m)
}

// Lru is a fixed-capacity, least-recently-used apply cache.
type Lru[V any] struct {
	c *lru.Cache[Key, V]
}

// NewLru returns an Lru cache with room for capacity entries.
func NewLru[V any](capacity int) *Lru[V] {
	c, err := lru.New[Key, V](capacity)
	if err != nil {
		// capacity <= 0 is a caller programming error, not a recoverable
		// condition.
		panic(err)
	}
	return &Lru[V]{c: c}
}

// Get implements Cache.
func (c *Lru[V]) Get(k Key) (V, bool) {
	return c.c.Get(k)
}

// Put implements Cache.
func (c *Lru[V]) Put(k Key, v V) {
	c.c.Add(k, v)
}

// Len implements Cache.
func (c *Lru[V]) Len() int {
	return c.c.Len()
}
