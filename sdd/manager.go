// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import (
	"math/rand"

	"github.com/dalzilio/sddgo/applycache"
	"github.com/dalzilio/sddgo/semantic"
	"github.com/dalzilio/sddgo/unique"
	"github.com/dalzilio/sddgo/varset"
	"github.com/dalzilio/sddgo/vtree"
)

// Scheme selects how a Manager canonicalizes decision nodes: under
// Compression two functions are equal when their handles coincide; under
// Semantic, when their semantic hashes do.
type Scheme int

const (
	// Compression interns nodes by structural equality: two nodes are
	// the same handle only if their element lists are identical.
	Compression Scheme = iota
	// Semantic interns nodes by a random-weight WMC hash, so logically
	// equivalent but structurally different nodes collapse to one
	// handle with high probability.
	Semantic
)

// Manager owns the vtree, the unique table of decision nodes, and the
// apply cache a family of SDDs are compiled and combined in. As noted in
// ptr.go, leaf-parent and internal decision nodes share one table.
type Manager struct {
	vm     *vtree.Manager
	table  *unique.Table[node]
	cache  applycache.Cache[Ptr]
	scheme Scheme

	prime      uint64
	litWeights map[varset.VarLabel]semantic.FiniteField // only populated under Semantic

	err error
}

// Key memoizes a binary Apply(op, f, g) call.
type Key = applycache.Key

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithScheme selects the canonicalization scheme (Compression by
// default).
func WithScheme(s Scheme) Option {
	return func(m *Manager) { m.scheme = s }
}

// WithCacheSize sets the apply cache's capacity (default 10000).
func WithCacheSize(size int) Option {
	return func(m *Manager) { m.cache = applycache.NewLru[Ptr](size) }
}

// WithPrime sets the field modulus the semantic scheme hashes under
// (default semantic.DefaultPrime). It has no effect under Compression.
func WithPrime(p uint64) Option {
	return func(m *Manager) { m.prime = p }
}

// New returns a Manager over t, combining and interning SDDs as
// configured by opts.
func New(t *vtree.VTree, rng *rand.Rand, opts ...Option) *Manager {
	m := &Manager{
		vm:     vtree.NewManager(t),
		cache:  applycache.NewLru[Ptr](10000),
		scheme: Compression,
		prime:  semantic.DefaultPrime,
	}
	for _, o := range opts {
		o(m)
	}
	if m.scheme == Semantic {
		m.litWeights = semantic.CreateLiteralWeights(t.Vars(t.Root()).Members(), m.prime, rng)
		m.table = unique.New[node](semanticHasher{}, structuralEqual{})
	} else {
		m.table = unique.New[node](compressionHasher{}, structuralEqual{})
	}
	return m
}

// VtreeManager returns the underlying vtree manager.
func (m *Manager) VtreeManager() *vtree.Manager {
	return m.vm
}
