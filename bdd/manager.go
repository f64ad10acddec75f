// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package bdd implements Reduced Ordered Binary Decision Diagrams with
// complement edges, compiled and combined via a shared unique table and
// apply cache. Its recursion shapes (Ite's Shannon expansion, mk's
// reduction-then-intern primitive, condition/exists by cofactoring) and
// its manager-configuration idiom are carried over from
// github.com/dalzilio/rudd's bkernel.go/hoperations.go/config.go; the
// complement-edge representation itself (package-level Ptr) is a
// departure rudd does not have.
package bdd

import (
	"fmt"

	"github.com/dalzilio/sddgo/applycache"
	"github.com/dalzilio/sddgo/unique"
	"github.com/dalzilio/sddgo/varset"
)

// configs holds the tunable parameters of a Manager, following the
// functional-options idiom of rudd's config.go (Nodesize, Cacheratio, ...).
type configs struct {
	cacheCapacity int
}

func defaultConfigs() *configs {
	return &configs{cacheCapacity: 10000}
}

// Option configures a Manager at construction time.
type Option func(*configs)

// CacheSize sets the capacity of the bounded apply cache, mirroring rudd's
// Cachesize option. The default is 10000 entries.
func CacheSize(size int) Option {
	return func(c *configs) {
		c.cacheCapacity = size
	}
}

// Manager owns the variable order, unique table, and apply cache a
// family of related BDDs are built and combined in.
type Manager struct {
	order varset.VarOrder
	table *unique.Table[node]
	cache applycache.Cache[Ptr]

	err error
}

// New returns a Manager over numVars variables, numbered 0..numVars-1 in
// the identity order.
func New(numVars int, opts ...Option) *Manager {
	return NewWithOrder(varset.NewVarOrder(numVars), opts...)
}

// NewWithOrder returns a Manager over an explicit variable order, for
// callers that have computed a better order than the identity (e.g. from
// dtree.MinFillOrder).
func NewWithOrder(order varset.VarOrder, opts ...Option) *Manager {
	c := defaultConfigs()
	for _, o := range opts {
		o(c)
	}
	return &Manager{
		order: order,
		table: unique.New[node](unique.DefaultHasher[node]{}, unique.StructuralEqual[node]{}),
		cache: applycache.NewLru[Ptr](c.cacheCapacity),
	}
}

// Error returns the manager's error status, following rudd's errors.go
// Error/Errored pattern: recoverable construction failures (an
// out-of-range variable, a Maxnodesize overflow were it enforced here) are
// recorded on the manager rather than panicking.
func (m *Manager) Error() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// Errored reports whether a prior operation set the manager's error state.
func (m *Manager) Errored() bool {
	return m.err != nil
}

func (m *Manager) seterror(format string, a ...interface{}) Ptr {
	if m.err != nil {
		format = format + "; " + m.Error()
	}
	m.err = fmt.Errorf(format, a...)
	return False
}

// NumVars returns the number of variables the manager was built over.
func (m *Manager) NumVars() int {
	return m.order.NumVars()
}

// Order returns the manager's variable order.
func (m *Manager) Order() varset.VarOrder {
	return m.order
}

// Ithvar returns the BDD for the literal "variable v is true".
func (m *Manager) Ithvar(v varset.VarLabel) Ptr {
	if int(v) >= m.order.NumVars() {
		return m.seterror("bdd: variable %s out of range (numVars=%d)", v, m.order.NumVars())
	}
	return m.mk(v, False, True)
}

// NIthvar returns the BDD for the literal "variable v is false".
func (m *Manager) NIthvar(v varset.VarLabel) Ptr {
	if int(v) >= m.order.NumVars() {
		return m.seterror("bdd: variable %s out of range (numVars=%d)", v, m.order.NumVars())
	}
	return m.Ithvar(v).Negate()
}

// mk is the node-making primitive: reduce if low == high, push the
// complement onto the edge if high would otherwise be complemented, then
// intern via the unique table.
func (m *Manager) mk(v varset.VarLabel, low, high Ptr) Ptr {
	if low == high {
		return low
	}
	comp := false
	if high.IsComp() {
		low, high = low.Negate(), high.Negate()
		comp = true
	}
	h := m.table.GetOrInsert(node{Var: v, Low: low, High: high})
	p := litOf(h)
	if comp {
		p = p.Negate()
	}
	return p
}

// varOf returns the branching variable of p, or the number of variables
// (the implicit "after the last level" sentinel) for a constant.
func (m *Manager) varOf(p Ptr) varset.VarLabel {
	if p.IsConst() {
		return varset.VarLabel(m.order.NumVars())
	}
	return m.table.Item(p.Handle()).Var
}

// low returns the false-branch edge of p, accounting for p's own
// complement bit.
func (m *Manager) low(p Ptr) Ptr {
	n := m.table.Item(p.Handle())
	if p.IsComp() {
		return n.Low.Negate()
	}
	return n.Low
}

// high returns the true-branch edge of p, accounting for p's own
// complement bit.
func (m *Manager) high(p Ptr) Ptr {
	n := m.table.Item(p.Handle())
	if p.IsComp() {
		return n.High.Negate()
	}
	return n.High
}
