// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"math/big"

	"github.com/dalzilio/sddgo/varset"
)

// Var returns p's branching variable. It must not be called on a
// constant Ptr.
func (m *Manager) Var(p Ptr) varset.VarLabel {
	return m.varOf(p)
}

// Low returns p's false-branch edge, accounting for p's own complement
// bit. It must not be called on a constant Ptr.
func (m *Manager) Low(p Ptr) Ptr {
	return m.low(p)
}

// High returns p's true-branch edge, accounting for p's own complement
// bit. It must not be called on a constant Ptr.
func (m *Manager) High(p Ptr) Ptr {
	return m.high(p)
}

// levelOf returns p's level in the manager's VarOrder, or NumVars (the
// sentinel "past the last level") for a constant — the same convention
// rudd's satcount relies on for nodes 0 and 1 (see hoperations.go).
func (m *Manager) levelOf(p Ptr) int32 {
	if p.IsConst() {
		return int32(m.order.NumVars())
	}
	return m.order.Level(m.varOf(p))
}

// Satcount returns the number of satisfying assignments (over all of the
// manager's variables) for p, using arbitrary-precision arithmetic to
// avoid overflow on large variable counts. Ported from rudd's
// hoperations.go Satcount/satcount, generalized to account for p's own
// complement bit.
func (m *Manager) Satcount(p Ptr) *big.Int {
	n := m.order.NumVars()
	if p == False {
		return big.NewInt(0)
	}
	if p == True {
		return new(big.Int).Lsh(big.NewInt(1), uint(n))
	}
	memo := make(map[Ptr]*big.Int)
	res := new(big.Int).Lsh(big.NewInt(1), uint(m.levelOf(p)))
	return res.Mul(res, m.satcount(p, memo))
}

func (m *Manager) satcount(p Ptr, memo map[Ptr]*big.Int) *big.Int {
	if p == True {
		return big.NewInt(1)
	}
	if p == False {
		return big.NewInt(0)
	}
	if res, ok := memo[p]; ok {
		return res
	}
	level := m.levelOf(p)
	low, high := m.low(p), m.high(p)

	res := new(big.Int)
	lowFactor := new(big.Int).Lsh(big.NewInt(1), uint(m.levelOf(low)-level-1))
	res.Add(res, lowFactor.Mul(lowFactor, m.satcount(low, memo)))
	highFactor := new(big.Int).Lsh(big.NewInt(1), uint(m.levelOf(high)-level-1))
	res.Add(res, highFactor.Mul(highFactor, m.satcount(high, memo)))

	memo[p] = res
	return res
}

// Allsat iterates over every satisfying assignment of p, calling f with a
// profile slice of length NumVars where entry v is 0 if the variable is
// forced false, 1 if forced true, and -1 if it is a don't-care for this
// branch. Iteration stops early if f returns an error. Ported from rudd's
// hoperations.go Allsat/allsat.
func (m *Manager) Allsat(p Ptr, f func([]int) error) error {
	prof := make([]int, m.order.NumVars())
	for i := range prof {
		prof[i] = -1
	}
	return m.allsat(p, prof, f)
}

func (m *Manager) allsat(p Ptr, prof []int, f func([]int) error) error {
	if p == True {
		return f(prof)
	}
	if p == False {
		return nil
	}
	level := m.levelOf(p)
	x := m.varOf(p)
	low, high := m.low(p), m.high(p)

	if low != False {
		prof[x] = 0
		for l := m.levelOf(low) - 1; l > level; l-- {
			prof[m.order.VarAtLevel(l)] = -1
		}
		if err := m.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high != False {
		prof[x] = 1
		for l := m.levelOf(high) - 1; l > level; l-- {
			prof[m.order.VarAtLevel(l)] = -1
		}
		if err := m.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes walks every node reachable from roots (or, with no roots, every
// live node in the manager's table), calling f once per node with its
// handle, variable level, and the handles of its low/high children.
// Ported from rudd's buddy.go allnodesfrom/allnodes.
func (m *Manager) Allnodes(f func(p Ptr, level int32, low, high Ptr) error, roots ...Ptr) error {
	visited := make(map[Ptr]bool)
	var visit func(p Ptr) error
	visit = func(p Ptr) error {
		if p.IsConst() || visited[p&^1] {
			return nil
		}
		visited[p&^1] = true
		n := m.table.Item(p.Handle())
		if err := f(p, m.order.Level(n.Var), m.low(p), m.high(p)); err != nil {
			return err
		}
		if err := visit(m.low(p)); err != nil {
			return err
		}
		return visit(m.high(p))
	}
	if len(roots) == 0 {
		for _, h := range m.table.Iter() {
			n := m.table.Item(h)
			p := litOf(h)
			if visited[p] {
				continue
			}
			visited[p] = true
			if err := f(p, m.order.Level(n.Var), m.low(p), m.high(p)); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}
