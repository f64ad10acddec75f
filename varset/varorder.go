// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package varset

import "fmt"

// VarOrder is a total order over a fixed number of variables, used by the
// BDD and Decision-DNNF builders. It is represented, following rudd's
// "level" convention, as a pair of permutations: var2level maps a VarLabel to
// its position in the order and level2var is its inverse. Every node's
// variable is required to strictly precede its children's in this order.
type VarOrder struct {
	var2level []int32
	level2var []VarLabel
}

// NewVarOrder returns the identity order (label k is at level k) over numVars
// variables.
func NewVarOrder(numVars int) VarOrder {
	o := VarOrder{
		var2level: make([]int32, numVars),
		level2var: make([]VarLabel, numVars),
	}
	for k := 0; k < numVars; k++ {
		o.var2level[k] = int32(k)
		o.level2var[k] = VarLabel(k)
	}
	return o
}

// NewVarOrderFromPermutation builds a VarOrder from an explicit permutation,
// perm[level] = variable at that level. It panics if perm is not a
// permutation of [0..len(perm)) — an invariant violation, not a
// recoverable input error.
func NewVarOrderFromPermutation(perm []VarLabel) VarOrder {
	o := VarOrder{
		var2level: make([]int32, len(perm)),
		level2var: make([]VarLabel, len(perm)),
	}
	copy(o.level2var, perm)
	seen := make([]bool, len(perm))
	for level, v := range perm {
		if int(v) >= len(perm) || seen[v] {
			panic(fmt.Sprintf("varset: not a permutation: duplicate or out-of-range label %d", v))
		}
		seen[v] = true
		o.var2level[v] = int32(level)
	}
	return o
}

// NumVars returns the number of variables in the order.
func (o VarOrder) NumVars() int {
	return len(o.level2var)
}

// Level returns the position of v in the order.
func (o VarOrder) Level(v VarLabel) int32 {
	return o.var2level[v]
}

// VarAtLevel returns the variable at a given level.
func (o VarOrder) VarAtLevel(level int32) VarLabel {
	return o.level2var[level]
}

// Precedes reports whether a strictly precedes b in the order.
func (o VarOrder) Precedes(a, b VarLabel) bool {
	return o.var2level[a] < o.var2level[b]
}

// Extend grows the order with extra fresh variables appended at the end,
// keeping the existing order of the first NumVars variables unchanged. This
// mirrors rudd's SetVarnum, which may only ever increase the number of
// variables.
func (o VarOrder) Extend(extra int) VarOrder {
	n := len(o.level2var)
	res := VarOrder{
		var2level: make([]int32, n+extra),
		level2var: make([]VarLabel, n+extra),
	}
	copy(res.var2level, o.var2level)
	copy(res.level2var, o.level2var)
	for k := 0; k < extra; k++ {
		v := VarLabel(n + k)
		res.var2level[v] = int32(n + k)
		res.level2var[n+k] = v
	}
	return res
}
