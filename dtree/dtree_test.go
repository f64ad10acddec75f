// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dtree

import (
	"testing"

	"github.com/dalzilio/sddgo/cnf"
	"github.com/dalzilio/sddgo/varset"
	"github.com/dalzilio/sddgo/vtree"
)

func cl(lits ...varset.Literal) cnf.Clause {
	return cnf.Clause(lits)
}

// TestMinFillOrderCoversAllVars checks that the returned elimination
// order is a permutation of every variable in the formula.
func TestMinFillOrderCoversAllVars(t *testing.T) {
	x1, x2, x3, x4 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2), varset.VarLabel(3)
	formula := cnf.New(4, []cnf.Clause{
		cl(varset.Lit(x1, true), varset.Lit(x2, true)),
		cl(varset.Lit(x2, false), varset.Lit(x3, true)),
		cl(varset.Lit(x3, false), varset.Lit(x4, true)),
	})
	order := MinFillOrder(formula)
	if len(order) != 4 {
		t.Fatalf("len(order) = %d, want 4", len(order))
	}
	seen := make(map[varset.VarLabel]bool)
	for _, v := range order {
		if seen[v] {
			t.Errorf("variable %v appears twice in the order", v)
		}
		seen[v] = true
	}
	for v := varset.VarLabel(0); v < 4; v++ {
		if !seen[v] {
			t.Errorf("variable %v missing from the order", v)
		}
	}
}

// TestFromCnfClausesAllLeaves checks that FromCnf produces exactly one
// leaf per clause and that every leaf's Clause index is in range.
func TestFromCnfClausesAllLeaves(t *testing.T) {
	x1, x2, x3 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2)
	formula := cnf.New(3, []cnf.Clause{
		cl(varset.Lit(x1, true), varset.Lit(x2, true)),
		cl(varset.Lit(x2, false), varset.Lit(x3, true)),
	})
	order := MinFillOrder(formula)
	d := FromCnf(formula, order)

	var leaves int
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := d.Node(id)
		if n.IsLeaf() {
			leaves++
			if n.Clause < 0 || n.Clause >= formula.NumClauses() {
				t.Errorf("leaf clause index %d out of range [0, %d)", n.Clause, formula.NumClauses())
			}
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(d.Root())
	if leaves != formula.NumClauses() {
		t.Errorf("dtree has %d leaves, want %d (one per clause)", leaves, formula.NumClauses())
	}
	if d.Vars(d.Root()).Len() != 3 {
		t.Errorf("root covers %d variables, want 3", d.Vars(d.Root()).Len())
	}
}

// TestToVTreeCoversSameVars checks that the lifted vtree is structurally
// valid and covers the same variables as the dtree it was lifted from.
func TestToVTreeCoversSameVars(t *testing.T) {
	x1, x2, x3, x4 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2), varset.VarLabel(3)
	formula := cnf.New(4, []cnf.Clause{
		cl(varset.Lit(x1, true), varset.Lit(x2, true)),
		cl(varset.Lit(x2, false), varset.Lit(x3, true)),
		cl(varset.Lit(x3, false), varset.Lit(x4, true)),
	})
	order := MinFillOrder(formula)
	d := FromCnf(formula, order)
	vt := ToVTree(d)

	if vt.Vars(vt.Root()).Len() != 4 {
		t.Errorf("lifted vtree root covers %d variables, want 4", vt.Vars(vt.Root()).Len())
	}
}

// TestToVTreePreservesDtreeShape checks that ToVTree's root split follows
// d's own cluster boundary rather than rebalancing the flattened variable
// list by count. With clause0 = {x1} and clause1 = {x1,x2,x3,x4,x5} merged
// on the shared x1, FromCnf's root has a left child covering exactly {x1}
// and a right child covering the rest; a naive collect-then-EvenSplit
// rebuild over the dedup'd post-order list [x1,x2,x3,x4,x5] would instead
// cut the list down the middle, grouping x2 under the same half as x1
// (and so would pass TestToVTreeCoversSameVars while still failing this
// one), since EvenSplit only knows the flattened count, not which
// variables the dtree's own leaves grouped together.
func TestToVTreePreservesDtreeShape(t *testing.T) {
	x1, x2, x3, x4, x5 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2), varset.VarLabel(3), varset.VarLabel(4)
	formula := cnf.New(5, []cnf.Clause{
		cl(varset.Lit(x1, true)),
		cl(varset.Lit(x1, true), varset.Lit(x2, true), varset.Lit(x3, true), varset.Lit(x4, true), varset.Lit(x5, true)),
	})
	order := []varset.VarLabel{x1, x2, x3, x4, x5}
	d := FromCnf(formula, order)

	root := d.Node(d.Root())
	if root.IsLeaf() {
		t.Fatalf("dtree root is a leaf, want an internal node merging both clauses")
	}
	if got := d.Vars(root.Left).Len(); got != 1 {
		t.Fatalf("dtree root's left child covers %d variables, want 1 (the shared clause {x1})", got)
	}

	vt := ToVTree(d)
	if err := vtree.IsValid(vt); err != nil {
		t.Fatalf("ToVTree produced an invalid vtree: %v", err)
	}

	vroot := vt.Node(vt.Root())
	leftVars := vt.Vars(vroot.Left).Len()
	rightVars := vt.Vars(vroot.Right).Len()
	if leftVars != 1 || rightVars != 4 {
		t.Errorf("lifted vtree root splits into (%d, %d) variables, want (1, 4) to match the dtree's own (clause0, clause1) boundary instead of an even rebalance", leftVars, rightVars)
	}
}
