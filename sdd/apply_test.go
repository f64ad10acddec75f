// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sdd

import (
	"math/rand"
	"testing"

	"github.com/dalzilio/sddgo/cnf"
	"github.com/dalzilio/sddgo/dtree"
	"github.com/dalzilio/sddgo/varset"
	"github.com/dalzilio/sddgo/vtree"
)

func cl(lits ...varset.Literal) cnf.Clause {
	return cnf.Clause(lits)
}

// TestCompileScenariosCompression checks concrete equivalences under the
// default (compression) canonicalization scheme: two CNFs claimed
// logically equivalent must compile to the same handle.
func TestCompileScenariosCompression(t *testing.T) {
	x1, x2, x3 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2)
	vars := []varset.VarLabel{x1, x2, x3}

	t.Run("(x1 or x2) and (not x1 or x2) == x2", func(t *testing.T) {
		vt := vtree.EvenSplit(vars)
		m := New(vt, nil)
		formula := cnf.New(3, []cnf.Clause{
			cl(varset.Lit(x1, true), varset.Lit(x2, true)),
			cl(varset.Lit(x1, false), varset.Lit(x2, true)),
		})
		order := dtree.MinFillOrder(formula)
		d := dtree.FromCnf(formula, order)
		got := m.CompileDtree(formula, d)
		want := Literal(x2, true)
		if got != want {
			t.Errorf("got %v, want handle(x2) = %v", got, want)
		}
	})

	t.Run("(not x1 or x2) and x1 == x1 and x2", func(t *testing.T) {
		vt := vtree.EvenSplit(vars)
		m := New(vt, nil)
		formula := cnf.New(3, []cnf.Clause{
			cl(varset.Lit(x1, false), varset.Lit(x2, true)),
			cl(varset.Lit(x1, true)),
		})
		order := dtree.MinFillOrder(formula)
		d := dtree.FromCnf(formula, order)
		got := m.CompileDtree(formula, d)
		want := m.And(Literal(x1, true), Literal(x2, true))
		if got != want {
			t.Errorf("got %v, want handle(x1 and x2) = %v", got, want)
		}
	})
}

// TestSemanticSchemeEquivalence checks the same "(x1 or x2) and (not x1
// or x2) == x2" scenario under the semantic canonicalization scheme,
// where equality is "equal semantic hashes" rather than pointer equality.
func TestSemanticSchemeEquivalence(t *testing.T) {
	x1, x2, x3 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2)
	vars := []varset.VarLabel{x1, x2, x3}
	vt := vtree.EvenSplit(vars)
	rng := rand.New(rand.NewSource(1))
	m := New(vt, rng, WithScheme(Semantic))

	formula := cnf.New(3, []cnf.Clause{
		cl(varset.Lit(x1, true), varset.Lit(x2, true)),
		cl(varset.Lit(x1, false), varset.Lit(x2, true)),
	})
	order := dtree.MinFillOrder(formula)
	d := dtree.FromCnf(formula, order)
	got := m.CompileDtree(formula, d)
	want := Literal(x2, true)

	gotHash := m.hashOf(got)
	wantHash := m.hashOf(want)
	if gotHash != wantHash {
		t.Errorf("semantic hash mismatch: got %v, want %v", gotHash, wantHash)
	}
}

// TestApplyTerminalRules exercises the constant/literal shortcuts of
// Apply directly.
func TestApplyTerminalRules(t *testing.T) {
	vt := vtree.EvenSplit([]varset.VarLabel{0, 1})
	m := New(vt, nil)
	a := Literal(0, true)

	cases := []struct {
		name     string
		got      Ptr
		expected Ptr
	}{
		{"a and false", m.And(a, False), False},
		{"a and true", m.And(a, True), a},
		{"a or true", m.Or(a, True), True},
		{"a or false", m.Or(a, False), a},
		{"a and a", m.And(a, a), a},
		{"a or a", m.Or(a, a), a},
		{"a and not a", m.And(a, a.Negate()), False},
		{"a or not a", m.Or(a, a.Negate()), True},
	}
	for _, c := range cases {
		if c.got != c.expected {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.expected)
		}
	}
}

// TestCompressionInvariant checks that no two elements of a decision
// share the same sub, over every decision node a small compiled formula
// produces.
func TestCompressionInvariant(t *testing.T) {
	x1, x2, x3, x4 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2), varset.VarLabel(3)
	vars := []varset.VarLabel{x1, x2, x3, x4}
	vt := vtree.EvenSplit(vars)
	m := New(vt, nil)

	formula := cnf.New(4, []cnf.Clause{
		cl(varset.Lit(x1, true), varset.Lit(x2, true)),
		cl(varset.Lit(x2, false), varset.Lit(x3, true)),
		cl(varset.Lit(x3, false), varset.Lit(x4, true)),
		cl(varset.Lit(x1, false), varset.Lit(x4, false)),
	})
	order := dtree.MinFillOrder(formula)
	d := dtree.FromCnf(formula, order)
	root := m.CompileDtree(formula, d)
	if root == False {
		t.Fatal("formula unexpectedly compiled to False")
	}

	for _, h := range m.table.Iter() {
		elems := m.table.Item(h).Elements
		seen := make(map[Ptr]bool, len(elems))
		for _, e := range elems {
			if seen[e.Sub] {
				t.Errorf("decision node %v violates compression: duplicate sub %v", h, e.Sub)
			}
			seen[e.Sub] = true
		}
	}
}

// TestPartitionAndStructuredness checks, over every interned decision
// node, that the primes are pairwise disjoint and their disjunction is
// True, and that each element's prime respects the hosting vtree node's
// left subtree while its sub respects the right.
func TestPartitionAndStructuredness(t *testing.T) {
	x1, x2, x3, x4 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2), varset.VarLabel(3)
	vars := []varset.VarLabel{x1, x2, x3, x4}
	vt := vtree.EvenSplit(vars)
	m := New(vt, nil)

	formula := cnf.New(4, []cnf.Clause{
		cl(varset.Lit(x1, true), varset.Lit(x3, true)),
		cl(varset.Lit(x2, false), varset.Lit(x4, true)),
		cl(varset.Lit(x1, false), varset.Lit(x2, true), varset.Lit(x4, false)),
	})
	order := dtree.MinFillOrder(formula)
	d := dtree.FromCnf(formula, order)
	if root := m.CompileDtree(formula, d); root == False {
		t.Fatal("formula unexpectedly compiled to False")
	}

	// Snapshot the handles first: the Or/And calls below may intern new
	// nodes, which should not themselves come under test.
	for _, h := range m.table.Iter() {
		n := m.table.Item(h)
		vn := m.vm.Tree().Node(n.VtreeIdx)

		span := False
		for i, e := range n.Elements {
			span = m.Or(span, e.Prime)
			if !e.Prime.IsConst() && !m.vm.Dominates(vn.Left, m.vtreeOf(e.Prime)) {
				t.Errorf("node %v element %d: prime %v not under the left subtree", h, i, e.Prime)
			}
			if !e.Sub.IsConst() && !m.vm.Dominates(vn.Right, m.vtreeOf(e.Sub)) {
				t.Errorf("node %v element %d: sub %v not under the right subtree", h, i, e.Sub)
			}
			for j, e2 := range n.Elements[i+1:] {
				if m.And(e.Prime, e2.Prime) != False {
					t.Errorf("node %v: primes of elements %d and %d are not disjoint", h, i, i+1+j)
				}
			}
		}
		if span != True {
			t.Errorf("node %v: primes do not span True", h)
		}
	}
}
