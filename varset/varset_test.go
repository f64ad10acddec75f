// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package varset

import "testing"

// TestLiteralNegate checks that Negate flips polarity but keeps the label.
func TestLiteralNegate(t *testing.T) {
	l := Lit(VarLabel(3), true)
	n := l.Negate()
	if n.Label != l.Label {
		t.Errorf("Negate() changed the label: got %v, want %v", n.Label, l.Label)
	}
	if n.Polarity == l.Polarity {
		t.Error("Negate() did not flip polarity")
	}
	if n.Negate() != l {
		t.Error("Negate() is not its own inverse")
	}
}

// TestSetAddRemoveContains checks the basic membership operations of Set.
func TestSetAddRemoveContains(t *testing.T) {
	s := NewSet(8)
	if s.Contains(VarLabel(2)) {
		t.Fatal("empty set unexpectedly contains 2")
	}
	s.Add(VarLabel(2))
	if !s.Contains(VarLabel(2)) {
		t.Error("set should contain 2 after Add")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	s.Remove(VarLabel(2))
	if s.Contains(VarLabel(2)) {
		t.Error("set should not contain 2 after Remove")
	}
}

// TestSetUnionIntersectionDisjoint checks the set-algebra operations Set
// exposes to vtree/dtree construction.
func TestSetUnionIntersectionDisjoint(t *testing.T) {
	a := SetFrom(VarLabel(0), VarLabel(1))
	b := SetFrom(VarLabel(1), VarLabel(2))

	u := a.Union(b)
	for _, v := range []VarLabel{0, 1, 2} {
		if !u.Contains(v) {
			t.Errorf("Union: missing member %v", v)
		}
	}

	i := a.Intersection(b)
	if i.Len() != 1 || !i.Contains(VarLabel(1)) {
		t.Errorf("Intersection = %v, want {1}", i.Members())
	}

	if a.Disjoint(b) {
		t.Error("a and b share variable 1, Disjoint should be false")
	}
	c := SetFrom(VarLabel(5))
	if !a.Disjoint(c) {
		t.Error("a and c share no variables, Disjoint should be true")
	}
}

// TestSetMembersSorted checks that Members returns labels in ascending
// order, as vtree/dtree construction relies on a stable iteration order.
func TestSetMembersSorted(t *testing.T) {
	s := SetFrom(VarLabel(5), VarLabel(1), VarLabel(3))
	got := s.Members()
	want := []VarLabel{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("Members() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Members()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestVarOrderLevelRoundTrip checks that Level and VarAtLevel are inverses
// for the identity order, and that Precedes matches level comparison.
func TestVarOrderLevelRoundTrip(t *testing.T) {
	o := NewVarOrder(4)
	for v := VarLabel(0); v < 4; v++ {
		if o.VarAtLevel(o.Level(v)) != v {
			t.Errorf("VarAtLevel(Level(%v)) != %v", v, v)
		}
	}
	if !o.Precedes(VarLabel(0), VarLabel(1)) {
		t.Error("identity order: 0 should precede 1")
	}
	if o.Precedes(VarLabel(1), VarLabel(0)) {
		t.Error("identity order: 1 should not precede 0")
	}
}

// TestVarOrderFromPermutation checks a non-identity order is wired up
// correctly and that a malformed permutation panics (an invariant
// violation, not a recoverable input error).
func TestVarOrderFromPermutation(t *testing.T) {
	o := NewVarOrderFromPermutation([]VarLabel{2, 0, 1})
	if o.VarAtLevel(0) != 2 || o.VarAtLevel(1) != 0 || o.VarAtLevel(2) != 1 {
		t.Fatalf("unexpected level2var mapping")
	}
	if !o.Precedes(VarLabel(2), VarLabel(0)) {
		t.Error("variable 2 sits at level 0, should precede variable 0 at level 1")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a non-permutation input")
		}
	}()
	NewVarOrderFromPermutation([]VarLabel{0, 0})
}

// TestVarOrderExtend checks that Extend preserves the existing order and
// appends fresh variables at the end, mirroring rudd's SetVarnum.
func TestVarOrderExtend(t *testing.T) {
	o := NewVarOrder(2)
	e := o.Extend(2)
	if e.NumVars() != 4 {
		t.Fatalf("NumVars() = %d, want 4", e.NumVars())
	}
	if e.Level(VarLabel(0)) != 0 || e.Level(VarLabel(1)) != 1 {
		t.Error("Extend changed the position of pre-existing variables")
	}
	if e.Level(VarLabel(2)) != 2 || e.Level(VarLabel(3)) != 3 {
		t.Error("Extend did not append the new variables at the end")
	}
}

// TestPartialModelSetGetUnset checks the basic three-valued assignment
// lifecycle a PartialModel supports.
func TestPartialModelSetGetUnset(t *testing.T) {
	m := NewPartialModel(3)
	if _, assigned := m.Get(VarLabel(0)); assigned {
		t.Fatal("fresh model should have every variable unassigned")
	}
	m.Set(VarLabel(0), true)
	if v, assigned := m.Get(VarLabel(0)); !assigned || !v {
		t.Errorf("Get(0) = (%v, %v), want (true, true)", v, assigned)
	}
	m.Unset(VarLabel(0))
	if _, assigned := m.Get(VarLabel(0)); assigned {
		t.Error("Unset should return the variable to unassigned")
	}
}

// TestPartialModelSatisfiesFalsifiesLiteral checks the literal-level
// queries the unit propagator and CNF compilers rely on.
func TestPartialModelSatisfiesFalsifiesLiteral(t *testing.T) {
	m := NewPartialModel(2)
	m.Set(VarLabel(0), true)

	if !m.SatisfiesLiteral(Lit(VarLabel(0), true)) {
		t.Error("x0=true should satisfy the positive literal")
	}
	if m.SatisfiesLiteral(Lit(VarLabel(0), false)) {
		t.Error("x0=true should not satisfy the negative literal")
	}
	if !m.FalsifiesLiteral(Lit(VarLabel(0), false)) {
		t.Error("x0=true should falsify the negative literal")
	}
	if m.SatisfiesLiteral(Lit(VarLabel(1), true)) || m.FalsifiesLiteral(Lit(VarLabel(1), true)) {
		t.Error("an unassigned variable should neither satisfy nor falsify a literal on it")
	}
}

// TestPartialModelCloneIndependent checks that Clone produces an
// independent copy, the discipline the unit propagator's decision-level
// stack relies on.
func TestPartialModelCloneIndependent(t *testing.T) {
	m := NewPartialModel(1)
	m.Set(VarLabel(0), true)
	c := m.Clone()
	c.Set(VarLabel(0), false)

	v, _ := m.Get(VarLabel(0))
	if !v {
		t.Error("mutating the clone should not affect the original")
	}
}
