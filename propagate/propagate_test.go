// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package propagate

import (
	"testing"

	"github.com/dalzilio/sddgo/cnf"
	"github.com/dalzilio/sddgo/varset"
)

// TestUnitPropagationScenario checks a chained propagation: unit
// propagation on (not x1), (x1 or not x2), (x2 or x3) must yield
// assignment x1=F, x2=F, x3=T.
func TestUnitPropagationScenario(t *testing.T) {
	x1, x2, x3 := varset.VarLabel(0), varset.VarLabel(1), varset.VarLabel(2)
	formula := cnf.New(3, []cnf.Clause{
		{varset.Lit(x1, false)},
		{varset.Lit(x1, true), varset.Lit(x2, false)},
		{varset.Lit(x2, true), varset.Lit(x3, true)},
	})

	p, ok := New(formula)
	if !ok {
		t.Fatal("unit propagation unexpectedly reported UNSAT")
	}

	model := p.Assignment()
	checkAssigned := func(v varset.VarLabel, want bool) {
		got, assigned := model.Get(v)
		if !assigned {
			t.Errorf("x%d unassigned, want %v", v, want)
			return
		}
		if got != want {
			t.Errorf("x%d = %v, want %v", v, got, want)
		}
	}
	checkAssigned(x1, false)
	checkAssigned(x2, false)
	checkAssigned(x3, true)
}

// TestEmptyClauseUnsat checks that an empty clause is reported as UNSAT
// at construction.
func TestEmptyClauseUnsat(t *testing.T) {
	formula := cnf.New(1, []cnf.Clause{{}})
	_, ok := New(formula)
	if ok {
		t.Error("expected UNSAT from an empty clause, got ok=true")
	}
}

// TestConflictingUnitClausesUnsat checks that conflicting unit clauses
// make construction fail rather than return a propagator.
func TestConflictingUnitClausesUnsat(t *testing.T) {
	x1 := varset.VarLabel(0)
	formula := cnf.New(1, []cnf.Clause{
		{varset.Lit(x1, true)},
		{varset.Lit(x1, false)},
	})
	_, ok := New(formula)
	if ok {
		t.Error("expected UNSAT from conflicting unit clauses, got ok=true")
	}
}

// TestDecideBacktrack checks that Backtrack restores the pre-Decide
// assignment, including any literal propagation implied.
func TestDecideBacktrack(t *testing.T) {
	x1, x2 := varset.VarLabel(0), varset.VarLabel(1)
	formula := cnf.New(2, []cnf.Clause{
		{varset.Lit(x1, true), varset.Lit(x2, true)},
	})
	p, ok := New(formula)
	if !ok {
		t.Fatal("unexpected UNSAT")
	}
	if _, assigned := p.Assignment().Get(x1); assigned {
		t.Fatal("x1 should start unassigned")
	}

	if !p.Decide(varset.Lit(x1, false)) {
		t.Fatal("deciding x1=false should not immediately contradict")
	}
	v, assigned := p.Assignment().Get(x2)
	if !assigned || !v {
		t.Errorf("x2 should be implied true once x1=false, got (%v, %v)", v, assigned)
	}

	p.Backtrack()
	if _, assigned := p.Assignment().Get(x1); assigned {
		t.Error("x1 should be unassigned again after Backtrack")
	}
	if _, assigned := p.Assignment().Get(x2); assigned {
		t.Error("x2 should be unassigned again after Backtrack")
	}
}

// TestDecideConflict checks that deciding a literal that falsifies every
// remaining literal of some clause returns false, without popping the
// failed frame on its own.
func TestDecideConflict(t *testing.T) {
	x1, x2 := varset.VarLabel(0), varset.VarLabel(1)
	formula := cnf.New(2, []cnf.Clause{
		{varset.Lit(x1, true), varset.Lit(x2, true)},
	})
	p, ok := New(formula)
	if !ok {
		t.Fatal("unexpected UNSAT")
	}
	if !p.Decide(varset.Lit(x1, false)) {
		t.Fatal("deciding x1=false should not immediately contradict")
	}
	if p.Decide(varset.Lit(x2, false)) {
		t.Error("deciding x2=false should contradict the implied x2=true")
	}
	// The caller must still backtrack the failed frame.
	p.Backtrack()
	p.Backtrack()
}
