// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cnf

import (
	"testing"

	"github.com/dalzilio/sddgo/varset"
)

// TestValidateEmptyClauseIsError checks that an empty clause (which makes
// the whole formula UNSAT) surfaces as an error from Validate rather than
// being silently compiled away.
func TestValidateEmptyClauseIsError(t *testing.T) {
	c := New(1, []Clause{{}})
	if err := c.Validate(); err == nil {
		t.Error("Validate should report an error for an empty clause")
	}
}

// TestValidateOutOfRangeVariable checks Validate rejects a clause
// referencing a variable beyond numVars.
func TestValidateOutOfRangeVariable(t *testing.T) {
	c := New(1, []Clause{{varset.Lit(varset.VarLabel(5), true)}})
	if err := c.Validate(); err == nil {
		t.Error("Validate should report an error for an out-of-range variable")
	}
}

// TestValidateWellFormed checks that a well-formed formula validates
// cleanly.
func TestValidateWellFormed(t *testing.T) {
	c := New(2, []Clause{
		{varset.Lit(varset.VarLabel(0), true), varset.Lit(varset.VarLabel(1), false)},
	})
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

// TestClauseSatisfiedByFalsifiedBy checks the per-clause model queries
// compilers and the unit propagator both rely on.
func TestClauseSatisfiedByFalsifiedBy(t *testing.T) {
	x0, x1 := varset.VarLabel(0), varset.VarLabel(1)
	cl := Clause{varset.Lit(x0, true), varset.Lit(x1, false)}

	m := varset.NewPartialModel(2)
	if cl.SatisfiedBy(m) {
		t.Error("an all-unassigned model should not satisfy the clause")
	}
	if cl.FalsifiedBy(m) {
		t.Error("an all-unassigned model should not falsify the clause")
	}

	m.Set(x0, true)
	if !cl.SatisfiedBy(m) {
		t.Error("x0=true should satisfy (x0 or not x1)")
	}

	m2 := varset.NewPartialModel(2)
	m2.Set(x0, false)
	m2.Set(x1, true)
	if !cl.FalsifiedBy(m2) {
		t.Error("x0=false, x1=true should falsify (x0 or not x1)")
	}
}

// TestAccessors checks the plain data accessors NumVars/Clauses/Clause/
// NumClauses.
func TestAccessors(t *testing.T) {
	clauses := []Clause{
		{varset.Lit(varset.VarLabel(0), true)},
		{varset.Lit(varset.VarLabel(1), false)},
	}
	c := New(2, clauses)
	if c.NumVars() != 2 {
		t.Errorf("NumVars() = %d, want 2", c.NumVars())
	}
	if c.NumClauses() != 2 {
		t.Errorf("NumClauses() = %d, want 2", c.NumClauses())
	}
	if len(c.Clause(1)) != 1 || c.Clause(1)[0].Label != varset.VarLabel(1) {
		t.Errorf("Clause(1) = %v, want a single literal on x1", c.Clause(1))
	}
}
