// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package cnf defines the in-memory conjunctive-normal-form data model
// compiled by the bdd, dnnf, and sdd builders. DIMACS text parsing and other
// textual front ends are deliberately left out: callers are expected to
// construct a Cnf value directly (or adapt their own DIMACS reader to do so).
package cnf

import (
	"fmt"

	"github.com/dalzilio/sddgo/varset"
)

// Clause is a disjunction of literals.
type Clause []varset.Literal

// Cnf is a conjunction of clauses over a fixed number of variables.
type Cnf struct {
	numVars int
	clauses []Clause
}

// New returns a Cnf over numVars variables with the given clauses. It does
// not validate the clauses; call Validate for that.
func New(numVars int, clauses []Clause) *Cnf {
	return &Cnf{numVars: numVars, clauses: clauses}
}

// NumVars returns the number of variables the formula is defined over.
func (c *Cnf) NumVars() int {
	return c.numVars
}

// Clauses returns the clauses of the formula, in the order they were given.
func (c *Cnf) Clauses() []Clause {
	return c.clauses
}

// Clause returns the i'th clause.
func (c *Cnf) Clause(i int) Clause {
	return c.clauses[i]
}

// NumClauses returns the number of clauses.
func (c *Cnf) NumClauses() int {
	return len(c.clauses)
}

// Validate checks the formula for well-formedness: every literal's label
// must be in range, and an empty clause (which makes the whole formula
// unconditionally UNSAT) is reported as an error rather than silently
// compiled away, so that callers notice it before compilation.
func (c *Cnf) Validate() error {
	for i, cl := range c.clauses {
		if len(cl) == 0 {
			return fmt.Errorf("cnf: clause %d is empty (formula is UNSAT)", i)
		}
		for _, l := range cl {
			if int(l.Label) >= c.numVars {
				return fmt.Errorf("cnf: clause %d references out-of-range variable %d (numVars=%d)", i, l.Label, c.numVars)
			}
		}
	}
	return nil
}

// SatisfiedBy reports whether cl is satisfied by the partial model m, i.e.
// whether at least one of its literals is currently true under m.
func (cl Clause) SatisfiedBy(m varset.PartialModel) bool {
	for _, l := range cl {
		if m.SatisfiesLiteral(l) {
			return true
		}
	}
	return false
}

// FalsifiedBy reports whether every literal of cl is false under m.
func (cl Clause) FalsifiedBy(m varset.PartialModel) bool {
	for _, l := range cl {
		if !m.FalsifiesLiteral(l) {
			return false
		}
	}
	return true
}
