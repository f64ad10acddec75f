// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package semiring

// BooleanSemiring evaluates a query as plain satisfiability: Plus is
// logical-or, Times is logical-and. It exercises the query layer (package
// query) without needing floating-point weights.
type BooleanSemiring struct{}

// Zero implements Semiring.
func (BooleanSemiring) Zero() bool { return false }

// One implements Semiring.
func (BooleanSemiring) One() bool { return true }

// Plus implements Semiring.
func (BooleanSemiring) Plus(a, b bool) bool { return a || b }

// Times implements Semiring.
func (BooleanSemiring) Times(a, b bool) bool { return a && b }

// Less implements Ordered, treating true as greater than false so that a
// branch-and-bound search over BooleanSemiring prefers a satisfying branch.
func (BooleanSemiring) Less(a, b bool) bool { return !a && b }

// RealSemiring is the standard (+, ·) semiring over float64, used for
// weighted model counting.
type RealSemiring struct{}

// Zero implements Semiring.
func (RealSemiring) Zero() float64 { return 0 }

// One implements Semiring.
func (RealSemiring) One() float64 { return 1 }

// Plus implements Semiring.
func (RealSemiring) Plus(a, b float64) float64 { return a + b }

// Times implements Semiring.
func (RealSemiring) Times(a, b float64) float64 { return a * b }

// Less implements Ordered.
func (RealSemiring) Less(a, b float64) bool { return a < b }
