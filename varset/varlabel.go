// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package varset defines the identifiers used throughout sddgo: variable
// labels, signed literals, partial (three-valued) assignments, and the
// bitset-backed variable sets used by vtrees, dtrees, and quantification.
package varset

import "fmt"

// VarLabel is an opaque, non-negative identifier for a propositional
// variable. Labels are stable for the lifetime of a CNF or manager; they are
// not the same thing as a level in a VarOrder, which gives a variable's
// *position* in some total order.
type VarLabel uint32

// String implements fmt.Stringer.
func (v VarLabel) String() string {
	return fmt.Sprintf("x%d", uint32(v))
}

// Literal is a variable together with a polarity. A positive literal
// (Polarity true) asserts the variable; a negative literal asserts its
// negation.
type Literal struct {
	Label    VarLabel
	Polarity bool
}

// Lit is a small constructor for Literal, mirroring the shorthand used when
// building CNFs by hand.
func Lit(v VarLabel, polarity bool) Literal {
	return Literal{Label: v, Polarity: polarity}
}

// Negate returns the negation of l.
func (l Literal) Negate() Literal {
	return Literal{Label: l.Label, Polarity: !l.Polarity}
}

func (l Literal) String() string {
	if l.Polarity {
		return l.Label.String()
	}
	return "!" + l.Label.String()
}
