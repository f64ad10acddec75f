// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package varset

// tristate is the three-valued assignment of a variable in a PartialModel.
type tristate byte

const (
	unassigned tristate = iota
	isFalse
	isTrue
)

// PartialModel is a fixed-length mapping from VarLabel to {true, false,
// unassigned}. It is immutable-by-clone: callers wanting to push a new
// decision level call Clone and mutate the copy, matching the stack-of-frames
// discipline used by the unit propagator (see package propagate).
type PartialModel struct {
	vals []tristate
}

// NewPartialModel returns a PartialModel over numVars variables, with every
// variable unassigned.
func NewPartialModel(numVars int) PartialModel {
	return PartialModel{vals: make([]tristate, numVars)}
}

// Clone returns an independent copy of m, suitable for pushing a new decision
// frame.
func (m PartialModel) Clone() PartialModel {
	vals := make([]tristate, len(m.vals))
	copy(vals, m.vals)
	return PartialModel{vals: vals}
}

// Set assigns v to value b.
func (m PartialModel) Set(v VarLabel, b bool) {
	if b {
		m.vals[v] = isTrue
	} else {
		m.vals[v] = isFalse
	}
}

// Unset clears the assignment of v, returning it to unassigned.
func (m PartialModel) Unset(v VarLabel) {
	m.vals[v] = unassigned
}

// Get returns the current value of v and whether it is assigned.
func (m PartialModel) Get(v VarLabel) (value bool, assigned bool) {
	switch m.vals[v] {
	case isTrue:
		return true, true
	case isFalse:
		return false, true
	default:
		return false, false
	}
}

// SatisfiesLiteral reports whether l is true under m; it is false both when
// the literal is falsified and when the variable is unassigned.
func (m PartialModel) SatisfiesLiteral(l Literal) bool {
	v, ok := m.Get(l.Label)
	return ok && v == l.Polarity
}

// FalsifiesLiteral reports whether l is false under m.
func (m PartialModel) FalsifiesLiteral(l Literal) bool {
	v, ok := m.Get(l.Label)
	return ok && v != l.Polarity
}

// NumVars returns the number of variables tracked by m.
func (m PartialModel) NumVars() int {
	return len(m.vals)
}
