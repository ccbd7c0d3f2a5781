package sat

import "fmt"

// Lit is a literal: a variable or its negation. Variables are dense and
// 0-based internally; a variable's two literals occupy adjacent slots with
// the polarity as the low bit, so Opposite is a single XOR.
type Lit int32

// Var is a 0-based internal variable index.
type Var int32

// PositiveLiteral returns the literal asserting that v is true.
func PositiveLiteral(v Var) Lit { return Lit(v) * 2 }

// NegativeLiteral returns the literal asserting that v is false.
func NegativeLiteral(v Var) Lit { return Lit(v)*2 + 1 }

// Var returns the variable underlying l.
func (l Lit) Var() Var { return Var(l / 2) }

// IsPositive reports whether l asserts its variable rather than negating it.
func (l Lit) IsPositive() bool { return l&1 == 0 }

// Opposite returns the negation of l.
func (l Lit) Opposite() Lit { return l ^ 1 }

func (l Lit) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.Var()+1)
	}
	return fmt.Sprintf("-%d", l.Var()+1)
}
