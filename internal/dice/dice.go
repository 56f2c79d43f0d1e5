// Package dice parses tabletop dice notation into a normalized Expression and
// computes rolls, extrema, medians, exact outcome distributions and success
// probabilities over it.
package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidDice is returned by Parse when a die's size is itself an
// expression, e.g. "4d(2d3)". Variable-sized dice are not supported.
var ErrInvalidDice = errors.New("invalid dice expression")

// Expression is a normalized dice expression: one entry per physical die plus
// a single flat bonus.
//
// A positive die n rolls uniformly in [1, n]; a negative die n rolls uniformly
// in [n, -1]. Order within Dice is insertion order and carries no meaning.
type Expression struct {
	Dice  []int
	Bonus int
}

// String returns the canonical form of e.
func (e Expression) String() string {
	return Canonical(e)
}

// add returns the sum of e and o as a new Expression.
func (e Expression) add(o Expression) Expression {
	out := Expression{Bonus: e.Bonus + o.Bonus}
	if n := len(e.Dice) + len(o.Dice); n > 0 {
		out.Dice = make([]int, 0, n)
		out.Dice = append(out.Dice, e.Dice...)
		out.Dice = append(out.Dice, o.Dice...)
	}
	return out
}

// negate returns e with every die and the bonus sign-flipped.
func (e Expression) negate() Expression {
	out := Expression{Bonus: -e.Bonus}
	if len(e.Dice) > 0 {
		out.Dice = make([]int, len(e.Dice))
		for i, d := range e.Dice {
			out.Dice[i] = -d
		}
	}
	return out
}

// RollResult holds the full audit trail for a single roll of an Expression.
//
// Postcondition: Total() == sum(Dice) + Bonus.
type RollResult struct {
	ID         string // roll identifier; set by Roller, empty otherwise
	Expression string // canonical expression, e.g. "2d6+3"
	Dice       []int  // individual die results in expression order
	Bonus      int    // flat bonus (may be negative)
}

// Total returns the sum of all die results plus the bonus.
func (r RollResult) Total() int {
	total := r.Bonus
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Bonus, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
