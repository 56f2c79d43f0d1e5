package dice

import (
	"fmt"
	"math"
)

// reduce flattens a parsed tree into an Expression. Signs distribute over
// groups and constant groups fold to plain numbers, so "(2+2)d6" counts four
// dice and "-(3-2d2)" becomes two positive d2 and a bonus of -3.
func (p *parser) reduce(n node) (Expression, error) {
	switch n := n.(type) {
	case nil:
		return Expression{}, nil
	case *literal:
		return Expression{Bonus: n.value}, nil
	case *group:
		return p.reduce(n.inner)
	case *unary:
		e, err := p.reduce(n.operand)
		if err != nil || !n.neg {
			return e, err
		}
		return e.negate(), nil
	case *binary:
		l, err := p.reduce(n.left)
		if err != nil {
			return Expression{}, err
		}
		r, err := p.reduce(n.right)
		if err != nil {
			return Expression{}, err
		}
		if n.neg {
			r = r.negate()
		}
		return l.add(r), nil
	case *roll:
		return p.reduceRoll(n)
	}
	return Expression{}, fmt.Errorf("dice: unexpected node %T", n)
}

// maxDieCount bounds the dice a single term may expand to.
const maxDieCount = 1 << 20

// reduceRoll expands a die term into one entry per physical die. A constant
// count outside [-maxDieCount, maxDieCount], or one that overflows int while
// folding, drops the term. A negative count flips the sign of the dice.
//
// A rolled count such as "2d6d8" or "(1d4)d6" is kept as its own terms and
// followed by a single die, giving [6 6 8] and [4 6].
func (p *parser) reduceRoll(r *roll) (Expression, error) {
	count := 1
	if r.count != nil {
		c, err := p.reduce(r.count)
		if err != nil {
			return Expression{}, err
		}
		if len(c.Dice) > 0 {
			if r.size < 1 {
				return c, nil
			}
			return c.add(Expression{Dice: []int{r.size}}), nil
		}
		n, ok := foldCount(r.count)
		if !ok || n > maxDieCount || n < -maxDieCount {
			return Expression{}, nil
		}
		count = n
	}
	if r.size < 1 || count == 0 {
		return Expression{}, nil
	}

	size := r.size
	if count < 0 {
		count, size = -count, -size
	}
	dice := make([]int, count)
	for i := range dice {
		dice[i] = size
	}
	return Expression{Dice: dice}, nil
}

// foldCount evaluates a dice-free count subtree. ok is false if a literal or
// an intermediate sum does not fit in int.
func foldCount(n node) (int, bool) {
	switch n := n.(type) {
	case nil, *roll:
		// Only malformed die terms reach here; they contribute nothing.
		return 0, true
	case *literal:
		return n.value, !n.overflow
	case *group:
		return foldCount(n.inner)
	case *unary:
		v, ok := foldCount(n.operand)
		if !ok || !n.neg {
			return v, ok
		}
		return negateChecked(v)
	case *binary:
		l, ok := foldCount(n.left)
		if !ok {
			return 0, false
		}
		r, ok := foldCount(n.right)
		if !ok {
			return 0, false
		}
		if n.neg {
			if r, ok = negateChecked(r); !ok {
				return 0, false
			}
		}
		sum := l + r
		if (l > 0 && r > 0 && sum < 0) || (l < 0 && r < 0 && sum >= 0) {
			return 0, false
		}
		return sum, true
	}
	return 0, false
}

func negateChecked(v int) (int, bool) {
	if v == math.MinInt {
		return 0, false
	}
	return -v, true
}
