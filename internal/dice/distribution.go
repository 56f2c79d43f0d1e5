package dice

import (
	"errors"
	"fmt"
	"maps"
	"math/bits"
	"slices"
)

// ErrOutcomeSpaceTooLarge is returned by CheckOutcomeSpace when enumerating an
// expression would exceed the caller's limit.
var ErrOutcomeSpaceTooLarge = errors.New("outcome space too large")

// Outcomes maps each possible total to the number of equally likely die
// combinations that produce it.
//
// Invariant: the sum of all counts equals OutcomeSpace of the source
// expression, and every key lies in [MinRoll, MaxRoll].
type Outcomes map[int]int

// Total returns the number of combinations across all totals.
func (o Outcomes) Total() int {
	n := 0
	for _, c := range o {
		n += c
	}
	return n
}

// AtLeast returns the number of combinations whose total is >= target.
func (o Outcomes) AtLeast(target int) int {
	n := 0
	for total, c := range o {
		if total >= target {
			n += c
		}
	}
	return n
}

// Totals returns the possible totals in ascending order.
func (o Outcomes) Totals() []int {
	return slices.Sorted(maps.Keys(o))
}

// Probability returns the chance of rolling exactly total.
func (o Outcomes) Probability(total int) float64 {
	all := o.Total()
	if all == 0 {
		return 0
	}
	return float64(o[total]) / float64(all)
}

// Distribution enumerates every combination of die faces in e and tallies
// the totals. The bonus is added once per combination.
//
// Enumeration is exact and visits OutcomeSpace(e) combinations, which grows
// exponentially with the number of dice. Callers handling untrusted input
// should bound it with CheckOutcomeSpace first.
//
// Postcondition: result.Total() == OutcomeSpace(e).
func Distribution(e Expression) Outcomes {
	n := len(e.Dice)
	lo := make([]int, n)
	hi := make([]int, n)
	face := make([]int, n)
	sum := e.Bonus
	for i, d := range e.Dice {
		lo[i], hi[i] = MinDie(d), MaxDie(d)
		face[i] = lo[i]
		sum += lo[i]
	}

	out := make(Outcomes)
	for {
		out[sum]++

		// Advance the odometer: bump the first die that is not at its
		// maximum and reset every die before it.
		i := 0
		for ; i < n; i++ {
			if face[i] < hi[i] {
				face[i]++
				sum++
				break
			}
			sum -= face[i] - lo[i]
			face[i] = lo[i]
		}
		if i == n {
			return out
		}
	}
}

// OutcomeSpace returns the number of combinations Distribution would visit,
// the product of every die's face count. ok is false if it overflows uint64.
func OutcomeSpace(e Expression) (size uint64, ok bool) {
	size = 1
	for _, d := range e.Dice {
		faces := uint64(MaxDie(d) - MinDie(d) + 1)
		hi, lo := bits.Mul64(size, faces)
		if hi != 0 {
			return 0, false
		}
		size = lo
	}
	return size, true
}

// CheckOutcomeSpace returns ErrOutcomeSpaceTooLarge if enumerating e would
// visit more than limit combinations. A limit of 0 disables the check.
func CheckOutcomeSpace(e Expression, limit uint64) error {
	if limit == 0 {
		return nil
	}
	size, ok := OutcomeSpace(e)
	if !ok {
		return fmt.Errorf("dice: %w: %s overflows uint64 (limit %d)", ErrOutcomeSpaceTooLarge, Canonical(e), limit)
	}
	if size > limit {
		return fmt.Errorf("dice: %w: %s has %d outcomes (limit %d)", ErrOutcomeSpaceTooLarge, Canonical(e), size, limit)
	}
	return nil
}
