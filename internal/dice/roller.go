package dice

// RollDie rolls a single die using src: uniform in [1, die] for a positive
// die, in [die, -1] for a negative die, and 0 for the zero die.
//
// Precondition: src must be non-nil.
func RollDie(src Source, die int) int {
	switch {
	case die > 0:
		return src.Intn(die) + 1
	case die < 0:
		return die + src.Intn(-die)
	}
	return 0
}

// MaxDie returns the highest value die can roll.
func MaxDie(die int) int {
	switch {
	case die > 0:
		return die
	case die < 0:
		return -1
	}
	return 0
}

// MinDie returns the lowest value die can roll.
func MinDie(die int) int {
	if die > 0 {
		return 1
	}
	return die
}

// MedianDie returns the median roll of die, e.g. 3.5 for a d6 and 3 for a d5.
func MedianDie(die int) float64 {
	sign := 0
	switch {
	case die > 0:
		sign = 1
	case die < 0:
		sign = -1
	}
	return float64(die+sign) / 2
}

// Evaluate applies f to every die of e and returns the sum plus the bonus.
func Evaluate[T int | float64](e Expression, f func(die int) T) T {
	total := T(e.Bonus)
	for _, d := range e.Dice {
		total += f(d)
	}
	return total
}

// MaxRoll returns the highest total e can produce.
func MaxRoll(e Expression) int { return Evaluate(e, MaxDie) }

// MinRoll returns the lowest total e can produce.
func MinRoll(e Expression) int { return Evaluate(e, MinDie) }

// MedianRoll returns the sum of the per-die medians plus the bonus.
func MedianRoll(e Expression) float64 { return Evaluate(e, MedianDie) }

// Roll rolls every die of e using src and returns a RollResult.
//
// Precondition: src must be non-nil.
// Postcondition: len(result.Dice) == len(e.Dice) and
// MinRoll(e) <= result.Total() <= MaxRoll(e).
func Roll(e Expression, src Source) RollResult {
	rolled := make([]int, len(e.Dice))
	for i, d := range e.Dice {
		rolled[i] = RollDie(src, d)
	}
	return RollResult{
		Expression: Canonical(e),
		Dice:       rolled,
		Bonus:      e.Bonus,
	}
}

// RollExpr parses text and rolls it using src in a single call.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a RollResult or a parse error.
func RollExpr(text string, src Source) (RollResult, error) {
	e, err := Parse(text)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// Resolve returns v unchanged when it is already an Expression and parses it
// otherwise. It is the single place where notation and parsed values meet;
// everything else in this package takes an Expression.
func Resolve[T string | Expression](v T) (Expression, error) {
	if e, ok := any(v).(Expression); ok {
		return e, nil
	}
	return Parse(any(v).(string))
}
