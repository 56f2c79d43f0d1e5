package dice_test

import (
	"fmt"
	"slices"

	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicestat/internal/dice"
)

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// sorted returns a sorted copy of dice so multisets can be compared.
func sorted(d []int) []int {
	out := slices.Clone(d)
	slices.Sort(out)
	return out
}

// drawDie draws a non-zero die size in [-maxSize, maxSize].
func drawDie(rt *rapid.T, maxSize int, label string) int {
	size := rapid.IntRange(1, maxSize).Draw(rt, label+"_size")
	if rapid.Bool().Draw(rt, label+"_neg") {
		return -size
	}
	return size
}

// drawExpression draws an Expression with at most maxDice dice of at most
// maxSize faces each.
func drawExpression(rt *rapid.T, maxDice, maxSize int) dice.Expression {
	n := rapid.IntRange(0, maxDice).Draw(rt, "n")
	var e dice.Expression
	for i := 0; i < n; i++ {
		e.Dice = append(e.Dice, drawDie(rt, maxSize, fmt.Sprintf("die%d", i)))
	}
	e.Bonus = rapid.IntRange(-50, 50).Draw(rt, "bonus")
	return e
}
