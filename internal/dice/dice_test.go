package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicestat/internal/dice"
)

// TestRollResult_Total verifies the postcondition: Total() == sum(Dice) + Bonus.
func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d6+3",
		Dice:       []int{4, 5},
		Bonus:      3,
	}
	assert.Equal(t, 12, r.Total(), "Total() must equal sum(Dice)+Bonus")
}

// TestRollResult_String verifies the audit string contains expression, dice, and total.
func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d6+3",
		Dice:       []int{4, 5},
		Bonus:      3,
	}
	s := r.String()
	require.Contains(t, s, "2d6+3")
	require.Contains(t, s, "[4 5]")
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", s)
}

func TestRollResult_String_NegativeDice(t *testing.T) {
	r := dice.RollResult{Expression: "-1d8+2", Dice: []int{-3}, Bonus: 2}
	assert.Equal(t, "-1d8+2 → [-3] +2 = -1", r.String())
}

// TestRollResult_String_Property verifies String() always contains the
// expression and the total for arbitrary RollResult values.
func TestRollResult_String_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		expr := rapid.StringMatching(`[0-9]+d[0-9]+[+-][0-9]+`).Draw(rt, "expression")
		rolled := rapid.SliceOfN(rapid.IntRange(-20, 20), 1, 10).Draw(rt, "dice")
		bonus := rapid.IntRange(-100, 100).Draw(rt, "bonus")

		r := dice.RollResult{Expression: expr, Dice: rolled, Bonus: bonus}
		s := r.String()
		assert.True(rt, strings.HasPrefix(s, expr), "String() must start with the expression %q", expr)
		assert.True(rt, strings.HasSuffix(s, fmt.Sprintf("= %d", r.Total())), "String() must end with the total")
	})
}

// TestRollResult_String_PanicsOnEmptyExpression verifies that String() enforces
// its precondition and panics when Expression is empty.
func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

// TestCryptoSource_Intn_InRange verifies every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

// TestSeededSource_Deterministic verifies equal seeds yield equal sequences.
func TestSeededSource_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		a, b := dice.NewSeededSource(seed), dice.NewSeededSource(seed)
		for i := 0; i < 20; i++ {
			n := i%12 + 1
			assert.Equal(rt, a.Intn(n), b.Intn(n))
		}
	})
}

func TestSeededSource_Intn_InRange(t *testing.T) {
	src := dice.NewSeededSource(42)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 6)
		seen[v] = true
	}
	assert.Len(t, seen, 6, "1000 draws should cover every face")
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}
