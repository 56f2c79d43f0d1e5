package dice

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Canonical renders e in a deterministic grouped form: one "{count}d{faces}"
// term per distinct die size in ascending order of size, then the bonus.
//
// Examples: "2d6+10", "-1d8+2d6-1", "10", and "0" for the zero Expression.
//
// Postcondition: Parse(Canonical(e)) yields the same dice multiset and bonus as e.
func Canonical(e Expression) string {
	counts := make(map[int]int, len(e.Dice))
	for _, d := range e.Dice {
		counts[d]++
	}
	sizes := slices.Sorted(maps.Keys(counts))

	var b strings.Builder
	for i, size := range sizes {
		switch {
		case size < 0:
			b.WriteByte('-')
		case i > 0:
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(counts[size]))
		b.WriteByte('d')
		b.WriteString(strconv.Itoa(abs(size)))
	}

	switch {
	case len(sizes) == 0:
		b.WriteString(strconv.Itoa(e.Bonus))
	case e.Bonus > 0:
		b.WriteByte('+')
		b.WriteString(strconv.Itoa(e.Bonus))
	case e.Bonus < 0:
		b.WriteString(strconv.Itoa(e.Bonus))
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
