package dice

import "math"

// SuccessTotal returns the exact probability that a roll of e totals at least
// target.
//
// The cost is that of Distribution.
func SuccessTotal(e Expression, target int) float64 {
	dist := Distribution(e)
	return float64(dist.AtLeast(target)) / float64(dist.Total())
}

// Success returns the probability that at least n dice of e individually roll
// target or better, with the bonus subtracted from target first.
//
// Every die is assumed to share one success probability, the mean of the
// per-die probabilities, and the count of successes is treated as binomial.
// That is exact for a pool of identical dice (e.g. a pile of d10s against a
// difficulty) and an approximation for mixed pools.
func Success(e Expression, target, n int) float64 {
	k := len(e.Dice)
	switch {
	case n <= 0:
		return 1
	case n > k:
		return 0
	}

	t := target - e.Bonus
	var sum float64
	for _, d := range e.Dice {
		sum += dieSuccess(d, t)
	}
	p := sum / float64(k)
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	}

	// Sum the upper tail P(X >= n) term by term in log space so large pools
	// neither overflow C(k, r) nor underflow p^r.
	lp, lq := math.Log(p), math.Log1p(-p)
	var hit float64
	for r := n; r <= k; r++ {
		hit += math.Exp(logChoose(k, r) + float64(r)*lp + float64(k-r)*lq)
	}
	return math.Min(1, hit)
}

// dieSuccess returns the chance that die rolls at least t.
func dieSuccess(die, t int) float64 {
	lo, hi := MinDie(die), MaxDie(die)
	switch {
	case t > hi:
		return 0
	case t <= lo:
		return 1
	}
	return float64(hi-t+1) / float64(hi-lo+1)
}

// logChoose returns ln C(n, k).
func logChoose(n, k int) float64 {
	return lgamma(n+1) - lgamma(k+1) - lgamma(n-k+1)
}

func lgamma(n int) float64 {
	v, _ := math.Lgamma(float64(n))
	return v
}
