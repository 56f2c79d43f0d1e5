// Package cli implements the dice command: for every argument it prints a
// roll, the extrema and the median.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cory-johannsen/dicestat/internal/config"
	"github.com/cory-johannsen/dicestat/internal/dice"
	"github.com/cory-johannsen/dicestat/internal/preset"
)

// Options tune a Runner beyond its required collaborators.
type Options struct {
	// Presets resolves arguments by name before they are parsed; may be nil.
	Presets *preset.Registry
	// MaxOutcomes bounds the distribution printout; 0 disables the bound.
	MaxOutcomes uint64
	// Distribution prints the outcome distribution after each summary.
	Distribution bool
}

// Runner writes one report per argument to out.
type Runner struct {
	out    io.Writer
	roller *dice.Roller
	opts   Options
}

// NewRunner creates a Runner.
//
// Precondition: out and roller must be non-nil.
func NewRunner(out io.Writer, roller *dice.Roller, opts Options) *Runner {
	return &Runner{out: out, roller: roller, opts: opts}
}

// SourceFor returns the Source selected by cfg: seeded when cfg.Seed is set,
// crypto/rand otherwise.
func SourceFor(cfg config.DiceConfig) dice.Source {
	if cfg.Seed != 0 {
		return dice.NewSeededSource(cfg.Seed)
	}
	return dice.NewCryptoSource()
}

// Run reports every argument in order. A failing argument does not stop the
// others; all failures are returned joined.
func (r *Runner) Run(args []string) error {
	var errs []error
	for _, arg := range args {
		if err := r.report(arg); err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", arg, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) resolve(arg string) (string, dice.Expression, error) {
	if r.opts.Presets != nil {
		if p, ok := r.opts.Presets.Lookup(arg); ok {
			return fmt.Sprintf("%s (%s)", p.Name, p.Notation), p.Expression, nil
		}
	}
	e, err := dice.Resolve(arg)
	return arg, e, err
}

func (r *Runner) report(arg string) error {
	label, e, err := r.resolve(arg)
	if err != nil {
		return err
	}

	result := r.roller.Roll(e)
	fmt.Fprintf(r.out, "Rolling %s: %d\n", label, result.Total())
	fmt.Fprintf(r.out, "Max: %d\n", dice.MaxRoll(e))
	fmt.Fprintf(r.out, "Min: %d\n", dice.MinRoll(e))
	fmt.Fprintf(r.out, "Median: %s\n", strconv.FormatFloat(dice.MedianRoll(e), 'f', -1, 64))

	if !r.opts.Distribution {
		return nil
	}
	if err := dice.CheckOutcomeSpace(e, r.opts.MaxOutcomes); err != nil {
		return err
	}
	dist := dice.Distribution(e)
	fmt.Fprintln(r.out, "Distribution:")
	for _, total := range dist.Totals() {
		fmt.Fprintf(r.out, "  %d: %d\n", total, dist[total])
	}
	return nil
}
