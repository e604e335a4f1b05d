package statecheck

import (
	"context"
	"fmt"
	"time"
)

// Config controls how many cases Check runs and how large they get.
type Config struct {
	// Cases is the number of random sequences to try.
	Cases int

	// MaxSteps caps the length of a generated sequence.
	MaxSteps int

	// MaxSize is the size the Rand reaches on the last case. Sizes grow
	// linearly from 1 so early cases are short.
	MaxSize int

	// Seed makes a check reproducible. Zero picks a seed from the clock; the
	// seed actually used is reported.
	Seed uint64

	// Budget stops starting new cases once elapsed. Zero means no budget.
	Budget time.Duration
}

// DefaultConfig returns 100 cases of up to 100 steps with a clock seed.
func DefaultConfig() Config {
	return Config{
		Cases:    100,
		MaxSteps: 100,
		MaxSize:  100,
	}
}

func (c Config) validate() error {
	if c.Cases <= 0 {
		return fmt.Errorf("%w: cases must be > 0, got %d", ErrInvalidConfig, c.Cases)
	}

	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps must be >= 0, got %d", ErrInvalidConfig, c.MaxSteps)
	}

	if c.MaxSize < 0 {
		return fmt.Errorf("%w: max size must be >= 0, got %d", ErrInvalidConfig, c.MaxSize)
	}

	if c.Budget < 0 {
		return fmt.Errorf("%w: budget must be >= 0, got %s", ErrInvalidConfig, c.Budget)
	}

	return nil
}

// sizeFor returns the Rand size for case i.
func (c Config) sizeFor(i int) int {
	if c.Cases == 1 {
		return c.MaxSize
	}

	return max(1, c.MaxSize*(i+1)/c.Cases)
}

// Report summarizes a Check.
type Report[S, M any] struct {
	Seed uint64

	// Cases is the number of cases that ran, including a failing one.
	Cases int

	Passed bool

	// Interrupted is set when the budget or the context stopped the check
	// before all cases ran. A check that failed is never interrupted.
	Interrupted bool

	// Case is the index of the failing case; CaseSeed reproduces it alone.
	Case     int
	CaseSeed uint64

	// Original is the failing sequence as generated; Shrunk is its minimal
	// form. Both are nil when Passed.
	Original []Command[S, M]
	Shrunk   *Shrunk[S, M]

	Elapsed time.Duration
}

// Check runs cfg.Cases random sequences from gen against sys and shrinks
// the first failing one.
func Check[S, M any](cfg Config, sys System[S, M], gen *Generator[S, M]) (Report[S, M], error) {
	return CheckContext(context.Background(), cfg, sys, gen)
}

// CheckContext is Check with a context. Cancellation is only observed
// between cases; a case in progress always completes.
func CheckContext[S, M any](ctx context.Context, cfg Config, sys System[S, M], gen *Generator[S, M]) (Report[S, M], error) {
	if err := cfg.validate(); err != nil {
		return Report[S, M]{}, err
	}

	if gen == nil {
		return Report[S, M]{}, fmt.Errorf("%w: nil generator", ErrInvalidConfig)
	}

	if err := sys.validate(); err != nil {
		return Report[S, M]{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	if cfg.Budget > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Budget)
		defer cancel()
	}

	start := time.Now()
	rep := Report[S, M]{Seed: seed}

	for i := range cfg.Cases {
		if ctx.Err() != nil {
			rep.Interrupted = true

			break
		}

		caseSeed := CaseSeed(seed, i)
		r := NewRand(caseSeed, cfg.sizeFor(i))
		cmds := gen.Sequence(r, cfg.MaxSteps)

		rep.Cases++

		res, err := Run(sys, cmds)
		if err != nil {
			return rep, fmt.Errorf("case %d (seed %d): %w", i, caseSeed, err)
		}

		if res.Status != StatusFailed {
			continue
		}

		rep.Case = i
		rep.CaseSeed = caseSeed
		rep.Original = cmds

		shrunk, err := Shrink(sys, gen, cmds)
		if err != nil {
			return rep, fmt.Errorf("shrinking case %d (seed %d): %w", i, caseSeed, err)
		}

		rep.Shrunk = &shrunk
		rep.Elapsed = time.Since(start)

		return rep, nil
	}

	rep.Passed = true
	rep.Elapsed = time.Since(start)

	return rep, nil
}

// CheckBytes derives one sequence of at most maxSteps commands from data and
// checks it, shrinking on failure. It is meant for native fuzz targets.
func CheckBytes[S, M any](sys System[S, M], gen *Generator[S, M], data []byte, maxSteps int) (Report[S, M], error) {
	if gen == nil {
		return Report[S, M]{}, fmt.Errorf("%w: nil generator", ErrInvalidConfig)
	}

	start := time.Now()
	r := NewRandFrom(NewByteSource(data), maxSteps)
	cmds := gen.Sequence(r, maxSteps)
	rep := Report[S, M]{Cases: 1}

	res, err := Run(sys, cmds)
	if err != nil {
		return rep, err
	}

	if res.Status != StatusFailed {
		rep.Passed = true
		rep.Elapsed = time.Since(start)

		return rep, nil
	}

	rep.Original = cmds

	shrunk, err := Shrink(sys, gen, cmds)
	if err != nil {
		return rep, err
	}

	rep.Shrunk = &shrunk
	rep.Elapsed = time.Since(start)

	return rep, nil
}

// CaseSeed derives the seed of case i from a check seed (splitmix64).
func CaseSeed(seed uint64, i int) uint64 {
	z := seed + uint64(i+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}
