package statecheck

import "testing"

// Test runs Check and fails tb on an engine fault or a counterexample. It
// returns the report for further assertions.
func Test[S, M any](tb testing.TB, cfg Config, sys System[S, M], gen *Generator[S, M]) Report[S, M] {
	tb.Helper()

	rep, err := Check(cfg, sys, gen)
	if err != nil {
		tb.Fatalf("statecheck: %v", err)
	}

	if !rep.Passed {
		tb.Fatalf("%s\n\nreplay with Config.Seed = %d", rep, rep.Seed)
	}

	return rep
}

// Fuzz checks one sequence derived from data and fails tb on a
// counterexample. Use it as the body of a testing.F target.
func Fuzz[S, M any](tb testing.TB, sys System[S, M], gen *Generator[S, M], data []byte, maxSteps int) {
	tb.Helper()

	rep, err := CheckBytes(sys, gen, data, maxSteps)
	if err != nil {
		tb.Fatalf("statecheck: %v", err)
	}

	if !rep.Passed {
		tb.Fatal(rep.String())
	}
}
