// Package statecheck is a model-based property testing engine for stateful
// systems.
//
// A test supplies a System (how to build and snapshot a system under test and
// its model) and a Generator of Commands. The engine generates random command
// sequences, applies every command to the SUT and the model in lockstep and
// checks the command's postcondition after each step. The first failing
// postcondition ends the run; the failing sequence is then shrunk to a
// minimal counterexample.
//
// Typical use from a test:
//
//	gen, err := statecheck.NewGenerator(variants...)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	statecheck.Test(t, statecheck.DefaultConfig(), sys, gen)
//
// Verification failures are values (Failure, Report). Errors returned by the
// engine always mean misuse: an invalid System or Config, a clone that failed,
// or a shrink candidate that would break termination.
package statecheck
