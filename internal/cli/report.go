package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/statecheck/internal/config"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

// reportFile is the document written by check --report.
type reportFile struct {
	Verdict     string         `yaml:"verdict"`
	Seed        uint64         `yaml:"seed"`
	Cases       int            `yaml:"cases"`
	Interrupted bool           `yaml:"interrupted,omitempty"`
	Elapsed     string         `yaml:"elapsed"`
	Config      *config.Config `yaml:"config,omitempty"`
	Failure     *reportFailure `yaml:"counterexample,omitempty"`
}

type reportFailure struct {
	Case     int      `yaml:"case"`
	CaseSeed uint64   `yaml:"case_seed"`
	Original []string `yaml:"original"`
	Shrunk   []string `yaml:"shrunk"`
	Attempts int      `yaml:"shrink_attempts"`
	Accepted int      `yaml:"shrink_accepted"`
	Step     int      `yaml:"step"`
	Violated string   `yaml:"violated"`
}

func newReportFile[S, M any](rep statecheck.Report[S, M]) reportFile {
	out := reportFile{
		Verdict:     "passed",
		Seed:        rep.Seed,
		Cases:       rep.Cases,
		Interrupted: rep.Interrupted,
		Elapsed:     rep.Elapsed.String(),
	}

	if rep.Passed {
		return out
	}

	out.Verdict = "falsified"
	out.Failure = &reportFailure{
		Case:     rep.Case,
		CaseSeed: rep.CaseSeed,
		Original: statecheck.FormatCommands(rep.Original),
	}

	if s := rep.Shrunk; s != nil {
		out.Failure.Shrunk = statecheck.FormatCommands(s.Commands)
		out.Failure.Attempts = s.Attempts
		out.Failure.Accepted = s.Accepted

		if s.Failure != nil {
			out.Failure.Step = s.Failure.Index
			out.Failure.Violated = s.Failure.Postcondition()
		}
	}

	return out
}

// writeReport encodes r as YAML and replaces path atomically.
func writeReport(path string, r reportFile) error {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}
