package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/statecheck/internal/config"
)

var errNoSequence = errors.New("replay requires a sequence, e.g. 'push 1 push 2 get'")

// ReplayCmd returns the replay command. A single "-" argument reads the
// sequence from in.
func ReplayCmd(ld loader, in io.Reader) *Command {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	shrink := fs.BoolP("shrink", "s", false, "Shrink the sequence if it fails")
	qf := addQueueFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "replay [flags] <command>...",
		Short: "Run one sequence and print the step trace",
		Long: `Run one textual sequence against the queue and the model and print every
step. Commands are get, reset and push <value>, separated by spaces, commas
or semicolons; push:1 and Push(1) are accepted too. Use - to read the
sequence from stdin.

Exits 1 if a postcondition fails.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			fields, err := replayFields(args, in)
			if err != nil {
				return err
			}

			var overrides config.Config
			qf.apply(&overrides)

			cfg, err := ld.load(overrides, changedKeys(fs))
			if err != nil {
				return err
			}

			return execReplay(o, cfg, fields, *shrink)
		},
	}
}

func replayFields(args []string, in io.Reader) ([]string, error) {
	if len(args) == 1 && args[0] == "-" {
		if in == nil {
			return nil, errNoSequence
		}

		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		args = []string{string(data)}
	}

	if len(args) == 0 {
		return nil, errNoSequence
	}

	return args, nil
}

func execReplay(o *IO, cfg config.Config, fields []string, shrink bool) error {
	h, err := newHarness(cfg)
	if err != nil {
		return err
	}

	res, err := h.Replay(fields, shrink)
	if err != nil {
		return err
	}

	st := newStyles(o.Out())
	o.Println(st.verdict(res.Text, res.Passed))

	if res.Passed {
		return nil
	}

	return errFalsified
}
