package cli

import (
	"context"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/statecheck/internal/config"
)

// CheckCmd returns the check command.
func CheckCmd(ld loader) *Command {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	def := config.Default()

	cases := fs.IntP("cases", "n", def.Cases, "Number of random sequences to try")
	maxSteps := fs.Int("max-steps", def.MaxSteps, "Maximum commands per sequence")
	size := fs.Int("size", def.MaxSize, "Size reached by the last case")
	seed := fs.Uint64("seed", def.Seed, "Seed to reproduce a check (0 picks one)")
	budget := fs.Duration("budget", time.Duration(def.Budget), "Stop starting new cases after this long (0 = no limit)")
	weights := fs.String("weights", "", "Command weights, e.g. get=1,push=3,reset=1")
	report := fs.String("report", "", "Write a YAML report to `file`")
	qf := addQueueFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "check [flags]",
		Short: "Check the queue against a model with random sequences",
		Long: `Generate random get/push/reset sequences, run each against the queue and
the model, and shrink the first failing sequence to a minimal one.

Exits 1 and prints the minimal sequence and the violated postcondition when a
counterexample is found.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %s", errUnexpectedArgs, args[0])
			}

			overrides := config.Config{
				Cases:    *cases,
				MaxSteps: *maxSteps,
				MaxSize:  *size,
				Seed:     *seed,
				Budget:   config.Duration(*budget),
				Report:   *report,
			}
			qf.apply(&overrides)

			if fs.Changed("weights") {
				w, err := config.ParseWeights(*weights)
				if err != nil {
					return err
				}

				overrides.Weights = w
			}

			cfg, err := ld.load(overrides, changedKeys(fs))
			if err != nil {
				return err
			}

			return execCheck(ctx, o, cfg)
		},
	}
}

func execCheck(ctx context.Context, o *IO, cfg config.Config) error {
	h, err := newHarness(cfg)
	if err != nil {
		return err
	}

	res, err := h.Check(ctx, cfg.Check())
	if err != nil {
		return err
	}

	st := newStyles(o.Out())
	o.Println(st.verdict(res.Text, res.Passed))

	if ctx.Err() != nil {
		o.Warn("interrupted", fmt.Sprintf("only %d of %d cases ran", res.Report.Cases, cfg.Cases))
	}

	if cfg.ReportAbs != "" {
		res.Report.Config = &cfg

		if err := writeReport(cfg.ReportAbs, res.Report); err != nil {
			return err
		}

		o.Println(st.dim.Render("Report written to " + cfg.ReportAbs))
	}

	if res.Passed {
		return nil
	}

	o.Println()
	o.Println(st.dim.Render(fmt.Sprintf("Rerun: statecheck check --seed %d", res.Report.Seed)))
	o.Println(st.dim.Render("Replay: " + replayHint(cfg, res.Replay)))

	return errFalsified
}

// replayHint is the replay command line reproducing seq under cfg.
func replayHint(cfg config.Config, seq string) string {
	hint := fmt.Sprintf("statecheck replay --model %s --payload %s", cfg.Model, cfg.Payload)
	if cfg.StrictReset {
		hint += " --strict-reset"
	}

	return fmt.Sprintf("%s '%s'", hint, seq)
}
