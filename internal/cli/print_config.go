package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/statecheck/internal/config"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(ld loader) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			cfg, err := ld.load(config.Config{}, nil)
			if err != nil {
				return err
			}

			return execPrintConfig(o, cfg)
		},
	}
}

func execPrintConfig(o *IO, cfg config.Config) error {
	formatted, err := config.Format(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)
	o.Println("")
	o.Println("# effective_cwd:", cfg.EffectiveCwd)
	o.Println("# sources:")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("#   (defaults only)")

		return nil
	}

	if cfg.Sources.Global != "" {
		o.Println("#   global:", cfg.Sources.Global)
	}

	if cfg.Sources.Project != "" {
		o.Println("#   project:", cfg.Sources.Project)
	}

	return nil
}
