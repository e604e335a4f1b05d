package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/statecheck/internal/config"
)

// flagKeys maps command flags to the config keys they override.
var flagKeys = map[string]string{
	"cases":        config.KeyCases,
	"max-steps":    config.KeyMaxSteps,
	"size":         config.KeyMaxSize,
	"seed":         config.KeySeed,
	"budget":       config.KeyBudget,
	"model":        config.KeyModel,
	"payload":      config.KeyPayload,
	"weights":      config.KeyWeights,
	"strict-reset": config.KeyStrictReset,
	"report":       config.KeyReport,
}

// queueFlags are the flags of every command that builds a queue harness.
type queueFlags struct {
	model   *string
	payload *string
	strict  *bool
}

func addQueueFlags(fs *flag.FlagSet) queueFlags {
	def := config.Default()

	return queueFlags{
		model:   fs.StringP("model", "m", def.Model, "Model checked against the queue: count or fifo"),
		payload: fs.String("payload", def.Payload, "Push payload type: int or unit"),
		strict:  fs.Bool("strict-reset", def.StrictReset, "Require reset to leave the queue empty"),
	}
}

func (q queueFlags) apply(cfg *config.Config) {
	cfg.Model = *q.model
	cfg.Payload = *q.payload
	cfg.StrictReset = *q.strict
}

// changedKeys returns the config keys of the flags set on the command line.
func changedKeys(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			set[key] = true
		}
	})

	return set
}
