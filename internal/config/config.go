// Package config loads the statecheck CLI configuration from layered JSONC
// files.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/statecheck/internal/queuecheck"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

// Models accepted by the model key.
const (
	ModelCount = "count"
	ModelFIFO  = "fifo"
)

// Payloads accepted by the payload key.
const (
	PayloadInt  = "int"
	PayloadUnit = "unit"
)

// Keys of the config file. The CLI uses the same names to report which
// flags were set.
const (
	KeyCases       = "cases"
	KeyMaxSteps    = "max_steps"
	KeyMaxSize     = "max_size"
	KeySeed        = "seed"
	KeyBudget      = "budget"
	KeyModel       = "model"
	KeyPayload     = "payload"
	KeyWeights     = "weights"
	KeyStrictReset = "strict_reset"
	KeyReport      = "report"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".statecheck.json"

// Config holds all configuration options.
type Config struct {
	Cases       int            `json:"cases" yaml:"cases"`
	MaxSteps    int            `json:"max_steps" yaml:"max_steps"`
	MaxSize     int            `json:"max_size" yaml:"max_size"`
	Seed        uint64         `json:"seed" yaml:"seed"`
	Budget      Duration       `json:"budget" yaml:"budget"`
	Model       string         `json:"model" yaml:"model"`
	Payload     string         `json:"payload" yaml:"payload"`
	Weights     map[string]int `json:"weights" yaml:"weights"`
	StrictReset bool           `json:"strict_reset" yaml:"strict_reset"`
	Report      string         `json:"report,omitempty" yaml:"report,omitempty"`

	// Resolved (not serialized)
	EffectiveCwd string  `json:"-" yaml:"-"`
	ReportAbs    string  `json:"-" yaml:"-"`
	Sources      Sources `json:"-" yaml:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	def := statecheck.DefaultConfig()
	w := queuecheck.DefaultWeights()

	return Config{
		Cases:    def.Cases,
		MaxSteps: def.MaxSteps,
		MaxSize:  def.MaxSize,
		Model:    ModelCount,
		Payload:  PayloadInt,
		Weights: map[string]int{
			queuecheck.VariantGet:   w.Get,
			queuecheck.VariantPush:  w.Push,
			queuecheck.VariantReset: w.Reset,
		},
	}
}

// Input holds the inputs for Load.
type Input struct {
	WorkDir    string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath string            // -c/--config flag value
	Env        map[string]string // environment variables

	// Overrides are applied last. Only the keys in Set are taken from it.
	Overrides Config
	Set       map[string]bool
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/statecheck/config.json or ~/.config/statecheck/config.json)
// 3. Project config file (.statecheck.json, if it exists)
// 4. Explicit config file via ConfigPath (replaces 3)
// 5. Overrides.
func Load(input Input) (Config, error) {
	workDir := input.WorkDir
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	if path := globalPath(input.Env); path != "" {
		global, set, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg = merge(cfg, global, set)
			cfg.Sources.Global = path
		}
	}

	project, set, path, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		cfg = merge(cfg, project, set)
		cfg.Sources.Project = path
	}

	cfg = merge(cfg, input.Overrides, input.Set)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	if cfg.Report != "" {
		cfg.ReportAbs = cfg.Report
		if !filepath.IsAbs(cfg.ReportAbs) {
			cfg.ReportAbs = filepath.Join(workDir, cfg.Report)
		}
	}

	return cfg, nil
}

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/statecheck/config.json if set, otherwise
// ~/.config/statecheck/config.json. Returns "" if neither is known.
func globalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "statecheck", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "statecheck", "config.json")
	}

	return ""
}

// loadProject loads .statecheck.json or an explicit config file. The
// returned path is empty when nothing was loaded.
func loadProject(workDir, configPath string) (Config, map[string]bool, string, error) {
	path := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		path = configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		mustExist = true

		if _, err := os.Stat(path); err != nil {
			return Config{}, nil, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	}

	cfg, set, loaded, err := loadFile(path, mustExist)
	if err != nil || !loaded {
		return Config{}, nil, "", err
	}

	return cfg, set, path, nil
}

// loadFile reads one config file. A missing optional file is not an error.
// Returns the config, the keys present in the file, and whether it loaded.
func loadFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil, false, nil
		}

		return Config{}, nil, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, set, err := Parse(data)
	if err != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, set, true, nil
}

// Parse decodes a JSONC config document. It returns the decoded values and
// the set of top-level keys that were present, so explicit zero values can
// override lower layers.
func Parse(data []byte) (Config, map[string]bool, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	// Key presence is read first; it also rejects documents that are not
	// an object.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(standardized, &raw); err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	set := make(map[string]bool, len(raw))
	for k := range raw {
		set[k] = true
	}

	return cfg, set, nil
}

// merge copies the keys in set from overlay onto base. Weights merge per
// command so a layer can change one weight and keep the others.
func merge(base, overlay Config, set map[string]bool) Config {
	if set[KeyCases] {
		base.Cases = overlay.Cases
	}

	if set[KeyMaxSteps] {
		base.MaxSteps = overlay.MaxSteps
	}

	if set[KeyMaxSize] {
		base.MaxSize = overlay.MaxSize
	}

	if set[KeySeed] {
		base.Seed = overlay.Seed
	}

	if set[KeyBudget] {
		base.Budget = overlay.Budget
	}

	if set[KeyModel] {
		base.Model = overlay.Model
	}

	if set[KeyPayload] {
		base.Payload = overlay.Payload
	}

	if set[KeyWeights] {
		weights := maps.Clone(base.Weights)
		if weights == nil {
			weights = map[string]int{}
		}

		maps.Copy(weights, overlay.Weights)
		base.Weights = weights
	}

	if set[KeyStrictReset] {
		base.StrictReset = overlay.StrictReset
	}

	if set[KeyReport] {
		base.Report = overlay.Report
	}

	return base
}

// Validate checks every value against what the CLI can run.
func (c Config) Validate() error {
	switch {
	case c.Cases <= 0:
		return fmt.Errorf("%w: %w, got %d", ErrConfigInvalid, ErrCasesInvalid, c.Cases)
	case c.MaxSteps < 0:
		return fmt.Errorf("%w: %w, got %d", ErrConfigInvalid, ErrMaxStepsInvalid, c.MaxSteps)
	case c.MaxSize < 0:
		return fmt.Errorf("%w: %w, got %d", ErrConfigInvalid, ErrMaxSizeInvalid, c.MaxSize)
	case c.Budget < 0:
		return fmt.Errorf("%w: %w, got %s", ErrConfigInvalid, ErrBudgetInvalid, c.Budget)
	}

	if c.Model != ModelCount && c.Model != ModelFIFO {
		return fmt.Errorf("%w: %w %q (want %s or %s)", ErrConfigInvalid, ErrUnknownModel, c.Model, ModelCount, ModelFIFO)
	}

	if c.Payload != PayloadInt && c.Payload != PayloadUnit {
		return fmt.Errorf("%w: %w %q (want %s or %s)", ErrConfigInvalid, ErrUnknownPayload, c.Payload, PayloadInt, PayloadUnit)
	}

	total := 0

	for _, name := range slices.Sorted(maps.Keys(c.Weights)) {
		w := c.Weights[name]

		switch name {
		case queuecheck.VariantGet, queuecheck.VariantPush, queuecheck.VariantReset:
		default:
			return fmt.Errorf("%w: %w: %q", ErrConfigInvalid, ErrUnknownVariant, name)
		}

		if w < 0 {
			return fmt.Errorf("%w: %w, %s=%d", ErrConfigInvalid, ErrWeightInvalid, name, w)
		}

		total += w
	}

	if total == 0 {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, ErrWeightsZero)
	}

	return nil
}

// Check returns the engine configuration.
func (c Config) Check() statecheck.Config {
	return statecheck.Config{
		Cases:    c.Cases,
		MaxSteps: c.MaxSteps,
		MaxSize:  c.MaxSize,
		Seed:     c.Seed,
		Budget:   time.Duration(c.Budget),
	}
}

// QueueWeights returns the command weights. Missing commands get weight 0.
func (c Config) QueueWeights() queuecheck.Weights {
	return queuecheck.Weights{
		Get:   c.Weights[queuecheck.VariantGet],
		Push:  c.Weights[queuecheck.VariantPush],
		Reset: c.Weights[queuecheck.VariantReset],
	}
}

// QueueOptions returns the command options.
func (c Config) QueueOptions() queuecheck.Options {
	return queuecheck.Options{StrictReset: c.StrictReset}
}

// Format renders the config as indented JSON.
func Format(c Config) (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot format config: %w", err)
	}

	return string(data), nil
}

// ParseWeights parses "get=1,push=2,reset=0". Commands not named keep no
// entry, so merging leaves their weight unchanged.
func ParseWeights(s string) (map[string]int, error) {
	weights := map[string]int{}

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: want name=weight, got %q", ErrConfigInvalid, part)
		}

		w, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: weight %q: %w", ErrConfigInvalid, part, err)
		}

		weights[strings.ToLower(strings.TrimSpace(name))] = w
	}

	return weights, nil
}
