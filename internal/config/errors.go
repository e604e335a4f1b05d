package config

import "errors"

// Errors returned while loading and validating configuration.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config")
	ErrCasesInvalid       = errors.New("cases must be > 0")
	ErrMaxStepsInvalid    = errors.New("max_steps must be >= 0")
	ErrMaxSizeInvalid     = errors.New("max_size must be >= 0")
	ErrBudgetInvalid      = errors.New("budget must be >= 0")
	ErrUnknownModel       = errors.New("unknown model")
	ErrUnknownPayload     = errors.New("unknown payload")
	ErrUnknownVariant     = errors.New("unknown command in weights")
	ErrWeightInvalid      = errors.New("weights must be >= 0")
	ErrWeightsZero        = errors.New("at least one weight must be > 0")
)
