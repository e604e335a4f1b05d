package queuecheck

import (
	"errors"
	"fmt"

	"github.com/calvinalkan/statecheck/internal/queue"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

// Variant names as used by Weights and the CLI.
const (
	VariantGet   = "get"
	VariantPush  = "push"
	VariantReset = "reset"
)

var errNilPayload = errors.New("payload generator is nil")

// Weights sets the relative frequency of each command. Zero disables one.
type Weights struct {
	Get   int
	Push  int
	Reset int
}

// DefaultWeights picks every command with equal probability.
func DefaultWeights() Weights {
	return Weights{Get: 1, Push: 1, Reset: 1}
}

// Options tunes the generated commands.
type Options struct {
	// StrictReset makes every Reset require a cleared queue.
	StrictReset bool
}

// System is the statecheck system for a queue of T checked against model M.
type System[T any, M Model[T, M]] = statecheck.System[*queue.Queue[T], M]

// Generator produces queue commands for model M.
type Generator[T any, M Model[T, M]] = statecheck.Generator[*queue.Queue[T], M]

// Command is a queue command for model M.
type Command[T any, M Model[T, M]] = statecheck.Command[*queue.Queue[T], M]

// NewSystem builds a fresh queue and newModel() per run and snapshots the
// queue with Clone. Models are immutable values and need no clone.
func NewSystem[T any, M Model[T, M]](newModel func() M) System[T, M] {
	return System[T, M]{
		NewSUT:   queue.New[T],
		NewModel: newModel,
		CloneSUT: func(q *queue.Queue[T]) (*queue.Queue[T], error) {
			return q.Clone(), nil
		},
	}
}

// NewGenerator returns a generator of Get, Push and Reset commands. Push
// values come from payload.
func NewGenerator[T any, M Model[T, M]](payload statecheck.Gen[T], w Weights, opts Options) (*Generator[T, M], error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: %w", statecheck.ErrInvalidConfig, errNilPayload)
	}

	return statecheck.NewGenerator(
		statecheck.Variant[*queue.Queue[T], M]{
			Name:   VariantGet,
			Weight: w.Get,
			New: func(*statecheck.Rand) Command[T, M] {
				return &Get[T, M]{}
			},
		},
		statecheck.Variant[*queue.Queue[T], M]{
			Name:   VariantPush,
			Weight: w.Push,
			New: func(r *statecheck.Rand) Command[T, M] {
				return NewPush[T, M](payload, payload.Generate(r))
			},
		},
		statecheck.Variant[*queue.Queue[T], M]{
			Name:   VariantReset,
			Weight: w.Reset,
			New: func(*statecheck.Rand) Command[T, M] {
				return &Reset[T, M]{Strict: opts.StrictReset}
			},
		},
	)
}
