package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/statecheck/internal/config"
	"github.com/calvinalkan/statecheck/internal/queue"
	"github.com/calvinalkan/statecheck/internal/queuecheck"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

// harness runs the queue property for one payload and model choice. The
// engine is generic; harness hides the instantiation from the commands.
type harness interface {
	// Check runs random cases and returns the outcome as a report.
	Check(ctx context.Context, cfg statecheck.Config) (outcome, error)

	// Replay runs one textual sequence, shrinking it on failure if asked.
	Replay(fields []string, shrink bool) (outcome, error)

	// Session starts an empty interactive sequence.
	Session() session
}

// outcome is a rendered run, independent of the instantiation.
type outcome struct {
	Passed bool
	Text   string

	// Replay is the minimal failing sequence in the form replay accepts.
	Replay string

	// Report is set by Check and feeds the --report file.
	Report reportFile
}

// session is an interactive sequence the REPL grows command by command.
type session interface {
	// Step parses fields, appends them and reruns the sequence.
	Step(fields []string) (string, error)
	Undo() bool
	Clear()
	Len() int
	State() string
	History() string
	Shrink() (string, error)
}

func newHarness(cfg config.Config) (harness, error) {
	opts := cfg.QueueOptions()
	w := cfg.QueueWeights()

	switch {
	case cfg.Payload == config.PayloadInt && cfg.Model == config.ModelCount:
		return newQueueHarness[int, queuecheck.CountModel[int]](
			queuecheck.NewCountModel[int], statecheck.Int[int](), queuecheck.ParseInt, w, opts)
	case cfg.Payload == config.PayloadInt && cfg.Model == config.ModelFIFO:
		return newQueueHarness[int, queuecheck.FIFOModel[int]](
			queuecheck.NewFIFOModel[int], statecheck.Int[int](), queuecheck.ParseInt, w, opts)
	case cfg.Payload == config.PayloadUnit && cfg.Model == config.ModelCount:
		return newQueueHarness[struct{}, queuecheck.CountModel[struct{}]](
			queuecheck.NewCountModel[struct{}], statecheck.Unit(), queuecheck.ParseUnit, w, opts)
	case cfg.Payload == config.PayloadUnit && cfg.Model == config.ModelFIFO:
		return newQueueHarness[struct{}, queuecheck.FIFOModel[struct{}]](
			queuecheck.NewFIFOModel[struct{}], statecheck.Unit(), queuecheck.ParseUnit, w, opts)
	default:
		return nil, fmt.Errorf("%w: model %q with payload %q", config.ErrConfigInvalid, cfg.Model, cfg.Payload)
	}
}

type queueHarness[T any, M queuecheck.Model[T, M]] struct {
	sys        queuecheck.System[T, M]
	gen        *queuecheck.Generator[T, M]
	payload    statecheck.Gen[T]
	parseValue func(string) (T, error)
	opts       queuecheck.Options
}

func newQueueHarness[T any, M queuecheck.Model[T, M]](
	newModel func() M,
	payload statecheck.Gen[T],
	parseValue func(string) (T, error),
	w queuecheck.Weights,
	opts queuecheck.Options,
) (harness, error) {
	gen, err := queuecheck.NewGenerator[T, M](payload, w, opts)
	if err != nil {
		return nil, err
	}

	return &queueHarness[T, M]{
		sys:        queuecheck.NewSystem[T](newModel),
		gen:        gen,
		payload:    payload,
		parseValue: parseValue,
		opts:       opts,
	}, nil
}

func (h *queueHarness[T, M]) parse(fields []string) ([]queuecheck.Command[T, M], error) {
	return queuecheck.Parse[T, M](fields, h.parseValue, h.payload, h.opts)
}

func (h *queueHarness[T, M]) Check(ctx context.Context, cfg statecheck.Config) (outcome, error) {
	rep, err := statecheck.CheckContext(ctx, cfg, h.sys, h.gen)
	if err != nil {
		return outcome{}, err
	}

	out := outcome{
		Passed: rep.Passed,
		Text:   rep.String(),
		Report: newReportFile(rep),
	}

	if rep.Shrunk != nil {
		out.Replay = queuecheck.Format(rep.Shrunk.Commands)
	}

	return out, nil
}

func (h *queueHarness[T, M]) Replay(fields []string, shrink bool) (outcome, error) {
	cmds, err := h.parse(fields)
	if err != nil {
		return outcome{}, err
	}

	res, err := statecheck.Run(h.sys, cmds)
	if err != nil {
		return outcome{}, err
	}

	if res.Status != statecheck.StatusFailed {
		text := fmt.Sprintf("statecheck: passed (%d commands)\n%s\n%s",
			len(cmds), statecheck.FormatSteps(res.Steps), describeState(res.SUT, res.Model))

		return outcome{Passed: true, Text: text}, nil
	}

	text := fmt.Sprintf("statecheck: falsified\n%s\n%s",
		statecheck.FormatSteps(res.Steps), statecheck.FormatFailure(res.Failure))

	if shrink {
		shrunk, err := statecheck.Shrink(h.sys, h.gen, cmds)
		if err != nil {
			return outcome{}, err
		}

		text += fmt.Sprintf("\n\nShrunk %d → %d commands (%d attempts, %d accepted)\n%s\n%s\nReplay: %s",
			len(cmds), len(shrunk.Commands), shrunk.Attempts, shrunk.Accepted,
			statecheck.FormatSteps(shrunk.Steps), statecheck.FormatFailure(shrunk.Failure),
			queuecheck.Format(shrunk.Commands))

		return outcome{Text: text, Replay: queuecheck.Format(shrunk.Commands)}, nil
	}

	return outcome{Text: text, Replay: queuecheck.Format(cmds)}, nil
}

func (h *queueHarness[T, M]) Session() session {
	return &queueSession[T, M]{h: h}
}

// describeState renders the queue contents next to the model.
func describeState[T, M any](q *queue.Queue[T], m M) string {
	return fmt.Sprintf("State: queue %v (len %d), model %+v", q.Values(), q.Len(), m)
}
