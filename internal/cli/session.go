package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/calvinalkan/statecheck/internal/queue"
	"github.com/calvinalkan/statecheck/internal/queuecheck"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

var (
	errEmptyStep     = errors.New("nothing to run")
	errAlreadyFailed = errors.New("sequence already failed; undo or clear first")
	errNothingFailed = errors.New("sequence does not fail; nothing to shrink")
)

// queueSession is the sequence built up in the REPL. Every step reruns the
// whole sequence from a fresh queue, so the state shown is exactly what a
// replay of History would produce.
type queueSession[T any, M queuecheck.Model[T, M]] struct {
	h    *queueHarness[T, M]
	cmds []queuecheck.Command[T, M]
	last statecheck.Result[*queue.Queue[T], M]
}

func (s *queueSession[T, M]) Step(fields []string) (string, error) {
	parsed, err := s.h.parse(fields)
	if err != nil {
		return "", err
	}

	if len(parsed) == 0 {
		return "", errEmptyStep
	}

	if s.last.Status == statecheck.StatusFailed {
		return "", errAlreadyFailed
	}

	prev := len(s.cmds)
	cmds := append(slices.Clone(s.cmds), parsed...)

	res, err := statecheck.Run(s.h.sys, cmds)
	if err != nil {
		return "", err
	}

	// Commands after a failing one never ran and are dropped.
	if res.Failure != nil {
		cmds = cmds[:res.Failure.Index+1]
	}

	s.cmds, s.last = cmds, res

	var b strings.Builder

	for _, st := range res.Steps[prev:] {
		fmt.Fprintf(&b, "%s: %s\n", st.Command, st.Status)
	}

	if dropped := prev + len(parsed) - len(cmds); dropped > 0 {
		fmt.Fprintf(&b, "(%d command(s) after the failure not run)\n", dropped)
	}

	if res.Failure != nil {
		b.WriteString(statecheck.FormatFailure(res.Failure))
		b.WriteString("\n")
	}

	b.WriteString(describeState(res.SUT, res.Model))

	return b.String(), nil
}

func (s *queueSession[T, M]) Undo() bool {
	if len(s.cmds) == 0 {
		return false
	}

	s.cmds = s.cmds[:len(s.cmds)-1]
	s.rerun()

	return true
}

func (s *queueSession[T, M]) Clear() {
	s.cmds = nil
	s.rerun()
}

func (s *queueSession[T, M]) Len() int {
	return len(s.cmds)
}

func (s *queueSession[T, M]) State() string {
	if s.last.SUT == nil {
		return describeState(s.h.sys.NewSUT(), s.h.sys.NewModel())
	}

	return describeState(s.last.SUT, s.last.Model)
}

func (s *queueSession[T, M]) History() string {
	return statecheck.FormatSteps(s.last.Steps) + "\nReplay: " + queuecheck.Format(s.cmds)
}

func (s *queueSession[T, M]) Shrink() (string, error) {
	if s.last.Status != statecheck.StatusFailed {
		return "", errNothingFailed
	}

	shrunk, err := statecheck.Shrink(s.h.sys, s.h.gen, s.cmds)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Shrunk %d → %d commands\n%s\n%s\nReplay: %s",
		len(s.cmds), len(shrunk.Commands),
		statecheck.FormatSteps(shrunk.Steps), statecheck.FormatFailure(shrunk.Failure),
		queuecheck.Format(shrunk.Commands)), nil
}

// rerun refreshes the last result after the sequence shrank. A prefix of a
// sequence that ran cleanly cannot fault, so the error is dropped.
func (s *queueSession[T, M]) rerun() {
	s.last, _ = statecheck.Run(s.h.sys, s.cmds)
}
