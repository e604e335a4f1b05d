package statecheck

import "fmt"

// Status is the state of the Execution Loop, and the outcome of one step.
type Status uint8

const (
	// StatusRunning means commands are still being applied.
	StatusRunning Status = iota

	// StatusSkipped marks a step whose precondition was false.
	StatusSkipped

	// StatusFailed means a postcondition returned false.
	StatusFailed

	// StatusPassed means every applied postcondition held. For a single step
	// it means that step's postcondition held.
	StatusPassed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusPassed:
		return "passed"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// System tells the engine how to build and snapshot the SUT and the model.
//
// CloneSUT and CloneModel return independent copies used as the "old" side of
// a postcondition. A nil clone function means a plain value copy, which is
// only correct for types without shared references. Pointer SUTs mutated in
// place must provide CloneSUT.
type System[S, M any] struct {
	NewSUT     func() S
	NewModel   func() M
	CloneSUT   func(S) (S, error)
	CloneModel func(M) (M, error)
}

func (sys System[S, M]) validate() error {
	if sys.NewSUT == nil {
		return fmt.Errorf("%w: NewSUT is nil", ErrInvalidSystem)
	}

	if sys.NewModel == nil {
		return fmt.Errorf("%w: NewModel is nil", ErrInvalidSystem)
	}

	return nil
}

func (sys System[S, M]) cloneSUT(s S) (S, error) {
	if sys.CloneSUT == nil {
		return s, nil
	}

	return sys.CloneSUT(s)
}

func (sys System[S, M]) cloneModel(m M) (M, error) {
	if sys.CloneModel == nil {
		return m, nil
	}

	return sys.CloneModel(m)
}

// Step records what happened to one command of a run.
type Step struct {
	Index   int
	Command string
	Status  Status
}

// Failure describes a postcondition that returned false.
type Failure[S, M any] struct {
	// Index is the position of the failing command in the sequence.
	Index   int
	Command Command[S, M]

	OldSUT   S
	NewSUT   S
	OldModel M
	NewModel M

	// Reason is the command's explanation, if it implements Explainer.
	Reason string
}

// Postcondition names the violated postcondition for reports.
func (f *Failure[S, M]) Postcondition() string {
	if f.Reason != "" {
		return fmt.Sprintf("postcondition of %s: %s", f.Command, f.Reason)
	}

	return fmt.Sprintf("postcondition of %s", f.Command)
}

// Result is the outcome of one run of the Execution Loop.
type Result[S, M any] struct {
	Status  Status
	Steps   []Step
	Failure *Failure[S, M]

	// SUT and Model are the states when the loop stopped.
	SUT   S
	Model M
}

// Run applies cmds in order to a fresh SUT and model.
//
// A command whose precondition is false is skipped. The loop stops at the
// first postcondition that returns false and reports it as a Failure with
// Status StatusFailed; remaining commands are not applied. The returned error
// is non-nil only for engine faults.
func Run[S, M any](sys System[S, M], cmds []Command[S, M]) (Result[S, M], error) {
	if err := sys.validate(); err != nil {
		return Result[S, M]{}, err
	}

	sut := sys.NewSUT()
	model := sys.NewModel()

	res := Result[S, M]{
		Status: StatusRunning,
		Steps:  make([]Step, 0, len(cmds)),
	}

	for i, cmd := range cmds {
		if cmd == nil {
			return res, fmt.Errorf("%w: step %d", ErrNilCommand, i)
		}

		if !cmd.Pre(sut, model) {
			res.Steps = append(res.Steps, Step{Index: i, Command: cmd.String(), Status: StatusSkipped})

			continue
		}

		oldSUT, err := sys.cloneSUT(sut)
		if err != nil {
			return res, fmt.Errorf("%w: step %d (%s): sut: %w", ErrClone, i, cmd, err)
		}

		oldModel, err := sys.cloneModel(model)
		if err != nil {
			return res, fmt.Errorf("%w: step %d (%s): model: %w", ErrClone, i, cmd, err)
		}

		sut = cmd.ApplySUT(sut)
		model = cmd.ApplyModel(model)

		if !cmd.Post(oldSUT, sut, oldModel, model) {
			res.Steps = append(res.Steps, Step{Index: i, Command: cmd.String(), Status: StatusFailed})
			res.Status = StatusFailed
			res.Failure = &Failure[S, M]{
				Index:    i,
				Command:  cmd,
				OldSUT:   oldSUT,
				NewSUT:   sut,
				OldModel: oldModel,
				NewModel: model,
				Reason:   explain(cmd, oldSUT, sut, oldModel, model),
			}
			res.SUT, res.Model = sut, model

			return res, nil
		}

		res.Steps = append(res.Steps, Step{Index: i, Command: cmd.String(), Status: StatusPassed})
	}

	res.Status = StatusPassed
	res.SUT, res.Model = sut, model

	return res, nil
}

func explain[S, M any](cmd Command[S, M], oldSUT, newSUT S, oldModel, newModel M) string {
	e, ok := cmd.(Explainer[S, M])
	if !ok {
		return ""
	}

	return e.Explain(oldSUT, newSUT, oldModel, newModel)
}
