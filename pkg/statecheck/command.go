package statecheck

// Command is one generated operation over a SUT of type S and a model of
// type M.
//
// Pre decides whether the command is legal in the current states; a command
// whose precondition is false is skipped without touching either state.
// ApplySUT performs the real operation and may record observed results on the
// command itself, overwriting whatever a previous run recorded. ApplyModel
// performs the abstract update. Post checks the transition once both sides
// have been applied.
type Command[S, M any] interface {
	Pre(sut S, model M) bool
	ApplySUT(sut S) S
	ApplyModel(model M) M
	Post(oldSUT, newSUT S, oldModel, newModel M) bool
	String() string
}

// Sizer is implemented by commands that carry a payload. The Shrinking Search
// only accepts replacement candidates with a strictly smaller size. Commands
// that do not implement Sizer have size 0.
type Sizer interface {
	Size() uint64
}

// Shrinkable is implemented by commands that can propose simpler versions of
// themselves. Candidates must keep the command's concrete type.
type Shrinkable[S, M any] interface {
	Shrink() []Command[S, M]
}

// Explainer is implemented by commands that can describe why their
// postcondition failed.
type Explainer[S, M any] interface {
	Explain(oldSUT, newSUT S, oldModel, newModel M) string
}

func commandSize[S, M any](c Command[S, M]) uint64 {
	if s, ok := c.(Sizer); ok {
		return s.Size()
	}

	return 0
}

// FormatCommands renders each command with its String method.
func FormatCommands[S, M any](cmds []Command[S, M]) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.String()
	}

	return out
}
