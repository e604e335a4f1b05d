package statecheck

import (
	"fmt"
	"slices"
)

// Shrunk is the outcome of the Shrinking Search.
type Shrunk[S, M any] struct {
	// Commands is the minimal failing sequence found.
	Commands []Command[S, M]

	// Failure and Steps come from a final run of Commands.
	Failure *Failure[S, M]
	Steps   []Step

	// Attempts counts candidate sequences executed; Accepted counts the ones
	// that still failed and replaced the current sequence.
	Attempts int
	Accepted int
}

// Shrink searches for a smaller sequence that still fails.
//
// Each pass first tries removing every element, then tries replacing every
// element with each of the generator's shrink candidates for it. An edit is
// kept when the shrunk sequence still reaches StatusFailed. Passes repeat
// until one accepts nothing, so a sequence with no smaller failing variant
// is returned unchanged.
//
// cmds must fail; otherwise ErrNotFailing is returned.
func Shrink[S, M any](sys System[S, M], gen *Generator[S, M], cmds []Command[S, M]) (Shrunk[S, M], error) {
	if gen == nil {
		return Shrunk[S, M]{}, fmt.Errorf("%w: nil generator", ErrInvalidConfig)
	}

	res, err := Run(sys, cmds)
	if err != nil {
		return Shrunk[S, M]{}, err
	}

	if res.Status != StatusFailed {
		return Shrunk[S, M]{}, ErrNotFailing
	}

	s := &shrinkSearch[S, M]{sys: sys, gen: gen, current: slices.Clone(cmds)}

	for {
		removed, err := s.removePass()
		if err != nil {
			return s.result(), err
		}

		replaced, err := s.replacePass()
		if err != nil {
			return s.result(), err
		}

		if !removed && !replaced {
			break
		}
	}

	// Rejected attempts re-apply shared commands, so observed results recorded
	// on them may be stale. One last run refreshes them.
	final, err := Run(sys, s.current)
	if err != nil {
		return s.result(), err
	}

	if final.Status != StatusFailed {
		return s.result(), fmt.Errorf("%w: %v", ErrNondeterministic, FormatCommands(s.current))
	}

	out := s.result()
	out.Failure = final.Failure
	out.Steps = final.Steps

	return out, nil
}

type shrinkSearch[S, M any] struct {
	sys     System[S, M]
	gen     *Generator[S, M]
	current []Command[S, M]

	attempts int
	accepted int
}

func (s *shrinkSearch[S, M]) result() Shrunk[S, M] {
	return Shrunk[S, M]{
		Commands: s.current,
		Attempts: s.attempts,
		Accepted: s.accepted,
	}
}

// try runs cand and adopts it if it still fails.
func (s *shrinkSearch[S, M]) try(cand []Command[S, M]) (bool, error) {
	s.attempts++

	res, err := Run(s.sys, cand)
	if err != nil {
		return false, err
	}

	if res.Status != StatusFailed {
		return false, nil
	}

	s.current = cand
	s.accepted++

	return true, nil
}

func (s *shrinkSearch[S, M]) removePass() (bool, error) {
	changed := false

	for i := 0; i < len(s.current); {
		cand := slices.Delete(slices.Clone(s.current), i, i+1)

		ok, err := s.try(cand)
		if err != nil {
			return changed, err
		}

		if ok {
			changed = true

			continue
		}

		i++
	}

	return changed, nil
}

func (s *shrinkSearch[S, M]) replacePass() (bool, error) {
	changed := false

	for i := range s.current {
		for {
			ok, err := s.replaceAt(i)
			if err != nil {
				return changed, err
			}

			if !ok {
				break
			}

			changed = true
		}
	}

	return changed, nil
}

// replaceAt tries each shrink candidate for the element at i and keeps the
// first one that still fails.
func (s *shrinkSearch[S, M]) replaceAt(i int) (bool, error) {
	candidates, err := s.gen.Shrink(s.current[i])
	if err != nil {
		return false, err
	}

	for _, c := range candidates {
		cand := slices.Clone(s.current)
		cand[i] = c

		ok, err := s.try(cand)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}
