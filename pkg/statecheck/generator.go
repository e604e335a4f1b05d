package statecheck

import (
	"fmt"
	"reflect"
)

// Variant describes one kind of command a Generator can produce.
type Variant[S, M any] struct {
	// Name identifies the variant in errors and listings.
	Name string

	// Weight is the relative frequency of the variant. Zero disables it.
	Weight int

	// New builds a random instance of the variant.
	New func(r *Rand) Command[S, M]
}

// Generator produces random commands from a weighted set of variants and
// shrinks commands it produced.
type Generator[S, M any] struct {
	variants []Variant[S, M]
	weights  []int
}

// NewGenerator validates variants and returns a Generator over them.
func NewGenerator[S, M any](variants ...Variant[S, M]) (*Generator[S, M], error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: no command variants", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(variants))
	weights := make([]int, len(variants))
	total := 0

	for i, v := range variants {
		if v.Name == "" {
			return nil, fmt.Errorf("%w: variant %d has no name", ErrInvalidConfig, i)
		}

		if seen[v.Name] {
			return nil, fmt.Errorf("%w: duplicate variant %q", ErrInvalidConfig, v.Name)
		}

		seen[v.Name] = true

		if v.New == nil {
			return nil, fmt.Errorf("%w: variant %q has no constructor", ErrInvalidConfig, v.Name)
		}

		if v.Weight < 0 {
			return nil, fmt.Errorf("%w: variant %q has negative weight %d", ErrInvalidConfig, v.Name, v.Weight)
		}

		weights[i] = v.Weight
		total += v.Weight
	}

	if total == 0 {
		return nil, fmt.Errorf("%w: all variant weights are zero", ErrInvalidConfig)
	}

	return &Generator[S, M]{
		variants: append([]Variant[S, M](nil), variants...),
		weights:  weights,
	}, nil
}

// Variants returns the variant names in declaration order.
func (g *Generator[S, M]) Variants() []string {
	names := make([]string, len(g.variants))
	for i, v := range g.variants {
		names[i] = v.Name
	}

	return names
}

// Generate returns one random command.
func (g *Generator[S, M]) Generate(r *Rand) Command[S, M] {
	return g.variants[r.Weighted(g.weights)].New(r)
}

// Sequence returns a random sequence whose length is drawn from
// [0, min(r.Size(), maxLen)].
func (g *Generator[S, M]) Sequence(r *Rand, maxLen int) []Command[S, M] {
	n := r.IntN(min(r.Size(), maxLen) + 1)

	cmds := make([]Command[S, M], n)
	for i := range cmds {
		cmds[i] = g.Generate(r)
	}

	return cmds
}

// Shrink returns simpler candidates for c. Commands without a payload have
// none. Every candidate keeps c's concrete type and has a strictly smaller
// size; a candidate breaking either rule is an engine fault.
func (g *Generator[S, M]) Shrink(c Command[S, M]) ([]Command[S, M], error) {
	s, ok := c.(Shrinkable[S, M])
	if !ok {
		return nil, nil
	}

	candidates := s.Shrink()
	if len(candidates) == 0 {
		return nil, nil
	}

	kind := reflect.TypeOf(c)
	size := commandSize(c)

	for _, cand := range candidates {
		if cand == nil {
			return nil, fmt.Errorf("%w: %s shrank to nil", ErrNilCommand, c)
		}

		if reflect.TypeOf(cand) != kind {
			return nil, fmt.Errorf("%w: %s (%T) -> %s (%T)", ErrShrinkKind, c, c, cand, cand)
		}

		if commandSize(cand) >= size {
			return nil, fmt.Errorf("%w: %s (size %d) -> %s (size %d)",
				ErrShrinkNotSmaller, c, size, cand, commandSize(cand))
		}
	}

	return candidates, nil
}
