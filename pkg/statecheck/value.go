package statecheck

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Gen generates and shrinks payload values of type T.
//
// Shrink must return a finite list of candidates, each with a Size strictly
// smaller than Size(v), and never v itself. Size is the distance from the
// simplest value of the generator; the simplest value has size 0.
type Gen[T any] interface {
	Generate(r *Rand) T
	Shrink(v T) []T
	Size(v T) uint64
}

// intGen generates integers in [lo, hi] and shrinks them toward the value in
// that range closest to zero.
type intGen[T constraints.Integer] struct {
	lo, hi T
	sized  bool
}

// Int returns a generator over all values of T. Generated values stay within
// [-size, size] of the Rand (clamped to T), and shrink toward 0.
func Int[T constraints.Integer]() Gen[T] {
	return intGen[T]{lo: minInt[T](), hi: maxInt[T](), sized: true}
}

// IntRange returns a generator of values uniformly distributed in [lo, hi],
// ignoring the Rand size. Values shrink toward the in-range value closest to
// zero. Panics if hi < lo.
func IntRange[T constraints.Integer](lo, hi T) Gen[T] {
	if hi < lo {
		panic("statecheck: IntRange requires lo <= hi")
	}

	return intGen[T]{lo: lo, hi: hi}
}

func (g intGen[T]) Generate(r *Rand) T {
	lo, hi := g.window(r.Size())

	// Two's complement keeps the span correct for signed bounds.
	span := uint64(hi) - uint64(lo)
	if span == ^uint64(0) {
		return T(r.Uint64())
	}

	return T(uint64(lo) + r.Uint64N(span+1))
}

func (g intGen[T]) Shrink(v T) []T {
	target := g.target()
	if v == target {
		return nil
	}

	out := []T{target}

	for step := g.dist(v) / 2; step > 0; step /= 2 {
		out = append(out, g.toward(v, step))
	}

	return out
}

func (g intGen[T]) Size(v T) uint64 {
	return g.dist(v)
}

func (g intGen[T]) target() T {
	switch {
	case g.lo > 0:
		return g.lo
	case g.hi < 0:
		return g.hi
	default:
		return 0
	}
}

// window narrows [lo, hi] to size steps around the target.
func (g intGen[T]) window(size int) (T, T) {
	lo, hi := g.lo, g.hi
	if !g.sized {
		return lo, hi
	}

	t := g.target()
	s := uint64(size)

	if g.dist(lo) > s {
		lo = T(uint64(t) - s)
	}

	if g.dist(hi) > s {
		hi = T(uint64(t) + s)
	}

	return lo, hi
}

func (g intGen[T]) dist(v T) uint64 {
	t := g.target()
	if v >= t {
		return uint64(v) - uint64(t)
	}

	return uint64(t) - uint64(v)
}

// toward moves v by step in the direction of the target.
func (g intGen[T]) toward(v T, step uint64) T {
	if v > g.target() {
		return T(uint64(v) - step)
	}

	return T(uint64(v) + step)
}

func isSigned[T constraints.Integer]() bool {
	var zero T

	return ^zero < 0
}

func maxInt[T constraints.Integer]() T {
	var zero T

	if !isSigned[T]() {
		return ^zero
	}

	bits := unsafe.Sizeof(zero) * 8

	return T(1)<<(bits-1) - 1
}

func minInt[T constraints.Integer]() T {
	if !isSigned[T]() {
		return 0
	}

	return -maxInt[T]() - 1
}

type unitGen struct{}

// Unit returns a generator of the empty struct. Its values never shrink.
func Unit() Gen[struct{}] {
	return unitGen{}
}

func (unitGen) Generate(*Rand) struct{} { return struct{}{} }
func (unitGen) Shrink(struct{}) []struct{} { return nil }
func (unitGen) Size(struct{}) uint64 { return 0 }

type boolGen struct{}

// Bool returns a generator of booleans. true shrinks to false.
func Bool() Gen[bool] {
	return boolGen{}
}

func (boolGen) Generate(r *Rand) bool {
	return r.Bool()
}

func (boolGen) Shrink(v bool) []bool {
	if v {
		return []bool{false}
	}

	return nil
}

func (boolGen) Size(v bool) uint64 {
	if v {
		return 1
	}

	return 0
}

type justGen[T any] struct {
	v T
}

// Just returns a generator that always produces v and never shrinks.
func Just[T any](v T) Gen[T] {
	return justGen[T]{v: v}
}

func (g justGen[T]) Generate(*Rand) T { return g.v }
func (justGen[T]) Shrink(T) []T { return nil }
func (justGen[T]) Size(T) uint64 { return 0 }
