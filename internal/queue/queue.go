// Package queue is the container that the statecheck examples test.
//
// Despite its name, Queue is backed by a slice and behaves like a stack: Get
// returns the most recently pushed element. Reset only pops ResetBatch
// elements instead of clearing. Both quirks are kept on purpose so the count
// model misses them and stronger models can demonstrate them.
package queue

import "slices"

// ResetBatch is the number of elements Reset pops.
const ResetBatch = 5

// Queue is a bounded-reset, slice-backed container.
type Queue[T any] struct {
	inner []T
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Len returns the number of stored elements.
func (q *Queue[T]) Len() int {
	return len(q.inner)
}

// Push appends v.
func (q *Queue[T]) Push(v T) {
	q.inner = append(q.inner, v)
}

// Get removes and returns the last pushed element. ok is false if the queue
// is empty.
func (q *Queue[T]) Get() (T, bool) {
	var zero T

	if len(q.inner) == 0 {
		return zero, false
	}

	last := len(q.inner) - 1
	v := q.inner[last]
	q.inner[last] = zero
	q.inner = q.inner[:last]

	return v, true
}

// Reset pops up to ResetBatch elements.
func (q *Queue[T]) Reset() {
	for range ResetBatch {
		_, _ = q.Get()
	}
}

// Clone returns an independent copy.
func (q *Queue[T]) Clone() *Queue[T] {
	return &Queue[T]{inner: slices.Clone(q.inner)}
}

// Values returns a copy of the stored elements, oldest first.
func (q *Queue[T]) Values() []T {
	return slices.Clone(q.inner)
}
