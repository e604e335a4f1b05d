// Package queuecheck plugs queue.Queue into the statecheck engine: the queue
// commands, two models of the queue, and a generator for them.
package queuecheck

import "slices"

// Model is the abstract state the queue commands update and check against.
//
// Methods return the successor state and must not modify the receiver, so
// the engine can keep the old state as a snapshot by plain copy.
type Model[T, M any] interface {
	// Len is the predicted number of stored elements.
	Len() int

	Push(v T) M
	Get() M
	Reset() M

	// CheckGet reports whether a Get observing (got, ok) is consistent with
	// this state, which is the state before the Get.
	CheckGet(got T, ok bool) bool
}

// CountModel predicts only how many elements the queue holds.
//
// It cannot see the order in which elements come back, nor tell a clearing
// reset from a bounded one unless the count goes above the batch size.
type CountModel[T any] struct {
	N int
}

// NewCountModel returns an empty count model.
func NewCountModel[T any]() CountModel[T] {
	return CountModel[T]{}
}

func (m CountModel[T]) Len() int { return m.N }

func (m CountModel[T]) Push(T) CountModel[T] { return CountModel[T]{N: m.N + 1} }

// Get saturates at zero: a Get on an empty queue is legal and changes nothing.
func (m CountModel[T]) Get() CountModel[T] {
	if m.N == 0 {
		return m
	}

	return CountModel[T]{N: m.N - 1}
}

func (m CountModel[T]) Reset() CountModel[T] { return CountModel[T]{} }

// CheckGet requires a result whenever at least one element was predicted.
func (m CountModel[T]) CheckGet(_ T, ok bool) bool {
	return m.N == 0 || ok
}

// FIFOModel predicts the stored elements in first-in, first-out order.
//
// It is stronger than CountModel: a Get must return the oldest element, which
// exposes the queue's stack-like behavior. Elements are compared with ==.
type FIFOModel[T comparable] struct {
	Items []T
}

// NewFIFOModel returns an empty FIFO model.
func NewFIFOModel[T comparable]() FIFOModel[T] {
	return FIFOModel[T]{}
}

func (m FIFOModel[T]) Len() int { return len(m.Items) }

func (m FIFOModel[T]) Push(v T) FIFOModel[T] {
	items := make([]T, len(m.Items), len(m.Items)+1)
	copy(items, m.Items)

	return FIFOModel[T]{Items: append(items, v)}
}

func (m FIFOModel[T]) Get() FIFOModel[T] {
	if len(m.Items) == 0 {
		return m
	}

	return FIFOModel[T]{Items: slices.Clone(m.Items[1:])}
}

func (m FIFOModel[T]) Reset() FIFOModel[T] { return FIFOModel[T]{} }

// CheckGet requires the oldest element, or nothing when empty.
func (m FIFOModel[T]) CheckGet(got T, ok bool) bool {
	if len(m.Items) == 0 {
		return !ok
	}

	return ok && got == m.Items[0]
}
