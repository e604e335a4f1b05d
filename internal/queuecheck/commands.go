package queuecheck

import (
	"fmt"

	"github.com/calvinalkan/statecheck/internal/queue"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

// Get pops one element and records what the queue returned.
//
// Get is always legal. On an empty queue it observes nothing and the models
// predict no change.
type Get[T any, M Model[T, M]] struct {
	Got   T
	Found bool
}

func (c *Get[T, M]) Pre(*queue.Queue[T], M) bool { return true }

func (c *Get[T, M]) ApplySUT(q *queue.Queue[T]) *queue.Queue[T] {
	c.Got, c.Found = q.Get()

	return q
}

func (c *Get[T, M]) ApplyModel(m M) M { return m.Get() }

func (c *Get[T, M]) Post(_, q *queue.Queue[T], oldModel, model M) bool {
	return model.Len() == q.Len() && oldModel.CheckGet(c.Got, c.Found)
}

func (c *Get[T, M]) Explain(_, q *queue.Queue[T], oldModel, model M) string {
	if model.Len() != q.Len() {
		return lenMismatch(model, q)
	}

	if !c.Found {
		return fmt.Sprintf("model held %d element(s) but get returned nothing", oldModel.Len())
	}

	return fmt.Sprintf("get returned %v, which the model did not predict", c.Got)
}

func (c *Get[T, M]) String() string { return "Get" }

// Push appends Value.
type Push[T any, M Model[T, M]] struct {
	Value T

	payload statecheck.Gen[T]
}

// NewPush returns a Push whose value shrinks with payload. A nil payload
// makes the command unshrinkable.
func NewPush[T any, M Model[T, M]](payload statecheck.Gen[T], v T) *Push[T, M] {
	return &Push[T, M]{Value: v, payload: payload}
}

func (c *Push[T, M]) Pre(*queue.Queue[T], M) bool { return true }

func (c *Push[T, M]) ApplySUT(q *queue.Queue[T]) *queue.Queue[T] {
	q.Push(c.Value)

	return q
}

func (c *Push[T, M]) ApplyModel(m M) M { return m.Push(c.Value) }

func (c *Push[T, M]) Post(_, q *queue.Queue[T], _, model M) bool {
	return model.Len() == q.Len()
}

func (c *Push[T, M]) Explain(_, q *queue.Queue[T], _, model M) string {
	return lenMismatch(model, q)
}

// Size is the payload's distance from its simplest value.
func (c *Push[T, M]) Size() uint64 {
	if c.payload == nil {
		return 0
	}

	return c.payload.Size(c.Value)
}

// Shrink re-wraps each simpler payload as a Push.
func (c *Push[T, M]) Shrink() []statecheck.Command[*queue.Queue[T], M] {
	if c.payload == nil {
		return nil
	}

	values := c.payload.Shrink(c.Value)

	out := make([]statecheck.Command[*queue.Queue[T], M], len(values))
	for i, v := range values {
		out[i] = NewPush[T, M](c.payload, v)
	}

	return out
}

func (c *Push[T, M]) String() string {
	if _, unit := any(c.Value).(struct{}); unit {
		return "Push(())"
	}

	return fmt.Sprintf("Push(%v)", c.Value)
}

// Reset resets the queue. With Strict set it also requires the queue to be
// empty afterwards, whatever the model predicts.
type Reset[T any, M Model[T, M]] struct {
	Strict bool
}

func (c *Reset[T, M]) Pre(*queue.Queue[T], M) bool { return true }

func (c *Reset[T, M]) ApplySUT(q *queue.Queue[T]) *queue.Queue[T] {
	q.Reset()

	return q
}

func (c *Reset[T, M]) ApplyModel(m M) M { return m.Reset() }

func (c *Reset[T, M]) Post(_, q *queue.Queue[T], _, model M) bool {
	if c.Strict && q.Len() != 0 {
		return false
	}

	return model.Len() == q.Len()
}

func (c *Reset[T, M]) Explain(_, q *queue.Queue[T], _, model M) string {
	if c.Strict && q.Len() != 0 {
		return fmt.Sprintf("reset left %d element(s), want a cleared queue", q.Len())
	}

	return lenMismatch(model, q)
}

func (c *Reset[T, M]) String() string { return "Reset" }

func lenMismatch[T any, M Model[T, M]](model M, q *queue.Queue[T]) string {
	return fmt.Sprintf("model predicts len %d, queue has len %d", model.Len(), q.Len())
}
