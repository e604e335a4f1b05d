package queuecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/statecheck/internal/queuecheck"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

func Test_Run_Passes_When_Pushes_Then_Get(t *testing.T) {
	t.Parallel()

	g := get[countModel]()
	cmds := append(pushes[countModel](1, 2), g)

	res, err := statecheck.Run(countSystem(), cmds)
	require.NoError(t, err)

	assert.Equal(t, statecheck.StatusPassed, res.Status)
	assert.Equal(t, 1, res.Model.N)
	assert.Equal(t, 1, res.SUT.Len())
	assert.True(t, g.Found)
	assert.Equal(t, 2, g.Got, "get pops the most recent push")
}

func Test_Run_Applies_Get_When_Queue_Empty(t *testing.T) {
	t.Parallel()

	g := get[countModel]()

	res, err := statecheck.Run(countSystem(), []queuecheck.Command[int, countModel]{g})
	require.NoError(t, err)

	assert.Equal(t, statecheck.StatusPassed, res.Status)
	assert.Equal(t, statecheck.StatusPassed, res.Steps[0].Status, "get must not be skipped")
	assert.Zero(t, res.Model.N)
	assert.Zero(t, res.SUT.Len())
	assert.False(t, g.Found)
}

func Test_Run_Fails_When_Reset_Leaves_Elements(t *testing.T) {
	t.Parallel()

	cmds := append(pushes[countModel](1, 2, 3, 4, 5, 6), reset[countModel](false))

	res, err := statecheck.Run(countSystem(), cmds)
	require.NoError(t, err)

	require.Equal(t, statecheck.StatusFailed, res.Status)
	assert.Equal(t, 6, res.Failure.Index)
	assert.Equal(t, "Reset", res.Failure.Command.String())
	assert.Equal(t, "model predicts len 0, queue has len 1", res.Failure.Reason)
	assert.Equal(t, 6, res.Failure.OldSUT.Len(), "old snapshot must not see the reset")
	assert.Equal(t, []int{1}, res.Failure.NewSUT.Values())
}

func Test_Run_Passes_When_Reset_Within_Batch(t *testing.T) {
	t.Parallel()

	cmds := append(pushes[countModel](1, 2, 3, 4, 5), reset[countModel](true))

	res, err := statecheck.Run(countSystem(), cmds)
	require.NoError(t, err)
	assert.Equal(t, statecheck.StatusPassed, res.Status)
}

func Test_Shrink_Reduces_To_Six_Pushes_And_Reset_When_Reset_Fails(t *testing.T) {
	t.Parallel()

	gen := newGenerator[countModel](t, queuecheck.DefaultWeights(), queuecheck.Options{})
	cmds := append(pushes[countModel](1, 2, 3, 4, 5, 6), reset[countModel](false))

	shrunk, err := statecheck.Shrink(countSystem(), gen, cmds)
	require.NoError(t, err)

	want := "Push(0) Push(0) Push(0) Push(0) Push(0) Push(0) Reset"
	assert.Equal(t, want, queuecheck.Format(shrunk.Commands))

	again, err := statecheck.Shrink(countSystem(), gen, shrunk.Commands)
	require.NoError(t, err)
	assert.Zero(t, again.Accepted)
	assert.Equal(t, want, queuecheck.Format(again.Commands))
}

func Test_Shrink_Removes_Gets_When_Reset_Still_Fails(t *testing.T) {
	t.Parallel()

	gen := newGenerator[countModel](t, queuecheck.DefaultWeights(), queuecheck.Options{})

	var cmds []queuecheck.Command[int, countModel]
	for i := range 9 {
		cmds = append(cmds, push[countModel](i*10))
		if i%3 == 0 {
			cmds = append(cmds, get[countModel]())
		}
	}

	cmds = append(cmds, reset[countModel](false), get[countModel]())

	shrunk, err := statecheck.Shrink(countSystem(), gen, cmds)
	require.NoError(t, err)
	assert.Equal(t, "Push(0) Push(0) Push(0) Push(0) Push(0) Push(0) Reset", queuecheck.Format(shrunk.Commands))
}

func Test_Shrink_Moves_Payload_Toward_Zero_When_Position_Matters(t *testing.T) {
	t.Parallel()

	gen := newGenerator[fifoModel](t, queuecheck.DefaultWeights(), queuecheck.Options{})
	cmds := append(pushes[fifoModel](7, 3), get[fifoModel]())

	res, err := statecheck.Run(fifoSystem(), cmds)
	require.NoError(t, err)
	require.Equal(t, statecheck.StatusFailed, res.Status, "stack order must violate the fifo model")
	assert.Equal(t, "get returned 3, which the model did not predict", res.Failure.Reason)

	shrunk, err := statecheck.Shrink(fifoSystem(), gen, cmds)
	require.NoError(t, err)

	assert.Len(t, shrunk.Commands, len(cmds))
	assert.Equal(t, "Push(0) Push(1) Get", queuecheck.Format(shrunk.Commands))
	assert.Equal(t, 2, shrunk.Failure.Index)
}

func Test_Shrink_Finds_Strict_Reset_Violation_When_Reset_Must_Clear(t *testing.T) {
	t.Parallel()

	gen := newGenerator[fifoModel](t, queuecheck.DefaultWeights(), queuecheck.Options{StrictReset: true})
	cmds := append(pushes[fifoModel](4, 4, 4, 4, 4, 4, 4), reset[fifoModel](true), reset[fifoModel](true))

	res, err := statecheck.Run(fifoSystem(), cmds)
	require.NoError(t, err)
	require.Equal(t, statecheck.StatusFailed, res.Status)
	assert.Equal(t, "reset left 2 element(s), want a cleared queue", res.Failure.Reason)

	shrunk, err := statecheck.Shrink(fifoSystem(), gen, cmds)
	require.NoError(t, err)
	assert.Equal(t, "Push(0) Push(0) Push(0) Push(0) Push(0) Push(0) Reset", queuecheck.Format(shrunk.Commands))
}

func Test_Push_Formats_Unit_When_Payload_Is_Unit(t *testing.T) {
	t.Parallel()

	p := queuecheck.NewPush[struct{}, queuecheck.CountModel[struct{}]](statecheck.Unit(), struct{}{})

	assert.Equal(t, "Push(())", p.String())
	assert.Empty(t, p.Shrink())
	assert.Zero(t, p.Size())
}

func Test_Push_Does_Not_Shrink_When_Payload_Nil(t *testing.T) {
	t.Parallel()

	p := queuecheck.NewPush[int, countModel](nil, 9)

	assert.Empty(t, p.Shrink())
	assert.Zero(t, p.Size())
}
