package queuecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/calvinalkan/statecheck/internal/queue"
	"github.com/calvinalkan/statecheck/internal/queuecheck"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

func Test_Check_Finds_Bounded_Reset_When_Pushes_Dominate(t *testing.T) {
	t.Parallel()

	gen := newGenerator[countModel](t, queuecheck.Weights{Get: 1, Push: 6, Reset: 1}, queuecheck.Options{})
	cfg := statecheck.Config{Cases: 200, MaxSteps: 60, MaxSize: 60, Seed: 99}

	rep, err := statecheck.Check(cfg, countSystem(), gen)
	require.NoError(t, err)
	require.False(t, rep.Passed, "bounded reset not found")

	assert.Equal(t, "Push(0) Push(0) Push(0) Push(0) Push(0) Push(0) Reset", queuecheck.Format(rep.Shrunk.Commands))
	assert.Contains(t, rep.String(), "model predicts len 0, queue has len 1")
}

func Test_Check_Passes_When_Reset_Disabled(t *testing.T) {
	t.Parallel()

	gen := newGenerator[countModel](t, queuecheck.Weights{Get: 1, Push: 1}, queuecheck.Options{})
	cfg := statecheck.Config{Cases: 100, MaxSteps: 50, MaxSize: 50, Seed: 5}

	statecheck.Test(t, cfg, countSystem(), gen)
}

func Test_Check_Finds_Stack_Order_When_Model_Is_FIFO(t *testing.T) {
	t.Parallel()

	gen := newGenerator[fifoModel](t, queuecheck.Weights{Get: 1, Push: 2}, queuecheck.Options{})
	cfg := statecheck.Config{Cases: 200, MaxSteps: 30, MaxSize: 30, Seed: 17}

	rep, err := statecheck.Check(cfg, fifoSystem(), gen)
	require.NoError(t, err)
	require.False(t, rep.Passed)

	// Either payload may end up at zero; the other stays one step away.
	assert.Contains(t, []string{
		"Push(0) Push(1) Get",
		"Push(0) Push(-1) Get",
		"Push(1) Push(0) Get",
		"Push(-1) Push(0) Get",
	}, queuecheck.Format(rep.Shrunk.Commands))
}

func Test_NewGenerator_Returns_ErrInvalidConfig_When_Payload_Nil(t *testing.T) {
	t.Parallel()

	_, err := queuecheck.NewGenerator[int, countModel](nil, queuecheck.DefaultWeights(), queuecheck.Options{})
	require.ErrorIs(t, err, statecheck.ErrInvalidConfig)

	_, err = queuecheck.NewGenerator[int, countModel](payload, queuecheck.Weights{}, queuecheck.Options{})
	require.ErrorIs(t, err, statecheck.ErrInvalidConfig)
}

// opKind is drawn by rapid independently of the statecheck generator.
type opKind int

const (
	opPush opKind = iota
	opGet
	opReset
)

type op struct {
	kind  opKind
	value int
}

func drawOps(t *rapid.T) []op {
	kinds := rapid.SliceOfN(rapid.IntRange(int(opPush), int(opReset)), 0, 40).Draw(t, "kinds")

	ops := make([]op, len(kinds))
	for i, k := range kinds {
		ops[i] = op{kind: opKind(k)}
		if ops[i].kind == opPush {
			ops[i].value = rapid.IntRange(-100, 100).Draw(t, "value")
		}
	}

	return ops
}

func toCommands[M queuecheck.Model[int, M]](ops []op) []queuecheck.Command[int, M] {
	cmds := make([]queuecheck.Command[int, M], len(ops))
	for i, o := range ops {
		switch o.kind {
		case opPush:
			cmds[i] = push[M](o.value)
		case opGet:
			cmds[i] = get[M]()
		case opReset:
			cmds[i] = reset[M](false)
		}
	}

	return cmds
}

func Test_Run_Final_Model_Matches_Derived_Count_When_Sequence_Random(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		ops := drawOps(t)

		res, err := statecheck.Run(countSystem(), toCommands[countModel](ops))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		// Only the applied prefix counts once the loop stops at a failure.
		want := 0
		for _, o := range ops[:len(res.Steps)] {
			switch o.kind {
			case opPush:
				want++
			case opGet:
				want = max(want-1, 0)
			case opReset:
				want = 0
			}
		}

		if res.Model.N != want {
			t.Fatalf("model count %d, derived %d", res.Model.N, want)
		}
	})
}

func Test_Run_Final_FIFO_Model_Matches_Derived_Items_When_Sequence_Random(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		ops := drawOps(t)

		res, err := statecheck.Run(fifoSystem(), toCommands[fifoModel](ops))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		var want []int
		for _, o := range ops[:len(res.Steps)] {
			switch o.kind {
			case opPush:
				want = append(want, o.value)
			case opGet:
				if len(want) > 0 {
					want = want[1:]
				}
			case opReset:
				want = nil
			}
		}

		if len(want) != len(res.Model.Items) {
			t.Fatalf("model items %v, derived %v", res.Model.Items, want)
		}

		for i := range want {
			if want[i] != res.Model.Items[i] {
				t.Fatalf("model items %v, derived %v", res.Model.Items, want)
			}
		}
	})
}

func Test_Reset_Twice_Matches_Once_Only_When_Within_Batch(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 3*queue.ResetBatch).Draw(t, "n")

		once, twice := queue.New[int](), queue.New[int]()
		for i := range n {
			once.Push(i)
			twice.Push(i)
		}

		once.Reset()
		twice.Reset()
		twice.Reset()

		idempotent := once.Len() == twice.Len()
		if idempotent != (n <= queue.ResetBatch) {
			t.Fatalf("n=%d: reset once len %d, twice len %d", n, once.Len(), twice.Len())
		}
	})
}

func FuzzQueueCount(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x10, 0x20, 0x30})

	gen := newGenerator[countModel](f, queuecheck.Weights{Get: 1, Push: 1}, queuecheck.Options{})

	f.Fuzz(func(t *testing.T, data []byte) {
		statecheck.Fuzz(t, countSystem(), gen, data, 64)
	})
}
