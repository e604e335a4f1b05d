package queuecheck_test

import (
	"testing"

	"github.com/calvinalkan/statecheck/internal/queuecheck"
	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

type (
	countModel = queuecheck.CountModel[int]
	fifoModel  = queuecheck.FIFOModel[int]
)

var payload = statecheck.Int[int]()

func push[M queuecheck.Model[int, M]](v int) queuecheck.Command[int, M] {
	return queuecheck.NewPush[int, M](payload, v)
}

func get[M queuecheck.Model[int, M]]() *queuecheck.Get[int, M] {
	return &queuecheck.Get[int, M]{}
}

func reset[M queuecheck.Model[int, M]](strict bool) queuecheck.Command[int, M] {
	return &queuecheck.Reset[int, M]{Strict: strict}
}

func pushes[M queuecheck.Model[int, M]](values ...int) []queuecheck.Command[int, M] {
	out := make([]queuecheck.Command[int, M], len(values))
	for i, v := range values {
		out[i] = push[M](v)
	}

	return out
}

func countSystem() queuecheck.System[int, countModel] {
	return queuecheck.NewSystem[int](queuecheck.NewCountModel[int])
}

func fifoSystem() queuecheck.System[int, fifoModel] {
	return queuecheck.NewSystem[int](queuecheck.NewFIFOModel[int])
}

func newGenerator[M queuecheck.Model[int, M]](tb testing.TB, w queuecheck.Weights, opts queuecheck.Options) *queuecheck.Generator[int, M] {
	tb.Helper()

	gen, err := queuecheck.NewGenerator[int, M](payload, w, opts)
	if err != nil {
		tb.Fatalf("NewGenerator: %v", err)
	}

	return gen
}
