package queuecheck_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/statecheck/internal/queuecheck"
)

func Test_CountModel_Saturates_When_Get_On_Empty(t *testing.T) {
	t.Parallel()

	m := queuecheck.NewCountModel[int]()

	assert.Zero(t, m.Get().Len())
	assert.Equal(t, 1, m.Push(1).Push(2).Get().Len())
	assert.Zero(t, m.Push(1).Reset().Len())
}

func Test_CountModel_CheckGet_Requires_Result_When_Nonempty(t *testing.T) {
	t.Parallel()

	m := queuecheck.NewCountModel[int]()

	assert.True(t, m.CheckGet(0, false))
	assert.False(t, m.Push(1).CheckGet(0, false))
	assert.True(t, m.Push(1).CheckGet(42, true), "count model ignores the value")
}

func Test_FIFOModel_Does_Not_Alias_When_States_Share_History(t *testing.T) {
	t.Parallel()

	base := queuecheck.NewFIFOModel[int]().Push(1).Push(2)
	left := base.Push(3)
	right := base.Push(4)

	if diff := cmp.Diff([]int{1, 2, 3}, left.Items); diff != "" {
		t.Fatalf("left (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{1, 2, 4}, right.Items); diff != "" {
		t.Fatalf("right (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{1, 2}, base.Items); diff != "" {
		t.Fatalf("base (-want +got):\n%s", diff)
	}

	got := base.Get()
	assert.Equal(t, []int{2}, got.Items)
	assert.Equal(t, []int{1, 2}, base.Items)
}

func Test_FIFOModel_CheckGet_Requires_Oldest_When_Nonempty(t *testing.T) {
	t.Parallel()

	m := queuecheck.NewFIFOModel[int]()

	assert.True(t, m.CheckGet(0, false))
	assert.False(t, m.CheckGet(0, true))

	m = m.Push(5).Push(6)

	assert.True(t, m.CheckGet(5, true))
	assert.False(t, m.CheckGet(6, true))
	assert.False(t, m.CheckGet(0, false))
	assert.Zero(t, m.Reset().Len())
}

type point struct {
	x, y int
}

func Test_FIFOModel_CheckGet_Compares_Values_When_Fields_Unexported(t *testing.T) {
	t.Parallel()

	m := queuecheck.NewFIFOModel[point]().Push(point{1, 2}).Push(point{3, 4})

	assert.True(t, m.CheckGet(point{1, 2}, true))
	assert.False(t, m.CheckGet(point{3, 4}, true))
	assert.True(t, m.Get().CheckGet(point{3, 4}, true))
}
