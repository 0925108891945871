package partitioned

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestCollectSlice(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	collect := CollectSlice[int]()

	ints := []int{}
	ints = collect(ctx, cancel, 1, 0, ints)
	ints = collect(ctx, cancel, 2, 1, ints)
	ints = collect(ctx, cancel, 3, 2, ints)

	is.Equal(ints, []int{1, 2, 3})
}

func TestReduceSlice(t *testing.T) {
	is := is.New(t)

	ints, err := ReduceSlice(context.Background(), Produce([]int{1, 2}, []int{3}))

	is.NoErr(err)
	is.Equal(ints, []int{1, 2, 3})
}

func TestCollectPartitions(t *testing.T) {
	is := is.New(t)

	result, err := CollectPartitions(seqOf(1, 2, 2, 3, 3, 3, 4, 5, 5), self)

	is.NoErr(err)
	is.Equal(result, [][]int{{1}, {2, 2}, {3, 3, 3}, {4}, {5, 5}})
}

func TestCollectPartitions_Empty(t *testing.T) {
	is := is.New(t)

	result, err := CollectPartitions(seqOf[int](), self)

	is.NoErr(err)
	is.Equal(result, [][]int{})
}

func TestNotConsumedError(t *testing.T) {
	is := is.New(t)

	var err error = &NotConsumedError[string]{Key: "a"}

	is.Equal(err.Error(), "partition with key a not consumed")
	is.True(errors.Is(err, ErrNotConsumed))
	is.True(!errors.Is(err, ErrUpstreamDiverged))
}
