package partitioned

import (
	"context"
	"iter"
)

// CollectSlice returns an accumulator that collects elements into a slice.
func CollectSlice[T any]() AccumulatorFunc[T, []T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64, acc []T) []T {
		return append(acc, elem)
	}
}

// ReduceSlice collects all elements produced by prod into a slice.
// If prod cancels the stream's context, it returns the elements collected so far, and the cause of the cancelation.
func ReduceSlice[T any](ctx context.Context, prod ProducerFunc[T]) ([]T, error) {
	return Reduce(ctx, prod, []T{}, CollectSlice[T]())
}

// CollectPartitions returns the partitions of seq, each collected into a slice.
// Consecutive elements with equal keys belong to the same partition.
func CollectPartitions[T any, K comparable](seq iter.Seq[T], key KeyFunc[T, K]) ([][]T, error) {
	parts := [][]T{}

	for part, err := range PartitionBy(seq, key).All() {
		if err != nil {
			return parts, err
		}

		parts = append(parts, part.Collect())
	}

	return parts, nil
}
