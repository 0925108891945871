package partitioned

import "context"

// Function returns the result of applying an operation to elem.
type Function[T any, U any] func(elem T) U

// MapperFunc maps element elem to type U.
// The index is the 0-based index of elem, in the order produced by the upstream producer.
type MapperFunc[T any, U any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) U

// Run is the run-length encoding of a partition.
type Run[K comparable] struct {
	// Key is the key of the partition's elements.
	Key K

	// Count is the number of elements in the partition.
	Count int
}

// FuncMapper returns a mapper that calls mapp for each element.
func FuncMapper[T any, U any](mapp Function[T, U]) MapperFunc[T, U] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) U {
		return mapp(elem)
	}
}

// Map returns a producer that calls mapp for each element produced by prod, mapping it to type U.
func Map[T any, U any](prod ProducerFunc[T], mapp MapperFunc[T, U]) ProducerFunc[U] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan U {
		ch := prod(ctx, cancel)

		outCh := make(chan U)

		go func() {
			defer close(outCh)

			index := uint64(0)

			for elem := range ch {
				outElem := mapp(ctx, cancel, elem, index)

				if contextDone(ctx) {
					return
				}

				select {
				case outCh <- outElem:
					index++

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}

// ZipWithNextStream returns a producer that produces every element produced by prod
// paired with the element following it.
func ZipWithNextStream[T any](prod ProducerFunc[T]) ProducerFunc[Pair[T]] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan Pair[T] {
		zip := streamZipper[T]{
			ctx: ctx,
			ch:  prod(ctx, cancel),
		}

		outCh := make(chan Pair[T])

		go func() {
			defer close(outCh)

			for {
				pair, ok, err := zip.pull(ctx)
				if err != nil || !ok {
					return
				}

				select {
				case outCh <- pair:

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}

// Partitions returns a producer that produces the partitions of the elements produced by prod,
// each collected into a slice.
// Consecutive elements with equal keys belong to the same partition.
func Partitions[T any, K comparable](prod ProducerFunc[T], key KeyFunc[T, K]) ProducerFunc[[]T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan []T {
		parts := PartitionStream(ctx, prod, key)

		outCh := make(chan []T)

		go func() {
			defer close(outCh)

			defer parts.Close()

			for {
				part, ok, err := parts.Next(ctx)
				if err != nil {
					cancel(err)
					return
				}

				if !ok {
					return
				}

				elems, err := part.Collect(ctx)
				if err != nil {
					cancel(err)
					return
				}

				select {
				case outCh <- elems:

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}

// RunLengths returns a producer that produces the run-length encoding of the elements
// produced by prod, that is, the key and size of each partition.
func RunLengths[T any, K comparable](prod ProducerFunc[T], key KeyFunc[T, K]) ProducerFunc[Run[K]] {
	return Map(Partitions(prod, key), FuncMapper(func(elems []T) Run[K] {
		return Run[K]{
			Key:   key(elems[0]),
			Count: len(elems),
		}
	}))
}
