package partitioned

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"
)

// streamZipper pairs each element received from ch with its successor.
// ctx is the stream's context, used to tell a canceled producer from an exhausted one.
type streamZipper[T any] struct {
	ctx context.Context
	ch  <-chan T

	prev    T
	hasPrev bool
}

// recv blocks until the producer sends an element, closes its channel, or either ctx or
// the stream's context is done.
// A channel closed because the stream was canceled is reported as the cancelation cause.
func (z *streamZipper[T]) recv(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case elem, ok := <-z.ch:
		if !ok {
			return zero, false, context.Cause(z.ctx)
		}

		return elem, true, nil

	case <-z.ctx.Done():
		return zero, false, context.Cause(z.ctx)

	case <-ctx.Done():
		return zero, false, context.Cause(ctx)
	}
}

// pull returns the next pair, or false once the producer is exhausted and the
// lookahead slot has been drained.
// If pull returns an error, no element is lost: an element received before the error
// stays in the slot and the pairing resumes on the next call.
func (z *streamZipper[T]) pull(ctx context.Context) (Pair[T], bool, error) {
	for {
		item, ok, err := z.recv(ctx)
		if err != nil {
			return Pair[T]{}, false, err
		}

		if !ok {
			if !z.hasPrev {
				return Pair[T]{}, false, nil
			}

			last := z.prev
			z.clear()

			return Pair[T]{Current: last}, true, nil
		}

		if z.hasPrev {
			pair := Pair[T]{Current: z.prev, Next: item, HasNext: true}
			z.prev = item

			return pair, true, nil
		}

		// first pairing: park the element and wait for its successor
		z.prev, z.hasPrev = item, true
	}
}

func (z *streamZipper[T]) clear() {
	var zero T
	z.prev, z.hasPrev = zero, false
}

// streamCursor is the upstream shared by a StreamPartitioned and all of its partitions.
// The mutex grants exclusive access to the zipper; logically there is still only
// one consumer at a time.
type streamCursor[T any] struct {
	mu  sync.Mutex
	zip streamZipper[T]

	cancel context.CancelCauseFunc
	closed atomic.Bool
}

func (c *streamCursor[T]) pull(ctx context.Context) (Pair[T], bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return Pair[T]{}, false, nil
	}

	pair, ok, err := c.zip.pull(ctx)
	if err != nil && c.closed.Load() {
		// closed while waiting for the producer
		return Pair[T]{}, false, nil
	}

	return pair, ok, err
}

// close cancels the producer and returns the cause it canceled the stream with, if any.
func (c *streamCursor[T]) close() error {
	if c.closed.Swap(true) {
		return nil
	}

	err := context.Cause(c.zip.ctx)

	c.cancel(nil)

	return err
}

// StreamPartitioned is the asynchronous counterpart of Partitioned: a stream of partitions
// of the elements produced by a ProducerFunc.
//
// Calls to Next block until the producer has sent enough elements, or the context is done.
// A partition must be consumed to its end before the next one is requested; otherwise the
// next call to Next returns a NotConsumedError.
type StreamPartitioned[T any, K comparable] struct {
	upstream *streamCursor[T]
	key      KeyFunc[T, K]

	last    K
	hasLast bool

	err error
}

// StreamPartition is a run of consecutive elements sharing the same key, received from a producer.
type StreamPartition[T any, K comparable] struct {
	upstream *streamCursor[T]
	keyOf    KeyFunc[T, K]
	key      K

	current    T
	next       T
	hasNext    bool
	terminated bool
}

// PartitionStream starts prod and returns the partitions of the elements it produces, where
// consecutive elements with equal keys belong to the same partition.
// The producer runs under a context derived from ctx. Close must be called to release it.
func PartitionStream[T any, K comparable](ctx context.Context, prod ProducerFunc[T], key KeyFunc[T, K]) *StreamPartitioned[T, K] {
	ctx, cancel := context.WithCancelCause(ctx)

	return &StreamPartitioned[T, K]{
		upstream: &streamCursor[T]{
			zip: streamZipper[T]{
				ctx: ctx,
				ch:  prod(ctx, cancel),
			},
			cancel: cancel,
		},
		key: key,
	}
}

// Next returns the next partition, or false if there are no more partitions.
// It returns a NotConsumedError if the previous partition has not been consumed to its end,
// the cause of the cancelation if the producer canceled the stream, or the cause of ctx
// if ctx is done before the next partition is available.
// Only NotConsumedError is permanent; after other errors, Next may be called again.
//
// Once the context passed to PartitionStream is done, Next returns its cause, even if the
// producer had already sent all elements: elements received but not yet returned are dropped.
func (p *StreamPartitioned[T, K]) Next(ctx context.Context) (*StreamPartition[T, K], bool, error) {
	if p.err != nil {
		return nil, false, p.err
	}

	pair, ok, err := p.upstream.pull(ctx)
	if err != nil {
		return nil, false, err
	}

	if !ok {
		return nil, false, nil
	}

	key := p.key(pair.Current)
	if p.hasLast && key == p.last {
		p.err = &NotConsumedError[K]{Key: key}
		return nil, false, p.err
	}

	p.last, p.hasLast = key, true

	return &StreamPartition[T, K]{
		upstream: p.upstream,
		keyOf:    p.key,
		key:      key,
		current:  pair.Current,
		next:     pair.Next,
		hasNext:  pair.HasNext,
	}, true, nil
}

// All returns a sequence over the remaining partitions.
// If Next returns an error, it is yielded once and the sequence ends.
// The stream is closed when the sequence ends.
func (p *StreamPartitioned[T, K]) All(ctx context.Context) iter.Seq2[*StreamPartition[T, K], error] {
	return func(yield func(*StreamPartition[T, K], error) bool) {
		defer p.Close()

		for {
			part, ok, err := p.Next(ctx)
			if err != nil {
				yield(nil, err)
				return
			}

			if !ok || !yield(part, nil) {
				return
			}
		}
	}
}

// Close cancels the producer. Afterwards, Next and the Next method of all partitions
// report that there are no more elements.
// If the producer had canceled the stream before, Close returns the cause.
func (p *StreamPartitioned[T, K]) Close() error {
	return p.upstream.close()
}

// Key returns the key shared by all elements of the partition.
func (p *StreamPartition[T, K]) Key() K {
	return p.key
}

// Next returns the next element of the partition, or false if the partition is exhausted.
// Once it has returned false, it keeps returning false.
// If ctx is done or the producer cancels the stream before the next element is available,
// Next returns the cause, and may be called again.
// As with StreamPartitioned.Next, a done stream context drops elements not yet returned.
func (p *StreamPartition[T, K]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if p.terminated {
		return zero, false, nil
	}

	if p.hasNext && p.keyOf(p.next) == p.key {
		pair, ok, err := p.upstream.pull(ctx)
		if err != nil {
			return zero, false, err
		}

		if !ok {
			if p.upstream.closed.Load() {
				p.terminate()
				return zero, false, nil
			}

			panic(ErrUpstreamDiverged)
		}

		elem := p.current
		p.current, p.next, p.hasNext = pair.Current, pair.Next, pair.HasNext

		return elem, true, nil
	}

	elem := p.current
	p.terminate()

	return elem, true, nil
}

// All returns a sequence over the remaining elements of the partition.
// If Next returns an error, it is yielded once and the sequence ends.
func (p *StreamPartition[T, K]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			elem, ok, err := p.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)

				return
			}

			if !ok || !yield(elem, nil) {
				return
			}
		}
	}
}

// Collect consumes the partition and returns its remaining elements.
// If an error occurs, it returns the elements consumed so far, and the error.
func (p *StreamPartition[T, K]) Collect(ctx context.Context) ([]T, error) {
	elems := []T{}

	for elem, err := range p.All(ctx) {
		if err != nil {
			return elems, err
		}

		elems = append(elems, elem)
	}

	return elems, nil
}

func (p *StreamPartition[T, K]) terminate() {
	var zero T
	p.current, p.next, p.hasNext = zero, zero, false
	p.terminated = true
}
