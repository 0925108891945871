package partitioned

import "iter"

// KeyFunc returns the partition key of elem.
// It must be pure: calling it again on the same element must return an equal key.
type KeyFunc[T any, K comparable] func(elem T) K

// cursor is the upstream shared by a Partitioned and all of its partitions.
// Only one of them pulls from it at any time.
type cursor[T any] struct {
	zip     zipper[T]
	stop    func()
	stopped bool
}

func (c *cursor[T]) pull() (Pair[T], bool) {
	if c.stopped {
		return Pair[T]{}, false
	}

	return c.zip.pull()
}

func (c *cursor[T]) close() {
	if c.stopped {
		return
	}

	c.stopped = true
	c.stop()
	c.zip.clear()
}

// Partitioned is a sequence of partitions: each partition is a maximal run of
// consecutive elements with equal keys.
//
// A partition must be consumed to its end before the next one is requested.
// Partitioned does not notice an abandoned partition right away; the next call to Next
// returns a NotConsumedError if the abandoned partition had elements left.
type Partitioned[T any, K comparable] struct {
	upstream *cursor[T]
	key      KeyFunc[T, K]

	last    K
	hasLast bool

	err error
}

// Partition is a run of consecutive elements sharing the same key, in their original order.
type Partition[T any, K comparable] struct {
	upstream *cursor[T]
	keyOf    KeyFunc[T, K]
	key      K

	current    T
	next       T
	hasNext    bool
	terminated bool
}

// PartitionBy returns the partitions of seq, where consecutive elements with equal keys
// belong to the same partition.
// seq is consumed lazily, at most one element ahead of the element being returned.
// Callers that do not consume all partitions must call Stop.
func PartitionBy[T any, K comparable](seq iter.Seq[T], key KeyFunc[T, K]) *Partitioned[T, K] {
	next, stop := iter.Pull(seq)

	return &Partitioned[T, K]{
		upstream: &cursor[T]{
			zip:  zipper[T]{next: next},
			stop: stop,
		},
		key: key,
	}
}

// Next returns the next partition, or false if there are no more partitions.
// It returns a NotConsumedError if the previous partition has not been consumed to its end.
func (p *Partitioned[T, K]) Next() (*Partition[T, K], bool, error) {
	if p.err != nil {
		return nil, false, p.err
	}

	pair, ok := p.upstream.pull()
	if !ok {
		return nil, false, nil
	}

	key := p.key(pair.Current)
	if p.hasLast && key == p.last {
		p.err = &NotConsumedError[K]{Key: key}
		return nil, false, p.err
	}

	p.last, p.hasLast = key, true

	return &Partition[T, K]{
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
// The upstream is stopped when the sequence ends.
func (p *Partitioned[T, K]) All() iter.Seq2[*Partition[T, K], error] {
	return func(yield func(*Partition[T, K], error) bool) {
		defer p.Stop()

		for {
			part, ok, err := p.Next()
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

// Stop releases the upstream sequence. Afterwards, Next and the Next method of all
// partitions report that there are no more elements.
// Stop may be called multiple times.
func (p *Partitioned[T, K]) Stop() {
	p.upstream.close()
}

// Key returns the key shared by all elements of the partition.
func (p *Partition[T, K]) Key() K {
	return p.key
}

// Next returns the next element of the partition, or false if the partition is exhausted.
// Once it has returned false, it keeps returning false.
func (p *Partition[T, K]) Next() (T, bool) {
	var zero T

	if p.terminated {
		return zero, false
	}

	if p.hasNext && p.keyOf(p.next) == p.key {
		pair, ok := p.upstream.pull()
		if !ok {
			if p.upstream.stopped {
				p.terminate()
				return zero, false
			}

			panic(ErrUpstreamDiverged)
		}

		// pair.Current is the element in p.next
		elem := p.current
		p.current, p.next, p.hasNext = pair.Current, pair.Next, pair.HasNext

		return elem, true
	}

	elem := p.current
	p.terminate()

	return elem, true
}

// All returns a sequence over the remaining elements of the partition.
func (p *Partition[T, K]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			elem, ok := p.Next()
			if !ok || !yield(elem) {
				return
			}
		}
	}
}

// Collect consumes the partition and returns its remaining elements.
func (p *Partition[T, K]) Collect() []T {
	elems := []T{}
	for elem := range p.All() {
		elems = append(elems, elem)
	}

	return elems
}

func (p *Partition[T, K]) terminate() {
	var zero T
	p.current, p.next, p.hasNext = zero, zero, false
	p.terminated = true
}
