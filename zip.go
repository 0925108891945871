package partitioned

import "iter"

// Pair is an element of a sequence paired with the element following it.
// HasNext is false for the last element, in which case Next is the zero value.
type Pair[T any] struct {
	// Current is the element itself.
	Current T

	// Next is the element that follows Current, if HasNext is true.
	Next T

	// HasNext reports whether Current has a successor.
	HasNext bool
}

// zipper pairs each element pulled from next with its successor.
// It holds at most one element that has been pulled but not yet emitted.
type zipper[T any] struct {
	next func() (T, bool)

	prev    T
	hasPrev bool
}

// pull returns the next pair, or false once the underlying sequence is exhausted
// and the lookahead slot has been drained.
func (z *zipper[T]) pull() (Pair[T], bool) {
	item, ok := z.next()
	if !ok {
		if !z.hasPrev {
			return Pair[T]{}, false
		}

		last := z.prev
		z.clear()

		return Pair[T]{Current: last}, true
	}

	if z.hasPrev {
		pair := Pair[T]{Current: z.prev, Next: item, HasNext: true}
		z.prev = item

		return pair, true
	}

	// first pairing: seed the slot with a second element
	next, ok := z.next()
	if !ok {
		return Pair[T]{Current: item}, true
	}

	z.prev, z.hasPrev = next, true

	return Pair[T]{Current: item, Next: next, HasNext: true}, true
}

func (z *zipper[T]) clear() {
	var zero T
	z.prev, z.hasPrev = zero, false
}

// ZipWithNext returns a sequence that yields every element of seq paired with the element following it.
// For n elements it yields exactly n pairs; the last one has no successor.
// seq is pulled lazily, never more than one element ahead of the pair being yielded.
func ZipWithNext[T any](seq iter.Seq[T]) iter.Seq[Pair[T]] {
	return func(yield func(Pair[T]) bool) {
		next, stop := iter.Pull(seq)
		defer stop()

		zip := zipper[T]{next: next}

		for {
			pair, ok := zip.pull()
			if !ok || !yield(pair) {
				return
			}
		}
	}
}
