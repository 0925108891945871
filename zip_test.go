package partitioned

import (
	"iter"
	"testing"

	"github.com/matryer/is"
)

func TestZipWithNext(t *testing.T) {
	is := is.New(t)

	is.Equal(collectPairs(ZipWithNext(seqOf[int]())), []Pair[int]{})

	is.Equal(collectPairs(ZipWithNext(seqOf(0))), []Pair[int]{
		{Current: 0},
	})

	is.Equal(collectPairs(ZipWithNext(seqOf(0, 1))), []Pair[int]{
		{Current: 0, Next: 1, HasNext: true},
		{Current: 1},
	})

	is.Equal(collectPairs(ZipWithNext(seqOf(0, 1, 2, 3))), []Pair[int]{
		{Current: 0, Next: 1, HasNext: true},
		{Current: 1, Next: 2, HasNext: true},
		{Current: 2, Next: 3, HasNext: true},
		{Current: 3},
	})
}

func TestZipWithNext_Length(t *testing.T) {
	is := is.New(t)

	for n := 0; n < 10; n++ {
		ints := make([]int, n)
		for i := range ints {
			ints[i] = i * 10
		}

		pairs := collectPairs(ZipWithNext(seqOf(ints...)))

		is.Equal(len(pairs), n)

		for i, pair := range pairs {
			is.Equal(pair.Current, ints[i])
			is.Equal(pair.HasNext, i < n-1)

			if pair.HasNext {
				is.Equal(pair.Next, ints[i+1])
			}
		}
	}
}

func TestZipWithNext_Lazy(t *testing.T) {
	is := is.New(t)

	pulled := 0

	ints := func(yield func(int) bool) {
		for i := 0; i < 5; i++ {
			pulled++

			if !yield(i) {
				return
			}
		}
	}

	index := 0

	for pair := range ZipWithNext(ints) {
		// one element ahead, but never more
		is.Equal(pulled, min(index+2, 5))
		is.Equal(pair.Current, index)

		index++
	}

	is.Equal(index, 5)
}

func TestZipWithNext_Break(t *testing.T) {
	is := is.New(t)

	stopped := false

	ints := func(yield func(int) bool) {
		defer func() {
			stopped = true
		}()

		for i := 0; i < 10; i++ {
			if !yield(i) {
				return
			}
		}
	}

	for pair := range ZipWithNext(ints) {
		if pair.Current == 2 {
			break
		}
	}

	is.True(stopped)
}

func TestZipper_ExhaustedStaysExhausted(t *testing.T) {
	is := is.New(t)

	next, stop := iter.Pull(seqOf(1))
	defer stop()

	zip := zipper[int]{next: next}

	pair, ok := zip.pull()
	is.True(ok)
	is.Equal(pair, Pair[int]{Current: 1})

	_, ok = zip.pull()
	is.True(!ok)

	_, ok = zip.pull()
	is.True(!ok)
}

func seqOf[T any](elems ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, elem := range elems {
			if !yield(elem) {
				return
			}
		}
	}
}

func collectPairs[T any](seq iter.Seq[Pair[T]]) []Pair[T] {
	pairs := []Pair[T]{}
	for pair := range seq {
		pairs = append(pairs, pair)
	}

	return pairs
}
