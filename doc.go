// Package partitioned splits sequences of elements into partitions: maximal runs of
// consecutive elements whose keys are equal.
//
// Elements are only ever compared by the keys of neighbours, so the input is not grouped
// globally. The sequence [1 2 2 1] has the three partitions [1], [2 2] and [1].
//
// Partitioning is lazy. Nothing is buffered except a single lookahead element, which is
// how a partition knows that it has reached its end. The outer sequence of partitions and
// the current partition share one upstream cursor. Because of that, a partition must be
// consumed to its end before the next partition is requested. Advancing early is reported
// as a NotConsumedError by that next request, not at the time the partition is abandoned.
//
// There are two flavours of the same algorithm:
//
//   - PartitionBy partitions an iter.Seq, pulling elements synchronously.
//   - PartitionStream partitions the elements produced by a ProducerFunc. Each call blocks
//     until the producer has sent enough elements, or the context is done.
//
// Producers form streams the same way they do in a stream pipeline: a ProducerFunc returns
// a channel of elements and may cancel the stream using a context.CancelCauseFunc. Partitions
// and RunLengths turn such streams into streams of partitions; EachPartition consumes them.
package partitioned
