package partitioned

import (
	"errors"
	"fmt"
)

// ErrNotConsumed is matched by every NotConsumedError, regardless of its key type.
var ErrNotConsumed = errors.New("partition not consumed")

// ErrUpstreamDiverged is the value a partition panics with if the shared upstream is exhausted
// although the partition has already seen a successor with the same key.
// It can only be caused by a bug in this package, never by the input.
var ErrUpstreamDiverged = errors.New("upstream exhausted before end of partition")

// A NotConsumedError is returned when the sequence of partitions is advanced before the
// previous partition has been consumed to its end.
// Once returned, the sequence of partitions keeps returning the same error.
type NotConsumedError[K comparable] struct {
	// Key is the key of the partition that was not consumed.
	Key K
}

// Error implements error.
func (e *NotConsumedError[K]) Error() string {
	return fmt.Sprintf("partition with key %v not consumed", e.Key)
}

// Is reports whether target is ErrNotConsumed.
func (e *NotConsumedError[K]) Is(target error) bool {
	return target == ErrNotConsumed
}
