package array

import (
	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/buffer"
	"github.com/brimdata/colmat/colerr"
)

// DefaultCapacity is the number of rows a builder reserves when no
// better guess is available.
const DefaultCapacity = 64

// Builder accumulates the batches of one column.  Storage grows
// geometrically and is trimmed to the exact length by Finish, after which
// the builder cannot be used again.
type Builder interface {
	Type() colmat.Type
	// Len returns the number of rows appended so far.
	Len() int
	// Cap returns the number of rows the builder can hold without
	// reallocating.
	Cap() int
	// AppendBatch copies the first count rows of col.  Either all count
	// rows are appended or, on error, none are.
	AppendBatch(col *buffer.Column, count int) error
	Finish() (Array, error)
	// Release drops the builder's storage without producing an Array.
	Release()
}

// NewBuilder returns the builder for typ with room for capacity rows.
// This is the only place the materializer dispatches on column type.
func NewBuilder(typ colmat.Type, capacity int) (Builder, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	switch typ {
	case colmat.TypeInt64:
		return newFixedBuilder[int64](typ, capacity, copyRaw[int64]), nil
	case colmat.TypeFloat64:
		return newFixedBuilder[float64](typ, capacity, copyRaw[float64]), nil
	case colmat.TypeBool:
		return newFixedBuilder[bool](typ, capacity, decodeBools), nil
	case colmat.TypeTimestamp:
		return newFixedBuilder[int64](typ, capacity, decodeTimestamps), nil
	case colmat.TypeDate:
		return newFixedBuilder[int32](typ, capacity, decodeDates), nil
	case colmat.TypeString:
		return newStringBuilder(capacity), nil
	}
	return nil, colerr.E(colerr.UnsupportedType, "no builder for %s", typ)
}

func checkBatch(typ colmat.Type, col *buffer.Column, count int) error {
	if col == nil {
		return colerr.E(colerr.TruncatedBatch, "missing %s buffer", typ)
	}
	if col.Type != typ {
		return colerr.E(colerr.TruncatedBatch, "%s builder cannot append %s buffer", typ, col.Type)
	}
	return col.Validate(count)
}

func errConsumed(typ colmat.Type) error {
	return colerr.E(colerr.Consumed, "%s builder", typ)
}

// grow returns s extended to length n.  When the capacity of s is too
// small, the new capacity doubles from max(cap(s), min) until it fits,
// so a sequence of appends copies each element O(1) times on average.
func grow[T any](s []T, n, min int) []T {
	if n <= cap(s) {
		return s[:n]
	}
	c := cap(s)
	if c < min {
		c = min
	}
	if c < 1 {
		c = 1
	}
	for c < n {
		c *= 2
	}
	out := make([]T, n, c)
	copy(out, s)
	return out
}

// exact returns s with no spare capacity, copying if necessary.
// It never returns nil so that an empty column is still a column.
func exact[T any](s []T) []T {
	if s != nil && len(s) == cap(s) {
		return s
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// markNulls sets nulls[i] for each of the first len(nulls) slots of col
// from its indicator alone.
func markNulls(nulls []bool, col *buffer.Column) {
	for i := range nulls {
		nulls[i] = col.Indicators[i] == col.Null
	}
}
