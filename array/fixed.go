package array

import (
	"unsafe"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/buffer"
)

// decoder fills dst with the first len(dst) values of col.  nulls has
// already been filled and may be used to skip NULL slots.
type decoder[T any] func(dst []T, nulls []bool, col *buffer.Column)

type fixedBuilder[T any] struct {
	typ      colmat.Type
	values   []T
	nulls    []bool
	min      int
	decode   decoder[T]
	consumed bool
}

func newFixedBuilder[T any](typ colmat.Type, capacity int, decode decoder[T]) *fixedBuilder[T] {
	return &fixedBuilder[T]{
		typ:    typ,
		values: make([]T, 0, capacity),
		nulls:  make([]bool, 0, capacity),
		min:    capacity,
		decode: decode,
	}
}

func (f *fixedBuilder[T]) Type() colmat.Type { return f.typ }
func (f *fixedBuilder[T]) Len() int          { return len(f.values) }
func (f *fixedBuilder[T]) Cap() int          { return cap(f.values) }

func (f *fixedBuilder[T]) AppendBatch(col *buffer.Column, count int) error {
	if f.consumed {
		return errConsumed(f.typ)
	}
	if err := checkBatch(f.typ, col, count); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	off := len(f.values)
	f.values = grow(f.values, off+count, f.min)
	f.nulls = grow(f.nulls, off+count, f.min)
	nulls := f.nulls[off:]
	markNulls(nulls, col)
	f.decode(f.values[off:], nulls, col)
	return nil
}

func (f *fixedBuilder[T]) Finish() (Array, error) {
	if f.consumed {
		return nil, errConsumed(f.typ)
	}
	a := &Fixed[T]{
		Typ:    f.typ,
		Values: exact(f.values),
		Nulls:  exact(f.nulls),
	}
	f.Release()
	return a, nil
}

func (f *fixedBuilder[T]) Release() {
	f.values = nil
	f.nulls = nil
	f.consumed = true
}

// copyRaw block copies the native-order values of col into dst.
// The bytes of NULL slots are copied along with the rest.
func copyRaw[T any](dst []T, _ []bool, col *buffer.Column) {
	raw := col.Raw(len(dst))
	b := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(raw))
	copy(b, raw)
}

func decodeBools(dst []bool, _ []bool, col *buffer.Column) {
	raw := col.Raw(len(dst))
	for i, b := range raw {
		dst[i] = b != 0
	}
}

func decodeTimestamps(dst []int64, nulls []bool, col *buffer.Column) {
	for i := range dst {
		if nulls[i] {
			dst[i] = 0
			continue
		}
		dst[i] = col.Timestamp(i).Micros()
	}
}

func decodeDates(dst []int32, nulls []bool, col *buffer.Column) {
	for i := range dst {
		if nulls[i] {
			dst[i] = 0
			continue
		}
		dst[i] = col.Date(i).Days()
	}
}
