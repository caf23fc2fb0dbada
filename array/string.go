package array

import (
	"math"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/buffer"
	"github.com/brimdata/colmat/colerr"
)

// stringBuilder keeps an offsets slice one longer than the row count and a
// byte region holding the concatenated values.  Both grow geometrically.
type stringBuilder struct {
	offsets  []int32
	data     []byte
	nulls    []bool
	min      int
	consumed bool
}

func newStringBuilder(capacity int) *stringBuilder {
	offsets := make([]int32, 1, capacity+1)
	return &stringBuilder{
		offsets: offsets,
		data:    make([]byte, 0, capacity*8),
		nulls:   make([]bool, 0, capacity),
		min:     capacity,
	}
}

func (s *stringBuilder) Type() colmat.Type { return colmat.TypeString }
func (s *stringBuilder) Len() int          { return len(s.nulls) }
func (s *stringBuilder) Cap() int          { return cap(s.nulls) }

func (s *stringBuilder) AppendBatch(col *buffer.Column, count int) error {
	if s.consumed {
		return errConsumed(colmat.TypeString)
	}
	if err := checkBatch(colmat.TypeString, col, count); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	// Check every length before touching any storage so a bad value
	// leaves the builder as it was.
	var size int
	for i := 0; i < count; i++ {
		if col.IsNull(i) {
			continue
		}
		b, err := col.Bytes(i)
		if err != nil {
			return err
		}
		size += len(b)
	}
	if err := checkDataSize(len(s.data), size); err != nil {
		return err
	}
	off := len(s.nulls)
	s.nulls = grow(s.nulls, off+count, s.min)
	s.offsets = grow(s.offsets, off+count+1, s.min+1)
	nulls := s.nulls[off:]
	markNulls(nulls, col)
	pos := len(s.data)
	s.data = grow(s.data, pos+size, s.min*8)
	for i, null := range nulls {
		if !null {
			b, _ := col.Bytes(i)
			pos += copy(s.data[pos:], b)
		}
		s.offsets[off+i+1] = int32(pos)
	}
	return nil
}

func (s *stringBuilder) Finish() (Array, error) {
	if s.consumed {
		return nil, errConsumed(colmat.TypeString)
	}
	a := &String{
		Offsets: exact(s.offsets),
		Data:    exact(s.data),
		Nulls:   exact(s.nulls),
	}
	s.Release()
	return a, nil
}

func (s *stringBuilder) Release() {
	s.offsets = nil
	s.data = nil
	s.nulls = nil
	s.consumed = true
}

// checkDataSize reports whether a column holding have bytes of string data
// can take add more while its offsets stay within int32.
func checkDataSize(have, add int) error {
	if have+add > math.MaxInt32 {
		return colerr.E(colerr.Overflow, "string column exceeds %d bytes", math.MaxInt32)
	}
	return nil
}
