// Package buffer implements the fixed-capacity column buffers a row batch
// source fills for each fetched batch.  A Column holds up to Cap() encoded
// values laid out back to back at a fixed stride, plus one indicator per
// slot.  An indicator equal to the column's Null sentinel marks SQL NULL;
// for variable-width columns any other indicator is the value's length.
//
// Values are stored in the host's native byte order so that fixed-width
// numeric columns can be block copied straight into typed Go slices.
package buffer

import (
	"fmt"
	"unsafe"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/colerr"
)

// NullData is the conventional null indicator of ODBC-style drivers.
// Sources may choose a different sentinel per column.
const NullData int64 = -1

type Column struct {
	Type       colmat.Type
	Stride     int
	Data       []byte
	Indicators []int64
	Null       int64
}

// New allocates a buffer with room for capacity values of the fixed-width
// type typ.  Use NewString for strings.
func New(typ colmat.Type, capacity int) (*Column, error) {
	width := typ.Width()
	if width == 0 {
		return nil, colerr.E(colerr.UnsupportedType, "no fixed-width buffer layout for %s", typ)
	}
	return alloc(typ, width, capacity), nil
}

// NewString allocates a buffer for capacity strings of at most maxLen bytes.
func NewString(capacity, maxLen int) *Column {
	if maxLen < 1 {
		maxLen = 1
	}
	return alloc(colmat.TypeString, maxLen, capacity)
}

func alloc(typ colmat.Type, stride, capacity int) *Column {
	return &Column{
		Type:       typ,
		Stride:     stride,
		Data:       make([]byte, stride*capacity),
		Indicators: make([]int64, capacity),
		Null:       NullData,
	}
}

// Cap returns the number of slots backed by both the data region and the
// indicator array.
func (c *Column) Cap() int {
	if c.Stride <= 0 {
		return 0
	}
	n := len(c.Data) / c.Stride
	if len(c.Indicators) < n {
		n = len(c.Indicators)
	}
	return n
}

// Validate returns a TruncatedBatch error if c cannot hold rows values.
func (c *Column) Validate(rows int) error {
	if rows < 0 {
		return colerr.E(colerr.TruncatedBatch, "negative row count %d", rows)
	}
	if w := c.Type.Width(); w != 0 && c.Stride != w {
		return colerr.E(colerr.TruncatedBatch, "%s buffer has stride %d, expected %d", c.Type, c.Stride, w)
	}
	if n := c.Cap(); n < rows {
		return colerr.E(colerr.TruncatedBatch, "%s buffer holds %d rows, batch reported %d", c.Type, n, rows)
	}
	return nil
}

// Raw returns the data region of the first rows slots.
func (c *Column) Raw(rows int) []byte {
	return c.Data[:rows*c.Stride]
}

func (c *Column) IsNull(i int) bool {
	return c.Indicators[i] == c.Null
}

func (c *Column) SetNull(i int) {
	c.Indicators[i] = c.Null
}

func (c *Column) ptr(i int) unsafe.Pointer {
	return unsafe.Pointer(&c.Data[i*c.Stride])
}

func (c *Column) present(i int) {
	c.Indicators[i] = int64(c.Stride)
}

func (c *Column) SetInt64(i int, v int64) {
	*(*int64)(c.ptr(i)) = v
	c.present(i)
}

func (c *Column) Int64(i int) int64 {
	return *(*int64)(c.ptr(i))
}

func (c *Column) SetFloat64(i int, v float64) {
	*(*float64)(c.ptr(i)) = v
	c.present(i)
}

func (c *Column) Float64(i int) float64 {
	return *(*float64)(c.ptr(i))
}

func (c *Column) SetBool(i int, v bool) {
	var b byte
	if v {
		b = 1
	}
	c.Data[i*c.Stride] = b
	c.present(i)
}

func (c *Column) Bool(i int) bool {
	return c.Data[i*c.Stride] != 0
}

// SetString stores s in slot i.  As with ODBC drivers, a value longer than
// the stride is cut off while the indicator keeps its full length, which
// Bytes reports as a truncation.
func (c *Column) SetString(i int, s string) {
	copy(c.Data[i*c.Stride:(i+1)*c.Stride], s)
	c.Indicators[i] = int64(len(s))
}

// Bytes returns the variable-length value in slot i, which must not be null.
// The result aliases the buffer.
func (c *Column) Bytes(i int) ([]byte, error) {
	n := c.Indicators[i]
	if n < 0 || n > int64(c.Stride) {
		return nil, colerr.E(colerr.TruncatedBatch, "row %d: value of length %d exceeds buffer width %d", i, n, c.Stride)
	}
	off := i * c.Stride
	return c.Data[off : off+int(n)], nil
}

func (c *Column) String() string {
	return fmt.Sprintf("%s[%d x %d]", c.Type, c.Cap(), c.Stride)
}
