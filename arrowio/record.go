package arrowio

import (
	"fmt"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/bitutil"
	"github.com/apache/arrow/go/v11/arrow/memory"
	colarray "github.com/brimdata/colmat/array"
	"github.com/brimdata/colmat/materialize"
)

// NewRecord converts res into a single Arrow record.  Value slices of
// res are shared with the record, so res must not be modified while the
// record is in use.  The caller must Release the record.
func NewRecord(mem memory.Allocator, res *materialize.Result) (arrow.Record, error) {
	schema, err := NewSchema(res.Schema)
	if err != nil {
		return nil, err
	}
	if len(res.Columns) != len(res.Schema) {
		return nil, fmt.Errorf("arrowio: %d columns for schema of %d", len(res.Columns), len(res.Schema))
	}
	cols := make([]arrow.Array, 0, len(res.Columns))
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()
	for i, c := range res.Columns {
		if c.Type() != res.Schema[i].Type {
			return nil, fmt.Errorf("arrowio: column %q holds %s values, schema says %s", res.Schema[i].Name, c.Type(), res.Schema[i].Type)
		}
		if c.Len() != res.Rows {
			return nil, fmt.Errorf("arrowio: column %q has %d rows, expected %d", res.Schema[i].Name, c.Len(), res.Rows)
		}
		a, err := newArrowArray(mem, schema.Field(i).Type, c)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", res.Schema[i].Name, err)
		}
		cols = append(cols, a)
	}
	return array.NewRecord(schema, cols, int64(res.Rows)), nil
}

func newArrowArray(mem memory.Allocator, dt arrow.DataType, c colarray.Array) (arrow.Array, error) {
	switch c := c.(type) {
	case *colarray.Fixed[int64]:
		// Int64 and Timestamp share a layout.
		return wrap(dt, c.Len(), c.Nulls, memory.NewBufferBytes(arrow.Int64Traits.CastToBytes(c.Values))), nil
	case *colarray.Fixed[float64]:
		return wrap(dt, c.Len(), c.Nulls, memory.NewBufferBytes(arrow.Float64Traits.CastToBytes(c.Values))), nil
	case *colarray.Fixed[int32]:
		return wrap(dt, c.Len(), c.Nulls, memory.NewBufferBytes(arrow.Int32Traits.CastToBytes(c.Values))), nil
	case *colarray.Fixed[bool]:
		// Arrow packs booleans into bits so these are copied.
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.AppendValues(c.Values, validBytes(c.Nulls))
		return b.NewArray(), nil
	case *colarray.String:
		offsets := memory.NewBufferBytes(arrow.Int32Traits.CastToBytes(c.Offsets))
		data := memory.NewBufferBytes(c.Data)
		return wrap(dt, c.Len(), c.Nulls, offsets, data), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, c)
}

// wrap builds an array of type dt from value buffers that follow the
// validity bitmap.
func wrap(dt arrow.DataType, n int, nulls []bool, buffers ...*memory.Buffer) arrow.Array {
	bitmap, nullCount := newBitmap(nulls)
	data := array.NewData(dt, n, append([]*memory.Buffer{bitmap}, buffers...), nil, nullCount, 0)
	defer data.Release()
	return array.MakeFromData(data)
}

// newBitmap packs nulls into an Arrow validity bitmap where a set bit
// means the value is present.  It returns a nil bitmap if there are no
// nulls.
func newBitmap(nulls []bool) (*memory.Buffer, int) {
	var nullCount int
	for _, null := range nulls {
		if null {
			nullCount++
		}
	}
	if nullCount == 0 {
		return nil, 0
	}
	bits := make([]byte, bitutil.BytesForBits(int64(len(nulls))))
	for i, null := range nulls {
		if !null {
			bitutil.SetBit(bits, i)
		}
	}
	return memory.NewBufferBytes(bits), nullCount
}

func validBytes(nulls []bool) []bool {
	valid := make([]bool, len(nulls))
	for i, null := range nulls {
		valid[i] = !null
	}
	return valid
}
