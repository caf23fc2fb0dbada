package arrowio

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/brimdata/colmat"
	colarray "github.com/brimdata/colmat/array"
	"github.com/brimdata/colmat/materialize"
)

// Reader reads an Arrow IPC stream written by Writer, returning each
// record batch as a Result whose columns are copied out of the record.
type Reader struct {
	rr     *ipc.Reader
	schema colmat.Schema
}

func NewReader(r io.Reader) (*Reader, error) {
	rr, err := ipc.NewReader(r)
	if err != nil {
		return nil, err
	}
	var schema colmat.Schema
	for _, f := range rr.Schema().Fields() {
		typ, err := newColumnType(f.Type)
		if err != nil {
			rr.Release()
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		schema = append(schema, colmat.Column{Name: f.Name, Type: typ, Nullable: f.Nullable})
	}
	return &Reader{rr: rr, schema: schema}, nil
}

func (r *Reader) Schema() colmat.Schema {
	return r.schema
}

// Read returns the next record batch or nil at the end of the stream.
func (r *Reader) Read() (*materialize.Result, error) {
	if !r.rr.Next() {
		return nil, r.rr.Err()
	}
	rec := r.rr.Record()
	res := &materialize.Result{
		Schema:  r.schema,
		Rows:    int(rec.NumRows()),
		Batches: 1,
	}
	for i, col := range rec.Columns() {
		c, err := newColumn(r.schema[i].Type, col)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", r.schema[i].Name, err)
		}
		res.Columns = append(res.Columns, c)
	}
	return res, nil
}

func (r *Reader) Close() error {
	if r.rr != nil {
		r.rr.Release()
		r.rr = nil
	}
	return nil
}

func nullsOf(a arrow.Array) []bool {
	nulls := make([]bool, a.Len())
	for i := range nulls {
		nulls[i] = a.IsNull(i)
	}
	return nulls
}

func newColumn(typ colmat.Type, a arrow.Array) (colarray.Array, error) {
	n := a.Len()
	switch a := a.(type) {
	case *array.Int64:
		return &colarray.Fixed[int64]{Typ: typ, Values: append([]int64{}, a.Int64Values()...), Nulls: nullsOf(a)}, nil
	case *array.Float64:
		return &colarray.Fixed[float64]{Typ: typ, Values: append([]float64{}, a.Float64Values()...), Nulls: nullsOf(a)}, nil
	case *array.Boolean:
		values := make([]bool, n)
		for i := range values {
			values[i] = a.Value(i)
		}
		return &colarray.Fixed[bool]{Typ: typ, Values: values, Nulls: nullsOf(a)}, nil
	case *array.Timestamp:
		values := make([]int64, n)
		for i, v := range a.TimestampValues() {
			values[i] = int64(v)
		}
		return &colarray.Fixed[int64]{Typ: typ, Values: values, Nulls: nullsOf(a)}, nil
	case *array.Date32:
		values := make([]int32, n)
		for i, v := range a.Date32Values() {
			values[i] = int32(v)
		}
		return &colarray.Fixed[int32]{Typ: typ, Values: values, Nulls: nullsOf(a)}, nil
	case *array.String:
		s := &colarray.String{Offsets: make([]int32, 1, n+1), Nulls: nullsOf(a)}
		for i := 0; i < n; i++ {
			if !a.IsNull(i) {
				s.Data = append(s.Data, a.Value(i)...)
			}
			s.Offsets = append(s.Offsets, int32(len(s.Data)))
		}
		if s.Data == nil {
			s.Data = []byte{}
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, a.DataType())
}
