package parquetio

import (
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/array"
	"github.com/brimdata/colmat/materialize"
	goparquet "github.com/fraugster/parquet-go"
	"github.com/fraugster/parquet-go/parquet"
)

var (
	ErrSchemaChanged = errors.New("parquetio: result schema differs from file schema")
	ErrRequiredNull  = errors.New("parquetio: null in required column")
)

type Writer struct {
	w        io.WriteCloser
	fw       *goparquet.FileWriter
	schema   colmat.Schema
	names    []string
	optional []bool
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Close() error {
	var err error
	if w.fw != nil {
		err = w.fw.Close()
	}
	if err2 := w.w.Close(); err == nil {
		err = err2
	}
	return err
}

// Write adds the rows of res to the file as one row group.  The file
// schema comes from the first result: a column is optional if it is
// nullable or holds a null there.  A null in a later result's required
// column is ErrRequiredNull.
func (w *Writer) Write(res *materialize.Result) error {
	if w.fw == nil {
		optional := make([]bool, len(res.Schema))
		for i, c := range res.Schema {
			optional[i] = c.Nullable || (i < len(res.Columns) && res.Columns[i].NullCount() > 0)
		}
		sd, err := newSchemaDefinition(res.Schema, optional)
		if err != nil {
			return err
		}
		w.schema = res.Schema
		w.names = res.Schema.UniqueNames()
		w.optional = optional
		w.fw = goparquet.NewFileWriter(w.w,
			goparquet.WithSchemaDefinition(sd),
			goparquet.WithCompressionCodec(parquet.CompressionCodec_SNAPPY),
			goparquet.WithCreator("colmat"),
		)
	} else if w.schema.String() != res.Schema.String() {
		return ErrSchemaChanged
	}
	if len(res.Columns) != len(w.schema) {
		return fmt.Errorf("parquetio: %d columns for schema of %d", len(res.Columns), len(w.schema))
	}
	for k, col := range res.Columns {
		if !w.optional[k] && col.NullCount() > 0 {
			return fmt.Errorf("%w: %q", ErrRequiredNull, w.names[k])
		}
	}
	for row := 0; row < res.Rows; row++ {
		data := make(map[string]interface{}, len(res.Columns))
		for k, col := range res.Columns {
			if v := newData(col, row); v != nil {
				data[w.names[k]] = v
			}
		}
		if err := w.fw.AddData(data); err != nil {
			return err
		}
	}
	if res.Rows == 0 {
		return nil
	}
	return w.fw.FlushRowGroup()
}

// newData returns cell i of a as the value parquet-go expects for its
// physical type, or nil for NULL.
func newData(a array.Array, i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	switch a := a.(type) {
	case *array.Fixed[int64]:
		return a.Values[i]
	case *array.Fixed[float64]:
		return a.Values[i]
	case *array.Fixed[bool]:
		return a.Values[i]
	case *array.Fixed[int32]:
		return a.Values[i]
	case *array.String:
		return []byte(a.Value(i))
	}
	return nil
}
