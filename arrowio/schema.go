// Package arrowio hands materialized columns to Apache Arrow.  Fixed-width
// and string columns are wrapped without copying their values; the
// validity slices are packed into Arrow null bitmaps.
package arrowio

import (
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/brimdata/colmat"
)

var ErrUnsupportedType = errors.New("arrowio: unsupported type")

// NewSchema returns the Arrow schema for schema.  Duplicate column names,
// which SQL permits, are made unique by appending a counter.
func NewSchema(schema colmat.Schema) (*arrow.Schema, error) {
	names := schema.UniqueNames()
	fields := make([]arrow.Field, 0, len(schema))
	for i, c := range schema {
		dt, err := newArrowDataType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		fields = append(fields, arrow.Field{
			Name:     names[i],
			Type:     dt,
			Nullable: c.Nullable,
		})
	}
	return arrow.NewSchema(fields, nil), nil
}

func newArrowDataType(typ colmat.Type) (arrow.DataType, error) {
	switch typ {
	case colmat.TypeInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case colmat.TypeFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case colmat.TypeBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case colmat.TypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_us, nil
	case colmat.TypeDate:
		return arrow.FixedWidthTypes.Date32, nil
	case colmat.TypeString:
		return arrow.BinaryTypes.String, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
}

func newColumnType(dt arrow.DataType) (colmat.Type, error) {
	switch dt.ID() {
	case arrow.INT64:
		return colmat.TypeInt64, nil
	case arrow.FLOAT64:
		return colmat.TypeFloat64, nil
	case arrow.BOOL:
		return colmat.TypeBool, nil
	case arrow.TIMESTAMP:
		if unit := dt.(*arrow.TimestampType).Unit; unit != arrow.Microsecond {
			return colmat.TypeUnknown, fmt.Errorf("%w: timestamp[%s]", ErrUnsupportedType, unit)
		}
		return colmat.TypeTimestamp, nil
	case arrow.DATE32:
		return colmat.TypeDate, nil
	case arrow.STRING:
		return colmat.TypeString, nil
	}
	return colmat.TypeUnknown, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
}
