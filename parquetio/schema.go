// Package parquetio writes materialized results as Parquet files, one row
// group per result.
package parquetio

import (
	"errors"
	"fmt"

	"github.com/brimdata/colmat"
	"github.com/fraugster/parquet-go/parquet"
	"github.com/fraugster/parquet-go/parquetschema"
)

var ErrUnsupportedType = errors.New("parquetio: unsupported type")

var (
	repetitionRequired = parquet.FieldRepetitionTypePtr(parquet.FieldRepetitionType_REQUIRED)
	repetitionOptional = parquet.FieldRepetitionTypePtr(parquet.FieldRepetitionType_OPTIONAL)

	convertedUTF8            = parquet.ConvertedTypePtr(parquet.ConvertedType_UTF8)
	convertedDate            = parquet.ConvertedTypePtr(parquet.ConvertedType_DATE)
	convertedInt64           = parquet.ConvertedTypePtr(parquet.ConvertedType_INT_64)
	convertedTimestampMicros = parquet.ConvertedTypePtr(parquet.ConvertedType_TIMESTAMP_MICROS)

	logicalString          = &parquet.LogicalType{STRING: &parquet.StringType{}}
	logicalDate            = &parquet.LogicalType{DATE: &parquet.DateType{}}
	logicalInt64           = &parquet.LogicalType{INTEGER: &parquet.IntType{BitWidth: 64, IsSigned: true}}
	logicalTimestampMicros = &parquet.LogicalType{TIMESTAMP: &parquet.TimestampType{
		IsAdjustedToUTC: true,
		Unit:            &parquet.TimeUnit{MICROS: &parquet.MicroSeconds{}},
	}}
)

// newSchemaDefinition defines a column as optional when its descriptor is
// nullable or when optional says so, since nullability reported by a
// driver is advisory.
func newSchemaDefinition(schema colmat.Schema, optional []bool) (*parquetschema.SchemaDefinition, error) {
	names := schema.UniqueNames()
	var children []*parquetschema.ColumnDefinition
	for i, c := range schema {
		c.Nullable = c.Nullable || optional[i]
		col, err := newColumnDefinition(names[i], c)
		if err != nil {
			return nil, err
		}
		children = append(children, col)
	}
	s := &parquetschema.SchemaDefinition{
		RootColumn: &parquetschema.ColumnDefinition{
			Children: children,
			SchemaElement: &parquet.SchemaElement{
				Name: "colmat",
			},
		},
	}
	return s, s.ValidateStrict()
}

func newColumnDefinition(name string, c colmat.Column) (*parquetschema.ColumnDefinition, error) {
	switch c.Type {
	case colmat.TypeInt64:
		return newPrimitiveColumnDefinition(name, c.Nullable, parquet.Type_INT64, convertedInt64, logicalInt64), nil
	case colmat.TypeFloat64:
		return newPrimitiveColumnDefinition(name, c.Nullable, parquet.Type_DOUBLE, nil, nil), nil
	case colmat.TypeBool:
		return newPrimitiveColumnDefinition(name, c.Nullable, parquet.Type_BOOLEAN, nil, nil), nil
	case colmat.TypeTimestamp:
		return newPrimitiveColumnDefinition(name, c.Nullable, parquet.Type_INT64, convertedTimestampMicros, logicalTimestampMicros), nil
	case colmat.TypeDate:
		return newPrimitiveColumnDefinition(name, c.Nullable, parquet.Type_INT32, convertedDate, logicalDate), nil
	case colmat.TypeString:
		return newPrimitiveColumnDefinition(name, c.Nullable, parquet.Type_BYTE_ARRAY, convertedUTF8, logicalString), nil
	}
	return nil, fmt.Errorf("%w: column %q: %s", ErrUnsupportedType, c.Name, c.Type)
}

func newPrimitiveColumnDefinition(name string, nullable bool, t parquet.Type, c *parquet.ConvertedType, l *parquet.LogicalType) *parquetschema.ColumnDefinition {
	repetition := repetitionRequired
	if nullable {
		repetition = repetitionOptional
	}
	return &parquetschema.ColumnDefinition{
		SchemaElement: &parquet.SchemaElement{
			Type:           parquet.TypePtr(t),
			RepetitionType: repetition,
			Name:           name,
			ConvertedType:  c,
			LogicalType:    l,
		},
	}
}
