// Package sqlsource adapts database/sql result rows to the
// source.RowBatchSource contract.  Rows are scanned one at a time into a
// fixed set of column buffers sized by a BufferSize, so the materializer
// sees the same batched, indicator-based view a bulk-fetching driver would
// give it.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/units"
	"github.com/araddon/dateparse"
	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/buffer"
	"github.com/brimdata/colmat/colerr"
	"github.com/brimdata/colmat/source"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultStringWidth = 1024
	// MaxStringWidth bounds the stride taken from driver column lengths.
	MaxStringWidth = 1 << 16
)

// DefaultBufferSize is the byte budget for one batch of buffers.
var DefaultBufferSize BufferSize = Bytes(20 * units.MiB)

// BufferSize determines how many rows each fetch holds.  It is either a
// row count (Rows) or a memory budget (Bytes).
type BufferSize interface {
	// Rows returns the batch capacity for rows of the given byte width.
	Rows(width int) int
}

type Rows int

func (r Rows) Rows(int) int {
	if r < 1 {
		return 1
	}
	return int(r)
}

func (r Rows) String() string {
	return fmt.Sprintf("%d rows", int(r))
}

type Bytes units.Base2Bytes

// Rows divides the budget among rows of width bytes, keeping at least one
// row.
func (b Bytes) Rows(width int) int {
	if width < 1 {
		width = 1
	}
	n := int(int64(b) / int64(width))
	if n < 1 {
		return 1
	}
	return n
}

func (b Bytes) String() string {
	return units.Base2Bytes(b).String()
}

type Option func(*Source)

func WithBufferSize(size BufferSize) Option {
	return func(s *Source) {
		s.size = size
	}
}

// WithStringWidth sets the stride of string columns whose driver reports no
// length.  Values longer than the stride fail materialization as truncated.
func WithStringWidth(n int) Option {
	return func(s *Source) {
		s.stringWidth = n
	}
}

// WithNFC converts string values to Unicode normalization form C before
// they are stored.
func WithNFC() Option {
	return func(s *Source) {
		s.nfc = true
	}
}

type Source struct {
	rows        *sql.Rows
	schema      colmat.Schema
	buffers     []*buffer.Column
	dest        []interface{}
	size        BufferSize
	stringWidth int
	capacity    int
	nfc         bool
	done        bool
}

var _ source.RowBatchSource = (*Source)(nil)

// New reads the column metadata of rows and allocates the batch buffers.
// The Source takes ownership of rows.
func New(rows *sql.Rows, opts ...Option) (*Source, error) {
	s := &Source{
		rows:        rows,
		size:        DefaultBufferSize,
		stringWidth: DefaultStringWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, colerr.E(colerr.SourceUnavailable, err)
	}
	strides := make([]int, len(types))
	var width int
	for i, ct := range types {
		typ := LookupType(ct.DatabaseTypeName())
		nullable, ok := ct.Nullable()
		if !ok {
			nullable = true
		}
		s.schema = append(s.schema, colmat.Column{
			Name:     ct.Name(),
			Type:     typ,
			Nullable: nullable,
		})
		strides[i] = s.stride(typ, ct)
		width += strides[i]
	}
	s.capacity = s.size.Rows(width)
	for i, c := range s.schema {
		col := &buffer.Column{
			Type:       c.Type,
			Stride:     strides[i],
			Data:       make([]byte, strides[i]*s.capacity),
			Indicators: make([]int64, s.capacity),
			Null:       buffer.NullData,
		}
		s.buffers = append(s.buffers, col)
		s.dest = append(s.dest, newDest(c.Type))
	}
	return s, nil
}

func (s *Source) stride(typ colmat.Type, ct *sql.ColumnType) int {
	if typ != colmat.TypeString {
		if w := typ.Width(); w > 0 {
			return w
		}
		// Columns with no decoder get a nominal slot; the
		// materializer rejects them before the first fetch.
		return 8
	}
	if n, ok := ct.Length(); ok && n > 0 && n <= MaxStringWidth {
		return int(n)
	}
	if s.stringWidth < 1 {
		return 1
	}
	return s.stringWidth
}

// LookupType maps a database type name, as reported by the driver, to a
// column type.  Unrecognized names are read as strings.
func LookupType(name string) colmat.Type {
	name = strings.ToUpper(name)
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	switch strings.TrimSpace(name) {
	case "INT", "INT2", "INT4", "INT8", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT", "SERIAL", "BIGSERIAL":
		return colmat.TypeInt64
	case "FLOAT", "FLOAT4", "FLOAT8", "REAL", "DOUBLE", "DOUBLE PRECISION", "NUMERIC", "DECIMAL":
		return colmat.TypeFloat64
	case "BOOL", "BOOLEAN", "BIT":
		return colmat.TypeBool
	case "TIMESTAMP", "TIMESTAMPTZ", "DATETIME", "TIMESTAMP WITH TIME ZONE", "TIMESTAMP WITHOUT TIME ZONE":
		return colmat.TypeTimestamp
	case "DATE":
		return colmat.TypeDate
	case "BYTEA", "BLOB", "BINARY", "VARBINARY":
		return colmat.TypeBinary
	}
	return colmat.TypeString
}

func newDest(typ colmat.Type) interface{} {
	switch typ {
	case colmat.TypeInt64:
		return new(sql.NullInt64)
	case colmat.TypeFloat64:
		return new(sql.NullFloat64)
	case colmat.TypeBool:
		return new(sql.NullBool)
	case colmat.TypeTimestamp, colmat.TypeDate:
		return new(nullTime)
	case colmat.TypeString:
		return new(sql.NullString)
	}
	return new(sql.RawBytes)
}

func (s *Source) Schema() colmat.Schema {
	return s.schema
}

// Capacity returns the number of rows each fetch can hold.
func (s *Source) Capacity() int {
	return s.capacity
}

func (s *Source) Buffers() []*buffer.Column {
	return s.buffers
}

// FetchNextBatch scans up to Capacity rows into the buffers.  If a scan or
// the driver fails partway through, the rows already scanned into this
// batch are dropped along with it and the error is returned.
func (s *Source) FetchNextBatch(ctx context.Context) (int, error) {
	if s.done {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int
	for n < s.capacity {
		if !s.rows.Next() {
			s.done = true
			if err := s.rows.Err(); err != nil {
				return 0, err
			}
			break
		}
		if err := s.rows.Scan(s.dest...); err != nil {
			return 0, err
		}
		s.store(n)
		n++
	}
	return n, nil
}

func (s *Source) store(row int) {
	for i, col := range s.buffers {
		switch v := s.dest[i].(type) {
		case *sql.NullInt64:
			if v.Valid {
				col.SetInt64(row, v.Int64)
				continue
			}
		case *sql.NullFloat64:
			if v.Valid {
				col.SetFloat64(row, v.Float64)
				continue
			}
		case *sql.NullBool:
			if v.Valid {
				col.SetBool(row, v.Bool)
				continue
			}
		case *nullTime:
			if v.Valid {
				if col.Type == colmat.TypeDate {
					col.SetDate(row, v.Time)
				} else {
					col.SetTimestamp(row, v.Time.UTC())
				}
				continue
			}
		case *sql.NullString:
			if v.Valid {
				if s.nfc {
					col.SetString(row, norm.NFC.String(v.String))
				} else {
					col.SetString(row, v.String)
				}
				continue
			}
		}
		col.SetNull(row)
	}
}

// nullTime scans time values as well as the text some drivers return for
// date and timestamp columns.  Text without a zone is read as UTC.
type nullTime struct {
	Time  time.Time
	Valid bool
}

func (n *nullTime) Scan(v interface{}) error {
	var err error
	switch v := v.(type) {
	case nil:
		n.Valid = false
		return nil
	case time.Time:
		n.Time = v
	case string:
		n.Time, err = dateparse.ParseIn(v, time.UTC)
	case []byte:
		n.Time, err = dateparse.ParseIn(string(v), time.UTC)
	default:
		err = fmt.Errorf("cannot scan %T into a time", v)
	}
	n.Valid = err == nil
	return err
}

// Close closes the underlying rows.
func (s *Source) Close() error {
	return s.rows.Close()
}
