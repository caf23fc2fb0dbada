// Package summary describes materialized columns: null counts, value
// ranges and approximate distinct counts.
package summary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/axiomhq/hyperloglog"
	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/array"
	"github.com/brimdata/colmat/materialize"
	"github.com/brimdata/colmat/tableio"
)

type Column struct {
	colmat.Column
	Rows  int
	Nulls int
	// Min and Max are the formatted extremes of the non-null values or
	// empty if every value is null.  NaN is left out of the range unless
	// it is the only value.
	Min, Max string

	sketch   *hyperloglog.Sketch
	min, max cell
	nan      bool
}

// cell identifies one value of a column so it can be formatted later.
type cell struct {
	a array.Array
	i int
}

func (c cell) String() string {
	if c.a == nil {
		return ""
	}
	return tableio.Format(c.a, c.i)
}

// Distinct returns the estimated number of distinct non-null values.
func (c *Column) Distinct() uint64 {
	return c.sketch.Estimate()
}

// Summary accumulates column statistics over a sequence of results with
// the same schema.
type Summary struct {
	Columns []*Column
	scratch []byte
}

func New(schema colmat.Schema) *Summary {
	s := &Summary{}
	for _, c := range schema {
		s.Columns = append(s.Columns, &Column{Column: c, sketch: hyperloglog.New()})
	}
	return s
}

func (s *Summary) Add(res *materialize.Result) error {
	if len(res.Columns) != len(s.Columns) {
		return fmt.Errorf("summary: %d columns for schema of %d", len(res.Columns), len(s.Columns))
	}
	for k, a := range res.Columns {
		c := s.Columns[k]
		if a.Type() != c.Type {
			return fmt.Errorf("summary: column %q holds %s values, expected %s", c.Name, a.Type(), c.Type)
		}
		c.Rows += a.Len()
		c.Nulls += a.NullCount()
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				continue
			}
			s.scratch = appendKey(s.scratch[:0], a, i)
			c.sketch.Insert(s.scratch)
			if isNaN(a, i) {
				c.nan = true
				continue
			}
			if c.min.a == nil || less(a, i, c.min) {
				c.min = cell{a, i}
			}
			if c.max.a == nil || less(c.max.a, c.max.i, cell{a, i}) {
				c.max = cell{a, i}
			}
		}
		c.Min, c.Max = c.min.String(), c.max.String()
		if c.min.a == nil && c.nan {
			c.Min, c.Max = "NaN", "NaN"
		}
	}
	return nil
}

func appendKey(b []byte, a array.Array, i int) []byte {
	switch a := a.(type) {
	case *array.Fixed[int64]:
		return binary.LittleEndian.AppendUint64(b, uint64(a.Values[i]))
	case *array.Fixed[float64]:
		return binary.LittleEndian.AppendUint64(b, math.Float64bits(a.Values[i]))
	case *array.Fixed[int32]:
		return binary.LittleEndian.AppendUint32(b, uint32(a.Values[i]))
	case *array.Fixed[bool]:
		if a.Values[i] {
			return append(b, 1)
		}
		return append(b, 0)
	case *array.String:
		return append(b, a.Data[a.Offsets[i]:a.Offsets[i+1]]...)
	}
	return b
}

func isNaN(a array.Array, i int) bool {
	f, ok := a.(*array.Fixed[float64])
	return ok && math.IsNaN(f.Values[i])
}

// less reports whether value i of a sorts before the value of c.  Both
// are non-null values of the same column type.
func less(a array.Array, i int, c cell) bool {
	switch a := a.(type) {
	case *array.Fixed[int64]:
		return a.Values[i] < c.a.(*array.Fixed[int64]).Values[c.i]
	case *array.Fixed[float64]:
		return a.Values[i] < c.a.(*array.Fixed[float64]).Values[c.i]
	case *array.Fixed[int32]:
		return a.Values[i] < c.a.(*array.Fixed[int32]).Values[c.i]
	case *array.Fixed[bool]:
		return !a.Values[i] && c.a.(*array.Fixed[bool]).Values[c.i]
	case *array.String:
		return a.Value(i) < c.a.(*array.String).Value(c.i)
	}
	return false
}

// WriteTo writes the summary as a text table.
func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	table := tabwriter.NewWriter(cw, 0, 8, 1, ' ', 0)
	fmt.Fprintln(table, "COLUMN\tTYPE\tROWS\tNULLS\tDISTINCT\tMIN\tMAX")
	for _, c := range s.Columns {
		min, max := c.Min, c.Max
		if min == "" && c.Rows == c.Nulls {
			min, max = tableio.Null, tableio.Null
		}
		fmt.Fprintf(table, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n", c.Name, c.Type, c.Rows, c.Nulls, c.Distinct(), min, max)
	}
	err := table.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Writer summarizes every result written to it and prints the summary
// on Close.
type Writer struct {
	w       io.WriteCloser
	summary *Summary
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(res *materialize.Result) error {
	if w.summary == nil {
		w.summary = New(res.Schema)
	}
	return w.summary.Add(res)
}

func (w *Writer) Close() error {
	var err error
	if w.summary != nil {
		_, err = w.summary.WriteTo(w.w)
	}
	if closeErr := w.w.Close(); err == nil {
		err = closeErr
	}
	return err
}
