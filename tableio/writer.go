// Package tableio writes materialized results as aligned text columns.
package tableio

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/array"
	"github.com/brimdata/colmat/materialize"
)

// Null is written in place of a NULL cell.
const Null = "-"

var escaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`, "\\", `\\`)

type Writer struct {
	writer io.WriteCloser
	table  *tabwriter.Writer
	schema colmat.Schema
	limit  int
	nline  int
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{
		writer: w,
		table:  tabwriter.NewWriter(w, 0, 8, 1, ' ', 0),
		limit:  1000,
	}
}

func (w *Writer) writeHeader() {
	names := make([]string, 0, len(w.schema))
	for _, name := range w.schema.Names() {
		names = append(names, strings.ToUpper(name))
	}
	fmt.Fprintln(w.table, strings.Join(names, "\t"))
}

// Write writes the rows of res, repeating the header every thousand rows
// and whenever the schema changes.
func (w *Writer) Write(res *materialize.Result) error {
	if w.schema == nil || w.schema.String() != res.Schema.String() {
		if w.schema != nil {
			if err := w.table.Flush(); err != nil {
				return err
			}
		}
		w.schema = res.Schema
		w.writeHeader()
		w.nline = 0
	}
	fields := make([]string, len(res.Columns))
	for row := 0; row < res.Rows; row++ {
		if w.nline >= w.limit {
			if err := w.table.Flush(); err != nil {
				return err
			}
			w.writeHeader()
			w.nline = 0
		}
		for k, col := range res.Columns {
			fields[k] = Format(col, row)
		}
		if _, err := fmt.Fprintln(w.table, strings.Join(fields, "\t")); err != nil {
			return err
		}
		w.nline++
	}
	return nil
}

func (w *Writer) Close() error {
	err := w.table.Flush()
	if closeErr := w.writer.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Format renders cell i of a as text.
func Format(a array.Array, i int) string {
	if a.IsNull(i) {
		return Null
	}
	switch a := a.(type) {
	case *array.Fixed[int64]:
		if a.Typ == colmat.TypeTimestamp {
			return time.UnixMicro(a.Values[i]).UTC().Format(time.RFC3339Nano)
		}
		return strconv.FormatInt(a.Values[i], 10)
	case *array.Fixed[float64]:
		return strconv.FormatFloat(a.Values[i], 'g', -1, 64)
	case *array.Fixed[bool]:
		if a.Values[i] {
			return "T"
		}
		return "F"
	case *array.Fixed[int32]:
		return time.Unix(int64(a.Values[i])*86400, 0).UTC().Format("2006-01-02")
	case *array.String:
		return escaper.Replace(a.Value(i))
	}
	return fmt.Sprintf("<%s>", a.Type())
}
