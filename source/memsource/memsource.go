// Package memsource implements a source.RowBatchSource that replays
// in-memory batches.  Like a real driver it copies every batch into one
// set of buffers that is reused across fetches, so a consumer that holds on
// to a buffer past the next fetch sees it change underneath it.
package memsource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/buffer"
	"github.com/brimdata/colmat/source"
)

var ErrExhausted = errors.New("memsource: fetch after end of results")

// Batch holds one batch as a slice of columns, each a slice of cells.
// A nil cell is NULL.  Other cells must be int64, float64, bool, string
// or time.Time according to the column type.
type Batch [][]interface{}

type Option func(*Source)

// WithStringWidth sets the buffer width of string columns.  Longer strings
// are stored truncated, as a driver would.
func WithStringWidth(n int) Option {
	return func(s *Source) {
		s.stringWidth = n
	}
}

// WithNullSentinel sets the indicator value that marks NULL.
func WithNullSentinel(v int64) Option {
	return func(s *Source) {
		s.null = v
	}
}

// FailOn makes the call'th fetch (counting from 1) return err.
func FailOn(call int, err error) Option {
	return func(s *Source) {
		s.failures[call] = err
	}
}

type Source struct {
	schema      colmat.Schema
	batches     []Batch
	buffers     []*buffer.Column
	failures    map[int]error
	stringWidth int
	null        int64
	calls       int
	next        int
	done        bool
}

var _ source.RowBatchSource = (*Source)(nil)

func New(schema colmat.Schema, batches []Batch, opts ...Option) (*Source, error) {
	s := &Source{
		schema:   schema,
		batches:  batches,
		failures: make(map[int]error),
		null:     buffer.NullData,
	}
	for _, opt := range opts {
		opt(s)
	}
	capacity := 1
	for k, b := range batches {
		if len(b) != len(schema) {
			return nil, fmt.Errorf("memsource: batch %d has %d columns, schema has %d", k, len(b), len(schema))
		}
		n := rowCount(b)
		for i, col := range b {
			if len(col) != n {
				return nil, fmt.Errorf("memsource: batch %d column %q has %d rows, expected %d", k, schema[i].Name, len(col), n)
			}
		}
		if n == 0 {
			return nil, fmt.Errorf("memsource: batch %d is empty", k)
		}
		if n > capacity {
			capacity = n
		}
	}
	if s.stringWidth == 0 {
		s.stringWidth = s.longestString()
	}
	for _, c := range schema {
		var col *buffer.Column
		if c.Type == colmat.TypeString {
			col = buffer.NewString(capacity, s.stringWidth)
		} else {
			width := c.Type.Width()
			if width == 0 {
				// Undecodable types still get a buffer so the
				// consumer decides what to do with them.
				width = 8
			}
			col = &buffer.Column{
				Type:       c.Type,
				Stride:     width,
				Data:       make([]byte, width*capacity),
				Indicators: make([]int64, capacity),
			}
		}
		col.Null = s.null
		s.buffers = append(s.buffers, col)
	}
	return s, nil
}

func rowCount(b Batch) int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

func (s *Source) longestString() int {
	width := 1
	for _, b := range s.batches {
		for i, col := range b {
			if s.schema[i].Type != colmat.TypeString {
				continue
			}
			for _, v := range col {
				if str, ok := v.(string); ok && len(str) > width {
					width = len(str)
				}
			}
		}
	}
	return width
}

func (s *Source) Schema() colmat.Schema {
	return s.schema
}

// Calls returns the number of times FetchNextBatch has been called.
func (s *Source) Calls() int {
	return s.calls
}

func (s *Source) FetchNextBatch(ctx context.Context) (int, error) {
	if s.done {
		return 0, ErrExhausted
	}
	s.calls++
	if err := s.failures[s.calls]; err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.next >= len(s.batches) {
		s.done = true
		return 0, nil
	}
	b := s.batches[s.next]
	s.next++
	for i, col := range b {
		if err := s.fill(s.buffers[i], col); err != nil {
			return 0, fmt.Errorf("memsource: column %q: %w", s.schema[i].Name, err)
		}
	}
	return rowCount(b), nil
}

func (s *Source) Buffers() []*buffer.Column {
	return s.buffers
}

// fill overwrites the whole buffer so that stale bytes from a previous
// batch and null slots hold garbage rather than zeros.
func (s *Source) fill(col *buffer.Column, cells []interface{}) error {
	for i := range col.Data {
		col.Data[i] = 0xa5
	}
	for i := range col.Indicators {
		col.Indicators[i] = col.Null
	}
	for i, v := range cells {
		if v == nil {
			col.SetNull(i)
			continue
		}
		var ok bool
		switch col.Type {
		case colmat.TypeInt64:
			var x int64
			if x, ok = v.(int64); ok {
				col.SetInt64(i, x)
			}
		case colmat.TypeFloat64:
			var x float64
			if x, ok = v.(float64); ok {
				col.SetFloat64(i, x)
			}
		case colmat.TypeBool:
			var x bool
			if x, ok = v.(bool); ok {
				col.SetBool(i, x)
			}
		case colmat.TypeTimestamp:
			var x time.Time
			if x, ok = v.(time.Time); ok {
				col.SetTimestamp(i, x)
			}
		case colmat.TypeDate:
			var x time.Time
			if x, ok = v.(time.Time); ok {
				col.SetDate(i, x)
			}
		case colmat.TypeString:
			var x string
			if x, ok = v.(string); ok {
				col.SetString(i, x)
			}
		default:
			return fmt.Errorf("no encoding for %s", col.Type)
		}
		if !ok {
			return fmt.Errorf("row %d: cannot store %T in %s column", i, v, col.Type)
		}
	}
	return nil
}
