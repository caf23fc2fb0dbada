// Package array holds the finished, column-oriented output of a
// materialization and the builders that accumulate it batch by batch.
//
// Every Array carries a validity slice parallel to its values where true
// marks a NULL cell.  The value slot of a NULL cell is unspecified.
package array

import "github.com/brimdata/colmat"

type Array interface {
	Type() colmat.Type
	Len() int
	IsNull(int) bool
	// Validity returns the null flags, one per row.
	Validity() []bool
	NullCount() int
	// Head returns a view of the first n rows.
	Head(n int) Array
}

// Fixed is a column of fixed-width values.  Timestamps are microseconds
// since the Unix epoch (T is int64) and dates are days since the epoch
// (T is int32).
type Fixed[T any] struct {
	Typ    colmat.Type
	Values []T
	Nulls  []bool
}

func (f *Fixed[T]) Type() colmat.Type { return f.Typ }
func (f *Fixed[T]) Len() int          { return len(f.Values) }
func (f *Fixed[T]) IsNull(i int) bool { return f.Nulls[i] }
func (f *Fixed[T]) Validity() []bool  { return f.Nulls }
func (f *Fixed[T]) NullCount() int    { return countNulls(f.Nulls) }

func (f *Fixed[T]) Head(n int) Array {
	return &Fixed[T]{Typ: f.Typ, Values: f.Values[:n], Nulls: f.Nulls[:n]}
}

// String is a column of variable-length strings.  Value i occupies
// Data[Offsets[i]:Offsets[i+1]].
type String struct {
	Offsets []int32
	Data    []byte
	Nulls   []bool
}

func (s *String) Type() colmat.Type { return colmat.TypeString }
func (s *String) Len() int          { return len(s.Nulls) }
func (s *String) IsNull(i int) bool { return s.Nulls[i] }
func (s *String) Validity() []bool  { return s.Nulls }
func (s *String) NullCount() int    { return countNulls(s.Nulls) }

func (s *String) Head(n int) Array {
	return &String{
		Offsets: s.Offsets[:n+1],
		Data:    s.Data[:s.Offsets[n]],
		Nulls:   s.Nulls[:n],
	}
}

func (s *String) Value(i int) string {
	return string(s.Data[s.Offsets[i]:s.Offsets[i+1]])
}

func countNulls(nulls []bool) int {
	var n int
	for _, null := range nulls {
		if null {
			n++
		}
	}
	return n
}
