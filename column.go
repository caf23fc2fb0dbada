// Package colmat describes the shape of a SQL result set as seen by the
// columnar materializer: an ordered list of typed, possibly nullable columns.
package colmat

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the logical type of a result column.  The set is closed: every
// consumer switches over these values once per column.
type Type int

const (
	TypeUnknown Type = iota
	TypeInt64
	TypeFloat64
	TypeBool
	TypeTimestamp
	TypeDate
	TypeString
	// TypeDecimal and TypeBinary can be described by a source but
	// have no decoder.
	TypeDecimal
	TypeBinary
)

var typeNames = []string{
	TypeUnknown:   "unknown",
	TypeInt64:     "int64",
	TypeFloat64:   "float64",
	TypeBool:      "bool",
	TypeTimestamp: "timestamp",
	TypeDate:      "date",
	TypeString:    "string",
	TypeDecimal:   "decimal",
	TypeBinary:    "binary",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

func LookupType(name string) (Type, error) {
	for i, s := range typeNames {
		if strings.EqualFold(s, name) {
			return Type(i), nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown type %q", name)
}

// Width returns the number of bytes a single value of t occupies in a
// column buffer, or 0 if t is variable width or has no fixed layout.
func (t Type) Width() int {
	switch t {
	case TypeInt64, TypeFloat64:
		return 8
	case TypeBool:
		return 1
	case TypeTimestamp:
		return 16
	case TypeDate:
		return 6
	}
	return 0
}

type Column struct {
	Name     string
	Type     Type
	Nullable bool
}

func (c Column) String() string {
	s := c.Name + " " + c.Type.String()
	if !c.Nullable {
		s += " not null"
	}
	return s
}

type Schema []Column

func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for _, c := range s {
		names = append(names, c.Name)
	}
	return names
}

// UniqueNames returns the column names with a counter appended to each
// repeat of a name, since SQL permits duplicate result column names but
// columnar formats do not.
func (s Schema) UniqueNames() []string {
	seen := map[string]int{}
	names := make([]string, 0, len(s))
	for _, c := range s {
		name := c.Name
		if n := seen[c.Name]; n > 0 {
			name += strconv.Itoa(n)
		}
		seen[c.Name]++
		names = append(names, name)
	}
	return names
}

func (s Schema) String() string {
	cols := make([]string, 0, len(s))
	for _, c := range s {
		cols = append(cols, c.String())
	}
	return "(" + strings.Join(cols, ", ") + ")"
}
