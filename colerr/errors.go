// Package colerr provides a mechanism to create or wrap errors with a Kind
// so callers of the materializer can tell a lost data source from a
// malformed batch or an unsupported column without parsing messages.
package colerr

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
)

// A Kind represents a class of error.  Every Kind other than Other is
// recoverable by the caller only by retrying the whole operation.
type Kind int

const (
	Other Kind = iota
	// SourceUnavailable means a fetch failed.  No rows of the failed
	// batch are delivered, including any the source read before the
	// failure.
	SourceUnavailable
	// TruncatedBatch means a source's buffers do not hold what it
	// reported: fewer valid rows, shorter values or another type.
	TruncatedBatch
	// UnsupportedType means the schema names a type with no decoder.
	UnsupportedType
	Canceled
	// Consumed means a single-use object was used again.
	Consumed
	// Overflow means a column outgrew the offsets of its array.
	Overflow
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other error"
	case SourceUnavailable:
		return "data source unavailable"
	case TruncatedBatch:
		return "truncated batch"
	case UnsupportedType:
		return "unsupported type"
	case Canceled:
		return "canceled"
	case Consumed:
		return "already consumed"
	case Overflow:
		return "column overflow"
	}
	return "unknown error kind"
}

var (
	ErrSourceUnavailable = errors.New(SourceUnavailable.String())
	ErrTruncatedBatch    = errors.New(TruncatedBatch.String())
	ErrUnsupportedType   = errors.New(UnsupportedType.String())
	ErrCanceled          = errors.New(Canceled.String())
	ErrConsumed          = errors.New(Consumed.String())
	ErrOverflow          = errors.New(Overflow.String())
)

var sentinels = map[Kind]error{
	SourceUnavailable: ErrSourceUnavailable,
	TruncatedBatch:    ErrTruncatedBatch,
	UnsupportedType:   ErrUnsupportedType,
	Canceled:          ErrCanceled,
	Consumed:          ErrConsumed,
	Overflow:          ErrOverflow,
}

type Error struct {
	Kind Kind
	Err  error
}

func pad(b *bytes.Buffer, s string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(s)
}

func (e *Error) Error() string {
	b := &bytes.Buffer{}
	if e.Kind != Other {
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		pad(b, ": ")
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an *Error against the sentinel for its Kind,
// e.g., errors.Is(err, colerr.ErrTruncatedBatch).
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}

// Message returns just the Err.Error() string, if present, or the Kind
// string description.
func (e *Error) Message() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind != Other {
		return e.Kind.String()
	}
	return "no error"
}

// Function E generates an error from any mix of:
// - a Kind
// - an existing error
// - a string and optional formatting verbs, like fmt.Errorf (including support
//	for the `%w` verb).
//
// The string & format verbs must be last in the arguments, if present.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("no args to colerr.E")
	}
	e := &Error{}
	for i, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case error:
			e.Err = arg
		case string:
			e.Err = fmt.Errorf(arg, args[i+1:]...)
			return e
		default:
			_, file, line, _ := runtime.Caller(1)
			return fmt.Errorf("unknown type %T value %v in colerr.E call at %v:%v", arg, arg, file, line)
		}
	}
	return e
}

// KindOf returns the Kind of the outermost *Error in err's chain or Other.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
