package arrowio

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/brimdata/colmat/materialize"
)

var ErrSchemaChanged = errors.New("arrowio: result schema differs from stream schema")

// Compression names an IPC body compression codec.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionLZ4  Compression = "lz4"
	CompressionZstd Compression = "zstd"
)

func (c *Compression) Set(s string) error {
	switch Compression(s) {
	case CompressionNone, "none":
		*c = CompressionNone
	case CompressionLZ4, CompressionZstd:
		*c = Compression(s)
	default:
		return fmt.Errorf("unknown compression: %s", s)
	}
	return nil
}

func (c Compression) String() string {
	if c == CompressionNone {
		return "none"
	}
	return string(c)
}

type Option func(*Writer)

func WithAllocator(mem memory.Allocator) Option {
	return func(w *Writer) {
		w.mem = mem
	}
}

func WithCompression(c Compression) Option {
	return func(w *Writer) {
		w.compression = c
	}
}

// Writer writes materialized results to an Arrow IPC stream.  Each Write
// appends one record batch; all results must share a schema.
type Writer struct {
	w           io.WriteCloser
	mem         memory.Allocator
	compression Compression
	writer      *ipc.Writer
	schema      *arrow.Schema
}

func NewWriter(w io.WriteCloser, opts ...Option) *Writer {
	writer := &Writer{w: w, mem: memory.DefaultAllocator}
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

func (w *Writer) ipcOptions() []ipc.Option {
	opts := []ipc.Option{ipc.WithSchema(w.schema), ipc.WithAllocator(w.mem)}
	switch w.compression {
	case CompressionLZ4:
		opts = append(opts, ipc.WithLZ4())
	case CompressionZstd:
		opts = append(opts, ipc.WithZstd())
	}
	return opts
}

func (w *Writer) Write(res *materialize.Result) error {
	rec, err := NewRecord(w.mem, res)
	if err != nil {
		return err
	}
	defer rec.Release()
	if w.writer == nil {
		w.schema = rec.Schema()
		w.writer = ipc.NewWriter(w.w, w.ipcOptions()...)
	} else if !w.schema.Equal(rec.Schema()) {
		return ErrSchemaChanged
	}
	return w.writer.Write(rec)
}

func (w *Writer) Close() error {
	var err error
	if w.writer != nil {
		err = w.writer.Close()
		w.writer = nil
	}
	if err2 := w.w.Close(); err == nil {
		err = err2
	}
	return err
}
