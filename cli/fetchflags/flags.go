// Package fetchflags holds the flags that tune how a query result is
// fetched and materialized.
package fetchflags

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/alecthomas/units"
	"github.com/brimdata/colmat/array"
	"github.com/brimdata/colmat/materialize"
	"github.com/brimdata/colmat/source/sqlsource"
	"github.com/pbnjay/memory"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Buffer is the per-batch buffer budget, as '20MiB' or '512KB'.
	// Rows takes precedence when set.
	Buffer      string `yaml:"buffer"`
	Rows        int    `yaml:"rows,omitempty"`
	StringWidth int    `yaml:"string_width,omitempty"`
	Capacity    int    `yaml:"capacity,omitempty"`
	Parallelism int    `yaml:"parallelism,omitempty"`
	Partial     bool   `yaml:"partial,omitempty"`
	NFC         bool   `yaml:"nfc,omitempty"`
}

type Flags struct {
	Config Config
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.Func("config", "path of fetch yaml config file", func(s string) error {
		b, err := os.ReadFile(s)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(b, &f.Config)
	})
	f.Config.Buffer = sqlsource.DefaultBufferSize.(sqlsource.Bytes).String()
	fs.StringVar(&f.Config.Buffer, "buffer", f.Config.Buffer, "memory budget for one batch, as '10MB' or '4GiB', etc.")
	fs.IntVar(&f.Config.Rows, "rows", 0, "rows per batch (overrides -buffer)")
	fs.IntVar(&f.Config.StringWidth, "strwidth", sqlsource.DefaultStringWidth, "buffer width of string columns of unknown length")
	fs.IntVar(&f.Config.Capacity, "capacity", array.DefaultCapacity, "initial row capacity of each column")
	fs.IntVar(&f.Config.Parallelism, "P", 1, "number of columns appended concurrently")
	fs.BoolVar(&f.Config.Partial, "partial", false, "keep the rows fetched before a failure")
	fs.BoolVar(&f.Config.NFC, "nfc", false, "normalize strings to Unicode NFC")
}

// Init checks the flags, rejecting a buffer budget larger than the
// machine's memory.
func (f *Flags) Init() error {
	size, err := f.BufferSize()
	if err != nil {
		return err
	}
	if b, ok := size.(sqlsource.Bytes); ok {
		if total := memory.TotalMemory(); total > 0 && uint64(b) > total {
			return fmt.Errorf("buffer value %s exceeds system memory of %s", b, units.Base2Bytes(total))
		}
	}
	if f.Config.Parallelism < 1 {
		return errors.New("P value must be at least one")
	}
	return nil
}

func (f *Flags) BufferSize() (sqlsource.BufferSize, error) {
	if f.Config.Rows < 0 {
		return nil, errors.New("rows value must be greater than zero")
	}
	if f.Config.Rows > 0 {
		return sqlsource.Rows(f.Config.Rows), nil
	}
	n, err := units.ParseStrictBytes(f.Config.Buffer)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.New("buffer value must be greater than zero")
	}
	return sqlsource.Bytes(n), nil
}

func (f *Flags) SourceOptions() ([]sqlsource.Option, error) {
	size, err := f.BufferSize()
	if err != nil {
		return nil, err
	}
	opts := []sqlsource.Option{
		sqlsource.WithBufferSize(size),
		sqlsource.WithStringWidth(f.Config.StringWidth),
	}
	if f.Config.NFC {
		opts = append(opts, sqlsource.WithNFC())
	}
	return opts, nil
}

func (f *Flags) Options() []materialize.Option {
	opts := []materialize.Option{
		materialize.WithInitialCapacity(f.Config.Capacity),
		materialize.WithParallelism(f.Config.Parallelism),
	}
	if f.Config.Partial {
		opts = append(opts, materialize.WithPartial())
	}
	return opts
}
