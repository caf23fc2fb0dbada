package cat

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/brimdata/colmat/arrowio"
	"github.com/brimdata/colmat/cmd/colmat/root"
	"github.com/brimdata/colmat/materialize"
	"github.com/brimdata/colmat/pkg/charm"
	"github.com/brimdata/colmat/summary"
	"github.com/brimdata/colmat/tableio"
	"go.uber.org/multierr"
)

var Cmd = &charm.Spec{
	Name:  "cat",
	Usage: "cat [options] file [file ...]",
	Short: "print Arrow IPC streams as text",
	Long: `
"colmat cat" reads Arrow IPC stream files, such as those written by
"colmat fetch -f arrows", and prints their record batches as a text table
(-f table) or as per-column statistics (-f summary).`,
	New: New,
}

type Command struct {
	*root.Command
	output string
	format string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.output, "o", "-", "output file (- for standard output)")
	f.StringVar(&c.format, "f", "table", "output format (values: table, summary)")
	return c, nil
}

type writer interface {
	Write(*materialize.Result) error
	Close() error
}

func (c *Command) Run(args []string) error {
	_, _, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) == 0 {
		return errors.New("cat: no input files")
	}
	if c.format != "table" && c.format != "summary" {
		return fmt.Errorf("unknown output format: %s", c.format)
	}
	out, err := root.CreateOutput(c.output)
	if err != nil {
		return err
	}
	var w writer = tableio.NewWriter(out)
	if c.format == "summary" {
		w = summary.NewWriter(out)
	}
	for _, path := range args {
		if err := cat(w, path); err != nil {
			return multierr.Append(err, w.Close())
		}
	}
	return w.Close()
}

func cat(w writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	r, err := arrowio.NewReader(f)
	if err != nil {
		return err
	}
	defer r.Close()
	for {
		res, err := r.Read()
		if res == nil || err != nil {
			return err
		}
		if err := w.Write(res); err != nil {
			return err
		}
	}
}
