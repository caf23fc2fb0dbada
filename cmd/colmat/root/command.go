package root

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/brimdata/colmat/cli"
	"github.com/brimdata/colmat/cli/logflags"
	"github.com/brimdata/colmat/pkg/charm"
	"go.uber.org/zap"
)

var Colmat = &charm.Spec{
	Name:  "colmat",
	Usage: "colmat <command> [options] [arguments...]",
	Short: "fetch query results into typed columns",
	Long: `
colmat runs SQL queries and materializes their results batch by batch into
typed, nullable columns, which it writes as a text table, an Arrow IPC
stream, a Parquet file or a per-column summary.`,
	HiddenFlags: "cpuprofile,memprofile",
	New:         New,
}

type Command struct {
	charm.Command
	cli.Flags
	LogFlags logflags.Flags
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.SetFlags(f)
	c.LogFlags.SetFlags(f)
	return c, nil
}

// Init sets up a sub-command run.  The returned function stops profiling
// and flushes the logger.
func (c *Command) Init(all ...cli.Initializer) (context.Context, *zap.Logger, func(), error) {
	ctx, cancel, err := c.Flags.Init(all...)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := c.LogFlags.Open()
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	cleanup := func() {
		logger.Sync()
		cancel()
	}
	return ctx, logger, cleanup, nil
}

func (c *Command) Run(args []string) error {
	if len(args) == 0 {
		return charm.NeedHelp
	}
	return charm.ErrNoRun
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// CreateOutput opens path for writing, where "-" is standard output.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "-" || path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
