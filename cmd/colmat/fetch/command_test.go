package fetch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/arrowio"
	"github.com/brimdata/colmat/materialize"
	"github.com/brimdata/colmat/parquetio"
	"github.com/brimdata/colmat/source/memsource"
	"github.com/brimdata/colmat/summary"
	"github.com/brimdata/colmat/tableio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type nopCloser struct {
	strings.Builder
}

func (*nopCloser) Close() error { return nil }

func TestNewWriter(t *testing.T) {
	for format, expected := range map[string]interface{}{
		"table":   &tableio.Writer{},
		"arrows":  &arrowio.Writer{},
		"parquet": &parquetio.Writer{},
		"summary": &summary.Writer{},
	} {
		c := &Command{format: format}
		w, err := c.newWriter(&nopCloser{})
		require.NoError(t, err)
		require.IsType(t, expected, w)
	}
	c := &Command{format: "csv"}
	_, err := c.newWriter(&nopCloser{})
	require.EqualError(t, err, "unknown output format: csv")
}

func TestProgress(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := newProgress(ctx)
	p.update(materialize.Progress{Rows: 10, Batches: 1, BatchRows: 10})
	p.update(materialize.Progress{Rows: 15, Batches: 2, BatchRows: 5})
	var b strings.Builder
	require.True(t, p.Display(&b))
	require.Equal(t, "15 rows in 2 batches, 15 rows/s\n", b.String())
	cancel()
	require.False(t, p.Display(&b))
}

func TestMetricsTextfile(t *testing.T) {
	src, err := memsource.New(colmat.Schema{{Name: "x", Type: colmat.TypeInt64}}, []memsource.Batch{
		{{int64(1), int64(2)}},
		{{int64(3)}},
	})
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	_, err = materialize.New(src, materialize.WithMetrics(materialize.NewMetrics(reg))).Run(context.Background())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "colmat.prom")
	require.NoError(t, prometheus.WriteToTextfile(path, reg))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "colmat_rows_total 3\n")
	require.Contains(t, string(b), "colmat_batches_total 2\n")
}

func TestHelpTextWidth(t *testing.T) {
	for i, line := range strings.Split(Cmd.Long, "\n") {
		require.LessOrEqual(t, len(line), 80, "line %d: %q", i+1, line)
	}
}
