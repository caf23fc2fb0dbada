package tableio_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/materialize"
	"github.com/brimdata/colmat/source/memsource"
	"github.com/brimdata/colmat/tableio"
	"github.com/stretchr/testify/require"
)

type nopCloser struct {
	*strings.Builder
}

func (nopCloser) Close() error { return nil }

func TestWriter(t *testing.T) {
	ts := time.Date(2022, time.January, 2, 3, 4, 5, 600000000, time.UTC)
	schema := colmat.Schema{
		{Name: "id", Type: colmat.TypeInt64},
		{Name: "x", Type: colmat.TypeFloat64, Nullable: true},
		{Name: "ok", Type: colmat.TypeBool},
		{Name: "ts", Type: colmat.TypeTimestamp},
		{Name: "d", Type: colmat.TypeDate},
		{Name: "s", Type: colmat.TypeString},
	}
	src, err := memsource.New(schema, []memsource.Batch{{
		{int64(1), int64(22)},
		{0.5, nil},
		{true, false},
		{ts, ts},
		{ts, ts},
		{"a\tb", "c"},
	}})
	require.NoError(t, err)
	res, err := materialize.New(src).Run(context.Background())
	require.NoError(t, err)

	var b strings.Builder
	w := tableio.NewWriter(nopCloser{&b})
	require.NoError(t, w.Write(res))
	require.NoError(t, w.Close())
	expected := `
ID X   OK TS                     D          S
1  0.5 T  2022-01-02T03:04:05.6Z 2022-01-02 a\tb
22 -   F  2022-01-02T03:04:05.6Z 2022-01-02 c
`
	require.Equal(t, strings.TrimLeft(expected, "\n"), b.String())
}
