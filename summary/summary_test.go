package summary_test

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/materialize"
	"github.com/brimdata/colmat/source/memsource"
	"github.com/brimdata/colmat/summary"
	"github.com/stretchr/testify/require"
)

type nopCloser struct {
	*strings.Builder
}

func (nopCloser) Close() error { return nil }

var schema = colmat.Schema{
	{Name: "n", Type: colmat.TypeInt64, Nullable: true},
	{Name: "s", Type: colmat.TypeString, Nullable: true},
	{Name: "d", Type: colmat.TypeDate, Nullable: true},
	{Name: "none", Type: colmat.TypeBool, Nullable: true},
}

func result(t *testing.T, batches ...memsource.Batch) *materialize.Result {
	src, err := memsource.New(schema, batches)
	require.NoError(t, err)
	res, err := materialize.New(src).Run(context.Background())
	require.NoError(t, err)
	return res
}

func day(d int) time.Time {
	return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestSummary(t *testing.T) {
	s := summary.New(schema)
	require.NoError(t, s.Add(result(t, memsource.Batch{
		{int64(5), nil, int64(-3)},
		{"pear", "apple", "pear"},
		{day(2), day(1), nil},
		{nil, nil, nil},
	})))
	require.NoError(t, s.Add(result(t, memsource.Batch{
		{int64(7)},
		{"zucchini"},
		{day(9)},
		{nil},
	})))
	n := s.Columns[0]
	require.Equal(t, 4, n.Rows)
	require.Equal(t, 1, n.Nulls)
	require.Equal(t, "-3", n.Min)
	require.Equal(t, "7", n.Max)
	require.EqualValues(t, 3, n.Distinct())

	str := s.Columns[1]
	require.Equal(t, "apple", str.Min)
	require.Equal(t, "zucchini", str.Max)
	require.EqualValues(t, 3, str.Distinct())

	d := s.Columns[2]
	require.Equal(t, "2020-01-01", d.Min)
	require.Equal(t, "2020-01-09", d.Max)

	none := s.Columns[3]
	require.Equal(t, 4, none.Nulls)
	require.Empty(t, none.Min)
	require.Zero(t, none.Distinct())
}

func TestWriter(t *testing.T) {
	var b strings.Builder
	w := summary.NewWriter(nopCloser{&b})
	require.NoError(t, w.Write(result(t, memsource.Batch{
		{int64(1), int64(2)},
		{"a", "b"},
		{day(1), day(2)},
		{true, nil},
	})))
	require.NoError(t, w.Close())
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, []string{"COLUMN", "TYPE", "ROWS", "NULLS", "DISTINCT", "MIN", "MAX"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"n", "int64", "2", "0", "2", "1", "2"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"none", "bool", "2", "1", "1", "T", "T"}, strings.Fields(lines[4]))
}

func TestSchemaMismatch(t *testing.T) {
	s := summary.New(schema[:1])
	require.Error(t, s.Add(result(t)))
}

func TestNaNOutsideRange(t *testing.T) {
	floats := colmat.Schema{{Name: "f", Type: colmat.TypeFloat64, Nullable: true}}
	run := func(vals ...interface{}) *summary.Column {
		src, err := memsource.New(floats, []memsource.Batch{{vals}})
		require.NoError(t, err)
		res, err := materialize.New(src).Run(context.Background())
		require.NoError(t, err)
		s := summary.New(floats)
		require.NoError(t, s.Add(res))
		return s.Columns[0]
	}
	c := run(math.NaN(), 1.0, 5.0, nil)
	require.Equal(t, "1", c.Min)
	require.Equal(t, "5", c.Max)
	require.EqualValues(t, 3, c.Distinct())

	c = run(math.NaN(), nil)
	require.Equal(t, "NaN", c.Min)
	require.Equal(t, "NaN", c.Max)
}
