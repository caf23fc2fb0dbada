package array

import (
	"math"
	"testing"
	"time"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/buffer"
	"github.com/brimdata/colmat/colerr"
	"github.com/stretchr/testify/require"
)

// int64Buffer builds a buffer from vals where nil is NULL.  NULL slots are
// filled with garbage to show their bytes are never interpreted.
func int64Buffer(t *testing.T, vals ...interface{}) *buffer.Column {
	col, err := buffer.New(colmat.TypeInt64, len(vals))
	require.NoError(t, err)
	for i, v := range vals {
		if v == nil {
			col.SetInt64(i, 0x5eadbeef)
			col.SetNull(i)
			continue
		}
		col.SetInt64(i, int64(v.(int)))
	}
	return col
}

func TestInt64Batches(t *testing.T) {
	b, err := NewBuilder(colmat.TypeInt64, 2)
	require.NoError(t, err)
	require.NoError(t, b.AppendBatch(int64Buffer(t, 1, nil, 3), 3))
	require.NoError(t, b.AppendBatch(int64Buffer(t, 4, nil, 99), 2))
	require.Equal(t, 5, b.Len())
	a, err := b.Finish()
	require.NoError(t, err)
	ints := a.(*Fixed[int64])
	require.Equal(t, colmat.TypeInt64, ints.Type())
	require.Len(t, ints.Values, 5)
	require.Equal(t, cap(ints.Values), len(ints.Values))
	require.Equal(t, []bool{false, true, false, false, true}, ints.Validity())
	for _, i := range []int{0, 2, 3} {
		require.Equal(t, int64([]int{1, 0, 3, 4}[i]), ints.Values[i])
	}
	require.Equal(t, 2, a.NullCount())
	require.True(t, a.IsNull(4))
}

func TestGeometricGrowth(t *testing.T) {
	b, err := NewBuilder(colmat.TypeFloat64, 1)
	require.NoError(t, err)
	col, err := buffer.New(colmat.TypeFloat64, 1)
	require.NoError(t, err)
	caps := map[int]struct{}{}
	for i := 0; i < 1000; i++ {
		col.SetFloat64(0, float64(i))
		require.NoError(t, b.AppendBatch(col, 1))
		caps[b.Cap()] = struct{}{}
	}
	// 1, 2, 4, ... 1024
	require.Len(t, caps, 11)
	require.Equal(t, 1024, b.Cap())
	a, err := b.Finish()
	require.NoError(t, err)
	floats := a.(*Fixed[float64])
	require.Len(t, floats.Values, 1000)
	require.Equal(t, 1000, cap(floats.Values))
	require.Equal(t, 999.0, floats.Values[999])
}

func TestGrowthIsIdempotent(t *testing.T) {
	split, err := NewBuilder(colmat.TypeInt64, 1)
	require.NoError(t, err)
	require.NoError(t, split.AppendBatch(int64Buffer(t, 1, nil), 2))
	require.NoError(t, split.AppendBatch(int64Buffer(t, 3, 4, nil), 3))
	merged, err := NewBuilder(colmat.TypeInt64, 16)
	require.NoError(t, err)
	require.NoError(t, merged.AppendBatch(int64Buffer(t, 1, nil, 3, 4, nil), 5))
	a, err := split.Finish()
	require.NoError(t, err)
	b, err := merged.Finish()
	require.NoError(t, err)
	require.Equal(t, b, a)
}

func TestConsumed(t *testing.T) {
	b, err := NewBuilder(colmat.TypeInt64, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultCapacity, b.Cap())
	a, err := b.Finish()
	require.NoError(t, err)
	require.Zero(t, a.Len())
	require.NotNil(t, a.Validity())
	_, err = b.Finish()
	require.True(t, colerr.IsKind(err, colerr.Consumed))
	err = b.AppendBatch(int64Buffer(t, 1), 1)
	require.ErrorIs(t, err, colerr.ErrConsumed)

	s, err := NewBuilder(colmat.TypeString, 4)
	require.NoError(t, err)
	s.Release()
	_, err = s.Finish()
	require.ErrorIs(t, err, colerr.ErrConsumed)
}

func TestBadBatch(t *testing.T) {
	b, err := NewBuilder(colmat.TypeInt64, 4)
	require.NoError(t, err)
	require.NoError(t, b.AppendBatch(int64Buffer(t, 7), 1))

	err = b.AppendBatch(int64Buffer(t, 1, 2), 3)
	require.True(t, colerr.IsKind(err, colerr.TruncatedBatch))
	err = b.AppendBatch(nil, 1)
	require.True(t, colerr.IsKind(err, colerr.TruncatedBatch))
	bools, err := buffer.New(colmat.TypeBool, 1)
	require.NoError(t, err)
	err = b.AppendBatch(bools, 1)
	require.True(t, colerr.IsKind(err, colerr.TruncatedBatch))
	require.ErrorIs(t, err, colerr.ErrTruncatedBatch)
	require.NoError(t, b.AppendBatch(int64Buffer(t, 1), 0))
	require.Equal(t, 1, b.Len())
}

func TestUnsupported(t *testing.T) {
	for _, typ := range []colmat.Type{colmat.TypeUnknown, colmat.TypeDecimal, colmat.TypeBinary} {
		_, err := NewBuilder(typ, 1)
		require.ErrorIs(t, err, colerr.ErrUnsupportedType)
	}
}

func TestBools(t *testing.T) {
	col, err := buffer.New(colmat.TypeBool, 4)
	require.NoError(t, err)
	col.SetBool(0, true)
	col.SetBool(1, false)
	col.SetNull(2)
	col.SetBool(3, true)
	col.Data[3] = 2
	b, err := NewBuilder(colmat.TypeBool, 1)
	require.NoError(t, err)
	require.NoError(t, b.AppendBatch(col, 4))
	a, err := b.Finish()
	require.NoError(t, err)
	bools := a.(*Fixed[bool])
	require.Equal(t, []bool{false, false, true, false}, bools.Nulls)
	require.True(t, bools.Values[0])
	require.False(t, bools.Values[1])
	require.True(t, bools.Values[3])
}

func TestDateTime(t *testing.T) {
	ts := time.Date(2020, time.February, 29, 12, 30, 0, 250000000, time.UTC)
	tcol, err := buffer.New(colmat.TypeTimestamp, 2)
	require.NoError(t, err)
	tcol.SetTimestamp(0, ts)
	tcol.SetNull(1)
	tb, err := NewBuilder(colmat.TypeTimestamp, 1)
	require.NoError(t, err)
	require.NoError(t, tb.AppendBatch(tcol, 2))
	a, err := tb.Finish()
	require.NoError(t, err)
	stamps := a.(*Fixed[int64])
	require.Equal(t, colmat.TypeTimestamp, stamps.Type())
	require.Equal(t, []int64{ts.UnixMicro(), 0}, stamps.Values)
	require.Equal(t, []bool{false, true}, stamps.Nulls)

	dcol, err := buffer.New(colmat.TypeDate, 2)
	require.NoError(t, err)
	dcol.SetNull(0)
	dcol.SetDate(1, ts)
	db, err := NewBuilder(colmat.TypeDate, 1)
	require.NoError(t, err)
	require.NoError(t, db.AppendBatch(dcol, 2))
	a, err = db.Finish()
	require.NoError(t, err)
	dates := a.(*Fixed[int32])
	require.Equal(t, []int32{0, 18321}, dates.Values)
	require.Equal(t, []bool{true, false}, dates.Nulls)
}

func TestStrings(t *testing.T) {
	b, err := NewBuilder(colmat.TypeString, 1)
	require.NoError(t, err)
	col := buffer.NewString(3, 5)
	col.SetString(0, "hello")
	col.SetNull(1)
	col.SetString(2, "")
	require.NoError(t, b.AppendBatch(col, 3))
	col.SetString(0, "x")
	require.NoError(t, b.AppendBatch(col, 1))

	col.SetString(0, "ok")
	col.SetString(1, "too long")
	err = b.AppendBatch(col, 2)
	require.True(t, colerr.IsKind(err, colerr.TruncatedBatch))
	require.Equal(t, 4, b.Len())

	a, err := b.Finish()
	require.NoError(t, err)
	strs := a.(*String)
	require.Equal(t, 4, strs.Len())
	require.Equal(t, []int32{0, 5, 5, 5, 6}, strs.Offsets)
	require.Equal(t, "hello", strs.Value(0))
	require.True(t, strs.IsNull(1))
	require.Equal(t, "", strs.Value(2))
	require.False(t, strs.IsNull(2))
	require.Equal(t, "x", strs.Value(3))
	require.Equal(t, 1, strs.NullCount())
}

func TestHead(t *testing.T) {
	b, err := NewBuilder(colmat.TypeInt64, 1)
	require.NoError(t, err)
	require.NoError(t, b.AppendBatch(int64Buffer(t, 1, nil, 3), 3))
	a, err := b.Finish()
	require.NoError(t, err)
	h := a.Head(2).(*Fixed[int64])
	require.Equal(t, []int64{1}, h.Values[:1])
	require.Equal(t, []bool{false, true}, h.Nulls)

	s, err := NewBuilder(colmat.TypeString, 1)
	require.NoError(t, err)
	col := buffer.NewString(2, 4)
	col.SetString(0, "ab")
	col.SetString(1, "cd")
	require.NoError(t, s.AppendBatch(col, 2))
	a, err = s.Finish()
	require.NoError(t, err)
	strs := a.Head(1).(*String)
	require.Equal(t, 1, strs.Len())
	require.Equal(t, "ab", strs.Value(0))
	require.Equal(t, []byte("ab"), strs.Data)
	require.Zero(t, a.Head(0).Len())
}

func TestStringDataSize(t *testing.T) {
	require.NoError(t, checkDataSize(0, math.MaxInt32))
	require.NoError(t, checkDataSize(math.MaxInt32-1, 1))
	err := checkDataSize(math.MaxInt32, 1)
	require.True(t, colerr.IsKind(err, colerr.Overflow))
	require.ErrorIs(t, err, colerr.ErrOverflow)
}
