package colmat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	for typ := TypeInt64; typ <= TypeBinary; typ++ {
		got, err := LookupType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, got)
	}
	_, err := LookupType("interval")
	require.Error(t, err)
	require.Equal(t, "type(42)", Type(42).String())
}

func TestSchemaString(t *testing.T) {
	s := Schema{
		{Name: "a", Type: TypeInt64, Nullable: true},
		{Name: "b", Type: TypeBool},
	}
	require.Equal(t, "(a int64, b bool not null)", s.String())
	require.Equal(t, []string{"a", "b"}, s.Names())
	dup := Schema{{Name: "a"}, {Name: "b"}, {Name: "a"}, {Name: "a"}}
	require.Equal(t, []string{"a", "b", "a1", "a2"}, dup.UniqueNames())
}

func TestTypeWidth(t *testing.T) {
	require.Equal(t, 8, TypeInt64.Width())
	require.Equal(t, 1, TypeBool.Width())
	require.Equal(t, 16, TypeTimestamp.Width())
	require.Equal(t, 6, TypeDate.Width())
	require.Zero(t, TypeString.Width())
	require.Zero(t, TypeDecimal.Width())
}
