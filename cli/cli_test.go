package cli

import (
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

type initFunc func() error

func (f initFunc) Init() error { return f() }

func TestInit(t *testing.T) {
	var f Flags
	f.SetFlags(flag.NewFlagSet("test", flag.ContinueOnError))
	ctx, cancel, err := f.Init(initFunc(func() error { return nil }))
	require.NoError(t, err)
	require.NoError(t, ctx.Err())
	cancel()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	require.Contains(t, ctx.Err().Error(), "interrupted")
}

func TestInitErrors(t *testing.T) {
	var f Flags
	a, b := errors.New("a"), errors.New("b")
	_, _, err := f.Init(initFunc(func() error { return a }), initFunc(func() error { return b }))
	require.ErrorIs(t, err, a)
	require.ErrorIs(t, err, b)
}

func TestVersion(t *testing.T) {
	version = "v1.2.3"
	defer func() { version = "" }()
	require.Equal(t, "v1.2.3", Version())
}
