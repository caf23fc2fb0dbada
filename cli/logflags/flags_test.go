package logflags

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/colmat/service/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlags(t *testing.T) {
	dir := t.TempDir()
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	err := fs.Parse([]string{
		"-log.level", "info",
		"-log.path", filepath.Join(dir, "all.log"),
		"-log.filemode", "truncate",
		"-log.errpath", filepath.Join(dir, "err.log"),
	})
	require.NoError(t, err)
	require.Equal(t, zap.InfoLevel, f.Config.Level)
	require.Equal(t, logger.FileModeTruncate, f.Config.Mode)

	l, err := f.Open()
	require.NoError(t, err)
	l.Info("info")
	l.Error("error")
	require.NoError(t, l.Sync())
	b, err := os.ReadFile(filepath.Join(dir, "err.log"))
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"error"`)
	require.NotContains(t, string(b), `"msg":"info"`)
}
