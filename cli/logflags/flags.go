package logflags

import (
	"flag"

	"github.com/brimdata/colmat/service/logger"
	"go.uber.org/zap"
)

type Flags struct {
	Config logger.Config
	// ErrorPath, if set, receives error level logs in place of Config.Path.
	ErrorPath string
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.Config.DevMode, "log.devmode", false, "development mode (if enabled dpanic level logs will cause a panic)")
	f.Config.Level = zap.WarnLevel
	fs.Var(&f.Config.Level, "log.level", "logging level")
	fs.StringVar(&f.Config.Path, "log.path", "stderr", "path to send logs (values: stderr, stdout, path in file system)")
	f.Config.Mode = logger.FileModeAppend
	fs.Var(&f.Config.Mode, "log.filemode", "logger file write mode (values: append, truncate, rotate)")
	fs.StringVar(&f.ErrorPath, "log.errpath", "", "separate path for error logs")
}

func (f *Flags) Open() (*zap.Logger, error) {
	if f.ErrorPath == "" {
		return logger.New(f.Config)
	}
	errs := f.Config
	errs.Path = f.ErrorPath
	errs.Level = zap.ErrorLevel
	return logger.New(errs, f.Config)
}
