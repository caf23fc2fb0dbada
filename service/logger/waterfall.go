package logger

import (
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

type waterfallCore []zapcore.Core

// NewWaterfall returns a core that hands each entry to the first of cores
// that accepts it.
func NewWaterfall(cores ...zapcore.Core) zapcore.Core {
	switch len(cores) {
	case 0:
		return zapcore.NewNopCore()
	case 1:
		return cores[0]
	default:
		return waterfallCore(cores)
	}
}

func (w waterfallCore) With(fields []zapcore.Field) zapcore.Core {
	clone := make(waterfallCore, len(w))
	for i, c := range w {
		clone[i] = c.With(fields)
	}
	return clone
}

func (w waterfallCore) Enabled(lvl zapcore.Level) bool {
	for _, c := range w {
		if c.Enabled(lvl) {
			return true
		}
	}
	return false
}

// Check routes ent to the first core that accepts it.  Entries reaching
// Write directly go to every core.
func (w waterfallCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	for _, c := range w {
		if c.Enabled(ent.Level) {
			return c.Check(ent, ce)
		}
	}
	return ce
}

func (w waterfallCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	var err error
	for _, c := range w {
		err = multierr.Append(err, c.Write(ent, fields))
	}
	return err
}

func (w waterfallCore) Sync() error {
	var err error
	for _, c := range w {
		err = multierr.Append(err, c.Sync())
	}
	return err
}
