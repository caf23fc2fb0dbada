// Package logger builds zap loggers from configuration that can come from
// flags or a yaml file.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Path string `yaml:"path"`
	// If Path is a file, Mode determines how the file is managed.
	Mode  FileMode      `yaml:"mode,omitempty"`
	Level zapcore.Level `yaml:"level"`
	// DevMode makes DPanic level logs panic.
	DevMode bool `yaml:"devmode,omitempty"`
}

func NewCore(conf Config) (zapcore.Core, error) {
	w, err := OpenFile(conf.Path, conf.Mode)
	if err != nil {
		return nil, err
	}
	return zapcore.NewCore(jsonEncoder(), w, conf.Level), nil
}

// New returns a logger writing to the sinks described by confs.  Each
// entry goes to the first sink whose level admits it, so a config with a
// higher level placed first diverts those entries away from the rest.
func New(confs ...Config) (*zap.Logger, error) {
	var cores []zapcore.Core
	var dev bool
	for _, conf := range confs {
		core, err := NewCore(conf)
		if err != nil {
			return nil, err
		}
		cores = append(cores, core)
		dev = dev || conf.DevMode
	}
	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if dev {
		opts = append(opts, zap.Development())
	}
	return zap.New(NewWaterfall(cores...), opts...), nil
}

func jsonEncoder() zapcore.Encoder {
	conf := zap.NewProductionEncoderConfig()
	conf.CallerKey = ""
	conf.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(conf)
}
