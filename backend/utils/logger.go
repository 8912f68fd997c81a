package utils

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig selects how the service logs.
type LoggerConfig struct {
	// console or json
	Format string
	// defaults to os.Stdout
	Output io.Writer
	// colour levels on the console encoder
	EnableColors bool
	Level        zapcore.Level
}

// InitLogger builds the process logger. Every component receives a child of it
// through With.
func InitLogger(config ...LoggerConfig) *zap.SugaredLogger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		if cfg.EnableColors {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(cfg.Output), cfg.Level)
	return zap.New(core, zap.AddCaller()).Sugar().Named("learnhub")
}
