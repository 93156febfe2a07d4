package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is safe to use before Init; it discards everything until then
var Log = zap.NewNop().Sugar()

// Init builds the process-wide logger. Release mode logs JSON at info level,
// anything else uses the colored development encoder at debug level.
func Init(production bool) error {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l.Sugar()
	return nil
}

// Sync flushes buffered entries
func Sync() {
	_ = Log.Sync()
}
