package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide structured logger. Init must run before any
// other package logs; until then Logger is a no-op so tests need no setup.
var Logger = zap.NewNop()

// Init configures JSON logging to stdout plus a rotated app.log. logDir may
// be empty to log to stdout only.
func Init(logDir string) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.InfoLevel),
	}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err == nil {
			cores = append(cores, zapcore.NewCore(encoder,
				zapcore.AddSync(&lumberjack.Logger{
					Filename: logDir + "/app.log",
					MaxSize:  100, // MB
					MaxAge:   28,  // days
					Compress: true,
				}),
				zap.InfoLevel,
			))
		}
	}

	Logger = zap.New(zapcore.NewTee(cores...))
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = Logger.Sync()
}
