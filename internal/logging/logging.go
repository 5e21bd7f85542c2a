// Package logging sets up the habitkeep log: a plain-text, append-only file
// in the data directory. Nothing reads it back; it exists for humans
// diagnosing what the tool did and when.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Open returns a logger appending console-encoded lines to the file at path.
// The returned close function flushes and releases the file.
func Open(path string) (*zap.Logger, func(), error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(file),
		zapcore.InfoLevel,
	)

	logger := zap.New(core)
	closer := func() {
		logger.Sync()
		file.Close()
	}
	return logger, closer, nil
}
