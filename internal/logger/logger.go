package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/quizdeck/internal/config"
)

// New builds a file logger. The terminal belongs to the TUI, so output
// never goes to stdout or stderr. Level "off" or an empty file returns a
// no-op logger.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := strings.ToLower(strings.TrimSpace(cfg.Level))
	if level == "off" || cfg.File == "" {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	var zc zap.Config
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}

	return zc.Build()
}
