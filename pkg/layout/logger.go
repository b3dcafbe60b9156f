package layout

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the layout package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the layout package's logger.
// This must be called before any layout operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

// debugf logs layout detail when the installed logger has debug enabled;
// under the default no-op logger it costs a level check and nothing else.
func debugf(format string, args ...any) {
	l := Logger()
	if !l.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	l.Sugar().Debugf(format, args...)
}
