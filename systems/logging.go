package systems

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger sets the logger used by the systems package.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the systems package logger.
func Logger() *zap.Logger {
	return logger
}
