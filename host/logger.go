package host

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's default logger, used by host modules
// instantiated without WithLogger. It is a no-op logger unless set.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package's default logger.
// This must be called before any call to Instantiate.
func SetLogger(l *zap.Logger) {
	logger = l
}
