package interval

import "go.uber.org/zap"

// Package logger, nop by default so library users opt in to logging.
var log = zap.NewNop()

// SetLogger installs a logger for diagnostics emitted during genome
// construction (e.g. frame-correction failures).
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}
