/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package apibind

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/suparena/apibind/logging"
)

// timeLayout is used when a payload string is decoded into a time.Time field.
const timeLayout = time.RFC3339Nano

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used by Deserialize to report skipped values.
// A nil logger restores the no-op default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return logging.Nop()
}
