package svgkit

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/diagramagic/svgkit/svgdom"
	"github.com/diagramagic/svgkit/svgfont"
)

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetLogger routes diagnostics, such as skipped font files or
// unsupported elements, to the given logger. It propagates to the
// collaborating packages. Passing nil restores the default silent
// logger. Diagnostics never change results: a document measures and
// renders the same with or without a logger attached.
func SetLogger(l *slog.Logger) {
	stored := l
	if stored == nil {
		stored = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	pkgLogger.Store(stored)
	svgdom.SetLogger(l)
	svgfont.SetLogger(l)
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}
