package gazeblur

import(
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards everything; Enabled returns false so callers skip
// formatting altogether.
type nopHandler struct{}

func (nopHandler)Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler)Handle(context.Context, slog.Record) error { return nil }
func (nopHandler)WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler)WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by the package. By default nothing is
// logged; pass nil to go back to that.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
