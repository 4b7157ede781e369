package cli

import (
	"io"
	"log/slog"

	"rpc-dumper/internal/diagnostic"
)

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logDiagnostics reports warnings at warn level and infos at debug level.
func logDiagnostics(logger *slog.Logger, d *diagnostic.Diagnostics) {
	for _, w := range d.Warnings {
		logger.Warn(w.Message,
			slog.String("code", w.Code),
			slog.String("type", w.TypeName),
			slog.String("member", w.Member))
	}

	for _, i := range d.Infos {
		logger.Debug(i.Message,
			slog.String("code", i.Code),
			slog.String("type", i.TypeName))
	}
}
