package cli

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textsvg/pkg/errors"
)

// logFormats maps --log-format values to formatters.
var logFormats = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
}

// newLogger returns an info-level text logger with short timestamps
// ("14:32:01.45").
func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})
}

// configureLogger applies the root logging flags.
func configureLogger(l *log.Logger, verbose bool, format string) error {
	f, ok := logFormats[strings.ToLower(format)]
	if !ok {
		names := make([]string, 0, len(logFormats))
		for name := range logFormats {
			names = append(names, name)
		}
		sort.Strings(names)
		return errors.New(errors.ErrCodeInvalidInput, "unknown log format %q (use %s)", format, strings.Join(names, ", "))
	}
	l.SetFormatter(f)
	if verbose {
		l.SetLevel(log.DebugLevel)
		l.SetReportCaller(true)
	} else {
		l.SetLevel(log.InfoLevel)
		l.SetReportCaller(false)
	}
	return nil
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside
// a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
