// Package logging builds the go-kit logger shared by the CLI and HTTP server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logfmt (or json) logger writing to w, filtered to logLevel.
// A nil writer means stderr.
func New(w io.Writer, format, logLevel string) (kitlog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	writer := kitlog.NewSyncWriter(w)

	var logger kitlog.Logger
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "logfmt":
		logger = kitlog.NewLogfmtLogger(writer)
	case "json":
		logger = kitlog.NewJSONLogger(writer)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}

	opt, err := levelOption(logLevel)
	if err != nil {
		return nil, err
	}

	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)

	// Must put the level filter last for efficiency.
	return level.NewFilter(logger, opt), nil
}

func levelOption(name string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	default:
		return nil, fmt.Errorf("logging: unknown level %q", name)
	}
}
