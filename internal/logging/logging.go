// Package logging builds the go-kit loggers used by the command line.
package logging

import (
	"fmt"
	"io"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logger writing logfmt or json to w, filtered at the given
// level (debug, info, warn, error). Every record carries ts and caller.
func New(w io.Writer, format, lvl string) (kitlog.Logger, error) {
	sw := kitlog.NewSyncWriter(w)

	var logger kitlog.Logger
	switch strings.ToLower(format) {
	case "", "logfmt":
		logger = kitlog.NewLogfmtLogger(sw)
	case "json":
		logger = kitlog.NewJSONLogger(sw)
	default:
		return nil, fmt.Errorf("logging: unknown format %q (want logfmt or json)", format)
	}

	opt, err := filter(lvl)
	if err != nil {
		return nil, err
	}
	logger = level.NewFilter(logger, opt)
	return kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller), nil
}

func filter(lvl string) (level.Option, error) {
	switch strings.ToLower(lvl) {
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
	}
	return nil, fmt.Errorf("logging: unknown level %q", lvl)
}
