// Package sysutil bootstraps process-wide concerns: the global zerolog
// logger and the build version reported to tracing and /health.
package sysutil

import (
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging installs the global logger writing to w (stdout when nil).
// Pretty output is meant for local development only.
func SetupLogging(level string, pretty bool, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	SetLogLevel(level)
}

// SetLogLevel sets the global level. Unknown or empty values mean info.
func SetLogLevel(lvl string) {
	lvl = strings.ToLower(strings.TrimSpace(lvl))
	if lvl == "warning" {
		lvl = "warn"
	}
	l, err := zerolog.ParseLevel(lvl)
	if err != nil || lvl == "" {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
}

// Version returns APP_VERSION, else the main module version stamped by the
// Go toolchain, else "dev".
func Version() string {
	var mod string
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "(devel)" {
		mod = bi.Main.Version
	}
	return FirstNonEmpty(os.Getenv("APP_VERSION"), mod, "dev")
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
