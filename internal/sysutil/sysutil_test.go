package sysutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetLogLevel(t *testing.T) {
	orig := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(orig) })

	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"  DeBuG  ", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		SetLogLevel(tc.in)
		if got := zerolog.GlobalLevel(); got != tc.want {
			t.Fatalf("SetLogLevel(%q) -> %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestSetupLogging_JSONAndPretty(t *testing.T) {
	origLevel, origLogger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(origLevel)
		log.Logger = origLogger
	})

	var buf bytes.Buffer
	SetupLogging("warn", false, &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line emitted at warn level: %s", out)
	}
	if !strings.Contains(out, `"k":"v"`) || !strings.Contains(out, `"time":`) {
		t.Fatalf("expected JSON with timestamp, got %s", out)
	}

	buf.Reset()
	SetupLogging("info", true, &buf)
	log.Info().Msg("pretty")
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("pretty output should not be JSON: %s", buf.String())
	}
}

func TestVersion(t *testing.T) {
	t.Setenv("APP_VERSION", "1.4.2")
	if got := Version(); got != "1.4.2" {
		t.Fatalf("Version = %q", got)
	}
	t.Setenv("APP_VERSION", "")
	if got := Version(); got == "" {
		t.Fatalf("Version must never be empty")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "x", "y"); got != "x" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonEmpty("", " "); got != "" {
		t.Fatalf("got %q", got)
	}
}
