package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first := Init(Options{Level: "warn", Output: &bytes.Buffer{}})
	second := Init(Options{Level: "debug", Output: &bytes.Buffer{}})

	if first.GetLevel() != zerolog.WarnLevel || second.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("levels = %s, %s; want warn for both", first.GetLevel(), second.GetLevel())
	}
}

func TestComponent_TagsEntries(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "info", Output: &buf})

	Component("bridge").Info().Msg("listening")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["component"] != "bridge" || entry["service"] != serviceName || entry["message"] != "listening" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
