package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"DEBUG":   Debug,
		"warning": Warn,
		" error ": Error,
		"verbose": Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLogger_JSON_MergesFieldsAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "pet-companion", Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"user": "dev-1"}).Warn("save failed", map[string]any{
		"pet":   "Bunny",
		"error": errors.New("boom"),
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["app"] != "pet-companion" || entry["user"] != "dev-1" || entry["pet"] != "Bunny" {
		t.Fatalf("missing fields: %#v", entry)
	}
	if entry["error"] != "boom" {
		t.Fatalf("expected error rendered as string, got %#v", entry["error"])
	}
	if entry["level"] != "WARN" {
		t.Fatalf("expected WARN, got %v", entry["level"])
	}
}
