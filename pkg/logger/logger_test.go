package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// resetRoot clears the process logger for the duration of a test.
func resetRoot(t *testing.T) {
	t.Helper()
	mu.Lock()
	root = nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		root = nil
		mu.Unlock()
	})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			t.Fatalf("expected a JSON line, got %q: %v", raw, err)
		}
		lines = append(lines, line)
	}
	return lines
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Output: &buf, Service: "uuid-resolver"})
	log.Info().Str("k", "v").Msg("hello")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	line := lines[0]
	if line["service"] != "uuid-resolver" || line["message"] != "hello" || line["k"] != "v" {
		t.Fatalf("unexpected fields: %v", line)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["message"] != "kept" {
		t.Fatalf("expected only the warn line, got %v", lines)
	}
}

func TestInit_OnlyOnce(t *testing.T) {
	resetRoot(t)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	l := Init(Options{Output: &second})
	l.Info().Msg("x")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("second Init must not replace the process logger")
	}
}

func TestComponent_TagsLines(t *testing.T) {
	resetRoot(t)

	var buf bytes.Buffer
	Init(Options{Output: &buf, Service: "uuid-resolver"})

	auth := Component(ComponentAuth)
	auth.Info().Msg("token issued")
	mapping := Component(ComponentMapping)
	mapping.Info().Msg("mapping generated")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if lines[0]["component"] != "auth" || lines[1]["component"] != "mapping" {
		t.Fatalf("unexpected components: %v", lines)
	}
	if lines[1]["service"] != "uuid-resolver" {
		t.Fatalf("component logger lost the service field: %v", lines[1])
	}
}

func TestComponent_BeforeInitIsDisabled(t *testing.T) {
	resetRoot(t)

	if got := Component(ComponentHTTP).GetLevel(); got != zerolog.Disabled {
		t.Fatalf("expected disabled logger before Init, got level %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
