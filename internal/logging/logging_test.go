package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewJSONModeWritesParsableLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: zerolog.InfoLevel})
	l.Info().Str("k", "v").Msg("hello")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected a parsable JSON line, got %q: %v", buf.String(), err)
	}
	if decoded["k"] != "v" || decoded["message"] != "hello" {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: zerolog.ErrorLevel})
	l.Info().Msg("should be suppressed")

	if buf.Len() != 0 {
		t.Fatalf("expected info-level log to be suppressed at error level, got %q", buf.String())
	}
}

func TestComponentAddsComponentField(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: zerolog.InfoLevel})
	c := Component(l, "drain")
	c.Info().Msg("tick")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["component"] != "drain" {
		t.Fatalf("expected component=drain, got %+v", decoded)
	}
}

func TestZeroValueLoggerIsANoop(t *testing.T) {
	var l zerolog.Logger
	l.Info().Msg("this must not panic")
}
