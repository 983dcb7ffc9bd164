package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{})
	log.Info("converted", "file", "a.png")
	if buf.Len() != 0 {
		t.Errorf("info logged without verbose: %q", buf.String())
	}
	log.Warn("output exceeds budget", "file", "a.png")
	if !strings.Contains(buf.String(), "file=a.png") {
		t.Errorf("warning missing: %q", buf.String())
	}

	buf.Reset()
	New(&buf, Options{Verbose: true}).Debug("scanned inputs", "files", 3)
	if !strings.Contains(buf.String(), "files=3") {
		t.Errorf("debug missing with verbose: %q", buf.String())
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{JSON: true}).Error("conversion failed", "kind", "decode")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not JSON: %q: %v", buf.String(), err)
	}
	if rec["msg"] != "conversion failed" || rec["kind"] != "decode" || rec["app"] != "imgfit" {
		t.Errorf("record = %v", rec)
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled")
	}
}
