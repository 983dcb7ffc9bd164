package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/convert"
	"github.com/AnyUserName/imgfit-cli/internal/hasher"
	"github.com/AnyUserName/imgfit-cli/internal/session"
	"github.com/AnyUserName/imgfit-cli/internal/target"
)

func sampleReport(t *testing.T, dir string) *Report {
	t.Helper()
	out := []byte("converted bytes")
	if err := os.WriteFile(filepath.Join(dir, "a.webp"), out, 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(convert.Options{Codec: codec.WebP, Preset: target.Medium})
	r.Add(convert.Record{
		Name:         "a.png",
		InputType:    "image/png",
		OutputType:   "image/webp",
		InputSize:    100,
		OutputSize:   int64(len(out)),
		Budget:       50,
		Quality:      0.65,
		Attempts:     8,
		WithinBudget: true,
		Handle:       session.Handle(hasher.ContentHash(out, 0)),
	}, "a.webp")
	r.Add(convert.Record{
		Name:      "b.heic",
		InputType: "image/heic",
		InputSize: 400,
		Budget:    200,
		Err:       errors.New("helper unavailable"),
	}, "ignored.webp")
	return r
}

func TestReportRoundtrip(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)

	path := filepath.Join(dir, DefaultName)
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	r2, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if r2.Version != SupportedVersion || r2.Codec != "webp" || r2.Preset != "medium" {
		t.Errorf("header: %+v", r2)
	}
	if len(r2.Entries) != 2 {
		t.Fatalf("entries: got %d", len(r2.Entries))
	}
	if r2.Entries[1].Path != "" || r2.Entries[1].Error != "helper unavailable" {
		t.Errorf("failed entry: %+v", r2.Entries[1])
	}

	s := r2.Stats
	if s.TotalFiles != 2 || s.Converted != 1 || s.Failed != 1 {
		t.Errorf("counts: %+v", s)
	}
	// Only converted files count towards the byte totals.
	if s.TotalInputBytes != 100 || s.TotalOutputBytes != 15 {
		t.Errorf("bytes: %+v", s)
	}
}

func TestCustomKBOnlyForCustomPreset(t *testing.T) {
	if r := New(convert.Options{Codec: codec.JPEG, Preset: target.Small, CustomKB: 40}); r.CustomKB != 0 {
		t.Errorf("custom_kb recorded for preset small: %v", r.CustomKB)
	}
	if r := New(convert.Options{Codec: codec.JPEG, Preset: target.Custom, CustomKB: 40}); r.CustomKB != 40 {
		t.Errorf("custom_kb = %v, want 40", r.CustomKB)
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2026-01-01T00:00:00Z",
		"codec": "jpeg",
		"preset": "same",
		"future_field": true,
		"entries": [],
		"stats": { "total_files": 0, "converted": 0, "failed": 0, "new_stat": 1 }
	}`
	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if r.Codec != "jpeg" {
		t.Errorf("codec: got %q", r.Codec)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)
	r.ComputeStats()

	if errs := Validate(r, dir); len(errs) != 0 {
		t.Fatalf("valid report rejected: %v", errs)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.webp"), []byte("tampered bytes!"), 0o644); err != nil {
		t.Fatal(err)
	}
	errs := Validate(r, dir)
	if len(errs) != 1 || !strings.Contains(errs[0], "hash mismatch") {
		t.Errorf("tampered file: %v", errs)
	}

	os.Remove(filepath.Join(dir, "a.webp"))
	errs = Validate(r, dir)
	if len(errs) != 1 || !strings.Contains(errs[0], "file not found") {
		t.Errorf("missing file: %v", errs)
	}
}

func TestValidateStatsMismatch(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)
	r.ComputeStats()
	r.Stats.Converted = 7
	r.Version = 9

	errs := Validate(r, dir)
	if len(errs) != 2 {
		t.Fatalf("errors: %v", errs)
	}
}

func TestValidateBudgetClaim(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)
	r.Entries[0].Budget = 5
	r.ComputeStats()

	errs := Validate(r, dir)
	if len(errs) != 1 || !strings.Contains(errs[0], "within budget") {
		t.Errorf("errors: %v", errs)
	}
}
