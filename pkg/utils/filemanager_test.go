package utils

import (
	"path/filepath"
	"regexp"
	"testing"
)

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{title}_{source}_{timestamp}_{uuid}", ".xlsx", map[string]string{
		"title":  "Bảng 1/2",
		"source": "data",
	})

	pattern := regexp.MustCompile(`^Bảng_1_2_data_\d{8}_\d{6}_[0-9a-f-]{36}\.xlsx$`)
	if !pattern.MatchString(name) {
		t.Errorf("unexpected name %q", name)
	}
}

func TestGenerateOutputFileNameExtension(t *testing.T) {
	if got := GenerateOutputFileName("table.DXF", ".dxf", nil); got != "table.DXF" {
		t.Errorf("expected existing extension to be kept, got %q", got)
	}
	if got := GenerateOutputFileName("table", "", nil); got != "table" {
		t.Errorf("expected no extension, got %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Plan A":     "Plan_A",
		"a/b\\c:d":   "a_b_c_d",
		"  ":         "untitled",
		"..":         "untitled",
		"v1.2-final": "v1.2-final",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSourceName(t *testing.T) {
	if got := SourceName(filepath.Join("in", "points.csv")); got != "points" {
		t.Errorf("expected points, got %q", got)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !FileExists(dir) {
		t.Error("expected directory to exist")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("expected missing file to be reported")
	}
}
