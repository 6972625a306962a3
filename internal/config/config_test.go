package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	config, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := &Config{
		OutputDir:        "./output",
		OutputNameFormat: "{title}_{timestamp}_{uuid}",
		Sink:             "xlsx",
		LogLevel:         "info",
		LogFormat:        "text",
		CSV:              CSVSettings{Delimiter: ",", Encoding: "UTF-8"},
		Layout:           LayoutSettings{RowHeight: 2.5, ColumnWidth: 15, TextHeight: 1, Title: "Table"},
		XLSX:             XLSXSettings{SheetName: "Table"},
	}
	if diff := cmp.Diff(expected, config); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
sink: dxf
log_format: json
csv:
  delimiter: ";"
  encoding: windows-1258
  lazy_quotes: true
layout:
  row_height: 3
  title: Bảng
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Sink != "dxf" || config.LogFormat != "json" {
		t.Errorf("expected sink dxf and json logs, got %q and %q", config.Sink, config.LogFormat)
	}
	if diff := cmp.Diff(CSVSettings{Delimiter: ";", Encoding: "windows-1258", LazyQuotes: true}, config.CSV); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(LayoutSettings{RowHeight: 3, ColumnWidth: 15, TextHeight: 1, Title: "Bảng"}, config.Layout); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
	if config.OutputDir != "./output" {
		t.Errorf("expected default output dir, got %q", config.OutputDir)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":        "sink: [",
		"bad log format":  "log_format: xml",
		"negative height": "layout:\n  row_height: -1",
		"long comment":    "csv:\n  comment: '//'",
		"path in name":    "output_name_format: out/{uuid}",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Fatal("expected error, but got nil")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("expected error, but got nil")
		}
	})
}
