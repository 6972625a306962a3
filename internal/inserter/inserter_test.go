package inserter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ledat/csv-to-cad-table/internal/config"
	"github.com/ledat/csv-to-cad-table/internal/loader"
	"github.com/ledat/csv-to-cad-table/internal/sink"
	"github.com/ledat/csv-to-cad-table/internal/table"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newInserter(t *testing.T) (*Inserter, *test.Hook, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var out bytes.Buffer
	return New(cfg, logger, &out), hook, &out
}

func exampleSpec() table.Spec {
	return table.Spec{
		Title:       "T",
		ColumnNames: []string{"X", "Y"},
		RowHeight:   2.5,
		ColumnWidth: 15,
		TextHeight:  1,
	}
}

func TestRunDryRun(t *testing.T) {
	ins, _, _ := newInserter(t)
	path := writeFile(t, "points.csv", "a,b\nc,d\n")

	result := ins.Run(Request{SourcePath: path, Spec: exampleSpec(), DryRun: true})
	if !result.Success {
		t.Fatalf("unexpected failure: %v", result.Error)
	}
	if result.OutputFile != "" {
		t.Errorf("dry run should write no file, got %q", result.OutputFile)
	}

	mem, ok := result.Sink.(*sink.Memory)
	if !ok {
		t.Fatalf("expected a memory sink, got %T", result.Sink)
	}
	expected := [][]string{
		{"T", "", ""},
		{"TT", "X", "Y"},
		{"1", "a", "b"},
		{"2", "c", "d"},
	}
	if diff := cmp.Diff(expected, mem.Last().Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Stats{Rows: 2, Columns: 2, Cells: 10}, result.Stats,
		cmpIgnoreTime); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

var cmpIgnoreTime = cmp.Comparer(func(a, b Stats) bool {
	a.ProcessingTime, b.ProcessingTime = 0, 0
	return a == b
})

func TestRunHeaderRow(t *testing.T) {
	ins, _, _ := newInserter(t)
	path := writeFile(t, "points.csv", "Name,Value\nA,1\nB,2\n")

	spec := exampleSpec()
	spec.ColumnNames = nil
	result := ins.Run(Request{SourcePath: path, Spec: spec, HeaderRow: true, Sink: sink.KindMemory})
	if !result.Success {
		t.Fatalf("unexpected failure: %v", result.Error)
	}

	grid := result.Sink.(*sink.Memory).Last()
	if diff := cmp.Diff([]string{"TT", "Name", "Value"}, grid.Cells[1]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if result.Stats.Rows != 2 {
		t.Errorf("expected 2 data rows, got %d", result.Stats.Rows)
	}
}

func TestRunWritesFiles(t *testing.T) {
	ins, _, _ := newInserter(t)
	path := writeFile(t, "points.csv", "a,b\n")

	result := ins.Run(Request{SourcePath: path, Spec: exampleSpec(), Sink: sink.KindXLSX})
	if !result.Success {
		t.Fatalf("unexpected failure: %v", result.Error)
	}
	if filepath.Dir(result.OutputFile) != ins.config.OutputDir {
		t.Errorf("expected output in %s, got %s", ins.config.OutputDir, result.OutputFile)
	}
	if !strings.HasPrefix(filepath.Base(result.OutputFile), "T_") || filepath.Ext(result.OutputFile) != ".xlsx" {
		t.Errorf("unexpected output name %s", result.OutputFile)
	}
	if _, err := os.Stat(result.OutputFile); err != nil {
		t.Errorf("output not written: %v", err)
	}

	dxfPath := filepath.Join(t.TempDir(), "nested", "table.dxf")
	result = ins.Run(Request{SourcePath: path, Spec: exampleSpec(), Sink: sink.KindDXF, OutputPath: dxfPath})
	if !result.Success {
		t.Fatalf("unexpected failure: %v", result.Error)
	}
	if result.OutputFile != dxfPath {
		t.Errorf("expected %s, got %s", dxfPath, result.OutputFile)
	}
	if _, err := os.Stat(dxfPath); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunPreview(t *testing.T) {
	ins, _, out := newInserter(t)
	path := writeFile(t, "points.csv", "a,b\n")

	result := ins.Run(Request{SourcePath: path, Spec: exampleSpec(), Sink: sink.KindPreview})
	if !result.Success {
		t.Fatalf("unexpected failure: %v", result.Error)
	}
	if !strings.HasPrefix(out.String(), "T\n") {
		t.Errorf("unexpected preview:\n%s", out.String())
	}
}

func TestRunLogsWarnings(t *testing.T) {
	ins, hook, _ := newInserter(t)
	path := writeFile(t, "ragged.csv", "a,b\nc\nd,e,f\n")

	result := ins.Run(Request{SourcePath: path, Spec: exampleSpec(), DryRun: true})
	if !result.Success {
		t.Fatalf("unexpected failure: %v", result.Error)
	}
	if result.Stats.Warnings != 2 {
		t.Errorf("expected 2 warnings, got %d", result.Stats.Warnings)
	}

	var rules []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			rules = append(rules, entry.Data["rule"].(string))
		}
	}
	if diff := cmp.Diff([]string{"short_row", "long_row"}, rules); diff != "" {
		t.Errorf("warning rules mismatch (-want +got):\n%s", diff)
	}
}

func TestRunLogsValidationSummary(t *testing.T) {
	ins, hook, _ := newInserter(t)
	path := writeFile(t, "ragged.csv", "a,b\nc\n")

	spec := exampleSpec()
	spec.ColumnWidth = -1
	result := ins.Run(Request{SourcePath: path, Spec: spec, DryRun: true})
	if !errors.Is(result.Error, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", result.Error)
	}

	var summary string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.DebugLevel && strings.HasPrefix(entry.Message, "Validation completed") {
			summary = entry.Message
		}
	}
	for _, want := range []string{"2 problem(s)", "column_width", "Row 2"} {
		if !strings.Contains(summary, want) {
			t.Errorf("expected %q in summary:\n%s", want, summary)
		}
	}
}

func TestRunRefusesExistingOutput(t *testing.T) {
	ins, _, _ := newInserter(t)
	path := writeFile(t, "points.csv", "a,b\n")
	existing := writeFile(t, "table.dxf", "keep me")

	result := ins.Run(Request{SourcePath: path, Spec: exampleSpec(), Sink: sink.KindDXF, OutputPath: existing})
	if !errors.Is(result.Error, sink.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", result.Error)
	}
	if !strings.Contains(result.Error.Error(), "already exists") {
		t.Errorf("unexpected error: %v", result.Error)
	}

	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "keep me" {
		t.Errorf("existing file was overwritten: %q", data)
	}
}

func TestRunErrors(t *testing.T) {
	ins, _, _ := newInserter(t)
	good := writeFile(t, "good.csv", "a,b\n")

	badSpec := exampleSpec()
	badSpec.RowHeight = 0

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"missing file", Request{SourcePath: filepath.Join(t.TempDir(), "nope.csv"), Spec: exampleSpec()}, loader.ErrUnreadable},
		{"malformed", Request{SourcePath: writeFile(t, "bad.csv", "a,\"b\n"), Spec: exampleSpec()}, loader.ErrMalformed},
		{"empty", Request{SourcePath: writeFile(t, "empty.csv", ""), Spec: exampleSpec()}, table.ErrNoData},
		{"header only", Request{SourcePath: writeFile(t, "h.csv", "x,y\n"), Spec: exampleSpec(), HeaderRow: true}, table.ErrNoData},
		{"invalid geometry", Request{SourcePath: good, Spec: badSpec}, ErrInvalid},
		{"unknown sink", Request{SourcePath: good, Spec: exampleSpec(), Sink: "autocad"}, sink.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ins.Run(tt.req)
			if result.Success {
				t.Fatal("expected failure")
			}
			if !errors.Is(result.Error, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, result.Error)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err    error
		prefix string
	}{
		{nil, "Table created."},
		{table.ErrNoData, "The file has no data."},
		{loader.ErrUnreadable, "Cannot read the file"},
		{loader.ErrMalformed, "The file is not valid CSV"},
		{ErrInvalid, "Check the table settings"},
		{sink.ErrUnavailable, "Cannot create the table"},
		{errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		if got := Describe(tt.err); !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("Describe(%v) = %q, want prefix %q", tt.err, got, tt.prefix)
		}
	}
}
