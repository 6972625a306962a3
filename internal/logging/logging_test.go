package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewText(t *testing.T) {
	var out bytes.Buffer
	logger, err := New("warn", "text", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.WithField("file", "a.csv").Warn("shown")

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("info message should be filtered: %q", got)
	}
	if !strings.Contains(got, "level=warning") || !strings.Contains(got, "file=a.csv") {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestNewJSON(t *testing.T) {
	var out bytes.Buffer
	logger, err := New("debug", "json", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}

	logger.Debug("hello")

	var entry map[string]any
	if err := json.Unmarshal(out.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, out.String())
	}
	if entry["msg"] != "hello" || entry["level"] != "debug" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("loud", "text", &bytes.Buffer{}); err == nil {
		t.Error("expected error for an unknown level")
	}
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Error("expected error for an unknown format")
	}
}
