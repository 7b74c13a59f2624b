package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
)

func TestLogfmtFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "logfmt", "warn")
	if err != nil {
		t.Fatal(err)
	}

	level.Info(logger).Log("msg", "hidden")
	level.Warn(logger).Log("msg", "clock reset", "resets", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record passed a warn filter: %q", out)
	}
	for _, want := range []string{"level=warn", `msg="clock reset"`, "resets=1", "ts=", "caller=logging_test.go:"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "json", "debug")
	if err != nil {
		t.Fatal(err)
	}
	level.Debug(logger).Log("msg", "tick", "n", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "tick" || rec["level"] != "debug" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestUnknownOptions(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "xml", "info"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := New(&bytes.Buffer{}, "logfmt", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
