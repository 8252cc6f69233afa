package logger

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid json %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

func TestSetupWritesJSON(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := Setup(Config{DataDir: dir, Level: "debug", Command: "render"})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	Script("torsion").Debug("frame.rendered", "index", 3)
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	recs := readRecords(t, filepath.Join(dir, "logs", "mechlab.log"))
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec["msg"] != "frame.rendered" || rec["index"] != float64(3) {
		t.Errorf("unexpected record: %v", rec)
	}
	if rec["cmd"] != "render" || rec["script"] != "torsion" {
		t.Errorf("missing default attributes: %v", rec)
	}
	if _, ok := rec["source"]; !ok {
		t.Error("expected source position at debug level")
	}
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.log")

	cleanup, err := Setup(Config{File: path, Level: "WARN"})
	if err != nil {
		t.Fatal(err)
	}
	L().Info("dropped")
	L().Warn("kept")
	if err := cleanup(); err != nil {
		t.Fatal(err)
	}

	recs := readRecords(t, path)
	if len(recs) != 1 || recs[0]["msg"] != "kept" {
		t.Fatalf("expected only the warning, got %v", recs)
	}
	if _, ok := recs[0]["source"]; ok {
		t.Error("source should be omitted above debug")
	}
	if _, ok := recs[0]["cmd"]; ok {
		t.Error("cmd should be omitted when unset")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":       slog.LevelInfo,
		"debug":  slog.LevelDebug,
		"Error":  slog.LevelError,
		"info+2": slog.LevelInfo + 2,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("unknown level should not parse")
	}
	if _, err := Setup(Config{DataDir: t.TempDir(), Level: "loud"}); err == nil {
		t.Error("bad level should fail setup")
	}
}

func TestCleanupRestoresDiscard(t *testing.T) {
	cleanup, err := Setup(Config{File: "-"})
	if err != nil {
		t.Fatal(err)
	}
	if !L().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled after setup")
	}
	if err := cleanup(); err != nil {
		t.Fatal(err)
	}
	if L().Enabled(context.Background(), slog.LevelError) {
		t.Error("expected the discard logger after cleanup")
	}
}
