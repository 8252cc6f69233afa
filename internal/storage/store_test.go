package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/config"
)

func testRun() Run {
	cfg := config.DefaultConfig()
	cfg.Params["re"] = 2
	return Run{
		Script:  "cylinder",
		Config:  cfg,
		Format:  "gif",
		Outputs: []string{"cylinder.gif"},
		Samples: anim.Table{
			Columns: []string{"delta", "thin_wall_error"},
			Rows:    [][]float64{{0.5, 0.25}, {0.1, 0.05}},
		},
		Elapsed: 1500 * time.Millisecond,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "cylinder_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Script != "cylinder" {
		t.Errorf("expected script 'cylinder', got '%s'", meta.Script)
	}
	if meta.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", meta.Frames)
	}
	if meta.Params["re"] != 2 {
		t.Errorf("expected re 2, got %f", meta.Params["re"])
	}
	if meta.Metrics["thin_wall_error"] != 0.05 {
		t.Errorf("expected final error 0.05, got %f", meta.Metrics["thin_wall_error"])
	}
	if meta.ElapsedMS != 1500 {
		t.Errorf("expected 1500ms, got %d", meta.ElapsedMS)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(samples.Rows))
	}
	if samples.Rows[1][0] != 0.1 {
		t.Errorf("expected delta 0.1, got %f", samples.Rows[1][0])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("run ids collide: %s", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "samples.csv")); os.IsNotExist(err) {
		t.Error("samples.csv not created")
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	tbl := anim.Table{Columns: []string{"a", "b"}, Rows: [][]float64{{1, 2.5}}}
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := buf.String(); got != "a,b\n1,2.5\n" {
		t.Errorf("unexpected csv %q", got)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.ID != runID || len(data.Rows) != 2 || data.Columns[0] != "delta" {
		t.Errorf("unexpected export %+v", data)
	}
}

func TestSaveFailureLeavesNoRun(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	run := testRun()
	run.Samples.Rows[len(run.Samples.Rows)-1][1] = math.NaN()
	id, err := st.Save(run)
	if err == nil {
		t.Fatalf("expected NaN metrics to fail, got run %s", id)
	}
	if !strings.Contains(err.Error(), "save run cylinder_") {
		t.Errorf("error should name the run: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("partial run left behind: %v", entries)
	}
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected no runs, got %v %v", runs, err)
	}
}

func TestWriteFileReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	boom := errors.New("boom")
	if err := writeFile(path, func(*os.File) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("write error lost: %v", err)
	}

	// closing twice makes the deferred Close fail
	err := writeFile(path, func(f *os.File) error {
		_, werr := f.WriteString("x")
		f.Close()
		return werr
	})
	if !errors.Is(err, os.ErrClosed) {
		t.Errorf("close error lost: %v", err)
	}

	if err := writeFile(filepath.Join(dir, "missing", "out.txt"), func(*os.File) error { return nil }); err == nil {
		t.Error("expected create error")
	}
}
