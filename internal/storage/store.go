package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/mechlab/internal/anim"
	"github.com/san-kum/mechlab/internal/config"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string {
	return s.baseDir
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Script    string             `json:"script"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Format    string             `json:"format"`
	Outputs   []string           `json:"outputs"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	FPS       int                `json:"fps"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
	ElapsedMS int64              `json:"elapsed_ms"`
}

// Run is what a render produced.
type Run struct {
	Script  string
	Config  *config.Config
	Format  string
	Outputs []string
	Samples anim.Table
	Elapsed time.Duration
}

// Save writes the run's metadata and samples and returns its id.
func (s *Store) Save(run Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Script, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for n := 2; exists(runDir); n++ {
		runID = fmt.Sprintf("%s_%d_%d", run.Script, now.Unix(), n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}

	cfg := run.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	meta := RunMetadata{
		ID:        runID,
		Script:    run.Script,
		Timestamp: now,
		Frames:    len(run.Samples.Rows),
		Format:    run.Format,
		Outputs:   run.Outputs,
		Width:     cfg.Width,
		Height:    cfg.Height,
		FPS:       cfg.FPS,
		Params:    cfg.Params,
		Metrics:   Summary(run.Samples),
		ElapsedMS: run.Elapsed.Milliseconds(),
	}

	err := writeFile(filepath.Join(runDir, "metadata.json"), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, "samples.csv"), func(f *os.File) error {
			return WriteCSV(f, run.Samples)
		})
	}
	if err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}
	return runID, nil
}

// writeFile creates path and runs write on it. A failed Close is returned
// like a failed write.
func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// Summary keeps the last frame's quantities, which is where every script
// ends up.
func Summary(t anim.Table) map[string]float64 {
	out := make(map[string]float64, len(t.Columns))
	if len(t.Rows) == 0 {
		return out
	}
	last := t.Rows[len(t.Rows)-1]
	for j, c := range t.Columns {
		out[c] = last[j]
	}
	return out
}

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads a run's samples.csv back into a table.
func (s *Store) LoadSamples(runID string) (anim.Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return anim.Table{}, fmt.Errorf("load samples %s: %w", runID, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return anim.Table{}, err
	}
	if len(records) == 0 {
		return anim.Table{}, nil
	}

	t := anim.Table{Columns: records[0], Rows: make([][]float64, 0, len(records)-1)}
	for _, record := range records[1:] {
		if len(record) != len(t.Columns) {
			continue
		}
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return anim.Table{}, fmt.Errorf("load samples %s: %w", runID, err)
			}
			row[j] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
