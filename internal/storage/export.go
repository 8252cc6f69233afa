package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/mechlab/internal/anim"
)

// WriteCSV writes a header row followed by one row per frame.
func WriteCSV(w io.Writer, t anim.Table) error {
	cw := csv.NewWriter(w)
	if len(t.Columns) == 0 {
		cw.Flush()
		return cw.Error()
	}

	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, r := range t.Rows {
		row := make([]string, len(r))
		for j, v := range r {
			row[j] = strconv.FormatFloat(v, 'g', 10, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	RunMetadata
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// ExportJSON writes a run's metadata together with its samples.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	t, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{RunMetadata: *meta, Columns: t.Columns, Rows: t.Rows}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
