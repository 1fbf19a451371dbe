package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/mcint/internal/analysis"
	"github.com/san-kum/mcint/internal/export"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	recordFile   = "record.csv"
)

// Store keeps finished convergence sweeps, one directory per run.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Problem   string    `json:"problem"`
	Generator string    `json:"generator"`
	Timestamp time.Time `json:"timestamp"`
	Seed      uint64    `json:"seed"`
	Exact     float64   `json:"exact"`
	Points    int       `json:"points"`
	Slope     *float64  `json:"slope,omitempty"`
}

// Save writes the run metadata and the record as CSV and returns the run id.
func (s *Store) Save(meta export.Meta, rec analysis.Record) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("%s_%d", meta.Problem, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	md := RunMetadata{
		ID:        runID,
		Problem:   meta.Problem,
		Generator: meta.Generator,
		Timestamp: ts,
		Seed:      meta.Seed,
		Exact:     meta.Exact,
		Points:    len(rec),
	}
	if slope, err := analysis.FitSlope(rec); err == nil {
		md.Slope = &slope
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(md)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, recordFile), func(w io.Writer) error {
			return export.WriteCSV(w, rec)
		})
	}
	if err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

// writeFile creates path and reports the first of the write and close errors.
func writeFile(path string, write func(w io.Writer) error) (err error) {
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

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadRecord reads back the record saved for runID.
func (s *Store) LoadRecord(runID string) (analysis.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, recordFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return analysis.Record{}, nil
	}

	rec := make(analysis.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("record row %d: expected 3 columns, got %d", i+1, len(row))
		}
		n, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("record row %d: %w", i+1, err)
		}
		est, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("record row %d: %w", i+1, err)
		}
		relErr, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("record row %d: %w", i+1, err)
		}
		rec = append(rec, analysis.Point{N: n, Estimate: est, RelErr: relErr})
	}
	return rec, nil
}
