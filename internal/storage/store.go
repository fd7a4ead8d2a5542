// Package storage keeps recorded stream sessions on disk, one directory
// per run holding metadata.json and points.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/integlab/internal/stream"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
)

var pointsHeader = []string{"time", "memory", "cpu", "integral"}

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

// RunMetadata describes a recorded session.
type RunMetadata struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	Period      string    `json:"period"`
	Window      int       `json:"window"`
	SampleWidth float64   `json:"sample_width"`
	Ticks       int       `json:"ticks"`
	Integral    float64   `json:"integral"`
	Points      int       `json:"points"`
}

// Save writes meta and the retained points under a new run directory and
// returns its id. ID, Timestamp and Points are filled in by Save.
func (s *Store) Save(meta RunMetadata, points []stream.Point) (string, error) {
	now := s.now()
	meta.ID = fmt.Sprintf("stream_%d", now.UnixNano())
	meta.Timestamp = now
	meta.Points = len(points)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePoints(filepath.Join(runDir, pointsFile), points); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePoints(path string, points []stream.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(pointsHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := make([]string, 0, len(pointsHeader))
		for _, v := range []float64{p.Time, p.Memory, p.CPU, p.Integral} {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, oldest first. A missing
// base directory holds no runs.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
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
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadPoints reads back the points of a run.
func (s *Store) LoadPoints(runID string) ([]stream.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, pointsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(pointsHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []stream.Point{}, nil
	}

	points := make([]stream.Point, 0, len(records)-1)
	for i, rec := range records[1:] {
		var v [4]float64
		for j := range v {
			if v[j], err = strconv.ParseFloat(rec[j], 64); err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, i+2, err)
			}
		}
		points = append(points, stream.Point{Time: v[0], Memory: v[1], CPU: v[2], Integral: v[3]})
	}
	return points, nil
}
