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
)

var ErrMismatchedSeries = errors.New("storage: tick and render series differ in length")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Run describes one saved bench run.
type Run struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Particles int                `json:"particles"`
	Dust      int                `json:"dust"`
	Ticks     int                `json:"ticks"`
	Delta     float32            `json:"delta"`
	ElapsedMS float64            `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes run metadata and per-frame timings in milliseconds. A zero
// Timestamp is set to now.
func (s *Store) Save(run Run, tickMS, renderMS []float64) (string, error) {
	if len(tickMS) != len(renderMS) {
		return "", fmt.Errorf("%w: %d vs %d", ErrMismatchedSeries, len(tickMS), len(renderMS))
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	run.ID = fmt.Sprintf("bench_%d", run.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, run.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"tick", "tick_ms", "render_ms"}); err != nil {
		return "", err
	}
	for i := range tickMS {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(tickMS[i], 'f', 6, 64),
			strconv.FormatFloat(renderMS[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return run.ID, nil
}

// List returns saved runs, oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]Run, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, err
	}

	runs := make([]Run, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		run, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*Run, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// LoadFrames returns the tick and render timings saved with a run.
func (s *Store) LoadFrames(runID string) (tickMS, renderMS []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	tickMS = make([]float64, 0, len(records)-1)
	renderMS = make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		r, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		tickMS = append(tickMS, t)
		renderMS = append(renderMS, r)
	}
	return tickMS, renderMS, nil
}
