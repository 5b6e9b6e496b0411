package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/driftfield/internal/metrics"
)

var frameHeader = []string{"index", "time_ms", "dt", "population", "links", "cost_us"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one saved bench run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Mode      string             `json:"mode"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv under a fresh run directory and
// returns the run id. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, frames []metrics.Frame) (string, error) {
	now := time.Now()
	base := fmt.Sprintf("%s_%d", meta.Scenario, now.Unix())
	runID, runDir, err := s.mkRunDir(base)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = len(frames)

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, "frames.csv"), frames); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func (s *Store) mkRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", fmt.Errorf("storage: %w", err)
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func writeJSON(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFrames(path string, frames []metrics.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeFrames(f, frames); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeFrames(out io.Writer, frames []metrics.Frame) error {
	w := csv.NewWriter(out)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Index),
			strconv.FormatFloat(float64(fr.Time)/float64(time.Millisecond), 'f', 3, 64),
			strconv.FormatFloat(fr.Dt, 'f', 6, 64),
			strconv.Itoa(fr.Population),
			strconv.Itoa(fr.Links),
			strconv.FormatInt(fr.Cost.Microseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadFrames reads back the per-frame series. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]metrics.Frame, error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}

	if len(records) < 2 {
		return []metrics.Frame{}, nil
	}

	frames := make([]metrics.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		f, ok := parseFrame(record)
		if !ok {
			continue
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func parseFrame(record []string) (metrics.Frame, bool) {
	if len(record) != len(frameHeader) {
		return metrics.Frame{}, false
	}
	index, err1 := strconv.Atoi(record[0])
	ms, err2 := strconv.ParseFloat(record[1], 64)
	dt, err3 := strconv.ParseFloat(record[2], 64)
	pop, err4 := strconv.Atoi(record[3])
	linked, err5 := strconv.Atoi(record[4])
	cost, err6 := strconv.ParseInt(record[5], 10, 64)
	if err := errors.Join(err1, err2, err3, err4, err5, err6); err != nil {
		return metrics.Frame{}, false
	}
	return metrics.Frame{
		Index:      index,
		Time:       time.Duration(ms * float64(time.Millisecond)),
		Dt:         dt,
		Population: pop,
		Links:      linked,
		Cost:       time.Duration(cost) * time.Microsecond,
	}, true
}
