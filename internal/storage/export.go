package storage

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/driftfield/internal/metrics"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []ExportFrame `json:"frames"`
}

type ExportFrame struct {
	Index      int     `json:"index"`
	TimeMs     float64 `json:"time_ms"`
	Dt         float64 `json:"dt"`
	Population int     `json:"population"`
	Links      int     `json:"links"`
	CostUs     int64   `json:"cost_us"`
}

// ExportJSON writes a run and its frames as one indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, frames []metrics.Frame) error {
	data := ExportData{
		Run:    meta,
		Frames: make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		data.Frames[i] = ExportFrame{
			Index:      f.Index,
			TimeMs:     float64(f.Time) / float64(time.Millisecond),
			Dt:         f.Dt,
			Population: f.Population,
			Links:      f.Links,
			CostUs:     f.Cost.Microseconds(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
