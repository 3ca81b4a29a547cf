package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/flowlab/internal/field"
)

type ExportData struct {
	ID            string             `json:"id"`
	Width         float64            `json:"width"`
	Height        float64            `json:"height"`
	Resolution    float64            `json:"resolution"`
	Neighbourhood int                `json:"neighbourhood_size"`
	Decay         string             `json:"decay"`
	Generator     string             `json:"generator"`
	Seed          int64              `json:"seed"`
	Metrics       map[string]float64 `json:"metrics"`
	Trajectories  [][][2]float64     `json:"trajectories"`
}

// ExportJSON writes a run and its trajectories as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, trajectories [][]field.Vec2) error {
	data := ExportData{
		ID:            meta.ID,
		Width:         meta.Width,
		Height:        meta.Height,
		Resolution:    meta.Resolution,
		Neighbourhood: meta.Neighbourhood,
		Decay:         meta.Decay,
		Generator:     meta.Generator,
		Seed:          meta.Seed,
		Metrics:       meta.Metrics,
		Trajectories:  make([][][2]float64, len(trajectories)),
	}

	for i, traj := range trajectories {
		points := make([][2]float64, len(traj))
		for j, p := range traj {
			points[j] = [2]float64{p.X, p.Y}
		}
		data.Trajectories[i] = points
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
