package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/flowlab/internal/advect"
	"github.com/san-kum/flowlab/internal/config"
	"github.com/san-kum/flowlab/internal/field"
)

// Store persists advection runs under a base directory, one subdirectory
// per run: metadata.json plus trajectories.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Width         float64            `json:"width"`
	Height        float64            `json:"height"`
	Resolution    float64            `json:"resolution"`
	Neighbourhood int                `json:"neighbourhood_size"`
	Decay         string             `json:"decay"`
	Generator     string             `json:"generator"`
	Particles     int                `json:"particles"`
	Lifespan      int                `json:"lifespan"`
	Metrics       map[string]float64 `json:"metrics"`
}

// TrajectoryRecord is one trajectory sample in the CSV layout.
type TrajectoryRecord struct {
	Particle int     `csv:"particle"`
	Step     int     `csv:"step"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Color    string  `csv:"color"`
}

// Save writes one run. Per-particle metrics are aggregated to their mean in
// the metadata; the full trajectories go to CSV.
func (s *Store) Save(cfg *config.Config, results []advect.Result) (string, error) {
	runID := fmt.Sprintf("flow_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Seed:          cfg.Seed,
		Width:         cfg.Width,
		Height:        cfg.Height,
		Resolution:    cfg.Resolution,
		Neighbourhood: cfg.Neighbourhood,
		Decay:         cfg.Decay,
		Generator:     cfg.Generator,
		Particles:     len(results),
		Lifespan:      cfg.Particles.Lifespan,
		Metrics:       aggregateMetrics(results),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	records := make([]*TrajectoryRecord, 0)
	for i, r := range results {
		for step, pos := range r.Particle.Trajectory() {
			records = append(records, &TrajectoryRecord{
				Particle: i,
				Step:     step,
				X:        pos.X,
				Y:        pos.Y,
				Color:    r.Particle.Color(),
			})
		}
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectories.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.MarshalFile(&records, csvFile); err != nil {
		return "", err
	}

	return runID, nil
}

func aggregateMetrics(results []advect.Result) map[string]float64 {
	agg := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range results {
		for name, val := range r.Metrics {
			agg[name] += val
			counts[name]++
		}
	}
	for name := range agg {
		agg[name] /= float64(counts[name])
	}
	return agg
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// TrajectoryPath returns the location of a run's trajectory CSV.
func (s *Store) TrajectoryPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "trajectories.csv")
}

// LoadTrajectories reads back the per-particle position sequences, indexed
// by particle in seeding order.
func (s *Store) LoadTrajectories(runID string) ([][]field.Vec2, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectories.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records := make([]*TrajectoryRecord, 0)
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, err
	}

	maxParticle := -1
	for _, rec := range records {
		if rec.Particle > maxParticle {
			maxParticle = rec.Particle
		}
	}

	trajectories := make([][]field.Vec2, maxParticle+1)
	for _, rec := range records {
		trajectories[rec.Particle] = append(trajectories[rec.Particle], field.Vec2{X: rec.X, Y: rec.Y})
	}

	return trajectories, nil
}

// LoadColors reads back the per-particle color tags in seeding order.
func (s *Store) LoadColors(runID string) ([]string, error) {
	file, err := os.Open(s.TrajectoryPath(runID))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records := make([]*TrajectoryRecord, 0)
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, err
	}

	maxParticle := -1
	for _, rec := range records {
		if rec.Particle > maxParticle {
			maxParticle = rec.Particle
		}
	}

	colors := make([]string, maxParticle+1)
	for _, rec := range records {
		colors[rec.Particle] = rec.Color
	}
	return colors, nil
}
