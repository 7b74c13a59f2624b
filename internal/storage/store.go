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
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/experiment"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	tracksFile   = "tracks.csv"
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

type RunMetadata struct {
	ID               string             `json:"id"`
	Preset           string             `json:"preset"`
	Timestamp        time.Time          `json:"timestamp"`
	Integrator       string             `json:"integrator"`
	Bodies           []string           `json:"bodies"`
	Placement        string             `json:"placement"`
	Start            time.Time          `json:"start"`
	End              time.Time          `json:"end"`
	TimeScale        float64            `json:"time_scale"`
	SolverIterations int                `json:"solver_iterations"`
	SimulatePhysics  bool               `json:"simulate_physics"`
	Tick             float64            `json:"tick"`
	Ticks            uint64             `json:"ticks"`
	Samples          int                `json:"samples"`
	ClockResets      int                `json:"clock_resets"`
	WallSeconds      float64            `json:"wall_seconds"`
	Metrics          map[string]float64 `json:"metrics"`
}

// Tracks are the sampled body states of a run.
type Tracks struct {
	Times      []float64
	JD         []float64
	Bodies     []string
	Positions  map[string][]mgl64.Vec3
	Velocities map[string][]mgl64.Vec3
}

// Relative returns target positions relative to center, or nil if either
// body is missing.
func (t *Tracks) Relative(target, center string) []mgl64.Vec3 {
	a, b := t.Positions[target], t.Positions[center]
	if a == nil || b == nil {
		return nil
	}
	out := make([]mgl64.Vec3, len(a))
	for i := range a {
		out[i] = a[i].Sub(b[i])
	}
	return out
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	cfg := result.Config
	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	runID := fmt.Sprintf("%s_%s_%d", name, cfg.Integrator, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:               runID,
		Preset:           cfg.Name,
		Timestamp:        time.Now(),
		Integrator:       cfg.Integrator,
		Bodies:           result.BodyNames(),
		Placement:        cfg.Placement,
		TimeScale:        cfg.TimeScale,
		SolverIterations: cfg.SolverIterations,
		SimulatePhysics:  cfg.SimulatePhysics,
		Tick:             cfg.Tick,
		Ticks:            result.Ticks,
		Samples:          len(result.Samples),
		ClockResets:      result.ClockResets,
		WallSeconds:      result.Wall.Seconds(),
		Metrics:          result.Metrics,
	}
	if n := len(result.Samples); n > 0 {
		meta.Start = result.Samples[0].Time
		meta.End = result.Samples[n-1].Time
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTracks(filepath.Join(runDir, tracksFile), result); err != nil {
		return "", err
	}
	return runID, nil
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTracks(path string, result *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	names := result.BodyNames()
	header := []string{"time", "jd"}
	for _, n := range names {
		header = append(header, n+".x", n+".y", n+".z", n+".vx", n+".vy", n+".vz")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	times := result.Times()
	for i, snap := range result.Samples {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(times[i]), formatFloat(snap.JulianDate))
		for _, b := range snap.Bodies {
			p, v := b.Position, b.Velocity
			row = append(row,
				formatFloat(p.X()), formatFloat(p.Y()), formatFloat(p.Z()),
				formatFloat(v.X()), formatFloat(v.Y()), formatFloat(v.Z()))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the stored runs, oldest first. Directories without
// readable metadata are skipped.
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

func (s *Store) open(runID, name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return f, err
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	f, err := s.open(runID, metadataFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta RunMetadata
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTracks(runID string) (*Tracks, error) {
	f, err := s.open(runID, tracksFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}

	tr := &Tracks{
		Positions:  make(map[string][]mgl64.Vec3),
		Velocities: make(map[string][]mgl64.Vec3),
	}
	if len(records) == 0 {
		return tr, nil
	}

	header := records[0]
	if len(header) < 2 || (len(header)-2)%6 != 0 {
		return nil, fmt.Errorf("%s: malformed header with %d columns", runID, len(header))
	}
	for c := 2; c < len(header); c += 6 {
		name, _, _ := strings.Cut(header[c], ".")
		tr.Bodies = append(tr.Bodies, name)
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %s: %w", runID, line+1, header[j], err)
			}
			vals[j] = v
		}

		tr.Times = append(tr.Times, vals[0])
		tr.JD = append(tr.JD, vals[1])
		for k, name := range tr.Bodies {
			c := 2 + 6*k
			tr.Positions[name] = append(tr.Positions[name], mgl64.Vec3{vals[c], vals[c+1], vals[c+2]})
			tr.Velocities[name] = append(tr.Velocities[name], mgl64.Vec3{vals[c+3], vals[c+4], vals[c+5]})
		}
	}
	return tr, nil
}

// ExportData is the JSON form of a stored run.
type ExportData struct {
	Run    RunMetadata  `json:"run"`
	Times  []float64    `json:"times"`
	JD     []float64    `json:"jd"`
	Bodies []BodyTracks `json:"bodies"`
}

type BodyTracks struct {
	Name       string       `json:"name"`
	Positions  []mgl64.Vec3 `json:"positions"`
	Velocities []mgl64.Vec3 `json:"velocities"`
}

func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tr, err := s.LoadTracks(runID)
	if err != nil {
		return err
	}

	data := ExportData{Run: *meta, Times: tr.Times, JD: tr.JD}
	for _, name := range tr.Bodies {
		data.Bodies = append(data.Bodies, BodyTracks{
			Name:       name,
			Positions:  tr.Positions[name],
			Velocities: tr.Velocities[name],
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies the stored tracks to w unchanged.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	f, err := s.open(runID, tracksFile)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
