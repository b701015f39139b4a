package swell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// scenarioStep is a single action in a scenario script.
type scenarioStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Z       float64 `json:"z,omitempty"`
	Speed   float64 `json:"speed,omitempty"`
	Heading float64 `json:"heading,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Count   int     `json:"count,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	DT      float64 `json:"dt,omitempty"`
}

// scenarioScript is the top-level JSON structure for a scenario.
type scenarioScript struct {
	DT    float64        `json:"dt,omitempty"`
	Steps []scenarioStep `json:"steps"`
}

// defaultScenarioDT is the host step used when a script does not set one.
const defaultScenarioDT = 1.0 / 60

// Scenario sequences wind changes, scrolling, pool resizing and heightmap
// snapshots against a WaveField for reproducible runs.
//
// Actions:
//
//	tick      advance the field Frames extra ticks at once (dt overridable)
//	wait      hold the script for Frames host frames
//	translate scroll the field by (x, z)
//	wind      ease toward speed/heading over seconds
//	pool      set the train pool size to count
//	snapshot  write a heightmap PNG named after label
type Scenario struct {
	// Dir is where snapshots are written. Empty means the working directory.
	Dir string

	dt        float64
	steps     []scenarioStep
	cursor    int
	waitCount int
	done      bool
	written   []string
	errs      []error
}

// LoadScenario parses a JSON scenario script.
func LoadScenario(jsonData []byte) (*Scenario, error) {
	var script scenarioScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scenario: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tick", "wait", "translate", "wind", "pool", "snapshot":
		default:
			return nil, fmt.Errorf("parse scenario: step %d: unknown action %q", i, st.Action)
		}
	}
	dt := script.DT
	if dt <= 0 {
		dt = defaultScenarioDT
	}
	return &Scenario{dt: dt, steps: script.Steps}, nil
}

// LoadScenarioFile reads a JSON scenario script from path.
func LoadScenarioFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return LoadScenario(data)
}

// DT returns the host step the script runs at.
func (s *Scenario) DT() float64 { return s.dt }

// Done reports whether all steps have been executed.
func (s *Scenario) Done() bool { return s.done }

// Written returns the paths of the snapshots written so far.
func (s *Scenario) Written() []string { return s.written }

// Err returns every snapshot error encountered so far, joined.
func (s *Scenario) Err() error { return errors.Join(s.errs...) }

// Step executes at most one action. Call it once per host frame before
// WaveField.Tick.
func (s *Scenario) Step(f *WaveField) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "tick":
		dt := st.DT
		if dt <= 0 {
			dt = s.dt
		}
		for range max(st.Frames, 1) {
			f.Tick(dt)
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "translate":
		f.Translate(st.X, st.Z)
	case "wind":
		f.SetWindTarget(st.Speed, st.Heading, st.Seconds)
	case "pool":
		f.SetTrainPoolSize(st.Count)
	case "snapshot":
		s.snapshot(f, st.Label)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}

// Run drives the field until the script is done, ticking once per frame
// at the script's dt. It returns the joined snapshot errors.
func (s *Scenario) Run(f *WaveField) error {
	for !s.Done() {
		s.Step(f)
		f.Tick(s.dt)
	}
	return s.Err()
}

func (s *Scenario) snapshot(f *WaveField, label string) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.errs = append(s.errs, fmt.Errorf("snapshot: mkdir %s: %w", dir, err))
		return
	}
	name := fmt.Sprintf("%06d_%s.png", f.Ticks(), sanitizeLabel(label))
	path := filepath.Join(dir, name)
	if err := WriteHeightmapPNG(path, f.Grid()); err != nil {
		s.errs = append(s.errs, fmt.Errorf("snapshot: %w", err))
		return
	}
	s.written = append(s.written, path)
}
