package swell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario([]byte(`{"steps": [{"action": "tick", "frames": 2}]}`))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.DT() != defaultScenarioDT {
		t.Errorf("DT = %v, want default %v", sc.DT(), defaultScenarioDT)
	}
	if sc.Done() {
		t.Error("fresh scenario should not be done")
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	tests := []struct {
		name, json, want string
	}{
		{"invalid json", `{not json`, "parse scenario"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "explode"}]}`, "unknown action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario([]byte(tt.json))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestScenarioStepActions(t *testing.T) {
	cfg := newTestFieldConfig()
	f := NewWaveField(&cfg, FlatBathymetry(50), nil)

	script := `{
		"dt": 0.02,
		"steps": [
			{"action": "tick", "frames": 3},
			{"action": "translate", "x": 4, "z": -2},
			{"action": "pool", "count": 1},
			{"action": "wind", "speed": 15, "heading": 0.5}
		]
	}`
	sc, err := LoadScenario([]byte(script))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	sc.Step(f)
	if f.Ticks() != 3 {
		t.Errorf("after tick step: Ticks = %d, want 3", f.Ticks())
	}
	sc.Step(f)
	if f.ScrollOffset() != (Vec2{X: 4, Z: -2}) {
		t.Errorf("after translate: scroll = %+v", f.ScrollOffset())
	}
	sc.Step(f)
	if cfg.NumTrains != 1 {
		t.Errorf("after pool: NumTrains = %d, want 1", cfg.NumTrains)
	}
	sc.Step(f)
	if cfg.WindSpeed != 15 || cfg.WindHeading != 0.5 {
		t.Errorf("after wind: %v @ %v, want 15 @ 0.5", cfg.WindSpeed, cfg.WindHeading)
	}
	if !sc.Done() {
		t.Error("scenario should be done after its last step")
	}
}

func TestScenarioWait(t *testing.T) {
	cfg := newTestFieldConfig()
	f := NewWaveField(&cfg, FlatBathymetry(50), nil)
	sc, err := LoadScenario([]byte(`{"steps": [{"action": "wait", "frames": 3}, {"action": "translate", "x": 1}]}`))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	// The wait step consumes three frames, then translate runs.
	for i := 0; i < 3; i++ {
		sc.Step(f)
		if f.ScrollOffset().X != 0 {
			t.Fatalf("translate ran during wait frame %d", i)
		}
	}
	sc.Step(f)
	if f.ScrollOffset().X != 1 {
		t.Errorf("scroll = %+v, want x=1 after the wait", f.ScrollOffset())
	}
}

func TestScenarioRunWritesSnapshots(t *testing.T) {
	cfg := newTestFieldConfig()
	f := NewWaveField(&cfg, FlatBathymetry(50), nil)
	sc, err := LoadScenario([]byte(`{
		"steps": [
			{"action": "tick", "frames": 5},
			{"action": "snapshot", "label": "after spawn"},
			{"action": "wait", "frames": 2},
			{"action": "snapshot", "label": "later"}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	sc.Dir = filepath.Join(t.TempDir(), "shots")

	if err := sc.Run(f); err != nil {
		t.Fatalf("Run: %v", err)
	}
	written := sc.Written()
	if len(written) != 2 {
		t.Fatalf("written = %v, want 2 files", written)
	}
	if !strings.HasSuffix(written[0], "_after_spawn.png") {
		t.Errorf("first snapshot %q should carry the sanitized label", written[0])
	}
	for _, path := range written {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("snapshot %s missing: %v", path, err)
		}
	}
}

func TestScenarioSnapshotError(t *testing.T) {
	cfg := newTestFieldConfig()
	f := NewWaveField(&cfg, FlatBathymetry(50), nil)
	sc, err := LoadScenario([]byte(`{"steps": [{"action": "snapshot", "label": "x"}]}`))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	sc.Dir = blocker

	if err := sc.Run(f); err == nil {
		t.Error("expected snapshot error")
	}
	if len(sc.Written()) != 0 {
		t.Errorf("written = %v, want none", sc.Written())
	}
}
