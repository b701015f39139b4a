package swell

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestWindRampReachesTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindSpeed = 0
	cfg.WindHeading = 0

	r := NewWindRamp(&cfg, 10, 1, 1.0, ease.Linear)
	r.Update(0.5)
	if !approxEqual(cfg.WindSpeed, 5, 1e-4) || !approxEqual(cfg.WindHeading, 0.5, 1e-4) {
		t.Errorf("halfway wind = %v @ %v, want 5 @ 0.5", cfg.WindSpeed, cfg.WindHeading)
	}
	if r.Done {
		t.Error("ramp should not be done halfway")
	}

	r.Update(0.5)
	if !r.Done {
		t.Error("ramp should be done")
	}
	if !approxEqual(cfg.WindSpeed, 10, 1e-4) || !approxEqual(cfg.WindHeading, 1, 1e-4) {
		t.Errorf("final wind = %v @ %v, want 10 @ 1", cfg.WindSpeed, cfg.WindHeading)
	}

	cfg.WindSpeed = 3
	r.Update(0.5)
	if cfg.WindSpeed != 3 {
		t.Error("finished ramp should stop writing")
	}
}

func TestWindRampShortestTurn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindHeading = 0.1

	r := NewWindRamp(&cfg, cfg.WindSpeed, 2*math.Pi-0.1, 1.0, ease.Linear)
	r.Update(0.25)
	if !approxEqual(cfg.WindHeading, 0.05, 1e-4) {
		t.Errorf("quarter heading = %v, want 0.05 (turning through zero)", cfg.WindHeading)
	}
	r.Update(0.75)
	if !approxEqual(cfg.WindHeading, 2*math.Pi-0.1, 1e-4) {
		t.Errorf("final heading = %v, want %v", cfg.WindHeading, 2*math.Pi-0.1)
	}
}

func TestWindRampClampsSpeed(t *testing.T) {
	cfg := DefaultConfig()
	r := NewWindRamp(&cfg, -5, cfg.WindHeading, 1.0, ease.Linear)
	r.Update(1)
	if cfg.WindSpeed != 0 {
		t.Errorf("wind = %v, want 0", cfg.WindSpeed)
	}
}

func TestWindRampDefaultEasing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindSpeed = 0
	r := NewWindRamp(&cfg, 8, cfg.WindHeading, 2.0, nil)
	r.Update(2)
	if !r.Done || !approxEqual(cfg.WindSpeed, 8, 1e-4) {
		t.Errorf("wind = %v done = %v, want 8 and done", cfg.WindSpeed, r.Done)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{-1, 2*math.Pi - 1},
		{2*math.Pi + 0.5, 0.5},
		{-4 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); !approxEqual(got, tt.want, 1e-12) {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
