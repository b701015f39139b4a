package swell

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// WindRamp eases the wind speed and heading of a SimulationConfig toward a
// target over a fixed duration. Each Update writes the eased values straight
// into the config, so the field sees them on its next tick.
//
// There is no global ramp manager; the field owning the ramp advances it.
type WindRamp struct {
	speed   *gween.Tween
	heading *gween.Tween
	target  *SimulationConfig
	Done    bool
}

// NewWindRamp creates a ramp from the config's current wind to (speed,
// heading) over seconds. The heading takes the short way round and is
// written back normalized to [0, 2π). A nil fn uses ease.InOutSine.
func NewWindRamp(cfg *SimulationConfig, speed, heading float64, seconds float32, fn ease.TweenFunc) *WindRamp {
	if fn == nil {
		fn = ease.InOutSine
	}
	from := cfg.WindHeading
	delta := math.Remainder(heading-from, 2*math.Pi)
	return &WindRamp{
		speed:   gween.New(float32(cfg.WindSpeed), float32(math.Max(speed, 0)), seconds, fn),
		heading: gween.New(float32(from), float32(from+delta), seconds, fn),
		target:  cfg,
	}
}

// Update advances the ramp by dt seconds and writes the eased wind into the
// config. Once finished it sets Done and stops writing.
func (r *WindRamp) Update(dt float32) {
	if r.Done {
		return
	}
	s, sDone := r.speed.Update(dt)
	h, hDone := r.heading.Update(dt)
	r.target.WindSpeed = math.Max(float64(s), 0)
	r.target.WindHeading = normalizeAngle(float64(h))
	r.Done = sDone && hDone
}

// normalizeAngle maps a into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
