package swell

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
)

// Contributions whose envelope falls below this magnitude are skipped.
const envelopeThreshold = 0.01

// TrainParams configures a WaveTrain at creation.
type TrainParams struct {
	// Anchor is the world position of the train's local origin.
	Anchor Vec2
	// Size is the full footprint: X spans the local u axis (along travel),
	// Z spans the local v axis. Background trains use the domain size as
	// their wrap period.
	Size Vec2
	// BaseWavelength is the wavelength at a 5 m/s wind.
	BaseWavelength float64
	// WavelengthWindFactor scales the wind's effect on wavelength.
	WavelengthWindFactor float64
	// BaseHeading is the initial propagation angle in radians.
	BaseHeading float64
	Steepness   float64
	NumHoles    int
	// Phase seeds the local clock so trains do not move in lockstep.
	Phase float64
	// Background trains cover the whole domain, wrap under scrolling and
	// never move on their own.
	Background bool
}

// WaveTrain is one directional group of quasi-periodic waves.
type WaveTrain struct {
	id     uint32
	params TrainParams

	anchor        Vec2
	headingOffset float64
	dir           Vec2

	wavelength float64
	freq       float64
	amplitude  float64
	kInf       float64 // deep-water wavenumber, freq²/g

	simTime float64
	step    float64 // last non-zero scaled clock advance

	holes *HoleMask
	noise *perlin.Perlin
}

// NewWaveTrain creates a train and bakes its hole mask. Derived quantities
// are evaluated against the config's current wind so the train is usable
// before its first Update. noise may be nil.
func NewWaveTrain(p TrainParams, cfg *SimulationConfig, rng *rand.Rand, noise *perlin.Perlin) *WaveTrain {
	t := &WaveTrain{
		params:  p,
		anchor:  p.Anchor,
		dir:     Heading(p.BaseHeading),
		simTime: p.Phase,
		noise:   noise,
	}
	t.derive(cfg.WindSpeed, cfg)

	// The mask is baked once, so a calm sea at spawn time falls back to the
	// 5 m/s wavelength rather than producing a mask with no holes.
	maskWavelength := t.wavelength
	if maskWavelength <= 0 {
		maskWavelength = p.WavelengthWindFactor * p.BaseWavelength
	}
	t.holes = BuildHoleMask(p.Size, maskWavelength, p.NumHoles, p.Background, rng)
	return t
}

// derive recomputes the dispersion parameters for the given wind.
func (t *WaveTrain) derive(windSpeed float64, cfg *SimulationConfig) {
	if windSpeed <= calmWind {
		t.wavelength, t.freq, t.amplitude, t.kInf = 0, 0, 0, 0
		return
	}
	t.wavelength = t.params.WavelengthWindFactor * windSpeed / 5 * t.params.BaseWavelength
	if t.wavelength <= 0 || cfg.Gravity <= 0 {
		t.wavelength, t.freq, t.amplitude, t.kInf = 0, 0, 0, 0
		return
	}
	t.freq = math.Sqrt(cfg.Gravity / t.wavelength * 2 * math.Pi)
	t.amplitude = cfg.SteepnessMultiplier * t.params.Steepness * t.wavelength / (2 * math.Pi)
	t.kInf = t.freq * t.freq / cfg.Gravity
}

// Update advances the train by dt seconds of host time. headingDelta is the
// change in wind heading since the previous update.
func (t *WaveTrain) Update(dt, windSpeed, headingDelta float64, cfg *SimulationConfig) {
	// A zero step keeps the last step so a recomposite at a frozen clock
	// still carries the phase feedback.
	if dt != 0 {
		t.step = dt * windSpeed / 20 * cfg.WaveSpeedFactor
		t.simTime += t.step
	}
	t.derive(windSpeed, cfg)

	t.headingOffset += headingDelta
	t.dir = Heading(t.params.BaseHeading + t.headingOffset)

	if !t.params.Background {
		speed := t.freq * t.wavelength
		t.anchor = t.anchor.Add(t.dir.Scale(speed * dt))
	}
}

// toLocal rotates a world offset from the anchor into the train frame. u
// runs against the propagation direction, v across it.
func (t *WaveTrain) toLocal(rel Vec2) (u, v float64) {
	cos, sin := t.dir.X, t.dir.Z
	u = -rel.X*cos - rel.Z*sin
	v = rel.X*sin - rel.Z*cos
	return u, v
}

// Contains reports whether the world point lies inside the footprint.
// Background trains contain every point.
func (t *WaveTrain) Contains(world Vec2) bool {
	if t.params.Background {
		return true
	}
	u, v := t.toLocal(world.Sub(t.anchor))
	return math.Abs(u) <= t.params.Size.X/2 && math.Abs(v) <= t.params.Size.Z/2
}

// SamplePoint carries one vertex query from the compositor.
type SamplePoint struct {
	// World is the scrolled world position of the vertex.
	World Vec2
	// View is the resting position of the vertex in the grid frame.
	View Vec2
	// PrevHeight is the vertex height written on the previous tick.
	PrevHeight float64
	// TotalSteepness is the summed steepness of every train covering the
	// vertex.
	TotalSteepness float64
}

// Sample returns this train's displacement at p, or false when it does not
// contribute. NaN can escape when the inputs are degenerate (for example a
// zero TotalSteepness); the compositor discards it.
func (t *WaveTrain) Sample(p SamplePoint, cfg *SimulationConfig, bathy BathymetryProvider) (Vec3, bool) {
	if t.amplitude == 0 {
		return Vec3{}, false
	}

	rel := p.World.Sub(t.anchor)
	u, v := t.toLocal(rel)

	var env, hole float64
	if t.params.Background {
		// Phase uses the unwrapped u so crests stay continuous; only the
		// hole lookup wraps, against a mask baked as a torus.
		env = t.envelope(p.View.X, p.View.Z, cfg)
		hole = t.holes.Sample(wrap(rel.X, t.params.Size.X), wrap(rel.Z, t.params.Size.Z))
	} else {
		if math.Abs(u) > t.params.Size.X/2 || math.Abs(v) > t.params.Size.Z/2 {
			return Vec3{}, false
		}
		env = t.envelope(u, v, cfg)
		hole = t.holes.Sample(u, v)
	}
	env = clamp01(env - cfg.Holiness*hole)
	r := env * t.amplitude / p.TotalSteepness
	if math.Abs(r) < envelopeThreshold {
		return Vec3{}, false
	}

	depth := bathy.Depth(p.World.X, p.World.Z)
	if depth < 0 {
		return Vec3{}, false
	}
	slope := bathy.Slope(p.World.X, p.World.Z, t.dir)

	sx := clamp01(1 / (1 - math.Exp(-depth*cfg.KappaX)))
	sy := clamp01(sx * (1 - math.Exp(-depth*cfg.KappaY)))
	alpha := clamp01(slope * math.Exp(-depth*cfg.Kappa0))

	phi := t.kInf*u - t.freq*t.simTime - cfg.Lambda*p.PrevHeight*t.step
	sinPhi, cosPhi := math.Sincos(phi)
	sinA, cosA := math.Sincos(alpha)

	forward := r*cosA*sx*sinPhi + sinA*sy*cosPhi
	up := r*cosA*sy*cosPhi - sinA*sx*sinPhi

	return Vec3{X: forward * t.dir.X, Y: up, Z: forward * t.dir.Z}, true
}

// envelope is the smooth rectangular roll-off of the footprint, optionally
// modulated along u by Perlin noise. The v axis rolls off over 3/4 of the
// depth.
func (t *WaveTrain) envelope(u, v float64, cfg *SimulationConfig) float64 {
	along := falloff(u, t.params.Size.X)
	if cfg.UsePerlinNoiseInHeight && t.noise != nil {
		n := t.noise.Noise2D(u*cfg.WaveHeightPerlinFreq, 1.24) + 1
		along *= 1 + cfg.WaveHeightPerlinAmplitude*n
	}
	return clamp01(along * falloff(v, 0.75*t.params.Size.Z))
}

// falloff is 1 within a quarter of size from the center and decays
// exponentially beyond, halving every size/20.
func falloff(x, size float64) float64 {
	h := size / 4
	if h <= 0 {
		return 0
	}
	beta := -5 * math.Ln2 / h
	return math.Min(1, math.Exp(beta*(math.Abs(x)-h)))
}

// ID returns the field-assigned identifier, zero for standalone trains.
func (t *WaveTrain) ID() uint32 { return t.id }

// Background reports whether the train covers the whole domain.
func (t *WaveTrain) Background() bool { return t.params.Background }

// Anchor returns the world position of the local origin.
func (t *WaveTrain) Anchor() Vec2 { return t.anchor }

// Size returns the full footprint extents.
func (t *WaveTrain) Size() Vec2 { return t.params.Size }

// Direction returns the unit propagation vector.
func (t *WaveTrain) Direction() Vec2 { return t.dir }

// Heading returns the current propagation angle in radians.
func (t *WaveTrain) Heading() float64 { return t.params.BaseHeading + t.headingOffset }

// Wavelength returns the wind-adjusted wavelength.
func (t *WaveTrain) Wavelength() float64 { return t.wavelength }

// AngularFrequency returns ω from the deep-water dispersion relation.
func (t *WaveTrain) AngularFrequency() float64 { return t.freq }

// Amplitude returns the unnormalized crest amplitude.
func (t *WaveTrain) Amplitude() float64 { return t.amplitude }

// Wavenumber returns the deep-water wavenumber ω²/g.
func (t *WaveTrain) Wavenumber() float64 { return t.kInf }

// Steepness returns the configured steepness used for normalization.
func (t *WaveTrain) Steepness() float64 { return t.params.Steepness }

// SimTime returns the local phase clock.
func (t *WaveTrain) SimTime() float64 { return t.simTime }

// Holes returns the train's hole mask.
func (t *WaveTrain) Holes() *HoleMask { return t.holes }
