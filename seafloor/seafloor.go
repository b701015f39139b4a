// Package seafloor generates a reference bathymetry for the wave field: a
// rolling fractal floor at a fixed base depth with Gaussian islands whose
// exposed tops are roughened.
package seafloor

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/swell"
)

// FBM describes fractal Brownian motion: Octaves layers of noise, each
// Lacunarity times the frequency and Gain times the amplitude of the last.
type FBM struct {
	Octaves    int     `yaml:"octaves"`
	Gain       float64 `yaml:"gain"`
	Lacunarity float64 `yaml:"lacunarity"`
	InitAmp    float64 `yaml:"initAmp"`
	InitFreq   float64 `yaml:"initFreq"`
	// Amp scales the summed noise.
	Amp float64 `yaml:"amp"`
}

// IslandConfig controls island count, shape and roughness.
type IslandConfig struct {
	MinCount int `yaml:"minCount"`
	MaxCount int `yaml:"maxCount"`
	// Height is the mean peak height; peaks vary in [0.5, 1.5] x Height.
	Height float64 `yaml:"height"`
	// Size is the mean Gaussian variance; VarX and VarZ spread it per axis.
	Size float64 `yaml:"size"`
	VarX float64 `yaml:"varX"`
	VarZ float64 `yaml:"varZ"`
	// Roughness is blended in between ThresholdMin and ThresholdMax above
	// the base depth.
	Roughness    FBM     `yaml:"roughness"`
	ThresholdMin float64 `yaml:"thresholdMin"`
	ThresholdMax float64 `yaml:"thresholdMax"`
}

// Config describes a seafloor.
type Config struct {
	// Depth is the base depth of the floor below the water line.
	Depth   float64      `yaml:"depth"`
	Floor   FBM          `yaml:"floor"`
	Islands IslandConfig `yaml:"islands"`
	// SlopeStep is the central-difference half step for Slope.
	SlopeStep float64 `yaml:"slopeStep"`
	Seed      int64   `yaml:"seed"`
}

// DefaultConfig returns a floor 30 units deep with up to three islands.
func DefaultConfig() Config {
	return Config{
		Depth: 30,
		Floor: FBM{Octaves: 3, Gain: 1, Lacunarity: 1.3, InitAmp: 0.5, InitFreq: 0.02, Amp: 20},
		Islands: IslandConfig{
			MinCount:     0,
			MaxCount:     3,
			Height:       50,
			Size:         500,
			VarX:         100,
			VarZ:         100,
			Roughness:    FBM{Octaves: 6, Gain: 1.2, Lacunarity: 1.8, InitAmp: 0.3, InitFreq: 0.05, Amp: 3},
			ThresholdMin: 10,
			ThresholdMax: 40,
		},
		SlopeStep: 0.5,
		Seed:      1,
	}
}

// LoadConfig decodes a YAML seafloor description on top of DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse seafloor config: %w", err)
	}
	return cfg, nil
}

// Island is one Gaussian bump on the floor.
type Island struct {
	X, Z       float64
	Peak       float64
	VarX, VarZ float64
}

// Seafloor is a static height field. It implements swell.BathymetryProvider
// and is safe for concurrent reads.
type Seafloor struct {
	cfg     Config
	floor   opensimplex.Noise
	rough   *perlin.Perlin
	islands []Island
	probe   swell.BathymetryFunc
}

// New builds a seafloor whose islands are scattered over the middle half of
// area.
func New(cfg Config, area swell.Rect) *Seafloor {
	rng := swell.NewRand(uint64(cfg.Seed))
	s := &Seafloor{
		cfg:   cfg,
		floor: opensimplex.New(cfg.Seed),
	}
	r := cfg.Islands.Roughness
	alpha := 2.0
	if r.Gain > 0 {
		alpha = 1 / r.Gain
	}
	beta := r.Lacunarity
	if beta <= 0 {
		beta = 2
	}
	s.rough = perlin.NewPerlin(alpha, beta, int32(max(r.Octaves, 1)), cfg.Seed+1)

	is := cfg.Islands
	count := is.MinCount
	if is.MaxCount > is.MinCount {
		count += rng.IntN(is.MaxCount - is.MinCount)
	}
	cx, cz := area.X+area.Width/2, area.Z+area.Depth/2
	for range count {
		s.islands = append(s.islands, Island{
			X:    cx + (rng.Float64()-0.5)*area.Width/2,
			Z:    cz + (rng.Float64()-0.5)*area.Depth/2,
			Peak: is.Height * (rng.Float64() + 0.5),
			VarX: is.Size + is.VarX*(rng.Float64()-0.5),
			VarZ: is.Size + is.VarZ*(rng.Float64()-0.5),
		})
	}

	s.probe = swell.BathymetryFunc{Height: s.Height, SlopeStep: cfg.SlopeStep}
	return s
}

// Depth implements swell.BathymetryProvider.
func (s *Seafloor) Depth(x, z float64) float64 { return s.probe.Depth(x, z) }

// Slope implements swell.BathymetryProvider with a central difference of
// Height along dir. Positive values mean the floor rises along dir.
func (s *Seafloor) Slope(x, z float64, dir swell.Vec2) float64 {
	return s.probe.Slope(x, z, dir)
}

// Islands returns the generated islands.
func (s *Seafloor) Islands() []Island { return s.islands }

// Height returns the floor height relative to the water line at (x, z).
// It is negative under water.
func (s *Seafloor) Height(x, z float64) float64 {
	y := s.fbm(x, z) + s.bumps(x, z)

	is := s.cfg.Islands
	if y > is.ThresholdMin && is.ThresholdMax > is.ThresholdMin {
		t := math.Min(math.Max((y-is.ThresholdMin)/(is.ThresholdMax-is.ThresholdMin), 0), 1)
		r := is.Roughness
		n := s.rough.Noise2D(x*r.InitFreq, z*r.InitFreq)*r.InitAmp + 1
		y += t * n / 2 * r.Amp
	}
	return y - s.cfg.Depth
}

func (s *Seafloor) fbm(x, z float64) float64 {
	f := s.cfg.Floor
	freq, amp, sum := f.InitFreq, f.InitAmp, 0.0
	for range f.Octaves {
		sum += s.floor.Eval2(x*freq, z*freq) * amp
		freq *= f.Lacunarity
		amp *= f.Gain
	}
	return sum * f.Amp
}

func (s *Seafloor) bumps(x, z float64) float64 {
	g := 0.0
	for _, is := range s.islands {
		dx, dz := x-is.X, z-is.Z
		g += is.Peak * math.Exp(-(dx*dx/(2*is.VarX) + dz*dz/(2*is.VarZ)))
	}
	return g
}
