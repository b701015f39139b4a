package swell

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// calmWind is the wind speed at or below which the sea is treated as flat.
const calmWind = 1e-6

// SimulationConfig carries every tunable the wave field reads. The field
// keeps the pointer it was constructed with and reads it on every Tick, so
// hosts may edit values between ticks (for example from a settings panel).
//
// Values are trusted: the field does not re-validate ranges. Hosts that
// accept user input should call Validate before handing the config over.
type SimulationConfig struct {
	// WindSpeed in m/s. Zero gives a flat sea.
	WindSpeed float64 `yaml:"windSpeed"`
	// WindHeading in radians, [0, 2π). Trains travel along the wind.
	WindHeading float64 `yaml:"windHeading"`
	// Gravity is g in the dispersion relation.
	Gravity float64 `yaml:"g"`

	// MinSize and MaxSize bound the randomized footprint (width and depth)
	// of pooled trains.
	MinSize float64 `yaml:"minSize"`
	MaxSize float64 `yaml:"maxSize"`
	// MedianWavelength is the base wavelength pooled trains are drawn around.
	MedianWavelength float64 `yaml:"medianWavelength"`
	// HeadingJitter is the half-width in radians of the heading spread of
	// newly spawned trains around the wind heading.
	HeadingJitter float64 `yaml:"headingJitter"`

	Steepness           float64 `yaml:"steepness"`
	SteepnessMultiplier float64 `yaml:"steepnessMultiplier"`
	// NumTrains is the target size of the foreground pool.
	NumTrains int `yaml:"numTrains"`
	// WaveHeightScaling multiplies the vertical displacement written to the
	// grid.
	WaveHeightScaling float64 `yaml:"waveHeightScaling"`
	// Lambda weights the previous-height feedback term of the phase.
	Lambda float64 `yaml:"lambda"`

	// Shoaling coefficients.
	Kappa0 float64 `yaml:"kappa0"`
	KappaX float64 `yaml:"kappaX"`
	KappaY float64 `yaml:"kappaY"`

	// Holiness scales how strongly the hole mask suppresses the envelope.
	Holiness float64 `yaml:"holiness"`
	// NumHoles caps the number of holes punched into each train.
	NumHoles int `yaml:"numHoles"`
	// WaveSpeedFactor scales how fast the phase clock runs.
	WaveSpeedFactor float64 `yaml:"waveSpeedFactor"`

	// UsePerlinNoiseInHeight modulates the along-train envelope with
	// Perlin noise so crests do not all share one height.
	UsePerlinNoiseInHeight    bool    `yaml:"usePerlinNoiseInHeight"`
	WaveHeightPerlinFreq      float64 `yaml:"waveHeightPerlinFreq"`
	WaveHeightPerlinAmplitude float64 `yaml:"waveHeightPerlinAmplitude"`

	// NormalInterval is the number of ticks between normal refreshes.
	// Values below 1 refresh every tick.
	NormalInterval int `yaml:"normalInterval"`
	// Workers splits compositing across goroutines by grid rows. Values
	// below 2 composite on the calling goroutine.
	Workers int `yaml:"workers"`

	Grid       GridConfig              `yaml:"grid"`
	Background []BackgroundTrainConfig `yaml:"background"`

	// Seed feeds the field's generator when the host does not supply one.
	Seed uint64 `yaml:"seed"`
}

// GridConfig fixes the displacement grid geometry.
type GridConfig struct {
	// Width and Height are vertex counts along X and Z.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Scale is the world distance between neighboring vertices.
	Scale float64 `yaml:"scale"`
}

// BackgroundTrainConfig describes one always-on train covering the domain.
// Wavelength and heading are relative to the pool's median wavelength and
// the initial wind heading.
type BackgroundTrainConfig struct {
	WavelengthFactor float64 `yaml:"wavelengthFactor"`
	HeadingOffset    float64 `yaml:"headingOffset"`
	Steepness        float64 `yaml:"steepness"`
}

// DefaultConfig returns a configuration that produces a moderate sea on a
// 201x201 grid.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		WindSpeed:                 8,
		WindHeading:               0,
		Gravity:                   9.8,
		MinSize:                   40,
		MaxSize:                   120,
		MedianWavelength:          6,
		HeadingJitter:             math.Pi / 8,
		Steepness:                 1,
		SteepnessMultiplier:       0.5,
		NumTrains:                 6,
		WaveHeightScaling:         1,
		Lambda:                    2,
		Kappa0:                    0.1,
		KappaX:                    0.05,
		KappaY:                    0.1,
		Holiness:                  0.5,
		NumHoles:                  8,
		WaveSpeedFactor:           1,
		WaveHeightPerlinFreq:      0.05,
		WaveHeightPerlinAmplitude: 0.3,
		NormalInterval:            1,
		Grid: GridConfig{
			Width:  201,
			Height: 201,
			Scale:  1,
		},
		Background: []BackgroundTrainConfig{
			{WavelengthFactor: 1, HeadingOffset: 0, Steepness: 0.5},
			{WavelengthFactor: 0.6, HeadingOffset: 0.35, Steepness: 0.3},
			{WavelengthFactor: 0.35, HeadingOffset: -0.5, Steepness: 0.2},
		},
		Seed: 1,
	}
}

// LoadConfig decodes a YAML configuration on top of DefaultConfig, so a
// document only needs the keys it changes.
func LoadConfig(r io.Reader) (SimulationConfig, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return SimulationConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration file. See LoadConfig.
func LoadConfigFile(path string) (SimulationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return SimulationConfig{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := LoadConfig(f)
	if err != nil {
		return SimulationConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every value outside the range the field expects. The
// field itself never calls Validate; out-of-range values degrade output
// rather than fail.
func (c *SimulationConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.WindSpeed >= 0, "windSpeed must be >= 0, got %v", c.WindSpeed)
	check(c.WindHeading >= 0 && c.WindHeading < 2*math.Pi, "windHeading must be in [0, 2π), got %v", c.WindHeading)
	check(c.Gravity > 0, "g must be positive, got %v", c.Gravity)
	check(c.MinSize > 0, "minSize must be positive, got %v", c.MinSize)
	check(c.MaxSize >= c.MinSize, "maxSize (%v) must be >= minSize (%v)", c.MaxSize, c.MinSize)
	check(c.MedianWavelength > 0, "medianWavelength must be positive, got %v", c.MedianWavelength)
	check(c.SteepnessMultiplier >= 0 && c.SteepnessMultiplier <= 1, "steepnessMultiplier must be in [0, 1], got %v", c.SteepnessMultiplier)
	check(c.NumTrains >= 0, "numTrains must be >= 0, got %d", c.NumTrains)
	check(c.Workers >= 0, "workers must be >= 0, got %d", c.Workers)
	check(c.NumHoles >= 0, "numHoles must be >= 0, got %d", c.NumHoles)
	check(c.Grid.Width >= 2 && c.Grid.Height >= 2, "grid must be at least 2x2 vertices, got %dx%d", c.Grid.Width, c.Grid.Height)
	check(c.Grid.Scale > 0, "grid.scale must be positive, got %v", c.Grid.Scale)
	for i, b := range c.Background {
		check(b.WavelengthFactor > 0, "background[%d].wavelengthFactor must be positive, got %v", i, b.WavelengthFactor)
	}
	return errors.Join(errs...)
}

// Domain returns the world-space rectangle covered by the grid, centered on
// the origin.
func (c *SimulationConfig) Domain() Rect {
	w := float64(c.Grid.Width) * c.Grid.Scale
	d := float64(c.Grid.Height) * c.Grid.Scale
	return Rect{X: -w / 2, Z: -d / 2, Width: w, Depth: d}
}
