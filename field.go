package swell

import (
	"math"
	"math/rand/v2"
	"reflect"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/tanema/gween/ease"
	"golang.org/x/sync/errgroup"
)

// WaveField owns the train population and composites it into the shared
// displacement grid.
//
// A field is single-owner: Tick, Translate and the setters mutate the same
// grid and train anchors and must be called from one goroutine (normally the
// host's update loop).
type WaveField struct {
	cfg   *SimulationConfig
	bathy BathymetryProvider
	rng   *rand.Rand
	noise *perlin.Perlin
	grid  *Grid

	background []*WaveTrain
	pool       []*WaveTrain
	trains     []*WaveTrain // background followed by pool, rebuilt on change
	covering   []*WaveTrain // per-vertex scratch

	scroll      Vec2
	prevHeading float64
	prevWind    float64
	nextID      uint32
	ticks       uint64

	// State read by the last composite, for the zero-step check.
	composedScroll Vec2
	composedCfg    SimulationConfig

	ramp   *WindRamp
	sink   EventSink
	detail *SurfaceDetail
	debug  bool
	stats  TickStats
}

// NewWaveField creates a field over the grid described by cfg, with the
// configured background trains in place. The pool is filled on the first
// Tick. cfg is retained and read on every Tick. A nil rng is replaced by
// NewRand(cfg.Seed).
func NewWaveField(cfg *SimulationConfig, bathy BathymetryProvider, rng *rand.Rand) *WaveField {
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	f := &WaveField{
		cfg:         cfg,
		bathy:       bathy,
		rng:         rng,
		noise:       perlin.NewPerlin(2, 2, 3, int64(rng.Uint64()>>1)),
		grid:        NewGrid(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Scale),
		prevHeading: cfg.WindHeading,
		prevWind:    cfg.WindSpeed,
	}

	domain := cfg.Domain()
	for _, b := range cfg.Background {
		t := NewWaveTrain(TrainParams{
			Size:                 Vec2{X: domain.Width, Z: domain.Depth},
			BaseWavelength:       cfg.MedianWavelength * b.WavelengthFactor,
			WavelengthWindFactor: 1,
			BaseHeading:          cfg.WindHeading + b.HeadingOffset,
			Steepness:            b.Steepness,
			NumHoles:             cfg.NumHoles,
			Phase:                rng.Float64() * 20,
			Background:           true,
		}, cfg, rng, f.noise)
		t.id = f.newID()
		f.background = append(f.background, t)
	}
	f.rebuildTrains()
	return f
}

// Tick advances the simulation by dt seconds and rewrites the grid.
//
// A zero step advances no train. When nothing else changed since the last
// composite (wind, pool, scroll and every config value) it also leaves the
// grid as the previous tick wrote it; otherwise the grid is recomposited
// at the frozen train clocks.
func (f *WaveField) Tick(dt float64) {
	var t0 time.Time
	stats := TickStats{Tick: f.ticks}
	if f.debug {
		t0 = time.Now()
	}

	if f.ramp != nil {
		f.ramp.Update(float32(dt))
		if f.ramp.Done {
			f.ramp = nil
		}
	}

	cfg := f.cfg
	wind := cfg.WindSpeed
	heading := cfg.WindHeading
	delta := math.Remainder(heading-f.prevHeading, 2*math.Pi)

	// New trains are laid out against last tick's heading; the update
	// below turns them with everyone else.
	poolChanged := f.resizePool(f.prevHeading, &stats)

	if dt == 0 && delta == 0 && wind == f.prevWind && !poolChanged && f.ticks > 0 &&
		f.scroll == f.composedScroll && reflect.DeepEqual(composeState(cfg), f.composedCfg) {
		stats.Background, stats.Pooled = len(f.background), len(f.pool)
		f.stats = stats
		f.ticks++
		return
	}

	for _, t := range f.trains {
		t.Update(dt, wind, delta, cfg)
	}
	f.prevHeading = heading
	f.prevWind = wind
	f.recycle(&stats)

	if f.debug {
		stats.UpdateTime = time.Since(t0)
		t0 = time.Now()
	}

	stats.NaNZeroed = f.composite()
	f.composedScroll = f.scroll
	f.composedCfg = composeState(cfg)

	if f.debug {
		stats.CompositeTime = time.Since(t0)
		t0 = time.Now()
	}

	if cfg.NormalInterval <= 1 || f.ticks%uint64(cfg.NormalInterval) == 0 {
		f.grid.RecomputeNormals()
		stats.NormalsRefreshed = true
	}

	if f.debug {
		stats.NormalTime = time.Since(t0)
	}
	stats.Background, stats.Pooled = len(f.background), len(f.pool)
	f.stats = stats
	f.ticks++
	f.debugLog(stats)
}

// composeState copies the config fields the compositor reads. Background
// definitions only matter at construction.
func composeState(cfg *SimulationConfig) SimulationConfig {
	c := *cfg
	c.Background = nil
	return c
}

// composite recomputes every vertex from the current train set and returns
// the number of NaN components replaced by zero. With cfg.Workers above 1
// the grid is split into row bands composited concurrently; trains are only
// read during compositing.
func (f *WaveField) composite() int {
	rows := f.grid.Rows()
	workers := min(f.cfg.Workers, rows)
	if workers < 2 {
		var nan int
		f.grid.SetAllVertices(f.vertexFunc(&f.covering, &nan))
		return nan
	}

	band := (rows + workers - 1) / workers
	counts := make([]int, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		r0 := w * band
		g.Go(func() error {
			var scratch []*WaveTrain
			f.grid.SetRows(r0, r0+band, f.vertexFunc(&scratch, &counts[w]))
			return nil
		})
	}
	_ = g.Wait()

	nan := 0
	for _, n := range counts {
		nan += n
	}
	return nan
}

// vertexFunc returns the per-vertex compositor. scratch holds the list of
// covering trains between calls and nan counts the components zeroed; each
// concurrent caller needs its own pair.
func (f *WaveField) vertexFunc(scratch *[]*WaveTrain, nan *int) func(col, row int, rest Vec2, prev Vec3) Vec3 {
	cfg := f.cfg
	bathy := f.bathy
	scroll := f.scroll
	trains := f.trains

	return func(_, _ int, rest Vec2, prev Vec3) Vec3 {
		world := rest.Add(scroll)

		covering := (*scratch)[:0]
		total := 0.0
		for _, t := range trains {
			if t.Contains(world) {
				total += t.Steepness()
				covering = append(covering, t)
			}
		}
		*scratch = covering
		if total == 0 {
			total = 1
		}

		p := SamplePoint{World: world, View: rest, PrevHeight: prev.Y, TotalSteepness: total}
		var d Vec3
		for _, t := range covering {
			if v, ok := t.Sample(p, cfg, bathy); ok {
				d = d.Add(v)
			}
		}
		d.Y *= cfg.WaveHeightScaling

		if math.IsNaN(d.X) {
			d.X = 0
			*nan++
		}
		if math.IsNaN(d.Y) {
			d.Y = 0
			*nan++
		}
		if math.IsNaN(d.Z) {
			d.Z = 0
			*nan++
		}
		return d
	}
}

// Translate shifts the world-scroll offset by (dx, dz), typically in
// lockstep with the craft. Background trains wrap under the new offset and
// pooled trains stay put in world space. The offset is also forwarded to
// the surface detail, if any.
func (f *WaveField) Translate(dx, dz float64) {
	f.scroll = f.scroll.Add(Vec2{X: dx, Z: dz})
	if f.detail != nil {
		f.detail.Translate(dx, dz)
	}
}

// ScrollOffset returns the accumulated world-scroll offset.
func (f *WaveField) ScrollOffset() Vec2 { return f.scroll }

// SetTrainPoolSize changes the pool target. The pool grows or shrinks on
// the next Tick.
func (f *WaveField) SetTrainPoolSize(n int) {
	f.cfg.NumTrains = max(n, 0)
}

// SetWindTarget eases the configured wind toward (speed, heading) over the
// given number of seconds of simulated time. A non-positive duration
// applies the target on the next Tick.
func (f *WaveField) SetWindTarget(speed, heading, seconds float64) {
	if seconds <= 0 {
		f.cfg.WindSpeed = math.Max(speed, 0)
		f.cfg.WindHeading = normalizeAngle(heading)
		f.ramp = nil
		return
	}
	f.ramp = NewWindRamp(f.cfg, speed, heading, float32(seconds), ease.InOutSine)
}

// SetEventSink sets the optional receiver of pool lifecycle events.
func (f *WaveField) SetEventSink(sink EventSink) { f.sink = sink }

// SetSurfaceDetail attaches a detail texture whose offset follows Translate.
func (f *WaveField) SetSurfaceDetail(d *SurfaceDetail) { f.detail = d }

// SurfaceDetail returns the attached detail texture, or nil.
func (f *WaveField) SurfaceDetail() *SurfaceDetail { return f.detail }

// Grid returns the displacement grid written by Tick.
func (f *WaveField) Grid() *Grid { return f.grid }

// Config returns the configuration the field reads every tick.
func (f *WaveField) Config() *SimulationConfig { return f.cfg }

// Trains returns background trains followed by pooled trains. The returned
// slice MUST NOT be mutated and is only valid until the next Tick.
func (f *WaveField) Trains() []*WaveTrain { return f.trains }

// BackgroundTrains returns the fixed background trains.
func (f *WaveField) BackgroundTrains() []*WaveTrain { return f.background }

// PoolTrains returns the current pooled trains. The returned slice MUST NOT
// be mutated.
func (f *WaveField) PoolTrains() []*WaveTrain { return f.pool }

// Ticks returns the number of completed ticks.
func (f *WaveField) Ticks() uint64 { return f.ticks }

func (f *WaveField) newID() uint32 {
	f.nextID++
	return f.nextID
}

func (f *WaveField) rebuildTrains() {
	f.trains = f.trains[:0]
	f.trains = append(f.trains, f.background...)
	f.trains = append(f.trains, f.pool...)
}
