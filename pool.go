package swell

import "math"

// spawnPhaseRange bounds the random phase clock offset of a new train.
const spawnPhaseRange = 20

// resizePool spawns or retires pooled trains until the pool matches the
// configured target. Surplus trains are retired from the end. Reports
// whether anything changed.
func (f *WaveField) resizePool(heading float64, stats *TickStats) bool {
	target := max(f.cfg.NumTrains, 0)
	if len(f.pool) == target {
		return false
	}
	for len(f.pool) > target {
		last := len(f.pool) - 1
		f.emit(TrainRetired, f.pool[last])
		f.pool[last] = nil
		f.pool = f.pool[:last]
		stats.Retired++
	}
	for len(f.pool) < target {
		t := f.spawn(heading)
		f.pool = append(f.pool, t)
		stats.Spawned++
	}
	f.rebuildTrains()
	if f.debug {
		debugCheckPoolSize(len(f.pool))
	}
	return true
}

// recycle replaces every pooled train that has left the domain with a fresh
// one arriving from upwind. A train has left once the square around its
// bounding circle no longer touches the domain and it is heading away, or
// once it has fallen far behind a moving view.
func (f *WaveField) recycle(stats *TickStats) {
	domain := f.cfg.Domain()
	halfW, halfD := domain.Width/2, domain.Depth/2
	far := 2 * math.Hypot(halfW, halfD)
	heading := f.cfg.WindHeading

	for i, t := range f.pool {
		rel := t.anchor.Sub(f.scroll)
		if domain.Contains(rel.X, rel.Z) {
			continue
		}
		radius := math.Hypot(t.params.Size.X, t.params.Size.Z) / 2
		reach := Rect{X: rel.X - radius, Z: rel.Z - radius, Width: 2 * radius, Depth: 2 * radius}
		gap := math.Hypot(math.Max(math.Abs(rel.X)-halfW, 0), math.Max(math.Abs(rel.Z)-halfD, 0))

		leaving := !domain.Intersects(reach) && rel.Dot(t.dir) > 0
		if !leaving && gap <= far+radius {
			continue
		}
		f.emit(TrainRetired, t)
		stats.Retired++
		f.pool[i] = f.spawn(heading)
		stats.Spawned++
	}
	f.rebuildTrains()
}

// spawn creates a pooled train with a randomized footprint, a heading
// jittered around heading and a wavelength around the median. Its anchor is
// placed upwind so the footprint's leading edge sits on the domain border.
func (f *WaveField) spawn(heading float64) *WaveTrain {
	cfg := f.cfg
	rng := f.rng
	sizes := Range{Min: cfg.MinSize, Max: cfg.MaxSize}
	size := Vec2{X: sizes.Random(rng), Z: sizes.Random(rng)}

	h := heading + Range{Min: -cfg.HeadingJitter, Max: cfg.HeadingJitter}.Random(rng)
	dir := Heading(h)
	perp := Vec2{X: -dir.Z, Z: dir.X}

	domain := cfg.Domain()
	reach := 0.5*(math.Abs(dir.X)*domain.Width+math.Abs(dir.Z)*domain.Depth) + size.X/2
	cross := 0.5 * (math.Abs(perp.X)*domain.Width + math.Abs(perp.Z)*domain.Depth)
	lateral := Range{Min: -cross, Max: cross}.Random(rng)

	anchor := f.scroll.Add(dir.Scale(-reach)).Add(perp.Scale(lateral))
	wavelength := cfg.MedianWavelength * Range{Min: 0.5, Max: 2}.Random(rng)

	t := NewWaveTrain(TrainParams{
		Anchor:               anchor,
		Size:                 size,
		BaseWavelength:       wavelength,
		WavelengthWindFactor: 1,
		BaseHeading:          h,
		Steepness:            cfg.Steepness,
		NumHoles:             cfg.NumHoles,
		Phase:                rng.Float64() * spawnPhaseRange,
	}, cfg, rng, f.noise)
	t.id = f.newID()
	f.emit(TrainSpawned, t)
	return t
}

func (f *WaveField) emit(typ TrainEventType, t *WaveTrain) {
	if f.sink == nil {
		return
	}
	f.sink.EmitTrainEvent(TrainEvent{
		Type:       typ,
		TrainID:    t.id,
		Tick:       f.ticks,
		Anchor:     t.anchor,
		Size:       t.params.Size,
		Heading:    t.Heading(),
		Wavelength: t.params.BaseWavelength,
	})
}
