// Package swell synthesizes a moving ocean surface from a population of
// directional wave trains, for rendering with [Ebitengine] or any other
// mesh consumer.
//
// Each [WaveTrain] is a patch of quasi-periodic waves with a rectangular
// footprint. Its wavelength, frequency and amplitude follow the deep-water
// dispersion relation for the current wind, its crests fade out toward the
// footprint edges, and a baked [HoleMask] punches irregular calm patches
// into it. Near the coast, trains shoal against the seafloor reported by a
// [BathymetryProvider].
//
// A [WaveField] owns a pool of such trains plus a few background trains
// that always cover the view, and composites them every tick into a shared
// [Grid] of displaced vertices.
//
// # Quick start
//
//	cfg := swell.DefaultConfig()
//	field := swell.NewWaveField(&cfg, swell.FlatBathymetry(50), nil)
//
//	// every frame:
//	field.Tick(1.0 / 60)
//	vertices = field.Grid().AppendVertices(vertices[:0], style)
//	screen.DrawTriangles(vertices, indices, img, nil)
//
// Call [WaveField.Translate] in lockstep with the camera to scroll across
// an endless sea. Background trains wrap; pooled trains stay in world space
// and are replaced from upwind once they drift out of view.
//
// # Configuration
//
// [SimulationConfig] holds every tunable. It can be loaded from YAML with
// [LoadConfig]; keys left out keep their [DefaultConfig] values. The field
// reads the config on every tick, so hosts may edit it live. Wind changes
// can be eased with [WaveField.SetWindTarget] (via [gween]).
//
// # Determinism
//
// All randomness flows from the generator passed to [NewWaveField], or from
// [SimulationConfig.Seed] when none is given. The same seed, config and
// sequence of Tick/Translate calls reproduce the same grid.
//
// # Tooling
//
// [Scenario] scripts (JSON) drive a field headlessly and write heightmap
// snapshots with [WriteHeightmapPNG]. [WaveField.SetDebugMode] logs per-tick
// timings to stderr. Pool lifecycle events can be forwarded to an ECS world
// through the Donburi adapter in swell/ecs, and swell/seafloor provides a
// procedural bathymetry.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package swell
