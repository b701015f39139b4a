package swell

// BathymetryProvider answers seafloor queries at world coordinates. The
// wave field only consumes it; terrain generation lives elsewhere (see the
// seafloor package for a reference implementation).
//
// Implementations must be safe for concurrent reads when the field
// composites with more than one worker.
type BathymetryProvider interface {
	// Depth returns the signed water depth at (x, z). Negative values mean
	// the point is above the seafloor (dry land).
	Depth(x, z float64) float64
	// Slope returns the directional gradient of the seafloor height at
	// (x, z) along the unit vector dir.
	Slope(x, z float64, dir Vec2) float64
}

// FlatBathymetry is a level seafloor at a constant depth.
type FlatBathymetry float64

// Depth implements BathymetryProvider.
func (f FlatBathymetry) Depth(x, z float64) float64 { return float64(f) }

// Slope implements BathymetryProvider. A level floor has no slope.
func (f FlatBathymetry) Slope(x, z float64, dir Vec2) float64 { return 0 }

// BathymetryFunc adapts a height function to BathymetryProvider. The
// function returns seafloor height relative to the water line, so depth is
// its negation. Slope is a central difference over SlopeStep.
type BathymetryFunc struct {
	Height    func(x, z float64) float64
	SlopeStep float64
}

// Depth implements BathymetryProvider.
func (b BathymetryFunc) Depth(x, z float64) float64 {
	return -b.Height(x, z)
}

// Slope implements BathymetryProvider.
func (b BathymetryFunc) Slope(x, z float64, dir Vec2) float64 {
	h := b.SlopeStep
	if h <= 0 {
		h = 0.5
	}
	ahead := b.Height(x+dir.X*h, z+dir.Z*h)
	behind := b.Height(x-dir.X*h, z-dir.Z*h)
	return (ahead - behind) / (2 * h)
}
