package swell

import (
	"math"
	"math/rand/v2"
)

// Poisson-disk tuning. Spacing is expressed in wavelengths of the owning
// train.
const (
	holeMinSpacing = 1.5
	holeMaxSpacing = 10
	holeTries      = 10
	// holeCutoff is the kernel radius in standard deviations beyond which a
	// hole no longer contributes.
	holeCutoff = 5
)

// HoleMask is a baked irregularity field over a train's footprint. Cells are
// one world unit apart and centered on integer local coordinates. The mask
// never changes after construction.
type HoleMask struct {
	originU, originV int // local coordinate of cell (0, 0)
	cols, rows       int
	cells            []float64
	centers          []Vec2
	candidates       int
	minDist          float64
	period           Vec2 // non-zero when the mask tiles
}

// BuildHoleMask scatters Poisson-disk candidates over a footprint of the
// given full size, keeps a random subset of at most numHoles of them and
// bakes a Gaussian bump (variance = wavelength) around each kept center.
// A tiled mask measures distances on a torus with the footprint as its
// period, and Sample wraps its coordinates, so the pattern repeats without
// seams. A non-positive wavelength or numHoles yields an empty mask.
func BuildHoleMask(size Vec2, wavelength float64, numHoles int, tiled bool, rng *rand.Rand) *HoleMask {
	m := &HoleMask{
		originU: -int(math.Ceil(size.X / 2)),
		originV: -int(math.Ceil(size.Z / 2)),
		minDist: holeMinSpacing * wavelength,
	}
	if tiled {
		m.period = size
	}
	m.cols = int(math.Floor(size.X/2)) - m.originU + 1
	m.rows = int(math.Floor(size.Z/2)) - m.originV + 1
	if m.cols < 1 || m.rows < 1 {
		m.cols, m.rows = 0, 0
		return m
	}
	m.cells = make([]float64, m.cols*m.rows)
	if wavelength <= 0 || numHoles <= 0 {
		return m
	}

	pts := poissonDisk(rng, size.X, size.Z, holeMinSpacing*wavelength, holeMaxSpacing*wavelength, tiled)
	m.candidates = len(pts)
	rng.Shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })
	if len(pts) > numHoles {
		pts = pts[:numHoles]
	}
	m.centers = make([]Vec2, len(pts))
	for i, p := range pts {
		m.centers[i] = Vec2{X: p.X - size.X/2, Z: p.Z - size.Z/2}
	}

	cutoff := holeCutoff * holeCutoff * wavelength
	for row := 0; row < m.rows; row++ {
		cz := float64(row + m.originV)
		for col := 0; col < m.cols; col++ {
			cx := float64(col + m.originU)
			sum := 0.0
			for _, c := range m.centers {
				dx, dz := cx-c.X, cz-c.Z
				if tiled {
					dx, dz = wrap(dx, size.X), wrap(dz, size.Z)
				}
				d2 := dx*dx + dz*dz
				if d2 > cutoff {
					continue
				}
				sum += math.Exp(-d2 / (2 * wavelength))
			}
			m.cells[row*m.cols+col] = sum
		}
	}
	return m
}

// Sample returns the hole intensity at local (u, v) using the nearest cell.
// Points off the mask read as zero.
func (m *HoleMask) Sample(u, v float64) float64 {
	if m == nil || len(m.cells) == 0 {
		return 0
	}
	if m.period != (Vec2{}) {
		u, v = wrap(u, m.period.X), wrap(v, m.period.Z)
	}
	col := int(math.Round(u)) - m.originU
	row := int(math.Round(v)) - m.originV
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return 0
	}
	return m.cells[row*m.cols+col]
}

// Centers returns the local coordinates of the kept hole centers. The slice
// must not be mutated.
func (m *HoleMask) Centers() []Vec2 { return m.centers }

// Candidates returns how many Poisson-disk points were generated before
// truncation.
func (m *HoleMask) Candidates() int { return m.candidates }

// MinDistance returns the minimum spacing enforced between centers.
func (m *HoleMask) MinDistance() float64 { return m.minDist }

// poissonDisk fills [0, width) x [0, depth) with Bridson's algorithm. New
// candidates are drawn from the annulus [minDist, maxDist] around an active
// point; no two accepted points are closer than minDist. When torus is set
// the area wraps: candidates past an edge re-enter on the opposite side and
// spacing is measured across the seams.
func poissonDisk(rng *rand.Rand, width, depth, minDist, maxDist float64, torus bool) []Vec2 {
	if minDist <= 0 || width <= 0 || depth <= 0 {
		return nil
	}
	if maxDist < minDist {
		maxDist = minDist
	}

	// r/sqrt(2) cells hold at most one point each.
	cellSize := minDist / math.Sqrt2
	gridW := int(math.Ceil(width / cellSize))
	gridH := int(math.Ceil(depth / cellSize))
	grid := make([]int, gridW*gridH)
	for i := range grid {
		grid[i] = -1
	}

	points := make([]Vec2, 0, 64)
	active := make([]int, 0, 64)

	toGrid := func(p Vec2) (int, int) {
		gx := min(max(int(p.X/cellSize), 0), gridW-1)
		gz := min(max(int(p.Z/cellSize), 0), gridH-1)
		return gx, gz
	}

	// The annulus may reach further than two cells when maxDist > minDist,
	// but the conflict test only needs the minDist neighborhood. Across a
	// seam the last cell may be partial, so a torus searches one ring more.
	reach := 2
	if torus {
		reach = 3
	}
	r2 := minDist * minDist
	valid := func(p Vec2) bool {
		if p.X < 0 || p.X >= width || p.Z < 0 || p.Z >= depth {
			return false
		}
		gx, gz := toGrid(p)
		for dz := -reach; dz <= reach; dz++ {
			for dx := -reach; dx <= reach; dx++ {
				nx, nz := gx+dx, gz+dz
				if torus {
					nx, nz = (nx%gridW+gridW)%gridW, (nz%gridH+gridH)%gridH
				} else if nx < 0 || nx >= gridW || nz < 0 || nz >= gridH {
					continue
				}
				if idx := grid[nz*gridW+nx]; idx != -1 {
					d := points[idx].Sub(p)
					if torus {
						d = Vec2{X: wrap(d.X, width), Z: wrap(d.Z, depth)}
					}
					if d.Dot(d) < r2 {
						return false
					}
				}
			}
		}
		return true
	}

	insert := func(p Vec2) {
		idx := len(points)
		points = append(points, p)
		active = append(active, idx)
		gx, gz := toGrid(p)
		grid[gz*gridW+gx] = idx
	}

	insert(Vec2{X: rng.Float64() * width, Z: rng.Float64() * depth})

	for len(active) > 0 {
		ai := rng.IntN(len(active))
		p := points[active[ai]]

		found := false
		for k := 0; k < holeTries; k++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := minDist + rng.Float64()*(maxDist-minDist)
			c := Vec2{X: p.X + dist*math.Cos(angle), Z: p.Z + dist*math.Sin(angle)}
			if torus {
				c = Vec2{X: math.Mod(math.Mod(c.X, width)+width, width), Z: math.Mod(math.Mod(c.Z, depth)+depth, depth)}
			}
			if valid(c) {
				insert(c)
				found = true
				break
			}
		}
		if !found {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return points
}
