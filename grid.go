package swell

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Grid is the shared displacement buffer the field writes every tick. It
// holds width x height vertices laid out row-major (row = Z index), each with
// a fixed resting position on the water plane, a current position and a
// surface normal.
type Grid struct {
	cols    int
	rows    int
	scale   float64
	rest    []Vec2
	pos     []Vec3
	normals []Vec3
}

// NewGrid creates a flat grid of cols x rows vertices spaced scale apart and
// centered on the origin. Dimensions below 2 are raised to 2.
func NewGrid(cols, rows int, scale float64) *Grid {
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}
	if scale <= 0 {
		scale = 1
	}
	n := cols * rows
	g := &Grid{
		cols:    cols,
		rows:    rows,
		scale:   scale,
		rest:    make([]Vec2, n),
		pos:     make([]Vec3, n),
		normals: make([]Vec3, n),
	}
	cx := float64(cols-1) / 2
	cz := float64(rows-1) / 2
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			g.rest[idx] = Vec2{X: (float64(c) - cx) * scale, Z: (float64(r) - cz) * scale}
		}
	}
	g.Reset()
	return g
}

// Cols returns the number of vertices along X.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of vertices along Z.
func (g *Grid) Rows() int { return g.rows }

// Scale returns the resting spacing between neighboring vertices.
func (g *Grid) Scale() float64 { return g.scale }

// Len returns the vertex count.
func (g *Grid) Len() int { return len(g.pos) }

// Index returns the buffer index of the vertex at (col, row).
func (g *Grid) Index(col, row int) int { return row*g.cols + col }

// Rest returns the resting position of vertex i.
func (g *Grid) Rest(i int) Vec2 { return g.rest[i] }

// Position returns the current position of vertex i.
func (g *Grid) Position(i int) Vec3 { return g.pos[i] }

// Normal returns the last computed normal of vertex i.
func (g *Grid) Normal(i int) Vec3 { return g.normals[i] }

// Positions returns the position buffer. The returned slice MUST NOT be
// mutated; it is rewritten on every tick.
func (g *Grid) Positions() []Vec3 { return g.pos }

// Normals returns the normal buffer. The returned slice MUST NOT be mutated.
func (g *Grid) Normals() []Vec3 { return g.normals }

// SetAllVertices calls fn for each vertex with its resting position and the
// position written last time. fn returns the displacement from rest.
func (g *Grid) SetAllVertices(fn func(col, row int, rest Vec2, prev Vec3) Vec3) {
	g.SetRows(0, g.rows, fn)
}

// SetRows is SetAllVertices restricted to rows [r0, r1). Disjoint row
// ranges may be written from different goroutines.
func (g *Grid) SetRows(r0, r1 int, fn func(col, row int, rest Vec2, prev Vec3) Vec3) {
	r0, r1 = max(r0, 0), min(r1, g.rows)
	for r := r0; r < r1; r++ {
		for c := 0; c < g.cols; c++ {
			idx := r*g.cols + c
			rest := g.rest[idx]
			d := fn(c, r, rest, g.pos[idx])
			g.pos[idx] = Vec3{X: rest.X + d.X, Y: d.Y, Z: rest.Z + d.Z}
		}
	}
}

// Reset returns every vertex to rest with an upward normal.
func (g *Grid) Reset() {
	for i, rest := range g.rest {
		g.pos[i] = Vec3{X: rest.X, Z: rest.Z}
		g.normals[i] = Vec3{Y: 1}
	}
}

// RecomputeNormals rebuilds every normal from central differences of the
// neighboring positions (one-sided on the border).
func (g *Grid) RecomputeNormals() {
	for r := 0; r < g.rows; r++ {
		r0, r1 := max(r-1, 0), min(r+1, g.rows-1)
		for c := 0; c < g.cols; c++ {
			c0, c1 := max(c-1, 0), min(c+1, g.cols-1)
			dx := toMgl(g.pos[r*g.cols+c1]).Sub(toMgl(g.pos[r*g.cols+c0]))
			dz := toMgl(g.pos[r1*g.cols+c]).Sub(toMgl(g.pos[r0*g.cols+c]))
			n := dz.Cross(dx)
			if l := n.Len(); l > 1e-12 && !math.IsNaN(l) {
				n = n.Mul(1 / l)
			} else {
				n = mgl64.Vec3{0, 1, 0}
			}
			g.normals[r*g.cols+c] = Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
	}
}

// HeightBounds returns the lowest and highest vertex heights.
func (g *Grid) HeightBounds() (lo, hi float64) {
	lo, hi = g.pos[0].Y, g.pos[0].Y
	for i := 1; i < len(g.pos); i++ {
		y := g.pos[i].Y
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi
}

// HeightAt returns the height of the vertex nearest to the plane point
// (x, z) in the grid frame, and false when the point is off the grid.
func (g *Grid) HeightAt(x, z float64) (float64, bool) {
	c := int(math.Round(x/g.scale + float64(g.cols-1)/2))
	r := int(math.Round(z/g.scale + float64(g.rows-1)/2))
	if c < 0 || c >= g.cols || r < 0 || r >= g.rows {
		return 0, false
	}
	return g.pos[r*g.cols+c].Y, true
}

func toMgl(v Vec3) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }
