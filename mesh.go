package swell

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// MeshStyle controls how a Grid is turned into an ebiten vertex buffer.
type MeshStyle struct {
	// Transform maps plane coordinates (x, z) to screen space.
	// Layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
	// screenX = a*x + c*z + tx, screenY = b*x + d*z + ty
	Transform [6]float64
	// Tilt lifts each vertex on screen by Tilt * height, giving an oblique
	// view of a top-down grid.
	Tilt float64
	// Trough and Crest are blended by normalized height.
	Trough Color
	Crest  Color
	// Light points toward the light source. Zero disables shading.
	Light Vec3
	// Ambient is the minimum light level when shading is on.
	Ambient float64
}

// DefaultMeshStyle returns a top-down blue palette lit from the upper left.
func DefaultMeshStyle() MeshStyle {
	return MeshStyle{
		Transform: [6]float64{1, 0, 0, 1, 0, 0},
		Tilt:      0.5,
		Trough:    Color{R: 0.02, G: 0.10, B: 0.35, A: 1},
		Crest:     Color{R: 0.55, G: 0.75, B: 0.95, A: 1},
		Light:     Vec3{X: -0.4, Y: 1, Z: -0.3},
		Ambient:   0.35,
	}
}

// AppendVertices appends one ebiten.Vertex per grid vertex to dst and
// returns the extended slice. SrcX/SrcY carry the resting position so a
// tiling detail texture can be sampled with an offset.
func (g *Grid) AppendVertices(dst []ebiten.Vertex, style MeshStyle) []ebiten.Vertex {
	a, b, c, d, tx, ty := style.Transform[0], style.Transform[1], style.Transform[2],
		style.Transform[3], style.Transform[4], style.Transform[5]

	lo, hi := g.HeightBounds()
	span := hi - lo

	var light Vec3
	shade := false
	if l := math.Sqrt(style.Light.X*style.Light.X + style.Light.Y*style.Light.Y + style.Light.Z*style.Light.Z); l > 0 {
		light = Vec3{style.Light.X / l, style.Light.Y / l, style.Light.Z / l}
		shade = true
	}

	if need := len(dst) + len(g.pos); cap(dst) < need {
		grown := make([]ebiten.Vertex, len(dst), need)
		copy(grown, dst)
		dst = grown
	}

	for i, p := range g.pos {
		t := 0.5
		if span > 1e-9 {
			t = (p.Y - lo) / span
		}
		k := 1.0
		if shade {
			n := g.normals[i]
			k = math.Max(style.Ambient, n.X*light.X+n.Y*light.Y+n.Z*light.Z)
			k = math.Min(k, 1)
		}
		rest := g.rest[i]
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(a*p.X + c*p.Z + tx),
			DstY:   float32(b*p.X + d*p.Z + ty - style.Tilt*p.Y),
			SrcX:   float32(rest.X),
			SrcY:   float32(rest.Z),
			ColorR: float32(lerp(style.Trough.R, style.Crest.R, t) * k),
			ColorG: float32(lerp(style.Trough.G, style.Crest.G, t) * k),
			ColorB: float32(lerp(style.Trough.B, style.Crest.B, t) * k),
			ColorA: float32(lerp(style.Trough.A, style.Crest.A, t)),
		})
	}
	return dst
}

// Indices appends two triangles per grid cell using 16-bit indices. It
// returns dst unchanged when the grid has more vertices than uint16 can
// address; use Indices32 for such grids.
func (g *Grid) Indices(dst []uint16) []uint16 {
	if len(g.pos) > math.MaxUint16+1 {
		return dst
	}
	g.eachCell(func(tl, tr, bl, br int) {
		dst = append(dst, uint16(tl), uint16(bl), uint16(tr), uint16(tr), uint16(bl), uint16(br))
	})
	return dst
}

// Indices32 appends two triangles per grid cell using 32-bit indices, for
// ebiten's DrawTriangles32.
func (g *Grid) Indices32(dst []uint32) []uint32 {
	g.eachCell(func(tl, tr, bl, br int) {
		dst = append(dst, uint32(tl), uint32(bl), uint32(tr), uint32(tr), uint32(bl), uint32(br))
	})
	return dst
}

func (g *Grid) eachCell(fn func(tl, tr, bl, br int)) {
	for r := 0; r < g.rows-1; r++ {
		for c := 0; c < g.cols-1; c++ {
			tl := r*g.cols + c
			bl := (r+1)*g.cols + c
			fn(tl, tl+1, bl, bl+1)
		}
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
