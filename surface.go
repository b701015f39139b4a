package swell

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// SurfaceDetail is a tiling texture laid over the water mesh. Its offset
// follows the field's world scroll so the detail stays fixed in world space.
//
// Decoding runs in the background. Until it finishes the detail reports not
// ready and Image returns nil; translating or querying it before then is
// harmless.
type SurfaceDetail struct {
	// Scale is the world distance covered by one texel.
	Scale float64

	offset Vec2
	src    atomic.Pointer[image.Image]
	err    atomic.Pointer[error]
	done   chan struct{}
	img    *ebiten.Image
}

// NewSurfaceDetail wraps an already decoded image. The detail is ready
// immediately.
func NewSurfaceDetail(img image.Image) *SurfaceDetail {
	d := &SurfaceDetail{Scale: 1, done: make(chan struct{})}
	d.src.Store(&img)
	close(d.done)
	return d
}

// LoadSurfaceDetail starts decoding a PNG from r on a separate goroutine and
// returns immediately. If r is an io.Closer it is closed once decoding ends.
func LoadSurfaceDetail(r io.Reader) *SurfaceDetail {
	d := &SurfaceDetail{Scale: 1, done: make(chan struct{})}
	go func() {
		defer close(d.done)
		if c, ok := r.(io.Closer); ok {
			defer c.Close()
		}
		img, err := png.Decode(r)
		if err != nil {
			err = fmt.Errorf("decode surface detail: %w", err)
			d.err.Store(&err)
			return
		}
		d.src.Store(&img)
	}()
	return d
}

// LoadSurfaceDetailFile opens path and decodes it in the background. See
// LoadSurfaceDetail.
func LoadSurfaceDetailFile(path string) (*SurfaceDetail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open surface detail %s: %w", path, err)
	}
	return LoadSurfaceDetail(f), nil
}

// Ready reports whether decoding finished successfully.
func (d *SurfaceDetail) Ready() bool { return d.src.Load() != nil }

// Err returns the decode error, if decoding failed.
func (d *SurfaceDetail) Err() error {
	if p := d.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Wait blocks until decoding ends or ctx is done.
func (d *SurfaceDetail) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Translate shifts the texture offset by (dx, dz) world units.
func (d *SurfaceDetail) Translate(dx, dz float64) {
	d.offset = d.offset.Add(Vec2{X: dx, Z: dz})
}

// Offset returns the accumulated world offset.
func (d *SurfaceDetail) Offset() Vec2 { return d.offset }

// Bounds returns the decoded image bounds, or an empty rectangle when not
// ready.
func (d *SurfaceDetail) Bounds() image.Rectangle {
	p := d.src.Load()
	if p == nil {
		return image.Rectangle{}
	}
	return (*p).Bounds()
}

// TexCoord maps a resting grid position to texel coordinates, applying the
// offset and wrapping into the texture. It returns (0, 0) when not ready.
func (d *SurfaceDetail) TexCoord(rest Vec2) (float32, float32) {
	b := d.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return 0, 0
	}
	scale := d.Scale
	if scale <= 0 {
		scale = 1
	}
	u := math.Mod((rest.X+d.offset.X)/scale, w)
	v := math.Mod((rest.Z+d.offset.Z)/scale, h)
	if u < 0 {
		u += w
	}
	if v < 0 {
		v += h
	}
	return float32(u) + float32(b.Min.X), float32(v) + float32(b.Min.Y)
}

// Image returns the texture as an ebiten image, creating it on first use.
// It returns nil until decoding succeeds. Must be called from the game
// goroutine.
func (d *SurfaceDetail) Image() *ebiten.Image {
	if d.img != nil {
		return d.img
	}
	p := d.src.Load()
	if p == nil {
		return nil
	}
	d.img = ebiten.NewImageFromImage(*p)
	return d.img
}

// ApplyTexCoords rewrites SrcX/SrcY of the vertices produced by
// Grid.AppendVertices (starting at vs[0]) to sample this detail. It is a
// no-op until the detail is ready.
func (d *SurfaceDetail) ApplyTexCoords(g *Grid, vs []ebiten.Vertex) {
	if !d.Ready() {
		return
	}
	n := min(len(vs), g.Len())
	for i := 0; i < n; i++ {
		vs[i].SrcX, vs[i].SrcY = d.TexCoord(g.rest[i])
	}
}
