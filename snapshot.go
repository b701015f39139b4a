package swell

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
)

// HeightmapImage renders the grid heights as a grayscale image, one pixel
// per vertex, with row 0 at the top. Heights are mapped linearly from
// [lo, hi] to [0, 255]; a flat grid renders mid-gray.
func HeightmapImage(g *Grid, lo, hi float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.cols, g.rows))
	span := hi - lo
	for i, p := range g.pos {
		t := 0.5
		if span > 1e-9 {
			t = clamp01((p.Y - lo) / span)
		}
		v := uint8(t*255 + 0.5)
		img.Pix[i*4] = v
		img.Pix[i*4+1] = v
		img.Pix[i*4+2] = v
		img.Pix[i*4+3] = 255
	}
	return img
}

// WriteHeightmapPNG writes the grid heights to path as a grayscale PNG,
// normalized to the grid's own height range.
func WriteHeightmapPNG(path string, g *Grid) error {
	lo, hi := g.HeightBounds()
	return writePNG(path, HeightmapImage(g, lo, hi))
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
