package road

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// MaskStyle controls the colours of the rendered track mask
type MaskStyle struct {
	Surface      color.RGBA // Fill of the drivable surface
	Outline      color.RGBA // Colour of both boundary outlines
	OutlineWidth float64    // Outline width in pixels
}

// DefaultMaskStyle is a grey tarmac surface with thin black kerbs.
var DefaultMaskStyle = MaskStyle{
	Surface:      color.RGBA{128, 128, 128, 255},
	Outline:      color.RGBA{0, 0, 0, 255},
	OutlineWidth: 3,
}

// RenderMask rasterises the track into a w×h image used as its texture.
// The surface is the outer ring with the inner ring cut out as a hole, and
// both rings are outlined on top.
//
// Image rows grow downwards, so every point is flipped to y' = h - y here.
// Containment never goes through the mask and never flips.
func RenderMask(t *Track, w, h int, style MaskStyle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	z := vector.NewRasterizer(w, h)

	outer := flipY(t.outer, h)
	inner := flipY(t.inner, h)

	fillSurface(z, img, outer, inner, style.Surface)
	strokeRing(z, img, outer, style.OutlineWidth, style.Outline)
	strokeRing(z, img, inner, style.OutlineWidth, style.Outline)

	return img
}

func flipY(ring Polygon, h int) Polygon {
	out := make(Polygon, len(ring))
	for i, p := range ring {
		out[i] = Point{X: p.X, Y: float64(h) - p.Y}
	}
	return out
}

// signedArea is positive for counter-clockwise rings in the ring's own axes.
func signedArea(ring Polygon) float64 {
	var sum float64
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		sum += ring[j].X*ring[i].Y - ring[i].X*ring[j].Y
	}
	return sum / 2
}

func reversed(ring Polygon) Polygon {
	out := make(Polygon, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

// fillSurface draws the outer ring and the inner ring as one path. The
// inner ring is wound against the outer one so its coverage cancels out.
func fillSurface(z *vector.Rasterizer, dst *image.RGBA, outer, inner Polygon, c color.RGBA) {
	if (signedArea(outer) > 0) == (signedArea(inner) > 0) {
		inner = reversed(inner)
	}
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	z.DrawOp = draw.Over
	for _, ring := range []Polygon{outer, inner} {
		z.MoveTo(float32(ring[0].X), float32(ring[0].Y))
		for _, p := range ring[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// strokeRing outlines the ring with one quad per edge and a square on each
// vertex to fill the joins. All shapes share the same winding so overlaps
// add up instead of cancelling.
func strokeRing(z *vector.Rasterizer, dst *image.RGBA, ring Polygon, width float64, c color.RGBA) {
	if width <= 0 {
		return
	}
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	z.DrawOp = draw.Over
	half := width / 2

	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		quad(z,
			Point{a.X + nx, a.Y + ny},
			Point{b.X + nx, b.Y + ny},
			Point{b.X - nx, b.Y - ny},
			Point{a.X - nx, a.Y - ny},
		)
	}
	for _, p := range ring {
		quad(z,
			Point{p.X - half, p.Y + half},
			Point{p.X + half, p.Y + half},
			Point{p.X + half, p.Y - half},
			Point{p.X - half, p.Y - half},
		)
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func quad(z *vector.Rasterizer, a, b, c, d Point) {
	z.MoveTo(float32(a.X), float32(a.Y))
	z.LineTo(float32(b.X), float32(b.Y))
	z.LineTo(float32(c.X), float32(c.Y))
	z.LineTo(float32(d.X), float32(d.Y))
	z.ClosePath()
}
