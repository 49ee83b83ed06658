package road

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	maskW = 200
	maskH = 150
)

// lowTrack sits in the lower third of a 200×150 world, so in the flipped
// image it occupies rows 90 to 140.
func lowTrack(t *testing.T) *Track {
	t.Helper()
	track, err := NewTrack(Definition{
		Name:  "low",
		Start: Point{30, 30},
		Outer: Polygon{{10, 10}, {190, 10}, {190, 60}, {10, 60}},
		Inner: Polygon{{80, 25}, {120, 25}, {120, 45}, {80, 45}},
	})
	require.NoError(t, err)
	return track
}

func assertPixel(t *testing.T, want, got color.RGBA, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want.A, got.A, msgAndArgs...)
	assert.InDelta(t, want.R, got.R, 1, msgAndArgs...)
	assert.InDelta(t, want.G, got.G, 1, msgAndArgs...)
	assert.InDelta(t, want.B, got.B, 1, msgAndArgs...)
}

func TestRenderMask_Layers(t *testing.T) {
	img := RenderMask(lowTrack(t), maskW, maskH, DefaultMaskStyle)
	require.Equal(t, maskW, img.Bounds().Dx())
	require.Equal(t, maskH, img.Bounds().Dy())

	transparent := color.RGBA{}

	// world (30, 30) is tarmac, image row 150-30
	assertPixel(t, DefaultMaskStyle.Surface, img.RGBAAt(30, 120), "surface")
	// world (100, 35) is in the hole
	assertPixel(t, transparent, img.RGBAAt(100, 115), "hole")
	// world (100, 120) is above the track
	assertPixel(t, transparent, img.RGBAAt(100, 30), "outside")
	// outer left edge at x=10
	assertPixel(t, DefaultMaskStyle.Outline, img.RGBAAt(10, 115), "outer outline")
	// inner left edge at x=80
	assertPixel(t, DefaultMaskStyle.Outline, img.RGBAAt(80, 115), "inner outline")
}

func TestRenderMask_FlipOnlyForRendering(t *testing.T) {
	track := lowTrack(t)
	img := RenderMask(track, maskW, maskH, DefaultMaskStyle)

	p := Point{30, 30}
	require.True(t, track.IsOnTrack(p))

	// Without the flip the same coordinates land outside the surface.
	assert.Zero(t, img.RGBAAt(int(p.X), int(p.Y)).A)
	assert.Equal(t, uint8(255), img.RGBAAt(int(p.X), maskH-int(p.Y)).A)

	// And containment does not flip either.
	assert.False(t, track.IsOnTrack(Point{30, maskH - 30}))
}

func TestRenderMask_NoOutline(t *testing.T) {
	style := DefaultMaskStyle
	style.OutlineWidth = 0
	img := RenderMask(lowTrack(t), maskW, maskH, style)

	assertPixel(t, style.Surface, img.RGBAAt(12, 115))
	assertPixel(t, color.RGBA{}, img.RGBAAt(100, 115))
}

func TestMaskCache(t *testing.T) {
	track := lowTrack(t)
	cache := NewMaskCache()

	first := cache.Get(track, maskW, maskH, DefaultMaskStyle)
	second := cache.Get(track, maskW, maskH, DefaultMaskStyle)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())

	// an equal track built separately shares the entry
	again := lowTrack(t)
	assert.Same(t, first, cache.Get(again, maskW, maskH, DefaultMaskStyle))

	other := cache.Get(track, maskW*2, maskH, DefaultMaskStyle)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, cache.Len())

	hits, misses := cache.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 2, misses)
}

// classify reports where an image pixel centre falls against the low track,
// or ok=false when it is within margin of an edge and may be outline or
// antialiasing.
func classify(x, y int, margin float64) (onSurface, ok bool) {
	px, py := float64(x)+0.5, float64(y)+0.5
	type rect struct{ x0, y0, x1, y1 float64 }
	// image space, rows flipped from the world rings
	outer := rect{10, maskH - 60, 190, maskH - 10}
	hole := rect{80, maskH - 45, 120, maskH - 25}

	near := func(r rect) bool {
		inX := px > r.x0-margin && px < r.x1+margin
		inY := py > r.y0-margin && py < r.y1+margin
		onX := math.Abs(px-r.x0) < margin || math.Abs(px-r.x1) < margin
		onY := math.Abs(py-r.y0) < margin || math.Abs(py-r.y1) < margin
		return (onX && inY) || (onY && inX)
	}
	inside := func(r rect) bool {
		return px > r.x0 && px < r.x1 && py > r.y0 && py < r.y1
	}
	if near(outer) || near(hole) {
		return false, false
	}
	return inside(outer) && !inside(hole), true
}

func TestRenderMask_SurfaceSurvivesHole(t *testing.T) {
	base := lowTrack(t)
	clockwiseHole, err := NewTrack(Definition{
		Name:  "low-cw",
		Start: base.Start(),
		Outer: base.Outer(),
		Inner: reversed(base.Inner()),
	})
	require.NoError(t, err)

	for _, track := range []*Track{base, clockwiseHole} {
		t.Run(track.Name(), func(t *testing.T) {
			img := RenderMask(track, maskW, maskH, DefaultMaskStyle)

			surface, opaque := 0, 0
			for y := 0; y < maskH; y++ {
				for x := 0; x < maskW; x++ {
					got := img.RGBAAt(x, y)
					if got.A == 255 {
						opaque++
					}
					onSurface, ok := classify(x, y, 3)
					if !ok {
						continue
					}
					if onSurface {
						surface++
						if got != DefaultMaskStyle.Surface {
							t.Fatalf("pixel (%d,%d) = %v, want surface", x, y, got)
						}
					} else if got.A != 0 {
						t.Fatalf("pixel (%d,%d) = %v, want transparent", x, y, got)
					}
				}
			}

			// 180×50 outer minus the 40×20 hole, plus the outline that
			// hangs over both boundaries
			assert.Greater(t, surface, 6000)
			assert.GreaterOrEqual(t, opaque, 180*50-40*20)
			assert.Less(t, opaque, 180*50-40*20+1000)
		})
	}
}

func TestRenderMask_AllSidesOfHole(t *testing.T) {
	img := RenderMask(lowTrack(t), maskW, maskH, DefaultMaskStyle)

	// world points just outside each side of the hole, then the hole centre
	for _, p := range []Point{{70, 35}, {130, 35}, {100, 18}, {100, 52}} {
		assertPixel(t, DefaultMaskStyle.Surface, img.RGBAAt(int(p.X), maskH-int(p.Y)), "around hole at %v", p)
	}
	assertPixel(t, color.RGBA{}, img.RGBAAt(100, maskH-35), "hole centre")
}

func TestSignedArea(t *testing.T) {
	ccw := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.Equal(t, 100.0, signedArea(ccw))
	assert.Equal(t, -100.0, signedArea(reversed(ccw)))
}
