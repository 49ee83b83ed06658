package road

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/cespare/xxhash/v2"
)

// MaskCache keeps rendered masks in memory so a reset or a track switch does
// not rasterise the same polygons again. Returned images are shared and must
// not be modified. Not safe for concurrent use.
type MaskCache struct {
	masks  map[uint64]*image.RGBA
	hits   int
	misses int
}

// NewMaskCache creates an empty cache
func NewMaskCache() *MaskCache {
	return &MaskCache{masks: make(map[uint64]*image.RGBA)}
}

// Get returns the mask for the track at the given size, rendering it on the
// first request.
func (c *MaskCache) Get(t *Track, w, h int, style MaskStyle) *image.RGBA {
	key := maskKey(t, w, h, style)
	if img, ok := c.masks[key]; ok {
		c.hits++
		return img
	}
	c.misses++
	img := RenderMask(t, w, h, style)
	c.masks[key] = img
	return img
}

// Len returns the number of cached masks
func (c *MaskCache) Len() int { return len(c.masks) }

// Stats returns the hit and miss counters
func (c *MaskCache) Stats() (hits, misses int) { return c.hits, c.misses }

func maskKey(t *Track, w, h int, style MaskStyle) uint64 {
	buf := make([]byte, 0, 16*(len(t.outer)+len(t.inner))+64)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(w))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(h))
	buf = append(buf,
		style.Surface.R, style.Surface.G, style.Surface.B, style.Surface.A,
		style.Outline.R, style.Outline.G, style.Outline.B, style.Outline.A)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(style.OutlineWidth))
	buf = appendRing(buf, t.outer)
	// separator so the same points split differently between rings hash apart
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(t.outer)))
	buf = appendRing(buf, t.inner)
	return xxhash.Sum64(buf)
}

func appendRing(buf []byte, ring Polygon) []byte {
	for _, p := range ring {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y))
	}
	return buf
}
