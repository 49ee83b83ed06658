package road

import (
	"fmt"
	"math"
)

// Zeroish is the tolerance used to decide a point lies on a boundary edge.
var Zeroish = 1e-9

// Track is the drivable surface between an outer and an inner ring.
// A Track never changes after NewTrack returns.
type Track struct {
	name  string
	image string
	start Point
	outer Polygon
	inner Polygon
}

// NewTrack validates a definition and builds a Track from it
func NewTrack(def Definition) (*Track, error) {
	if err := def.Outer.check("outer"); err != nil {
		return nil, fmt.Errorf("track %q: %w", def.Name, err)
	}
	if err := def.Inner.check("inner"); err != nil {
		return nil, fmt.Errorf("track %q: %w", def.Name, err)
	}
	if !finite(def.Start.X) || !finite(def.Start.Y) {
		return nil, fmt.Errorf("track %q: start (%v, %v): %w", def.Name, def.Start.X, def.Start.Y, ErrInvalidDefinition)
	}

	t := &Track{
		name:  def.Name,
		image: def.Image,
		start: def.Start,
		outer: def.Outer.clone(),
		inner: def.Inner.clone(),
	}
	if !t.IsOnTrack(t.start) {
		return nil, fmt.Errorf("track %q: start (%v, %v): %w", def.Name, def.Start.X, def.Start.Y, ErrStartOffTrack)
	}
	return t, nil
}

// Name returns the track name
func (t *Track) Name() string { return t.name }

// Image returns the background image reference, empty when there is none
func (t *Track) Image() string { return t.image }

// Start returns the start position
func (t *Track) Start() Point { return t.start }

// Outer returns a copy of the outer boundary
func (t *Track) Outer() Polygon { return t.outer.clone() }

// Inner returns a copy of the inner boundary
func (t *Track) Inner() Polygon { return t.inner.clone() }

// IsOnTrack reports whether p is strictly inside the outer ring and not
// inside the inner ring. Points on an edge of either ring are off track.
// Coordinates are world (Y-up) coordinates, the same ones the track was
// defined in.
func (t *Track) IsOnTrack(p Point) bool {
	inOuter, onOuter := Contains(t.outer, p)
	if !inOuter || onOuter {
		return false
	}
	inInner, onInner := Contains(t.inner, p)
	return !inInner && !onInner
}

// Contains runs a crossing-number test of p against the ring. onEdge is set
// when p lies on an edge or vertex, in which case inside is false.
func Contains(ring Polygon, p Point) (inside, onEdge bool) {
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[j], ring[i]
		if onSegment(a, b, p) {
			return false, true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside, false
}

// onSegment reports whether p lies on the closed segment a-b
func onSegment(a, b, p Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > Zeroish*math.Max(1, math.Hypot(b.X-a.X, b.Y-a.Y)) {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-Zeroish && p.X <= math.Max(a.X, b.X)+Zeroish &&
		p.Y >= math.Min(a.Y, b.Y)-Zeroish && p.Y <= math.Max(a.Y, b.Y)+Zeroish
}
