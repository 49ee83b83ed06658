package road

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// toGeomPolygon converts a ring into a single-ring simplefeatures polygon,
// closing it explicitly as simplefeatures requires. The constructors check
// that the ring is closed and simple.
func toGeomPolygon(ring Polygon) (geom.Polygon, error) {
	coords := make([]float64, 0, 2*(len(ring)+1))
	for _, p := range ring {
		coords = append(coords, p.X, p.Y)
	}
	coords = append(coords, ring[0].X, ring[0].Y)
	seq := geom.NewSequence(coords, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.Polygon{}, err
	}
	return geom.NewPolygon([]geom.LineString{ls})
}

// Validate checks the geometry of both rings. A self-intersecting or
// degenerate ring is an error. An inner ring that is not enclosed by the
// outer ring is reported as ErrInnerNotEnclosed; containment still works
// in that case but the track shape is probably a mistake.
func (t *Track) Validate() error {
	outer, err := toGeomPolygon(t.outer)
	if err != nil {
		return fmt.Errorf("track %q: outer bound: %w: %v", t.name, ErrInvalidDefinition, err)
	}
	inner, err := toGeomPolygon(t.inner)
	if err != nil {
		return fmt.Errorf("track %q: inner bound: %w: %v", t.name, ErrInvalidDefinition, err)
	}

	enclosed, err := geom.Contains(outer.AsGeometry(), inner.AsGeometry())
	if err != nil {
		return fmt.Errorf("track %q: relate bounds: %w", t.name, err)
	}
	if !enclosed {
		return fmt.Errorf("track %q: %w", t.name, ErrInnerNotEnclosed)
	}
	return nil
}
