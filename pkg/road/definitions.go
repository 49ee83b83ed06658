package road

import (
	"errors"
	"fmt"
	"math"
)

// MinPolygonPoints is the smallest ring that still encloses an area.
const MinPolygonPoints = 3

var (
	// ErrTooFewPoints is returned for a boundary ring with fewer than three points.
	ErrTooFewPoints = errors.New("polygon needs at least three points")
	// ErrInvalidDefinition is returned for coordinates that are NaN or infinite.
	ErrInvalidDefinition = errors.New("invalid track definition")
	// ErrStartOffTrack is returned when the start point is not on the drivable surface.
	ErrStartOffTrack = errors.New("start point is not on the track")
	// ErrInnerNotEnclosed reports an inner ring that is not fully inside the outer ring.
	ErrInnerNotEnclosed = errors.New("inner bound is not enclosed by outer bound")
)

// Point is a position in world space. X grows to the right and Y grows up
// the screen, the usual game-world convention.
type Point struct {
	X, Y float64
}

// Polygon is an implicitly closed ring of points.
type Polygon []Point

// Definition is the raw description of a track as it comes from configuration
type Definition struct {
	Name  string  // Display name, also used to select a track
	Image string  // Optional background image drawn under the mask
	Start Point   // Where the car is placed on reset
	Outer Polygon // Outer boundary of the drivable surface
	Inner Polygon // Hole in the middle of the surface
}

// check verifies the ring has enough finite points to be a polygon
func (p Polygon) check(which string) error {
	if len(p) < MinPolygonPoints {
		return fmt.Errorf("%s bound has %d points: %w", which, len(p), ErrTooFewPoints)
	}
	for i, pt := range p {
		if !finite(pt.X) || !finite(pt.Y) {
			return fmt.Errorf("%s bound point %d (%v, %v): %w", which, i, pt.X, pt.Y, ErrInvalidDefinition)
		}
	}
	return nil
}

func (p Polygon) clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
