// Package outline composes the add and remove polygons of a floor outline
// into the walkable surface.
package outline

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"indoor-map/internal/indoor/models"
)

// Ring converts an outline polygon to a closed ring. Polygons with fewer than
// three points have no area and yield nil.
func Ring(p models.Polygon2D) orb.Ring {
	if len(p.Points) < 3 {
		return nil
	}
	ring := make(orb.Ring, 0, len(p.Points)+1)
	for _, pt := range p.Points {
		ring = append(ring, orb.Point{pt.X, pt.Y})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// Walkable splits the outline into the areas that make up the floor and the
// areas cut out of it. Degenerate polygons are skipped.
func Walkable(o models.Outline) (add, remove orb.MultiPolygon) {
	for _, p := range o.Polygons {
		ring := Ring(p)
		if ring == nil {
			continue
		}
		if p.Method == models.PolygonRemove {
			remove = append(remove, orb.Polygon{ring})
		} else {
			add = append(add, orb.Polygon{ring})
		}
	}
	return add, remove
}

// Area is the summed area of the add polygons minus the removed ones.
// Overlapping add polygons are counted twice, as the format does not forbid them.
func Area(o models.Outline) float64 {
	add, remove := Walkable(o)
	var area float64
	for _, p := range add {
		area += math.Abs(planar.Area(p[0]))
	}
	for _, p := range remove {
		area -= math.Abs(planar.Area(p[0]))
	}
	return math.Max(area, 0)
}

// Contains reports whether pt lies inside some add polygon and outside every
// remove polygon.
func Contains(o models.Outline, pt models.Point2D) bool {
	add, remove := Walkable(o)
	return contains(add, remove, orb.Point{pt.X, pt.Y})
}

func contains(add, remove orb.MultiPolygon, pt orb.Point) bool {
	inside := false
	for _, p := range add {
		if planar.RingContains(p[0], pt) {
			inside = true
			break
		}
	}
	if !inside {
		return false
	}
	for _, p := range remove {
		if planar.RingContains(p[0], pt) {
			return false
		}
	}
	return true
}

// Surface caches the composed outline for repeated point queries.
type Surface struct {
	add    orb.MultiPolygon
	remove orb.MultiPolygon
}

func NewSurface(o models.Outline) *Surface {
	add, remove := Walkable(o)
	return &Surface{add: add, remove: remove}
}

// Empty reports whether the outline has no walkable polygon at all.
func (s *Surface) Empty() bool { return len(s.add) == 0 }

func (s *Surface) Contains(pt models.Point2D) bool {
	return contains(s.add, s.remove, orb.Point{pt.X, pt.Y})
}

// Bound is the bounding box of the add polygons.
func (s *Surface) Bound() orb.Bound {
	if len(s.add) == 0 {
		return orb.Bound{}
	}
	return s.add.Bound()
}
