// Package lint reports suspicious map content while the map is read. Nothing
// it reports stops the parse.
package lint

import (
	"fmt"

	"indoor-map/internal/indoor/models"
	"indoor-map/internal/indoor/outline"
	"indoor-map/internal/indoor/parser"
)

type Kind string

const (
	// A wall piece ends before it starts: openings overlap or stick out of the wall.
	ReversedSegment Kind = "reversed_segment"
	OpeningOutside  Kind = "opening_outside_wall"
	ZeroLengthWall  Kind = "zero_length_wall"
	DuplicateID     Kind = "duplicate_gtpoint_id"
	OutsideOutline  Kind = "outside_outline"
)

type Issue struct {
	Floor   string  `json:"floor"`
	Kind    Kind    `json:"kind"`
	Message string  `json:"message"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

func (i Issue) String() string {
	return fmt.Sprintf("floor %q: %s: %s at (%g; %g)", i.Floor, i.Kind, i.Message, i.X, i.Y)
}

// Linter collects issues of every accepted floor in document order.
type Linter struct {
	parser.NopListener

	Issues []Issue

	floor   string
	walls   int
	surface *outline.Surface
	pending []Issue
}

func New() *Linter {
	return &Linter{}
}

func (l *Linter) EnterMap(*models.Map) {
	l.Issues = nil
}

func (l *Linter) EnterFloor(floor *models.Floor) bool {
	l.floor = floor.Name
	l.walls = 0
	l.surface = nil
	l.pending = l.pending[:0]
	return true
}

func (l *Linter) LeaveFloor(*models.Floor) {
	l.Issues = append(l.Issues, l.pending...)
	l.pending = l.pending[:0]
}

func (l *Linter) LeaveOutline(o *models.Outline) {
	l.surface = outline.NewSurface(*o)
}

func (l *Linter) LeaveWall(wall *models.Wall) {
	n := l.walls
	l.walls++

	if wall.Length() == 0 {
		l.report(ZeroLengthWall, wall.Start(), "wall %d has no length", n)
	}
	for i, door := range wall.Doors {
		if door.AtLinePos < 0 || door.AtLinePos > 1 {
			l.report(OpeningOutside, wall.Start(), "door %d of wall %d is at %g", i, n, door.AtLinePos)
		}
	}
	for i, window := range wall.Windows {
		if window.AtLinePos < 0 || window.AtLinePos > 1 {
			l.report(OpeningOutside, wall.Start(), "window %d of wall %d is at %g", i, n, window.AtLinePos)
		}
	}
	for _, seg := range wall.Segments {
		if seg.Reversed {
			l.report(ReversedSegment, seg.Start, "wall %d has a reversed piece from %s to %s", n, seg.Start, seg.End)
		}
	}
}

func (l *Linter) LeaveGroundtruthPoints(points *[]models.GroundtruthPoint) {
	seen := make(map[int]bool, len(*points))
	for _, gt := range *points {
		pt := models.Pt(gt.X, gt.Y)
		if seen[gt.ID] {
			l.report(DuplicateID, pt, "ground truth id %d is used more than once", gt.ID)
		}
		seen[gt.ID] = true
		l.checkInside(pt, "ground truth point %d", gt.ID)
	}
}

func (l *Linter) LeaveFingerprintLocations(locations *[]models.FingerprintLocation) {
	for _, loc := range *locations {
		l.checkInside(models.Pt(loc.X, loc.Y), "fingerprint location %q", loc.Name)
	}
}

// checkInside is skipped for floors without a walkable outline.
func (l *Linter) checkInside(pt models.Point2D, format string, args ...any) {
	if l.surface == nil || l.surface.Empty() || l.surface.Contains(pt) {
		return
	}
	l.report(OutsideOutline, pt, format+" is not on walkable ground", args...)
}

func (l *Linter) report(kind Kind, at models.Point2D, format string, args ...any) {
	l.pending = append(l.pending, Issue{
		Floor:   l.floor,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		X:       at.X,
		Y:       at.Y,
	})
}
