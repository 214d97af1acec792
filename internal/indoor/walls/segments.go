// Package walls splits walls into drawable wall, door and window segments.
package walls

import (
	"cmp"
	"slices"

	"indoor-map/internal/indoor/models"
)

// Fillers shorter than this (in meters, negative) are not flagged as reversed.
const reversedEpsilon = 1e-9

// Generate stores the segments of w in w.Segments.
func Generate(w *models.Wall) {
	w.Segments = Segments(w)
}

// Segments converts the relatively positioned doors and windows of w into an
// ordered, gapless list of absolute segments covering the whole wall line.
//
// Doors and windows must not overlap each other. Openings reaching past the
// wall ends produce reversed fillers, which are flagged but kept.
func Segments(w *models.Wall) []models.WallSegment2D {
	start, end := w.Start(), w.End()

	if len(w.Doors) == 0 && len(w.Windows) == 0 {
		return []models.WallSegment2D{wallPiece(start, end)}
	}

	dir := end.Sub(start)
	unit := dir.Normalized()
	along := alongAxis(dir)

	openings := make([]models.WallSegment2D, 0, len(w.Doors)+len(w.Windows))

	for i, door := range w.Doors {
		anchor := start.Add(dir.Scale(door.AtLinePos))
		width := door.Width
		if door.LeftRight {
			width = -width
		}
		seg := models.WallSegment2D{
			Type:      models.SegmentDoor,
			ListIndex: i,
			Start:     anchor,
			End:       anchor.Add(unit.Scale(width)),
		}
		openings = append(openings, ordered(seg, along))
	}

	for i, window := range w.Windows {
		center := start.Add(dir.Scale(window.AtLinePos))
		half := unit.Scale(window.Width / 2)
		seg := models.WallSegment2D{
			Type:      models.SegmentWindow,
			ListIndex: i,
			Start:     center.Sub(half),
			End:       center.Add(half),
		}
		openings = append(openings, ordered(seg, along))
	}

	slices.SortStableFunc(openings, func(a, b models.WallSegment2D) int {
		return cmp.Compare(a.Start.Dot(along), b.Start.Dot(along))
	})

	wStart, wEnd := start, end
	if wEnd.Dot(along) < wStart.Dot(along) {
		wStart, wEnd = wEnd, wStart
	}

	result := make([]models.WallSegment2D, 0, 2*len(openings)+1)
	result = append(result, filler(wStart, openings[0].Start, along))
	for i, opening := range openings {
		result = append(result, opening)
		if i < len(openings)-1 {
			result = append(result, filler(opening.End, openings[i+1].Start, along))
		} else {
			result = append(result, filler(opening.End, wEnd, along))
		}
	}

	return result
}

// alongAxis returns the direction used to order points on the wall line: the
// wall direction turned towards +x, or towards +y for exactly vertical walls.
// For non-vertical walls the resulting order is ascending x.
func alongAxis(dir models.Point2D) models.Point2D {
	unit := dir.Normalized()
	if unit.X < 0 || (unit.X == 0 && unit.Y < 0) {
		unit = unit.Scale(-1)
	}
	return unit
}

func ordered(seg models.WallSegment2D, along models.Point2D) models.WallSegment2D {
	if seg.End.Dot(along) < seg.Start.Dot(along) {
		seg.Start, seg.End = seg.End, seg.Start
	}
	return seg
}

func wallPiece(start, end models.Point2D) models.WallSegment2D {
	return models.WallSegment2D{
		Type:      models.SegmentWall,
		ListIndex: models.NoListIndex,
		Start:     start,
		End:       end,
	}
}

func filler(start, end, along models.Point2D) models.WallSegment2D {
	seg := wallPiece(start, end)
	seg.Reversed = end.Sub(start).Dot(along) < -reversedEpsilon
	return seg
}
