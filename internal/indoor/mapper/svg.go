package mapper

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"math"
	"strings"

	"indoor-map/internal/indoor/models"
	"indoor-map/internal/indoor/parser"
)

// ============================================================
// SVG listener
// ============================================================

const (
	markerRadius = 0.125
	labelOffset  = 0.25
	labelStyle   = "font: 0.5px sans-serif;"
)

// SVGListener draws every accepted floor into one SVG document. Map units
// are kept as SVG user units and the y axis is flipped so that the plan
// reads like the map. Floors are drawn as separate groups on top of each
// other; combine with parser.FloorFilter to draw a single floor.
type SVGListener struct {
	parser.NopListener

	palette Palette
	body    strings.Builder
	floor   strings.Builder
	maxX    float64
	maxY    float64
}

func NewSVGListener() *SVGListener {
	return &SVGListener{palette: DefaultPalette()}
}

func (l *SVGListener) SetMaterialColor(m models.WallMaterial, r, g, b int) {
	l.palette.Set(m, r, g, b)
}

// String returns the complete document.
func (l *SVGListener) String() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s">`,
		formatFloat(l.maxX), formatFloat(l.maxY)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`  <g transform="translate(0, %s)">`, formatFloat(l.maxY)))
	sb.WriteString("\n")
	sb.WriteString(l.body.String())
	sb.WriteString("  </g>\n</svg>\n")
	return sb.String()
}

func (l *SVGListener) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.String())
	return int64(n), err
}

// ============================================================
// Hooks
// ============================================================

func (l *SVGListener) EnterMap(*models.Map) {
	l.body.Reset()
	l.maxX, l.maxY = 0, 0
}

// EnterFloor starts buffering the floor. The buffer is only kept once the
// floor is left, so a veto by another listener leaves no trace.
func (l *SVGListener) EnterFloor(floor *models.Floor) bool {
	l.floor.Reset()
	l.line(2, `<g id="floor_%s">`, html.EscapeString(floor.Name))
	return true
}

func (l *SVGListener) LeaveFloor(*models.Floor) {
	l.line(2, `</g>`)
	l.body.WriteString(l.floor.String())
	l.floor.Reset()
}

func (l *SVGListener) LeaveOutline(outline *models.Outline) {
	for _, polygon := range outline.Polygons {
		if len(polygon.Points) < 2 {
			continue
		}
		l.line(3, `<path d="%s Z" stroke="none" fill="%s"/>`,
			l.path(polygon.Points...), hexColor(polygonColor(polygon)))
	}
}

func (l *SVGListener) LeaveWall(wall *models.Wall) {
	// Openings are drawn slightly thinner than the wall.
	openingWidth := formatFloat(math.Max(wall.Thickness-0.1, 0.02))

	for _, seg := range wall.Segments {
		switch seg.Type {
		case models.SegmentWall:
			l.line(3, `<path d="%s" stroke="%s" stroke-width="%s" fill="none"/>`,
				l.path(seg.Start, seg.End), hexColor(l.palette.Color(wall.Material)), formatFloat(wall.Thickness))

		case models.SegmentWindow:
			l.line(3, `<path d="%s" stroke="%s" stroke-width="%s" stroke-dasharray="0.2, 0.1" fill="none"/>`,
				l.path(seg.Start, seg.End), hexColor(colorWindow), openingWidth)

		case models.SegmentDoor:
			if seg.ListIndex < 0 || seg.ListIndex >= len(wall.Doors) {
				continue
			}
			l.door(seg, wall.Doors[seg.ListIndex], openingWidth)
		}
	}
}

// door draws the opening, the swing arc and the open leaf. Every door type is
// drawn as a swing door.
func (l *SVGListener) door(seg models.WallSegment2D, door models.WallDoor, strokeWidth string) {
	openDir := seg.End.Sub(seg.Start).Orthogonal().Normalized()
	if door.InOut {
		openDir = openDir.Scale(-1)
	}

	hinge, lock := seg.Start, seg.End
	if door.LeftRight {
		hinge, lock = seg.End, seg.Start
	}
	leaf := hinge.Add(openDir.Scale(door.Width))

	toLock := lock.Sub(hinge)
	startAngle := math.Atan2(toLock.Y, toLock.X)
	endAngle := math.Atan2(openDir.Y, openDir.X)
	if door.InOut {
		startAngle, endAngle = endAngle, startAngle
	}
	if door.LeftRight {
		startAngle, endAngle = endAngle, startAngle
	}

	stroke := hexColor(colorDoor)
	l.line(3, `<path d="%s" stroke="%s" stroke-width="%s" stroke-dasharray="0.2, 0.1" fill="none"/>`,
		l.path(seg.Start, seg.End), stroke, strokeWidth)
	l.line(3, `<path d="%s" stroke="%s" stroke-width="%s" fill="none"/>`,
		l.arc(hinge, 0.9*door.Width, startAngle, endAngle), stroke, strokeWidth)
	l.line(3, `<path d="%s" stroke="%s" stroke-width="%s" fill="none"/>`,
		l.path(hinge, leaf), stroke, strokeWidth)
}

func (l *SVGListener) LeaveGroundtruthPoints(points *[]models.GroundtruthPoint) {
	for _, gt := range *points {
		l.marker(models.Pt(gt.X, gt.Y), colorGT, fmt.Sprint(gt.ID))
	}
}

func (l *SVGListener) LeaveAccessPoints(aps *[]models.AccessPoint) {
	for _, ap := range *aps {
		l.marker(models.Pt(ap.X, ap.Y), colorAP, fmt.Sprintf("%s (%s)", ap.Name, ap.MAC))
	}
}

func (l *SVGListener) LeaveBeacons(beacons *[]models.Beacon) {
	for _, b := range *beacons {
		l.marker(models.Pt(b.X, b.Y), colorBeacon, fmt.Sprintf("%s (%s)", b.Name, b.MAC))
	}
}

func (l *SVGListener) LeavePointOfInterests(pois *[]models.PointOfInterest) {
	for _, poi := range *pois {
		l.extend(models.Pt(poi.X, poi.Y))
		l.line(3, `<text x="%s" y="%s" style="%s" text-anchor="middle">%s</text>`,
			formatFloat(poi.X), formatFloat(-poi.Y-labelOffset), labelStyle, html.EscapeString(poi.Name))
	}
}

// ============================================================
// Drawing helpers
// ============================================================

func (l *SVGListener) line(indent int, format string, args ...any) {
	l.floor.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(&l.floor, format, args...)
	l.floor.WriteByte('\n')
}

func (l *SVGListener) extend(p models.Point2D) {
	l.maxX = math.Max(l.maxX, p.X)
	l.maxY = math.Max(l.maxY, p.Y)
}

// path returns the path data through pts with y flipped.
func (l *SVGListener) path(pts ...models.Point2D) string {
	var sb strings.Builder
	for i, p := range pts {
		l.extend(p)
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(formatFloat(p.X))
		sb.WriteString(" ")
		sb.WriteString(formatFloat(-p.Y))
	}
	return sb.String()
}

func (l *SVGListener) arc(center models.Point2D, radius, startAngle, endAngle float64) string {
	start, end, large := models.Arc(center, radius, startAngle, endAngle)
	l.extend(start)
	l.extend(end)

	largeFlag := 0
	if large {
		largeFlag = 1
	}
	return fmt.Sprintf("M %s %s A %s %s 0 %d 0 %s %s",
		formatFloat(start.X), formatFloat(-start.Y),
		formatFloat(radius), formatFloat(radius), largeFlag,
		formatFloat(end.X), formatFloat(-end.Y))
}

func (l *SVGListener) marker(p models.Point2D, fill color.RGBA, label string) {
	l.extend(p)
	l.line(3, `<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="none"/>`,
		formatFloat(p.X), formatFloat(-p.Y), formatFloat(markerRadius), hexColor(fill))
	l.line(3, `<text x="%s" y="%s" style="%s" text-anchor="start">%s</text>`,
		formatFloat(p.X+labelOffset), formatFloat(-p.Y), labelStyle, html.EscapeString(label))
}
