package mapper

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"indoor-map/internal/indoor/models"
	"indoor-map/internal/indoor/parser"
)

// ============================================================
// Raster listener
// ============================================================

const (
	DefaultPixelsPerMeter = 20.0
	maxRasterSide         = 8192
	maxRasterPixels       = 16 << 20
	rasterMarkerSize      = 0.25
)

type shape struct {
	points []models.Point2D
	fill   color.RGBA
}

// RasterListener collects filled shapes while the map is read and paints
// them on demand. The image covers the declared map size from the origin, or
// the drawn extent when the map declares no size.
type RasterListener struct {
	parser.NopListener

	PixelsPerMeter float64

	palette Palette
	shapes  []shape
	pending []shape
	width   float64
	depth   float64
}

func NewRasterListener(pixelsPerMeter float64) *RasterListener {
	if pixelsPerMeter <= 0 {
		pixelsPerMeter = DefaultPixelsPerMeter
	}
	return &RasterListener{PixelsPerMeter: pixelsPerMeter, palette: DefaultPalette()}
}

func (l *RasterListener) SetMaterialColor(m models.WallMaterial, r, g, b int) {
	l.palette.Set(m, r, g, b)
}

func (l *RasterListener) EnterMap(m *models.Map) {
	l.shapes = l.shapes[:0]
	l.width, l.depth = m.Width, m.Depth
}

func (l *RasterListener) EnterFloor(*models.Floor) bool {
	l.pending = l.pending[:0]
	return true
}

func (l *RasterListener) LeaveFloor(*models.Floor) {
	l.shapes = append(l.shapes, l.pending...)
	l.pending = l.pending[:0]
}

func (l *RasterListener) LeaveOutline(outline *models.Outline) {
	for _, polygon := range outline.Polygons {
		if len(polygon.Points) < 3 {
			continue
		}
		l.add(polygonColor(polygon), polygon.Points...)
	}
}

func (l *RasterListener) LeaveWall(wall *models.Wall) {
	for _, seg := range wall.Segments {
		fill := l.palette.Color(wall.Material)
		thickness := wall.Thickness
		switch seg.Type {
		case models.SegmentDoor:
			fill = colorRemoved
		case models.SegmentWindow:
			fill = colorWindow
			thickness = math.Max(thickness-0.1, 0.02)
		}
		if quad := segmentQuad(seg.Start, seg.End, thickness); quad != nil {
			l.add(fill, quad...)
		}
	}
}

func (l *RasterListener) LeaveGroundtruthPoints(points *[]models.GroundtruthPoint) {
	for _, gt := range *points {
		l.add(colorGT, square(models.Pt(gt.X, gt.Y), rasterMarkerSize)...)
	}
}

func (l *RasterListener) LeaveAccessPoints(aps *[]models.AccessPoint) {
	for _, ap := range *aps {
		l.add(colorAP, square(models.Pt(ap.X, ap.Y), rasterMarkerSize)...)
	}
}

func (l *RasterListener) LeaveBeacons(beacons *[]models.Beacon) {
	for _, b := range *beacons {
		l.add(colorBeacon, square(models.Pt(b.X, b.Y), rasterMarkerSize)...)
	}
}

func (l *RasterListener) add(fill color.RGBA, pts ...models.Point2D) {
	l.pending = append(l.pending, shape{points: pts, fill: fill})
}

// ============================================================
// Painting
// ============================================================

// Image paints the collected shapes in order on a white background.
func (l *RasterListener) Image() *image.RGBA {
	maxX, maxY := l.width, l.depth
	if maxX <= 0 || maxY <= 0 {
		for _, s := range l.shapes {
			for _, p := range s.points {
				maxX = math.Max(maxX, p.X)
				maxY = math.Max(maxY, p.Y)
			}
		}
	}

	scale := fitScale(l.PixelsPerMeter, maxX, maxY)
	w := pixelSide(maxX * scale)
	h := pixelSide(maxY * scale)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	for _, s := range l.shapes {
		z.Reset(w, h)
		for i, p := range s.points {
			x := float32(p.X * scale)
			y := float32((maxY - p.Y) * scale)
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(s.fill), image.Point{})
	}
	return img
}

func (l *RasterListener) EncodePNG(w io.Writer) error {
	return png.Encode(w, l.Image())
}

// fitScale lowers pixelsPerMeter until the image stays within
// maxRasterSide per side and maxRasterPixels in total.
func fitScale(pixelsPerMeter, w, h float64) float64 {
	scale := pixelsPerMeter
	if w > 0 {
		scale = math.Min(scale, (maxRasterSide-1)/w)
	}
	if h > 0 {
		scale = math.Min(scale, (maxRasterSide-1)/h)
	}
	if w > 0 && h > 0 {
		// pixelSide adds up to 2 per side
		for (w*scale+2)*(h*scale+2) > maxRasterPixels {
			scale = math.Min(scale*0.99, math.Sqrt(maxRasterPixels/(w*h))*0.99)
		}
	}
	return scale
}

func pixelSide(v float64) int {
	side := int(math.Ceil(v)) + 1
	return min(max(side, 1), maxRasterSide)
}

// segmentQuad returns the rectangle of the given thickness centered on a->b,
// or nil for a zero-length segment.
func segmentQuad(a, b models.Point2D, thickness float64) []models.Point2D {
	n := b.Sub(a).Orthogonal().Normalized()
	if n == (models.Point2D{}) {
		return nil
	}
	off := n.Scale(thickness / 2)
	return []models.Point2D{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)}
}

func square(c models.Point2D, size float64) []models.Point2D {
	h := size / 2
	return []models.Point2D{
		c.Add(models.Pt(-h, -h)), c.Add(models.Pt(h, -h)), c.Add(models.Pt(h, h)), c.Add(models.Pt(-h, h)),
	}
}
