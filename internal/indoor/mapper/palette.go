// Package mapper holds parser listeners that turn the map into drawings and
// exchange formats while it is being read.
package mapper

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"indoor-map/internal/indoor/models"
)

// ============================================================
// Palette
// ============================================================

var (
	colorRemoved = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colorOutdoor = color.RGBA{0x4E, 0x9A, 0x06, 0xFF}
	colorIndoor  = color.RGBA{0xC8, 0xC8, 0xC8, 0xFF}
	colorWindow  = color.RGBA{0x00, 0x00, 0xFF, 0xFF}
	colorDoor    = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	colorGT      = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	colorAP      = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	colorBeacon  = color.RGBA{0x75, 0x50, 0x7B, 0xFF}
)

// Palette maps wall materials to stroke colors.
type Palette map[models.WallMaterial]color.RGBA

func DefaultPalette() Palette {
	return Palette{
		models.MaterialUnknown:        {0, 0, 0, 0xFF},
		models.MaterialDrywall:        {100, 100, 100, 0xFF},
		models.MaterialConcrete:       {50, 50, 50, 0xFF},
		models.MaterialGlass:          {0, 110, 255, 0xFF},
		models.MaterialMetalizedGlass: {0, 220, 255, 0xFF},
		models.MaterialMetal:          {114, 159, 207, 0xFF},
		models.MaterialWood:           {206, 92, 0, 0xFF},
	}
}

// Set stores the color of m. Components are clamped to 0..255.
func (p Palette) Set(m models.WallMaterial, r, g, b int) {
	p[m] = color.RGBA{clampByte(r), clampByte(g), clampByte(b), 0xFF}
}

// Color falls back to black for materials without an entry.
func (p Palette) Color(m models.WallMaterial) color.RGBA {
	if c, ok := p[m]; ok {
		return c
	}
	return color.RGBA{A: 0xFF}
}

func polygonColor(p models.Polygon2D) color.RGBA {
	switch {
	case p.Method == models.PolygonRemove:
		return colorRemoved
	case p.Outdoor:
		return colorOutdoor
	default:
		return colorIndoor
	}
}

func clampByte(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

// ============================================================
// Formatting helpers
// ============================================================

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// formatFloat prints val with at most four decimals, which is sub-millimeter
// in map units.
func formatFloat(val float64) string {
	val = math.Round(val*1e4) / 1e4
	if val == 0 {
		val = 0 // no "-0"
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}
