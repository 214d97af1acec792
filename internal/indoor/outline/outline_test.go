package outline

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indoor-map/internal/indoor/models"
)

func square(method models.PolygonMethod, x, y, size float64) models.Polygon2D {
	return models.Polygon2D{
		Method: method,
		Points: []models.Point2D{
			models.Pt(x, y), models.Pt(x+size, y), models.Pt(x+size, y+size), models.Pt(x, y+size),
		},
	}
}

func Test_Ring(t *testing.T) {
	t.Run("closes open polygons", func(t *testing.T) {
		ring := Ring(square(models.PolygonAdd, 0, 0, 2))
		require.Len(t, ring, 5)
		assert.Equal(t, ring[0], ring[4])
	})

	t.Run("keeps closed polygons", func(t *testing.T) {
		p := square(models.PolygonAdd, 0, 0, 2)
		p.Points = append(p.Points, p.Points[0])
		assert.Len(t, Ring(p), 5)
	})

	t.Run("drops degenerate polygons", func(t *testing.T) {
		p := models.Polygon2D{Points: []models.Point2D{models.Pt(0, 0), models.Pt(1, 1)}}
		assert.Nil(t, Ring(p))
	})
}

func Test_Area(t *testing.T) {
	o := models.Outline{Polygons: []models.Polygon2D{
		square(models.PolygonAdd, 0, 0, 10),
		square(models.PolygonAdd, 10, 0, 5),
		square(models.PolygonRemove, 2, 2, 2),
	}}
	assert.InDelta(t, 100+25-4, Area(o), 1e-9)

	t.Run("orientation does not matter", func(t *testing.T) {
		p := square(models.PolygonAdd, 0, 0, 3)
		for i, j := 0, len(p.Points)-1; i < j; i, j = i+1, j-1 {
			p.Points[i], p.Points[j] = p.Points[j], p.Points[i]
		}
		assert.InDelta(t, 9, Area(models.Outline{Polygons: []models.Polygon2D{p}}), 1e-9)
	})

	t.Run("never negative", func(t *testing.T) {
		o := models.Outline{Polygons: []models.Polygon2D{square(models.PolygonRemove, 0, 0, 3)}}
		assert.Zero(t, Area(o))
	})
}

func Test_Contains(t *testing.T) {
	o := models.Outline{Polygons: []models.Polygon2D{
		square(models.PolygonAdd, 0, 0, 10),
		square(models.PolygonRemove, 4, 4, 2),
	}}

	tests := []struct {
		name string
		pt   models.Point2D
		want bool
	}{
		{"inside", models.Pt(1, 1), true},
		{"inside hole", models.Pt(5, 5), false},
		{"outside", models.Pt(11, 5), false},
		{"negative", models.Pt(-1, 5), false},
	}
	s := NewSurface(o)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(o, tt.pt))
			assert.Equal(t, tt.want, s.Contains(tt.pt))
		})
	}
}

func Test_Surface_Bound(t *testing.T) {
	s := NewSurface(models.Outline{Polygons: []models.Polygon2D{
		square(models.PolygonAdd, 0, 0, 10),
		square(models.PolygonAdd, 20, 5, 5),
	}})
	assert.False(t, s.Empty())
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{25, 10}}, s.Bound())

	empty := NewSurface(models.Outline{})
	assert.True(t, empty.Empty())
	assert.False(t, empty.Contains(models.Pt(0, 0)))
}
