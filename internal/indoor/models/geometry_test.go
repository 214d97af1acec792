package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Point2D(t *testing.T) {
	a := Pt(3, 4)
	b := Pt(1, -2)

	t.Run("arithmetic", func(t *testing.T) {
		assert.Equal(t, Pt(4, 2), a.Add(b))
		assert.Equal(t, Pt(2, 6), a.Sub(b))
		assert.Equal(t, Pt(6, 8), a.Scale(2))
		assert.Equal(t, Pt(1.5, 2), a.Div(2))
		assert.Equal(t, -5.0, a.Dot(b))
	})

	t.Run("orthogonal turns counter clockwise", func(t *testing.T) {
		assert.Equal(t, Pt(-4, 3), a.Orthogonal())
		assert.Zero(t, a.Dot(a.Orthogonal()))
	})

	t.Run("length and distance", func(t *testing.T) {
		assert.Equal(t, 5.0, a.Length())
		assert.Equal(t, 5.0, Pt(0, 0).Distance(a))
	})

	t.Run("normalized", func(t *testing.T) {
		n := a.Normalized()
		assert.InDelta(t, 1.0, n.Length(), 1e-12)
		assert.InDelta(t, 0.6, n.X, 1e-12)
		assert.Equal(t, Point2D{}, Point2D{}.Normalized())
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "(3; 4)", a.String())
		assert.Equal(t, "(0.5; -1.25)", Pt(0.5, -1.25).String())
	})
}

func Test_FromPolar(t *testing.T) {
	p := FromPolar(Pt(1, 1), 2, math.Pi/2)
	assert.InDelta(t, 1.0, p.X, 1e-12)
	assert.InDelta(t, 3.0, p.Y, 1e-12)
}

func Test_Arc(t *testing.T) {
	start, end, large := Arc(Pt(0, 0), 1, 0, math.Pi/2)
	assert.InDelta(t, 1.0, start.X, 1e-12)
	assert.InDelta(t, 1.0, end.Y, 1e-12)
	assert.False(t, large)

	_, _, large = Arc(Pt(0, 0), 1, 0, 1.5*math.Pi)
	assert.True(t, large)
}

func Test_Enums(t *testing.T) {
	assert.True(t, MaterialMetalizedGlass.Valid())
	assert.False(t, WallMaterial(7).Valid())
	assert.False(t, DoorType(-1).Valid())
	assert.True(t, ObstaclePillar.Valid())
	assert.False(t, POIType(1).Valid())
	assert.True(t, PolygonRemove.Valid())
}

func Test_Map_FloorByName(t *testing.T) {
	m := &Map{Floors: []Floor{{Name: "0"}, {Name: "1"}}}

	f, ok := m.FloorByName("1")
	assert.True(t, ok)
	f.Height = 4
	assert.Equal(t, 4.0, m.Floors[1].Height, "returns a pointer into the map")

	_, ok = m.FloorByName("2")
	assert.False(t, ok)
}

func Test_Wall_Length(t *testing.T) {
	w := Wall{X1: 1, Y1: 1, X2: 4, Y2: 5}
	assert.Equal(t, 5.0, w.Length())
	assert.False(t, w.Degenerate())
}
