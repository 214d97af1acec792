package walls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indoor-map/internal/indoor/models"
)

const eps = 1e-9

func door(pos, width float64, leftRight bool) models.WallDoor {
	return models.WallDoor{
		WallElement: models.WallElement{Width: width, AtLinePos: pos},
		LeftRight:   leftRight,
	}
}

func window(pos, width float64) models.WallWindow {
	return models.WallWindow{WallElement: models.WallElement{Width: width, AtLinePos: pos}}
}

func assertPoint(t *testing.T, want, got models.Point2D) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x of %v vs %v", want, got)
	assert.InDelta(t, want.Y, got.Y, eps, "y of %v vs %v", want, got)
}

// assertContinuous checks that the segments form one polyline from first to last.
func assertContinuous(t *testing.T, segs []models.WallSegment2D, first, last models.Point2D) {
	t.Helper()
	require.NotEmpty(t, segs)
	assertPoint(t, first, segs[0].Start)
	for i := 1; i < len(segs); i++ {
		assertPoint(t, segs[i-1].End, segs[i].Start)
	}
	assertPoint(t, last, segs[len(segs)-1].End)
}

func Test_Segments(t *testing.T) {
	t.Run("wall without openings is a single segment", func(t *testing.T) {
		w := &models.Wall{X1: 4, Y1: 1, X2: 0, Y2: 1}
		segs := Segments(w)
		require.Len(t, segs, 1)
		assert.Equal(t, models.SegmentWall, segs[0].Type)
		assert.Equal(t, models.NoListIndex, segs[0].ListIndex)
		assert.Equal(t, w.Start(), segs[0].Start)
		assert.Equal(t, w.End(), segs[0].End)
	})

	t.Run("centered door yields filler door filler", func(t *testing.T) {
		w := &models.Wall{X1: 0, Y1: 0, X2: 4, Y2: 0, Doors: []models.WallDoor{door(0.5, 1, false)}}
		segs := Segments(w)
		require.Len(t, segs, 3)

		assert.Equal(t, models.SegmentWall, segs[0].Type)
		assert.Equal(t, models.SegmentDoor, segs[1].Type)
		assert.Equal(t, 0, segs[1].ListIndex)
		assert.Equal(t, models.SegmentWall, segs[2].Type)

		assertPoint(t, models.Pt(2, 0), segs[1].Start)
		assertPoint(t, models.Pt(3, 0), segs[1].End)
		assertContinuous(t, segs, models.Pt(0, 0), models.Pt(4, 0))
		assert.False(t, w.Degenerate())
	})

	t.Run("left-right door extends towards the wall start", func(t *testing.T) {
		w := &models.Wall{X1: 0, Y1: 0, X2: 4, Y2: 0, Doors: []models.WallDoor{door(0.5, 1, true)}}
		segs := Segments(w)
		require.Len(t, segs, 3)
		assertPoint(t, models.Pt(1, 0), segs[1].Start)
		assertPoint(t, models.Pt(2, 0), segs[1].End)
	})

	t.Run("window is centered on its position", func(t *testing.T) {
		w := &models.Wall{X1: 0, Y1: 0, X2: 10, Y2: 0, Windows: []models.WallWindow{window(0.2, 2)}}
		segs := Segments(w)
		require.Len(t, segs, 3)
		assert.Equal(t, models.SegmentWindow, segs[1].Type)
		assertPoint(t, models.Pt(1, 0), segs[1].Start)
		assertPoint(t, models.Pt(3, 0), segs[1].End)
	})

	t.Run("openings are sorted along the wall and keep their list index", func(t *testing.T) {
		w := &models.Wall{
			X1: 0, Y1: 0, X2: 10, Y2: 5,
			Doors:   []models.WallDoor{door(0.8, 1, false), door(0.1, 1, false)},
			Windows: []models.WallWindow{window(0.5, 1)},
		}
		segs := Segments(w)
		require.Len(t, segs, 7)

		assert.Equal(t, models.SegmentDoor, segs[1].Type)
		assert.Equal(t, 1, segs[1].ListIndex)
		assert.Equal(t, models.SegmentWindow, segs[3].Type)
		assert.Equal(t, 0, segs[3].ListIndex)
		assert.Equal(t, models.SegmentDoor, segs[5].Type)
		assert.Equal(t, 0, segs[5].ListIndex)

		for i := 0; i < len(segs); i += 2 {
			assert.Equal(t, models.SegmentWall, segs[i].Type)
			assert.Equal(t, models.NoListIndex, segs[i].ListIndex)
		}
		assertContinuous(t, segs, models.Pt(0, 0), models.Pt(10, 5))
	})

	t.Run("adjacent openings keep a zero length filler", func(t *testing.T) {
		w := &models.Wall{
			X1: 0, Y1: 0, X2: 4, Y2: 0,
			Doors:   []models.WallDoor{door(0.25, 1, false)},
			Windows: []models.WallWindow{window(0.625, 1)},
		}
		segs := Segments(w)
		require.Len(t, segs, 5)
		assertPoint(t, segs[2].Start, segs[2].End)
		assert.False(t, segs[2].Reversed)
		assertContinuous(t, segs, models.Pt(0, 0), models.Pt(4, 0))
	})

	t.Run("opening past the wall end flags a reversed filler", func(t *testing.T) {
		w := &models.Wall{X1: 0, Y1: 0, X2: 2, Y2: 0, Doors: []models.WallDoor{door(0.9, 1, false)}}
		Generate(w)
		require.Len(t, w.Segments, 3)
		assert.True(t, w.Segments[2].Reversed)
		assert.False(t, w.Segments[0].Reversed)
		assert.True(t, w.Degenerate())
	})

	t.Run("segments run in ascending x regardless of wall direction", func(t *testing.T) {
		w := &models.Wall{X1: 6, Y1: 3, X2: 0, Y2: 0, Windows: []models.WallWindow{window(0.5, 1)}}
		segs := Segments(w)
		require.Len(t, segs, 3)
		assertContinuous(t, segs, models.Pt(0, 0), models.Pt(6, 3))
		assert.Less(t, segs[1].Start.X, segs[1].End.X)
	})

	t.Run("vertical walls are ordered by ascending y", func(t *testing.T) {
		w := &models.Wall{
			X1: 1, Y1: 10, X2: 1, Y2: 0,
			Windows: []models.WallWindow{window(0.2, 1), window(0.7, 1)},
		}
		segs := Segments(w)
		require.Len(t, segs, 5)
		assertContinuous(t, segs, models.Pt(1, 0), models.Pt(1, 10))
		assert.Equal(t, 1, segs[1].ListIndex)
		assert.Equal(t, 0, segs[3].ListIndex)
		for _, s := range segs {
			assert.False(t, s.Reversed)
		}
	})
}

func Test_Segments_Should_Not_Depend_On_Endpoint_Order(t *testing.T) {
	forward := &models.Wall{
		X1: 1, Y1: 2, X2: 9, Y2: 6,
		Doors:   []models.WallDoor{door(0.7, 0.9, false)},
		Windows: []models.WallWindow{window(0.3, 1.2)},
	}
	// Same wall described from the other end: positions mirror and the door
	// hinge side flips so the openings stay in place.
	backward := &models.Wall{
		X1: 9, Y1: 6, X2: 1, Y2: 2,
		Doors:   []models.WallDoor{door(0.3, 0.9, true)},
		Windows: []models.WallWindow{window(0.7, 1.2)},
	}

	a := Segments(forward)
	b := Segments(backward)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Type, b[i].Type)
		assertPoint(t, a[i].Start, b[i].Start)
		assertPoint(t, a[i].End, b[i].End)
	}

	plain := Segments(&models.Wall{X1: 1, Y1: 2, X2: 9, Y2: 6})
	swapped := Segments(&models.Wall{X1: 9, Y1: 6, X2: 1, Y2: 2})
	assert.Equal(t, plain[0].Start, swapped[0].End)
	assert.Equal(t, plain[0].End, swapped[0].Start)
}
