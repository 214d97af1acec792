package mapper

import (
	"fmt"
	"math"

	"indoor-map/internal/indoor/graph"
	"indoor-map/internal/indoor/models"
	"indoor-map/internal/indoor/parser"
)

// ============================================================
// Scene listener
// ============================================================

const centimeters = 100.0

// SceneListener builds a react-planner scene with one layer per accepted
// floor. Walls become lines, doors and windows become holes on them and the
// add polygons of the outline become areas. Scene units are centimeters.
type SceneListener struct {
	parser.NopListener

	scene   *models.Scene
	builder *graph.Builder
	holes   map[string]models.Hole
	polys   []models.Polygon2D
	holeID  int
	layers  int
}

func NewSceneListener() *SceneListener {
	return &SceneListener{builder: newSceneBuilder()}
}

// Scene returns the finished scene, or nil before a map was read.
func (l *SceneListener) Scene() *models.Scene {
	return l.scene
}

func (l *SceneListener) EnterMap(m *models.Map) {
	l.layers = 0
	l.scene = &models.Scene{
		Unit:          "cm",
		Layers:        map[string]models.Layer{},
		SelectedLayer: "",
		Grids:         defaultGrids(),
		Groups:        map[string]any{},
		Width:         m.Width * centimeters,
		Height:        m.Depth * centimeters,
		Meta:          map[string]any{},
		Guides:        defaultGuides(),
	}
}

func (l *SceneListener) EnterFloor(*models.Floor) bool {
	l.builder.Reset()
	l.holes = make(map[string]models.Hole)
	l.polys = nil
	l.holeID = 0
	return true
}

func (l *SceneListener) LeaveOutline(o *models.Outline) {
	l.polys = o.Polygons
}

func (l *SceneListener) LeaveWall(wall *models.Wall) {
	lineID := l.builder.AddLine(
		fmt.Sprintf("%s wall", wall.Material),
		wall.Start(), wall.End(),
		graph.WallProperties(wall.Height*centimeters, wall.Thickness*centimeters),
	)
	if lineID == "" {
		return
	}

	length := wall.Length()
	for _, seg := range wall.Segments {
		if seg.Type == models.SegmentWall || seg.ListIndex < 0 {
			continue
		}
		if seg.Type == models.SegmentDoor && seg.ListIndex >= len(wall.Doors) ||
			seg.Type == models.SegmentWindow && seg.ListIndex >= len(wall.Windows) {
			continue
		}
		center := seg.Start.Add(seg.End).Scale(0.5)
		offset := clamp(center.Sub(wall.Start()).Length()/length, 0, 1)

		l.holeID++
		hole := models.Hole{
			SceneElement: models.SceneElement{ID: fmt.Sprintf("h%d", l.holeID), Prototype: "holes"},
			Offset:       offset,
			Line:         lineID,
		}
		width := seg.End.Sub(seg.Start).Length() * centimeters
		thickness := wall.Thickness * centimeters

		switch seg.Type {
		case models.SegmentDoor:
			door := wall.Doors[seg.ListIndex]
			hole.Name = fmt.Sprintf("%s door", door.Type)
			hole.Type = "door"
			hole.Properties = holeProperties(width, door.Height*centimeters, 0, thickness)
			hole.Properties["flip_orizzontal"] = door.LeftRight
		case models.SegmentWindow:
			window := wall.Windows[seg.ListIndex]
			hole.Name = "window"
			hole.Type = "window"
			hole.Properties = holeProperties(width, window.Height*centimeters, window.AtHeight*centimeters, thickness)
		}

		l.holes[hole.ID] = hole
		l.builder.AttachHoleToLine(lineID, hole.ID)
	}
}

func (l *SceneListener) LeaveFloor(floor *models.Floor) {
	var pending []models.Area
	for i, p := range l.polys {
		if p.Method != models.PolygonAdd || len(p.Points) < 3 {
			continue
		}
		id := fmt.Sprintf("a%d", i+1)
		pending = append(pending, models.Area{
			SceneElement: models.NewSceneElement(id, p.Name, "area"),
			Vertices:     l.builder.AddAreaVertices(p.Points, id),
			Holes:        []string{},
			Properties:   defaultAreaProperties(p.Outdoor),
		})
	}

	rep := l.builder.MergeCloseVertices()
	lines := l.builder.Lines()

	holes := make(map[string]models.Hole, len(l.holes))
	for id, h := range l.holes {
		if _, ok := lines[h.Line]; ok {
			holes[id] = h
		}
	}

	areas := make(map[string]models.Area, len(pending))
	for _, area := range pending {
		area.Vertices = remapRing(area.Vertices, rep)
		if len(area.Vertices) >= 3 {
			areas[area.ID] = area
		}
	}

	l.layers++
	id := fmt.Sprintf("layer-%d", l.layers)
	l.scene.Layers[id] = models.Layer{
		ID:       id,
		Altitude: floor.AtHeight * centimeters,
		Order:    l.layers - 1,
		Opacity:  1,
		Name:     floor.Name,
		Visible:  true,
		Vertices: l.builder.Vertices(),
		Lines:    lines,
		Holes:    holes,
		Areas:    areas,
		Items:    map[string]any{},
		Selected: models.ElementsSet{Vertices: []string{}, Lines: []string{}, Holes: []string{}, Areas: []string{}, Items: []string{}},
	}
	if l.scene.SelectedLayer == "" {
		l.scene.SelectedLayer = id
	}

	// The layer keeps the builder's maps.
	l.builder = newSceneBuilder()
}

func newSceneBuilder() *graph.Builder {
	b := graph.NewBuilder()
	b.SetTransform(func(p models.Point2D) models.Point2D { return p.Scale(centimeters) })
	return b
}

// remapRing replaces merged vertex ids and drops consecutive duplicates,
// including a closing duplicate of the first vertex.
func remapRing(ids []string, rep map[string]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if r, ok := rep[id]; ok {
			id = r
		}
		if len(out) > 0 && out[len(out)-1] == id {
			continue
		}
		out = append(out, id)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// ============================================================
// Defaults
// ============================================================

func holeProperties(width, height, altitude, thickness float64) map[string]any {
	return map[string]any{
		"width":     models.LengthValue{Length: width},
		"height":    models.LengthValue{Length: height},
		"altitude":  models.LengthValue{Length: altitude},
		"thickness": models.LengthValue{Length: thickness},
	}
}

func defaultAreaProperties(outdoor bool) map[string]any {
	color := "#F5F5F5"
	if outdoor {
		color = hexColor(colorOutdoor)
	}
	return map[string]any{
		"patternColor": color,
		"thickness":    models.LengthValue{Length: 0},
	}
}

func defaultGrids() map[string]models.Grid {
	return map[string]models.Grid{
		"h1": {
			ID:   "h1",
			Type: "horizontal-streak",
			Properties: map[string]any{
				"step":   20,
				"colors": []string{"#808080", "#ddd", "#ddd", "#ddd", "#ddd"},
			},
		},
		"v1": {
			ID:   "v1",
			Type: "vertical-streak",
			Properties: map[string]any{
				"step":   20,
				"colors": []string{"#808080", "#ddd", "#ddd", "#ddd", "#ddd"},
			},
		},
	}
}

func defaultGuides() models.Guides {
	return models.Guides{
		Horizontal: map[string]any{},
		Vertical:   map[string]any{},
		Circular:   map[string]any{},
	}
}
