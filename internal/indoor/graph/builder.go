// Package graph joins wall lines into a react-planner vertex graph.
package graph

import (
	"fmt"
	"slices"

	"indoor-map/internal/indoor/models"
)

// ============================================================
// Graph Builder
// ============================================================

const tolerance = 2.0      // points closer than this share a vertex
const mergeTolerance = 5.0 // vertex radius collapsed by MergeCloseVertices

// Builder collects lines and area corners in scene units and shares vertices
// between them. Vertex and line ids are assigned in insertion order.
type Builder struct {
	vertices  map[string]models.Vertex
	lines     map[string]models.Line
	order     []string
	vertexID  int
	lineID    int
	transform func(models.Point2D) models.Point2D
}

func NewBuilder() *Builder {
	return &Builder{
		vertices:  make(map[string]models.Vertex),
		lines:     make(map[string]models.Line),
		transform: func(p models.Point2D) models.Point2D { return p },
	}
}

// SetTransform sets the mapping applied to every incoming point, e.g. meters
// to centimeters with a flipped y axis.
func (g *Builder) SetTransform(f func(models.Point2D) models.Point2D) {
	if f == nil {
		g.transform = func(p models.Point2D) models.Point2D { return p }
		return
	}
	g.transform = f
}

func (g *Builder) Reset() {
	g.vertices = make(map[string]models.Vertex)
	g.lines = make(map[string]models.Line)
	g.order = g.order[:0]
	g.vertexID = 0
	g.lineID = 0
}

// AddLine adds a wall line between p1 and p2 and returns its id. Lines whose
// ends fall onto the same vertex are dropped and yield "".
func (g *Builder) AddLine(name string, p1, p2 models.Point2D, properties map[string]any) string {
	v1ID := g.findOrCreateVertex(g.transform(p1))
	v2ID := g.findOrCreateVertex(g.transform(p2))
	if v1ID == v2ID {
		return ""
	}

	g.lineID++
	line := models.Line{
		SceneElement: models.NewSceneElement(fmt.Sprintf("l%d", g.lineID), name, "wall"),
		Vertices:     []string{v1ID, v2ID},
		Holes:        []string{},
		Properties:   properties,
	}
	g.lines[line.ID] = line
	g.attachLineToVertex(v1ID, line.ID)
	g.attachLineToVertex(v2ID, line.ID)
	return line.ID
}

func (g *Builder) AddAreaVertices(points []models.Point2D, areaID string) []string {
	var ids []string
	for _, p := range points {
		id := g.findOrCreateVertex(g.transform(p))
		vertex := g.vertices[id]
		if !slices.Contains(vertex.Areas, areaID) {
			vertex.Areas = append(vertex.Areas, areaID)
		}
		g.vertices[id] = vertex
		ids = append(ids, id)
	}
	return ids
}

func (g *Builder) AttachHoleToLine(lineID, holeID string) {
	line, ok := g.lines[lineID]
	if !ok {
		return
	}
	if !slices.Contains(line.Holes, holeID) {
		line.Holes = append(line.Holes, holeID)
	}
	g.lines[lineID] = line
}

func (g *Builder) Vertices() map[string]models.Vertex { return g.vertices }

func (g *Builder) Lines() map[string]models.Line { return g.lines }

func (g *Builder) findOrCreateVertex(p models.Point2D) string {
	for _, id := range g.order {
		v := g.vertices[id]
		if p.Distance(models.Pt(v.X, v.Y)) < tolerance {
			return id
		}
	}

	g.vertexID++
	id := fmt.Sprintf("v%d", g.vertexID)
	g.vertices[id] = models.Vertex{
		SceneElement: models.NewSceneElement(id, "Vertex", "vertex"),
		X:            p.X,
		Y:            p.Y,
		Lines:        []string{},
		Areas:        []string{},
	}
	g.order = append(g.order, id)
	return id
}

func (g *Builder) attachLineToVertex(vertexID, lineID string) {
	vertex := g.vertices[vertexID]
	if !slices.Contains(vertex.Lines, lineID) {
		vertex.Lines = append(vertex.Lines, lineID)
	}
	g.vertices[vertexID] = vertex
}

// ============================================================
// Vertex merging
// ============================================================

// MergeCloseVertices collapses vertices within mergeTolerance of an earlier
// vertex into it. Lines that collapse to a single vertex are removed. The
// returned map gives the surviving id for every previous vertex id.
func (g *Builder) MergeCloseVertices() map[string]string {
	if len(g.order) == 0 {
		return nil
	}

	rep := make(map[string]string, len(g.order))
	for i, id := range g.order {
		if _, ok := rep[id]; ok {
			continue
		}
		base := g.vertices[id]
		rep[id] = id

		for _, otherID := range g.order[i+1:] {
			if _, ok := rep[otherID]; ok {
				continue
			}
			other := g.vertices[otherID]
			if models.Pt(base.X, base.Y).Distance(models.Pt(other.X, other.Y)) <= mergeTolerance {
				rep[otherID] = id
				base.Areas = appendUnique(base.Areas, other.Areas...)
			}
		}
		g.vertices[id] = base
	}

	newLines := make(map[string]models.Line, len(g.lines))
	for id, line := range g.lines {
		v1, v2 := rep[line.Vertices[0]], rep[line.Vertices[1]]
		if v1 == v2 {
			continue
		}
		line.Vertices = []string{v1, v2}
		newLines[id] = line
	}

	newVertices := make(map[string]models.Vertex, len(g.vertices))
	order := g.order[:0]
	for _, id := range g.order {
		if rep[id] != id {
			continue
		}
		v := g.vertices[id]
		v.Lines = []string{}
		newVertices[id] = v
		order = append(order, id)
	}

	lineIDs := make([]string, 0, len(newLines))
	for id := range newLines {
		lineIDs = append(lineIDs, id)
	}
	slices.Sort(lineIDs)
	for _, lineID := range lineIDs {
		for _, vid := range newLines[lineID].Vertices {
			v := newVertices[vid]
			v.Lines = appendUnique(v.Lines, lineID)
			newVertices[vid] = v
		}
	}

	g.vertices = newVertices
	g.lines = newLines
	g.order = order
	return rep
}

// ============================================================
// Helpers
// ============================================================

func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

// WallProperties are the react-planner line properties of a wall, in scene units.
func WallProperties(height, thickness float64) map[string]any {
	return map[string]any{
		"height":    models.LengthValue{Length: height},
		"thickness": models.LengthValue{Length: thickness},
		"textureA":  "bricks",
		"textureB":  "bricks",
	}
}
