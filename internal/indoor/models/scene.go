package models

// ============================================================
// React Planner scene
// ============================================================
//
// Export format of SceneListener. Lengths are centimeters.

type LengthValue struct {
	Length float64 `json:"length"`
}

type ElementsSet struct {
	Vertices []string `json:"vertices"`
	Lines    []string `json:"lines"`
	Holes    []string `json:"holes"`
	Areas    []string `json:"areas"`
	Items    []string `json:"items"`
}

// SceneElement holds the fields shared by every scene element. Prototype
// names the layer collection the element lives in.
type SceneElement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Prototype string `json:"prototype"`
}

var scenePrototypes = map[string]string{
	"vertex": "vertices",
	"wall":   "lines",
	"door":   "holes",
	"window": "holes",
	"area":   "areas",
}

// NewSceneElement fills Prototype from the element type.
func NewSceneElement(id, name, typ string) SceneElement {
	return SceneElement{ID: id, Name: name, Type: typ, Prototype: scenePrototypes[typ]}
}

type Vertex struct {
	SceneElement
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Lines    []string `json:"lines"`
	Areas    []string `json:"areas"`
	Selected bool     `json:"selected"`
}

// Line is a wall between two vertices.
type Line struct {
	SceneElement
	Vertices   []string       `json:"vertices"`
	Holes      []string       `json:"holes"`
	Properties map[string]any `json:"properties"`
}

// Hole is a door or window; Offset is its centre as a 0..1 fraction of the line.
type Hole struct {
	SceneElement
	Offset     float64        `json:"offset"`
	Line       string         `json:"line"`
	Properties map[string]any `json:"properties"`
}

type Area struct {
	SceneElement
	Vertices   []string       `json:"vertices"`
	Holes      []string       `json:"holes"`
	Properties map[string]any `json:"properties"`
}

type Grid struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

type Guides struct {
	Horizontal map[string]any `json:"horizontal"`
	Vertical   map[string]any `json:"vertical"`
	Circular   map[string]any `json:"circular"`
}

type Layer struct {
	ID       string            `json:"id"`
	Altitude float64           `json:"altitude"`
	Order    int               `json:"order"`
	Opacity  float64           `json:"opacity"`
	Name     string            `json:"name"`
	Visible  bool              `json:"visible"`
	Vertices map[string]Vertex `json:"vertices"`
	Lines    map[string]Line   `json:"lines"`
	Holes    map[string]Hole   `json:"holes"`
	Areas    map[string]Area   `json:"areas"`
	Items    map[string]any    `json:"items"`
	Selected ElementsSet       `json:"selected"`
}

type Scene struct {
	Unit          string           `json:"unit"`
	Layers        map[string]Layer `json:"layers"`
	SelectedLayer string           `json:"selectedLayer"`
	Grids         map[string]Grid  `json:"grids"`
	Groups        map[string]any   `json:"groups"`
	Width         float64          `json:"width"`
	Height        float64          `json:"height"`
	Meta          map[string]any   `json:"meta"`
	Guides        Guides           `json:"guides"`
}
