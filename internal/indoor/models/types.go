package models

// ============================================================
// Outline
// ============================================================

// Polygon2D is one part of a floor outline. Remove polygons cut holes into
// the walkable area formed by the Add polygons.
type Polygon2D struct {
	Name    string        `json:"name"`
	Method  PolygonMethod `json:"method"`
	Outdoor bool          `json:"outdoor"`
	Points  []Point2D     `json:"points"`
}

// Outline is the walkable ground of a floor.
type Outline struct {
	Polygons []Polygon2D `json:"polygons"`
}

// ============================================================
// Points & sensors
// ============================================================

type PointOfInterest struct {
	Name string  `json:"name"`
	Type POIType `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// GroundtruthPoint marks a turn of a recorded walk. Walks reference points by ID.
type GroundtruthPoint struct {
	ID               int     `json:"id"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Z                float64 `json:"z"`
	HeightAboveFloor float64 `json:"heightAboveFloor"`
}

// FingerprintLocation is a place where fingerprints were recorded, not the
// fingerprints themselves.
type FingerprintLocation struct {
	Name             string  `json:"name"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Z                float64 `json:"z"`
	HeightAboveFloor float64 `json:"heightAboveFloor"`
}

// AccessPoint is a WiFi transmitter. TXP, EXP and WAF are the log-distance
// model parameters: transmit power, path-loss exponent and attenuation per
// floor.
type AccessPoint struct {
	Name             string  `json:"name"`
	MAC              string  `json:"mac"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Z                float64 `json:"z"`
	HeightAboveFloor float64 `json:"heightAboveFloor"`
	TXP              float64 `json:"mdlTxp"`
	EXP              float64 `json:"mdlExp"`
	WAF              float64 `json:"mdlWaf"`
}

type Beacon struct {
	Name             string  `json:"name"`
	MAC              string  `json:"mac"`
	UUID             string  `json:"uuid"`
	Major            string  `json:"major"`
	Minor            string  `json:"minor"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Z                float64 `json:"z"`
	HeightAboveFloor float64 `json:"heightAboveFloor"`
	TXP              float64 `json:"mdlTxp"`
	EXP              float64 `json:"mdlExp"`
	WAF              float64 `json:"mdlWaf"`
}

// ============================================================
// Walls
// ============================================================

const DefaultWallThickness = 0.15

// NoListIndex is the ListIndex of Wall-type segments.
const NoListIndex = -1

// WallElement holds the fields shared by doors and windows.
type WallElement struct {
	Material WallMaterial `json:"material"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	// Position along the wall line, 0 at the wall start and 1 at its end.
	AtLinePos float64 `json:"atLinePos"`
}

type WallDoor struct {
	WallElement
	Type DoorType `json:"type"`
	// True if the hinge is on the right; the door then extends towards the wall start.
	LeftRight bool `json:"leftRight"`
	InOut     bool `json:"inOut"`
}

type WallWindow struct {
	WallElement
	// Vertical offset relative to the wall.
	AtHeight float64 `json:"atHeight"`
	InOut    bool    `json:"inOut"`
}

// WallSegment2D is a continuous piece of wall, door or window in absolute
// coordinates. ListIndex points into Wall.Doors or Wall.Windows and is
// NoListIndex for wall pieces.
type WallSegment2D struct {
	Type      WallSegmentType `json:"type"`
	ListIndex int             `json:"listIndex"`
	Start     Point2D         `json:"start"`
	End       Point2D         `json:"end"`
	// Set on wall pieces whose end lies before their start along the wall,
	// which happens when an opening sticks out of the wall or openings overlap.
	Reversed bool `json:"reversed,omitempty"`
}

// Wall is a line with thickness. Doors and windows are positioned relative
// to the line; Segments resolves them once all of them are known.
type Wall struct {
	Material  WallMaterial    `json:"material"`
	Type      ObstacleType    `json:"type"`
	X1        float64         `json:"x1"`
	Y1        float64         `json:"y1"`
	X2        float64         `json:"x2"`
	Y2        float64         `json:"y2"`
	Thickness float64         `json:"thickness"`
	Height    float64         `json:"height"`
	Doors     []WallDoor      `json:"doors"`
	Windows   []WallWindow    `json:"windows"`
	Segments  []WallSegment2D `json:"segments"`
}

func (w *Wall) Start() Point2D { return Point2D{X: w.X1, Y: w.Y1} }
func (w *Wall) End() Point2D   { return Point2D{X: w.X2, Y: w.Y2} }

func (w *Wall) Length() float64 {
	return w.End().Sub(w.Start()).Length()
}

// Degenerate reports whether segmentation produced a reversed piece.
func (w *Wall) Degenerate() bool {
	for _, s := range w.Segments {
		if s.Reversed {
			return true
		}
	}
	return false
}

// ============================================================
// Floor & map
// ============================================================

type Floor struct {
	// Z position of the ground.
	AtHeight float64 `json:"atHeight"`
	// Height of the floor; also the default height of its walls.
	Height float64 `json:"height"`
	Name   string  `json:"name"`

	Outline              Outline               `json:"outline"`
	Walls                []Wall                `json:"walls"`
	AccessPoints         []AccessPoint         `json:"accessPoints"`
	Beacons              []Beacon              `json:"beacons"`
	GroundtruthPoints    []GroundtruthPoint    `json:"groundtruthPoints"`
	FingerprintLocations []FingerprintLocation `json:"fingerprintLocations"`
	POIs                 []PointOfInterest     `json:"pois"`
}

func (f *Floor) GroundtruthPointByID(id int) (GroundtruthPoint, bool) {
	for _, gt := range f.GroundtruthPoints {
		if gt.ID == id {
			return gt, true
		}
	}
	return GroundtruthPoint{}, false
}

// EarthPosMapPos associates a WGS84 position with a map position.
type EarthPosMapPos struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
}

type EarthRegistration struct {
	Correspondences []EarthPosMapPos `json:"correspondences"`
}

// Map is the root of every map document. It owns everything below it.
type Map struct {
	Width             float64           `json:"width"`
	Depth             float64           `json:"depth"`
	EarthRegistration EarthRegistration `json:"earthRegistration"`
	Floors            []Floor           `json:"floors"`
}

func (m *Map) FloorByName(name string) (*Floor, bool) {
	for i := range m.Floors {
		if m.Floors[i].Name == name {
			return &m.Floors[i], true
		}
	}
	return nil, false
}
