package mapper

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"indoor-map/internal/indoor/models"
	"indoor-map/internal/indoor/outline"
	"indoor-map/internal/indoor/parser"
)

// ============================================================
// GeoJSON listener
// ============================================================

// Feature kinds, stored in the "kind" property.
const (
	KindOutline     = "outline"
	KindGroundtruth = "gtpoint"
	KindAccessPoint = "accesspoint"
	KindBeacon      = "beacon"
	KindFingerprint = "fingerprint"
	KindPOI         = "poi"
	// Wall segments use the segment type: "wall", "door" or "window".
)

// GeoJSONListener exports every accepted floor into one FeatureCollection in
// map coordinates (meters). Each feature names its floor in the "floor"
// property.
type GeoJSONListener struct {
	parser.NopListener

	fc      *geojson.FeatureCollection
	floor   string
	pending []*geojson.Feature
}

func NewGeoJSONListener() *GeoJSONListener {
	return &GeoJSONListener{fc: geojson.NewFeatureCollection()}
}

func (l *GeoJSONListener) FeatureCollection() *geojson.FeatureCollection {
	return l.fc
}

func (l *GeoJSONListener) MarshalJSON() ([]byte, error) {
	return l.fc.MarshalJSON()
}

func (l *GeoJSONListener) EnterMap(*models.Map) {
	l.fc = geojson.NewFeatureCollection()
}

func (l *GeoJSONListener) EnterFloor(floor *models.Floor) bool {
	l.floor = floor.Name
	l.pending = l.pending[:0]
	return true
}

func (l *GeoJSONListener) LeaveFloor(*models.Floor) {
	for _, f := range l.pending {
		l.fc.Append(f)
	}
	l.pending = l.pending[:0]
}

func (l *GeoJSONListener) LeaveOutline(o *models.Outline) {
	for _, polygon := range o.Polygons {
		ring := outline.Ring(polygon)
		if ring == nil {
			continue
		}
		f := l.feature(orb.Polygon{ring}, KindOutline)
		f.Properties["name"] = polygon.Name
		f.Properties["method"] = polygon.Method.String()
		f.Properties["outdoor"] = polygon.Outdoor
	}
}

func (l *GeoJSONListener) LeaveWall(wall *models.Wall) {
	for _, seg := range wall.Segments {
		f := l.feature(orb.LineString{point(seg.Start), point(seg.End)}, seg.Type.String())
		f.Properties["material"] = wall.Material.String()
		f.Properties["thickness"] = wall.Thickness
		f.Properties["height"] = wall.Height

		switch seg.Type {
		case models.SegmentDoor:
			if seg.ListIndex >= 0 && seg.ListIndex < len(wall.Doors) {
				door := wall.Doors[seg.ListIndex]
				f.Properties["material"] = door.Material.String()
				f.Properties["doorType"] = door.Type.String()
				f.Properties["height"] = door.Height
			}
		case models.SegmentWindow:
			if seg.ListIndex >= 0 && seg.ListIndex < len(wall.Windows) {
				window := wall.Windows[seg.ListIndex]
				f.Properties["material"] = window.Material.String()
				f.Properties["height"] = window.Height
				f.Properties["atHeight"] = window.AtHeight
			}
		}
		if seg.Reversed {
			f.Properties["reversed"] = true
		}
	}
}

func (l *GeoJSONListener) LeaveGroundtruthPoints(points *[]models.GroundtruthPoint) {
	for _, gt := range *points {
		f := l.feature(orb.Point{gt.X, gt.Y}, KindGroundtruth)
		f.Properties["id"] = gt.ID
		f.Properties["z"] = gt.Z
	}
}

func (l *GeoJSONListener) LeaveAccessPoints(aps *[]models.AccessPoint) {
	for _, ap := range *aps {
		f := l.feature(orb.Point{ap.X, ap.Y}, KindAccessPoint)
		f.Properties["name"] = ap.Name
		f.Properties["mac"] = ap.MAC
		f.Properties["z"] = ap.Z
	}
}

func (l *GeoJSONListener) LeaveBeacons(beacons *[]models.Beacon) {
	for _, b := range *beacons {
		f := l.feature(orb.Point{b.X, b.Y}, KindBeacon)
		f.Properties["name"] = b.Name
		f.Properties["mac"] = b.MAC
		f.Properties["uuid"] = b.UUID
		f.Properties["major"] = b.Major
		f.Properties["minor"] = b.Minor
		f.Properties["z"] = b.Z
	}
}

func (l *GeoJSONListener) LeaveFingerprintLocations(locations *[]models.FingerprintLocation) {
	for _, loc := range *locations {
		f := l.feature(orb.Point{loc.X, loc.Y}, KindFingerprint)
		f.Properties["name"] = loc.Name
		f.Properties["z"] = loc.Z
	}
}

func (l *GeoJSONListener) LeavePointOfInterests(pois *[]models.PointOfInterest) {
	for _, poi := range *pois {
		f := l.feature(orb.Point{poi.X, poi.Y}, KindPOI)
		f.Properties["name"] = poi.Name
		f.Properties["type"] = poi.Type.String()
	}
}

func (l *GeoJSONListener) feature(g orb.Geometry, kind string) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.Properties["floor"] = l.floor
	f.Properties["kind"] = kind
	l.pending = append(l.pending, f)
	return f
}

func point(p models.Point2D) orb.Point {
	return orb.Point{p.X, p.Y}
}
