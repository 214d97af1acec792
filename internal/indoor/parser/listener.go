package parser

import "indoor-map/internal/indoor/models"

// ============================================================
// Listener
// ============================================================

// Listener observes the parser. Enter hooks run after the element's
// attributes are read and before its children are processed; leave hooks
// run once the entity is complete and before it is appended to its parent.
// Both receive the entity being built, so a listener may change it.
//
// Enter hooks returning bool can veto: false drops the entity with its whole
// subtree and skips its leave hook. Sensor and point lists are reported as a
// whole through pointers to the floor's slices.
type Listener interface {
	EnterMap(m *models.Map)
	LeaveMap(m *models.Map)

	EnterEarthRegistration(reg *models.EarthRegistration)
	LeaveEarthRegistration(reg *models.EarthRegistration)

	EnterEarthPosMapPos(pos *models.EarthPosMapPos)
	LeaveEarthPosMapPos(pos *models.EarthPosMapPos)

	EnterFloor(floor *models.Floor) bool
	LeaveFloor(floor *models.Floor)

	EnterOutline(outline *models.Outline) bool
	LeaveOutline(outline *models.Outline)

	EnterWalls(walls *[]models.Wall)
	LeaveWalls(walls *[]models.Wall)

	EnterWall(wall *models.Wall) bool
	LeaveWall(wall *models.Wall)

	EnterWallDoor(door *models.WallDoor) bool
	LeaveWallDoor(door *models.WallDoor)

	EnterWallWindow(window *models.WallWindow) bool
	LeaveWallWindow(window *models.WallWindow)

	EnterPointOfInterests(pois *[]models.PointOfInterest)
	LeavePointOfInterests(pois *[]models.PointOfInterest)

	EnterGroundtruthPoints(points *[]models.GroundtruthPoint)
	LeaveGroundtruthPoints(points *[]models.GroundtruthPoint)

	EnterAccessPoints(aps *[]models.AccessPoint)
	LeaveAccessPoints(aps *[]models.AccessPoint)

	EnterBeacons(beacons *[]models.Beacon)
	LeaveBeacons(beacons *[]models.Beacon)

	EnterFingerprintLocations(locations *[]models.FingerprintLocation)
	LeaveFingerprintLocations(locations *[]models.FingerprintLocation)
}

// NopListener accepts everything and does nothing. Embed it to implement
// only the hooks you need.
type NopListener struct{}

var _ Listener = NopListener{}

func (NopListener) EnterMap(*models.Map) {}
func (NopListener) LeaveMap(*models.Map) {}

func (NopListener) EnterEarthRegistration(*models.EarthRegistration) {}
func (NopListener) LeaveEarthRegistration(*models.EarthRegistration) {}

func (NopListener) EnterEarthPosMapPos(*models.EarthPosMapPos) {}
func (NopListener) LeaveEarthPosMapPos(*models.EarthPosMapPos) {}

func (NopListener) EnterFloor(*models.Floor) bool { return true }
func (NopListener) LeaveFloor(*models.Floor)      {}

func (NopListener) EnterOutline(*models.Outline) bool { return true }
func (NopListener) LeaveOutline(*models.Outline)      {}

func (NopListener) EnterWalls(*[]models.Wall) {}
func (NopListener) LeaveWalls(*[]models.Wall) {}

func (NopListener) EnterWall(*models.Wall) bool { return true }
func (NopListener) LeaveWall(*models.Wall)      {}

func (NopListener) EnterWallDoor(*models.WallDoor) bool { return true }
func (NopListener) LeaveWallDoor(*models.WallDoor)      {}

func (NopListener) EnterWallWindow(*models.WallWindow) bool { return true }
func (NopListener) LeaveWallWindow(*models.WallWindow)      {}

func (NopListener) EnterPointOfInterests(*[]models.PointOfInterest) {}
func (NopListener) LeavePointOfInterests(*[]models.PointOfInterest) {}

func (NopListener) EnterGroundtruthPoints(*[]models.GroundtruthPoint) {}
func (NopListener) LeaveGroundtruthPoints(*[]models.GroundtruthPoint) {}

func (NopListener) EnterAccessPoints(*[]models.AccessPoint) {}
func (NopListener) LeaveAccessPoints(*[]models.AccessPoint) {}

func (NopListener) EnterBeacons(*[]models.Beacon) {}
func (NopListener) LeaveBeacons(*[]models.Beacon) {}

func (NopListener) EnterFingerprintLocations(*[]models.FingerprintLocation) {}
func (NopListener) LeaveFingerprintLocations(*[]models.FingerprintLocation) {}

// ============================================================
// Model collector
// ============================================================

// MapListener keeps the finished map.
type MapListener struct {
	NopListener
	Map *models.Map
}

func (l *MapListener) LeaveMap(m *models.Map) {
	l.Map = m
}

// ============================================================
// Composition
// ============================================================

// MultiListener forwards every hook to its listeners in order. The first
// veto stops the chain: later listeners do not see the vetoed entity and
// earlier ones get no leave call for it.
type MultiListener []Listener

var _ Listener = MultiListener(nil)

func (ls MultiListener) EnterMap(m *models.Map) {
	for _, l := range ls {
		l.EnterMap(m)
	}
}

func (ls MultiListener) LeaveMap(m *models.Map) {
	for _, l := range ls {
		l.LeaveMap(m)
	}
}

func (ls MultiListener) EnterEarthRegistration(reg *models.EarthRegistration) {
	for _, l := range ls {
		l.EnterEarthRegistration(reg)
	}
}

func (ls MultiListener) LeaveEarthRegistration(reg *models.EarthRegistration) {
	for _, l := range ls {
		l.LeaveEarthRegistration(reg)
	}
}

func (ls MultiListener) EnterEarthPosMapPos(pos *models.EarthPosMapPos) {
	for _, l := range ls {
		l.EnterEarthPosMapPos(pos)
	}
}

func (ls MultiListener) LeaveEarthPosMapPos(pos *models.EarthPosMapPos) {
	for _, l := range ls {
		l.LeaveEarthPosMapPos(pos)
	}
}

func (ls MultiListener) EnterFloor(floor *models.Floor) bool {
	for _, l := range ls {
		if !l.EnterFloor(floor) {
			return false
		}
	}
	return true
}

func (ls MultiListener) LeaveFloor(floor *models.Floor) {
	for _, l := range ls {
		l.LeaveFloor(floor)
	}
}

func (ls MultiListener) EnterOutline(outline *models.Outline) bool {
	for _, l := range ls {
		if !l.EnterOutline(outline) {
			return false
		}
	}
	return true
}

func (ls MultiListener) LeaveOutline(outline *models.Outline) {
	for _, l := range ls {
		l.LeaveOutline(outline)
	}
}

func (ls MultiListener) EnterWalls(walls *[]models.Wall) {
	for _, l := range ls {
		l.EnterWalls(walls)
	}
}

func (ls MultiListener) LeaveWalls(walls *[]models.Wall) {
	for _, l := range ls {
		l.LeaveWalls(walls)
	}
}

func (ls MultiListener) EnterWall(wall *models.Wall) bool {
	for _, l := range ls {
		if !l.EnterWall(wall) {
			return false
		}
	}
	return true
}

func (ls MultiListener) LeaveWall(wall *models.Wall) {
	for _, l := range ls {
		l.LeaveWall(wall)
	}
}

func (ls MultiListener) EnterWallDoor(door *models.WallDoor) bool {
	for _, l := range ls {
		if !l.EnterWallDoor(door) {
			return false
		}
	}
	return true
}

func (ls MultiListener) LeaveWallDoor(door *models.WallDoor) {
	for _, l := range ls {
		l.LeaveWallDoor(door)
	}
}

func (ls MultiListener) EnterWallWindow(window *models.WallWindow) bool {
	for _, l := range ls {
		if !l.EnterWallWindow(window) {
			return false
		}
	}
	return true
}

func (ls MultiListener) LeaveWallWindow(window *models.WallWindow) {
	for _, l := range ls {
		l.LeaveWallWindow(window)
	}
}

func (ls MultiListener) EnterPointOfInterests(pois *[]models.PointOfInterest) {
	for _, l := range ls {
		l.EnterPointOfInterests(pois)
	}
}

func (ls MultiListener) LeavePointOfInterests(pois *[]models.PointOfInterest) {
	for _, l := range ls {
		l.LeavePointOfInterests(pois)
	}
}

func (ls MultiListener) EnterGroundtruthPoints(points *[]models.GroundtruthPoint) {
	for _, l := range ls {
		l.EnterGroundtruthPoints(points)
	}
}

func (ls MultiListener) LeaveGroundtruthPoints(points *[]models.GroundtruthPoint) {
	for _, l := range ls {
		l.LeaveGroundtruthPoints(points)
	}
}

func (ls MultiListener) EnterAccessPoints(aps *[]models.AccessPoint) {
	for _, l := range ls {
		l.EnterAccessPoints(aps)
	}
}

func (ls MultiListener) LeaveAccessPoints(aps *[]models.AccessPoint) {
	for _, l := range ls {
		l.LeaveAccessPoints(aps)
	}
}

func (ls MultiListener) EnterBeacons(beacons *[]models.Beacon) {
	for _, l := range ls {
		l.EnterBeacons(beacons)
	}
}

func (ls MultiListener) LeaveBeacons(beacons *[]models.Beacon) {
	for _, l := range ls {
		l.LeaveBeacons(beacons)
	}
}

func (ls MultiListener) EnterFingerprintLocations(locations *[]models.FingerprintLocation) {
	for _, l := range ls {
		l.EnterFingerprintLocations(locations)
	}
}

func (ls MultiListener) LeaveFingerprintLocations(locations *[]models.FingerprintLocation) {
	for _, l := range ls {
		l.LeaveFingerprintLocations(locations)
	}
}

// ============================================================
// Floor filter
// ============================================================

// FloorFilter vetoes every floor whose name is not listed. An empty filter
// accepts all floors.
type FloorFilter struct {
	NopListener
	Names []string
}

func (f FloorFilter) EnterFloor(floor *models.Floor) bool {
	if len(f.Names) == 0 {
		return true
	}
	for _, name := range f.Names {
		if name == floor.Name {
			return true
		}
	}
	return false
}
