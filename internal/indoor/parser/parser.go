// Package parser walks an indoor map document and builds the map model,
// reporting every stage to a Listener.
package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"indoor-map/internal/indoor/models"
	"indoor-map/internal/indoor/walls"
)

// ============================================================
// Parser
// ============================================================

// Parser reads one document at a time. It is not safe for concurrent use;
// create one per goroutine.
type Parser struct {
	listener Listener
	busy     bool
}

func New() *Parser {
	return &Parser{}
}

// ReadMap parses a document and returns the resulting map.
func (p *Parser) ReadMap(r io.Reader) (*models.Map, error) {
	collector := &MapListener{}
	if err := p.Read(r, collector); err != nil {
		return nil, err
	}
	return collector.Map, nil
}

func (p *Parser) ReadMapFromFile(path string) (*models.Map, error) {
	collector := &MapListener{}
	if err := p.ReadFromFile(path, collector); err != nil {
		return nil, err
	}
	return collector.Map, nil
}

func (p *Parser) ReadFromFile(path string, l Listener) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()
	return p.Read(f, l)
}

// Read tokenizes the document in r and walks it. Documents declaring a
// non UTF-8 encoding are transcoded first.
func (p *Parser) Read(r io.Reader, l Listener) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("%w: xml: %v", ErrMalformed, err)
	}
	return p.ReadDocument(doc, l)
}

// ReadDocument walks an already tokenized document rooted at <map>.
func (p *Parser) ReadDocument(doc *etree.Document, l Listener) error {
	root := doc.SelectElement("map")
	if root == nil {
		return malformed("root element <map> not found")
	}
	return p.Walk(root, l)
}

// Walk builds the map from the <map> element root. A nil listener behaves
// like NopListener.
func (p *Parser) Walk(root *etree.Element, l Listener) error {
	if p.busy {
		return ErrReentrant
	}
	if l == nil {
		l = NopListener{}
	}

	p.busy = true
	p.listener = l
	defer func() {
		p.busy = false
		p.listener = nil
	}()

	return p.processMap(root)
}

// ============================================================
// Map & earth registration
// ============================================================

func (p *Parser) processMap(xMap *etree.Element) error {
	m := &models.Map{}

	r := floatReader{el: xMap}
	m.Width = r.get("width")
	m.Depth = r.get("depth")
	if r.err != nil {
		return r.err
	}

	p.listener.EnterMap(m)

	if xEarthReg := xMap.SelectElement("earthReg"); xEarthReg != nil {
		reg, err := p.processEarthRegistration(xEarthReg)
		if err != nil {
			return err
		}
		m.EarthRegistration = reg
	}

	if xFloors := xMap.SelectElement("floors"); xFloors != nil {
		for _, xFloor := range xFloors.SelectElements("floor") {
			floor, ok, err := p.processFloor(xFloor)
			if err != nil {
				return fmt.Errorf("floor %q: %w", xFloor.SelectAttrValue("name", ""), err)
			}
			if ok {
				m.Floors = append(m.Floors, floor)
			}
		}
	}

	p.listener.LeaveMap(m)
	return nil
}

func (p *Parser) processEarthRegistration(xEarthReg *etree.Element) (models.EarthRegistration, error) {
	var reg models.EarthRegistration

	p.listener.EnterEarthRegistration(&reg)

	if xCorr := xEarthReg.SelectElement("correspondences"); xCorr != nil {
		for _, xPoint := range xCorr.SelectElements("point") {
			r := floatReader{el: xPoint}
			pos := models.EarthPosMapPos{
				Lat: r.get("lat"),
				Lon: r.get("lon"),
				Alt: r.get("alt"),
				X:   r.get("mx"),
				Y:   r.get("my"),
				Z:   r.get("mz"),
			}
			if r.err != nil {
				return reg, r.err
			}

			p.listener.EnterEarthPosMapPos(&pos)
			p.listener.LeaveEarthPosMapPos(&pos)
			reg.Correspondences = append(reg.Correspondences, pos)
		}
	}

	p.listener.LeaveEarthRegistration(&reg)
	return reg, nil
}

// ============================================================
// Floor
// ============================================================

// processFloor returns false when the listener vetoed the floor.
func (p *Parser) processFloor(xFloor *etree.Element) (models.Floor, bool, error) {
	var floor models.Floor

	r := floatReader{el: xFloor}
	floor.AtHeight = r.get("atHeight")
	floor.Height = r.get("height")
	if r.err != nil {
		return floor, false, r.err
	}
	floor.Name = strAttr(xFloor, "name", "")

	if !p.listener.EnterFloor(&floor) {
		return floor, false, nil
	}

	if xOutline := xFloor.SelectElement("outline"); xOutline != nil {
		outline, ok, err := p.processOutline(xOutline)
		if err != nil {
			return floor, false, err
		}
		if ok {
			floor.Outline = outline
		}
	}

	sections := []struct {
		tag     string
		process func(*etree.Element, *models.Floor) error
	}{
		{"obstacles", p.processObstacles},
		{"pois", p.processPointOfInterests},
		{"gtpoints", p.processGroundtruthPoints},
		{"accesspoints", p.processAccessPoints},
		{"beacons", p.processBeacons},
		{"fingerprints", p.processFingerprints},
	}
	for _, s := range sections {
		el := xFloor.SelectElement(s.tag)
		if el == nil {
			continue
		}
		if err := s.process(el, &floor); err != nil {
			return floor, false, err
		}
	}

	p.listener.LeaveFloor(&floor)
	return floor, true, nil
}

func (p *Parser) processOutline(xOutline *etree.Element) (models.Outline, bool, error) {
	var outline models.Outline

	if !p.listener.EnterOutline(&outline) {
		return outline, false, nil
	}

	for _, xPolygon := range xOutline.SelectElements("polygon") {
		method, err := enumAttr[models.PolygonMethod](xPolygon, "method")
		if err != nil {
			return outline, false, err
		}
		outdoor, err := boolAttr(xPolygon, "outdoor", false)
		if err != nil {
			return outline, false, err
		}

		polygon := models.Polygon2D{
			Name:    strAttr(xPolygon, "name", ""),
			Method:  method,
			Outdoor: outdoor,
		}
		for _, xPoint := range xPolygon.SelectElements("point") {
			r := floatReader{el: xPoint}
			pt := models.Pt(r.get("x"), r.get("y"))
			if r.err != nil {
				return outline, false, r.err
			}
			polygon.Points = append(polygon.Points, pt)
		}

		outline.Polygons = append(outline.Polygons, polygon)
	}

	p.listener.LeaveOutline(&outline)
	return outline, true, nil
}

// ============================================================
// Walls
// ============================================================

func (p *Parser) processObstacles(xObstacles *etree.Element, floor *models.Floor) error {
	// Only walls are modeled; lines, circles and objects are ignored.
	p.listener.EnterWalls(&floor.Walls)

	for i, xWall := range xObstacles.SelectElements("wall") {
		wall, ok, err := p.processWall(xWall, floor)
		if err != nil {
			return fmt.Errorf("wall %d: %w", i, err)
		}
		if ok {
			floor.Walls = append(floor.Walls, wall)
		}
	}

	p.listener.LeaveWalls(&floor.Walls)
	return nil
}

func (p *Parser) processWall(xWall *etree.Element, floor *models.Floor) (models.Wall, bool, error) {
	var wall models.Wall
	var err error

	if wall.Material, err = enumAttr[models.WallMaterial](xWall, "material"); err != nil {
		return wall, false, err
	}
	if wall.Type, err = enumAttr[models.ObstacleType](xWall, "type"); err != nil {
		return wall, false, err
	}

	r := floatReader{el: xWall}
	wall.X1 = r.get("x1")
	wall.Y1 = r.get("y1")
	wall.X2 = r.get("x2")
	wall.Y2 = r.get("y2")
	if r.err != nil {
		return wall, false, r.err
	}

	height, ok, err := optFloatAttr(xWall, "height")
	if err != nil {
		return wall, false, err
	}
	if !ok || height == 0 {
		height = floor.Height
	}
	wall.Height = height

	if wall.Thickness, err = floatAttr(xWall, "thickness", models.DefaultWallThickness); err != nil {
		return wall, false, err
	}

	if !p.listener.EnterWall(&wall) {
		return wall, false, nil
	}

	for _, xDoor := range xWall.SelectElements("door") {
		door, err := readDoor(xDoor)
		if err != nil {
			return wall, false, err
		}
		if p.listener.EnterWallDoor(&door) {
			p.listener.LeaveWallDoor(&door)
			wall.Doors = append(wall.Doors, door)
		}
	}

	for _, xWindow := range xWall.SelectElements("window") {
		window, err := readWindow(xWindow)
		if err != nil {
			return wall, false, err
		}
		if p.listener.EnterWallWindow(&window) {
			p.listener.LeaveWallWindow(&window)
			wall.Windows = append(wall.Windows, window)
		}
	}

	walls.Generate(&wall)

	p.listener.LeaveWall(&wall)
	return wall, true, nil
}

func readDoor(xDoor *etree.Element) (models.WallDoor, error) {
	var door models.WallDoor
	var err error

	if door.Type, err = enumAttr[models.DoorType](xDoor, "type"); err != nil {
		return door, err
	}
	if door.Material, err = enumAttr[models.WallMaterial](xDoor, "material"); err != nil {
		return door, err
	}

	r := floatReader{el: xDoor}
	door.AtLinePos = r.get("x01")
	door.Width = r.get("width")
	if r.err != nil {
		return door, r.err
	}

	// The format spells the door height "heigth".
	heightAttr := "heigth"
	if xDoor.SelectAttr(heightAttr) == nil {
		heightAttr = "height"
	}
	if door.Height, err = floatAttr(xDoor, heightAttr, 0); err != nil {
		return door, err
	}

	if door.LeftRight, err = boolAttr(xDoor, "lr", false); err != nil {
		return door, err
	}
	if door.InOut, err = boolAttr(xDoor, "io", false); err != nil {
		return door, err
	}
	return door, nil
}

func readWindow(xWindow *etree.Element) (models.WallWindow, error) {
	var window models.WallWindow
	var err error

	if window.Material, err = enumAttr[models.WallMaterial](xWindow, "material"); err != nil {
		return window, err
	}

	r := floatReader{el: xWindow}
	window.AtLinePos = r.get("x01")
	window.AtHeight = r.get("y")
	window.Width = r.get("width")
	window.Height = r.get("height")
	if r.err != nil {
		return window, r.err
	}

	if window.InOut, err = boolAttr(xWindow, "io", false); err != nil {
		return window, err
	}
	return window, nil
}

// ============================================================
// Points & sensors
// ============================================================

func (p *Parser) processPointOfInterests(xPois *etree.Element, floor *models.Floor) error {
	p.listener.EnterPointOfInterests(&floor.POIs)

	for _, xPoi := range xPois.SelectElements("poi") {
		typ, err := enumAttr[models.POIType](xPoi, "type")
		if err != nil {
			return err
		}
		r := floatReader{el: xPoi}
		poi := models.PointOfInterest{
			Name: strAttr(xPoi, "name", ""),
			Type: typ,
			X:    r.get("x"),
			Y:    r.get("y"),
		}
		if r.err != nil {
			return r.err
		}
		floor.POIs = append(floor.POIs, poi)
	}

	p.listener.LeavePointOfInterests(&floor.POIs)
	return nil
}

func (p *Parser) processGroundtruthPoints(xGT *etree.Element, floor *models.Floor) error {
	p.listener.EnterGroundtruthPoints(&floor.GroundtruthPoints)

	for _, xPoint := range xGT.SelectElements("gtpoint") {
		id, err := intAttr(xPoint, "id", 0)
		if err != nil {
			return err
		}
		r := floatReader{el: xPoint}
		gt := models.GroundtruthPoint{
			ID:               id,
			X:                r.get("x"),
			Y:                r.get("y"),
			HeightAboveFloor: r.get("z"),
		}
		if r.err != nil {
			return r.err
		}
		gt.Z = floor.AtHeight + gt.HeightAboveFloor
		floor.GroundtruthPoints = append(floor.GroundtruthPoints, gt)
	}

	p.listener.LeaveGroundtruthPoints(&floor.GroundtruthPoints)
	return nil
}

func (p *Parser) processAccessPoints(xAPs *etree.Element, floor *models.Floor) error {
	p.listener.EnterAccessPoints(&floor.AccessPoints)

	for _, xAP := range xAPs.SelectElements("accesspoint") {
		r := floatReader{el: xAP}
		ap := models.AccessPoint{
			Name:             strAttr(xAP, "name", ""),
			MAC:              strAttr(xAP, "mac", ""),
			X:                r.get("x"),
			Y:                r.get("y"),
			HeightAboveFloor: r.get("z"),
			TXP:              r.get("mdl_txp"),
			EXP:              r.get("mdl_exp"),
			WAF:              r.get("mdl_waf"),
		}
		if r.err != nil {
			return r.err
		}
		ap.Z = floor.AtHeight + ap.HeightAboveFloor
		floor.AccessPoints = append(floor.AccessPoints, ap)
	}

	p.listener.LeaveAccessPoints(&floor.AccessPoints)
	return nil
}

func (p *Parser) processBeacons(xBeacons *etree.Element, floor *models.Floor) error {
	p.listener.EnterBeacons(&floor.Beacons)

	for _, xBeacon := range xBeacons.SelectElements("beacon") {
		r := floatReader{el: xBeacon}
		b := models.Beacon{
			Name:             strAttr(xBeacon, "name", ""),
			MAC:              strAttr(xBeacon, "mac", ""),
			UUID:             strAttr(xBeacon, "uuid", ""),
			Major:            strAttr(xBeacon, "major", ""),
			Minor:            strAttr(xBeacon, "minor", ""),
			X:                r.get("x"),
			Y:                r.get("y"),
			HeightAboveFloor: r.get("z"),
			TXP:              r.get("mdl_txp"),
			EXP:              r.get("mdl_exp"),
			WAF:              r.get("mdl_waf"),
		}
		if r.err != nil {
			return r.err
		}
		b.Z = floor.AtHeight + b.HeightAboveFloor
		floor.Beacons = append(floor.Beacons, b)
	}

	p.listener.LeaveBeacons(&floor.Beacons)
	return nil
}

func (p *Parser) processFingerprints(xFingerprints *etree.Element, floor *models.Floor) error {
	p.listener.EnterFingerprintLocations(&floor.FingerprintLocations)

	for _, xLocation := range xFingerprints.SelectElements("location") {
		r := floatReader{el: xLocation}
		loc := models.FingerprintLocation{
			Name:             strAttr(xLocation, "name", ""),
			X:                r.get("x"),
			Y:                r.get("y"),
			HeightAboveFloor: r.get("dz"),
		}
		if r.err != nil {
			return r.err
		}
		loc.Z = floor.AtHeight + loc.HeightAboveFloor
		floor.FingerprintLocations = append(floor.FingerprintLocations, loc)
	}

	p.listener.LeaveFingerprintLocations(&floor.FingerprintLocations)
	return nil
}
