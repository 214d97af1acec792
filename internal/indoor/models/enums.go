package models

import "fmt"

// ============================================================
// Enumerations
// ============================================================
//
// The map format stores enumerations as small non-negative ordinals. The
// ordinal order below is part of the format and must not change.

type PolygonMethod int

const (
	PolygonAdd PolygonMethod = iota
	PolygonRemove
	polygonMethodCount
)

func (m PolygonMethod) Valid() bool { return m >= 0 && m < polygonMethodCount }

func (m PolygonMethod) String() string {
	switch m {
	case PolygonAdd:
		return "add"
	case PolygonRemove:
		return "remove"
	}
	return "invalid"
}

type POIType int

const (
	POIRoom POIType = iota
	poiTypeCount
)

func (t POIType) Valid() bool { return t >= 0 && t < poiTypeCount }

func (t POIType) String() string {
	if t == POIRoom {
		return "room"
	}
	return "invalid"
}

type WallMaterial int

const (
	MaterialUnknown WallMaterial = iota
	MaterialConcrete
	MaterialWood
	MaterialDrywall
	MaterialGlass
	MaterialMetal
	MaterialMetalizedGlass
	wallMaterialCount
)

var wallMaterialNames = [...]string{"unknown", "concrete", "wood", "drywall", "glass", "metal", "metalized_glass"}

func (m WallMaterial) Valid() bool { return m >= 0 && m < wallMaterialCount }

func (m WallMaterial) String() string {
	if !m.Valid() {
		return "invalid"
	}
	return wallMaterialNames[m]
}

type DoorType int

const (
	DoorUnknown DoorType = iota
	DoorSwing
	DoorDoubleSwing
	DoorSlide
	DoorDoubleSlide
	DoorRevolving
	doorTypeCount
)

var doorTypeNames = [...]string{"unknown", "swing", "double_swing", "slide", "double_slide", "revolving"}

func (t DoorType) Valid() bool { return t >= 0 && t < doorTypeCount }

func (t DoorType) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return doorTypeNames[t]
}

type ObstacleType int

const (
	ObstacleUnknown ObstacleType = iota
	ObstacleWall
	ObstacleWindow
	ObstacleHandrail
	ObstaclePillar
	obstacleTypeCount
)

var obstacleTypeNames = [...]string{"unknown", "wall", "window", "handrail", "pillar"}

func (t ObstacleType) Valid() bool { return t >= 0 && t < obstacleTypeCount }

func (t ObstacleType) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return obstacleTypeNames[t]
}

type WallSegmentType int

const (
	SegmentWall WallSegmentType = iota
	SegmentDoor
	SegmentWindow
)

func (t WallSegmentType) String() string {
	switch t {
	case SegmentWall:
		return "wall"
	case SegmentDoor:
		return "door"
	case SegmentWindow:
		return "window"
	}
	return "invalid"
}

func (t WallSegmentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *WallSegmentType) UnmarshalText(text []byte) error {
	for _, v := range []WallSegmentType{SegmentWall, SegmentDoor, SegmentWindow} {
		if v.String() == string(text) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown wall segment type %q", text)
}
