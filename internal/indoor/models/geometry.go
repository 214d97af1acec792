package models

import (
	"fmt"
	"math"
)

// ============================================================
// Geometry primitives
// ============================================================

// Point2D is a planar vector in map coordinates (meters).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func (p Point2D) Add(o Point2D) Point2D { return Point2D{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point2D) Sub(o Point2D) Point2D { return Point2D{X: p.X - o.X, Y: p.Y - o.Y} }
func (p Point2D) Scale(v float64) Point2D { return Point2D{X: p.X * v, Y: p.Y * v} }
func (p Point2D) Div(v float64) Point2D { return Point2D{X: p.X / v, Y: p.Y / v} }
func (p Point2D) Dot(o Point2D) float64 { return p.X*o.X + p.Y*o.Y }

// Orthogonal rotates the vector by +90 degrees.
func (p Point2D) Orthogonal() Point2D { return Point2D{X: -p.Y, Y: p.X} }

func (p Point2D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalized returns the unit vector. The zero vector stays zero.
func (p Point2D) Normalized() Point2D {
	l := p.Length()
	if l == 0 {
		return Point2D{}
	}
	return p.Div(l)
}

func (p Point2D) Distance(o Point2D) float64 {
	return p.Sub(o).Length()
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%g; %g)", p.X, p.Y)
}

// FromPolar returns the point at radius and angle (radians) around center.
func FromPolar(center Point2D, radius, angle float64) Point2D {
	return Point2D{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// Arc returns the endpoints of the circular arc around center from startAngle to
// endAngle, and whether the arc spans more than half a turn.
func Arc(center Point2D, radius, startAngle, endAngle float64) (start, end Point2D, largeArc bool) {
	start = FromPolar(center, radius, startAngle)
	end = FromPolar(center, radius, endAngle)
	largeArc = endAngle-startAngle > math.Pi
	return start, end, largeArc
}
