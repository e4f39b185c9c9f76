package psm

import (
	"fmt"
	"math"
)

// Point3 is a position or direction in 3-space.
type Point3 struct {
	X, Y, Z float64
}

func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

func (p Point3) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

func (p Point3) Distance(q Point3) float64 {
	return p.Sub(q).Length()
}

// Normalize returns p scaled to unit length, or the zero vector if p has no length.
func (p Point3) Normalize() Point3 {
	L := p.Length()
	if L == 0 {
		return Point3{}
	}
	return p.Scale(1 / L)
}

func (p Point3) String() string {
	return fmt.Sprintf("(%v,%v,%v)", p.X, p.Y, p.Z)
}
