package common

import "math"

// Vec3 is a point or displacement in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LenXZ is the horizontal length, ignoring Y.
func (v Vec3) LenXZ() float64 {
	return math.Hypot(v.X, v.Z)
}

// DistXZ is the horizontal distance between two points.
func DistXZ(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}
