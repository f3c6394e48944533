package vmath

import "math"

// Vec3 is a float64 world-space vector for visual transforms
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Epsilon is the tolerance used by V3Equal
const Epsilon = 1e-9

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

// V3Equal compares within Epsilon per axis
func V3Equal(a, b Vec3) bool {
	return math.Abs(a.X-b.X) <= Epsilon &&
		math.Abs(a.Y-b.Y) <= Epsilon &&
		math.Abs(a.Z-b.Z) <= Epsilon
}

// V3Centroid returns the mean of points, zero vector for empty input
func V3Centroid(points []Vec3) Vec3 {
	if len(points) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, p := range points {
		sum = V3Add(sum, p)
	}
	return V3Scale(sum, 1/float64(len(points)))
}

// RingPositions places count points evenly on a circle in the XY plane
// First point sits at angle 0 (positive X); Z is taken from center
func RingPositions(center Vec3, radius float64, count int) []Vec3 {
	if count <= 0 {
		return nil
	}
	out := make([]Vec3, count)
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		a := step * float64(i)
		out[i] = Vec3{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
			Z: center.Z,
		}
	}
	return out
}
