package armature

import (
	"strconv"

	"github.com/solarlune/armature/math32"
)

// Vector3 represents a 3D position or direction. Vector3 functions that modify the calling Vector3 return copies of the modified
// Vector3, so method-chaining works as you'd expect.
type Vector3 struct {
	X float32 // The X (1st) component of the Vector3
	Y float32 // The Y (2nd) component of the Vector3
	Z float32 // The Z (3rd) component of the Vector3
}

// Sub returns a copy of the calling Vector3, with the other Vector3 subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Magnitude returns the length of the Vector3.
func (vec Vector3) Magnitude() float32 {
	return math32.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// Unit returns a copy of the Vector3, normalized (set to be of unit length).
// A zero-length Vector3 is returned unchanged.
func (vec Vector3) Unit() Vector3 {
	l := vec.Magnitude()
	if l < 1e-8 || l == 1 {
		return vec
	}
	return Vector3{X: vec.X / l, Y: vec.Y / l, Z: vec.Z / l}
}

// Equals returns true if the two Vector3s are close enough in all values (within 0.0001).
func (vec Vector3) Equals(other Vector3) bool {
	eps := float32(0.0001)
	return math32.Abs(vec.X-other.X) <= eps &&
		math32.Abs(vec.Y-other.Y) <= eps &&
		math32.Abs(vec.Z-other.Z) <= eps
}

// IsZero returns true if all three components are exactly 0.
func (vec Vector3) IsZero() bool {
	return vec.X == 0 && vec.Y == 0 && vec.Z == 0
}

func (vec Vector3) String() string {
	return "{" +
		strconv.FormatFloat(float64(vec.X), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(vec.Y), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(vec.Z), 'f', -1, 32) + "}"
}

// Vector4 is a 4D vector, used for matrix rows.
type Vector4 struct {
	X, Y, Z, W float32
}

// Vector3 returns the first three components of the Vector4.
func (vec Vector4) Vector3() Vector3 {
	return Vector3{X: vec.X, Y: vec.Y, Z: vec.Z}
}

// Magnitude returns the length of the Vector4's first three components; W is ignored.
func (vec Vector4) Magnitude() float32 {
	return vec.Vector3().Magnitude()
}

// Unit returns a copy of the Vector4 with its first three components normalized; W is kept as-is.
func (vec Vector4) Unit() Vector4 {
	u := vec.Vector3().Unit()
	return Vector4{X: u.X, Y: u.Y, Z: u.Z, W: vec.W}
}
