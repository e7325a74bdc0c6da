package armature

import "github.com/solarlune/armature/math32"

// Quaternion represents a rotation, stored in (x, y, z, w) order, where w is the scalar (as glTF stores it).
type Quaternion struct {
	X, Y, Z, W float32
}

// NewQuaternion creates a new Quaternion.
func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{x, y, z, w}
}

// Magnitude returns the length of the Quaternion.
func (quat Quaternion) Magnitude() float32 {
	return math32.Sqrt(quat.X*quat.X + quat.Y*quat.Y + quat.Z*quat.Z + quat.W*quat.W)
}

// Normalized returns a unit-length copy of the Quaternion. A zero Quaternion normalizes to the identity rotation.
func (quat Quaternion) Normalized() Quaternion {
	m := quat.Magnitude()
	if m == 0 {
		return Quaternion{W: 1}
	}
	return Quaternion{quat.X / m, quat.Y / m, quat.Z / m, quat.W / m}
}

// ToMatrix4 generates a rotation Matrix4 from the Quaternion, laid out the same way NewMatrix4Rotate lays out its rotation.
func (quat Quaternion) ToMatrix4() Matrix4 {

	q := quat.Normalized()

	x2, y2, z2 := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	mat := NewMatrix4()

	mat[0][0] = 1 - 2*(y2+z2)
	mat[0][1] = 2 * (xy + wz)
	mat[0][2] = 2 * (xz - wy)

	mat[1][0] = 2 * (xy - wz)
	mat[1][1] = 1 - 2*(x2+z2)
	mat[1][2] = 2 * (yz + wx)

	mat[2][0] = 2 * (xz + wy)
	mat[2][1] = 2 * (yz - wx)
	mat[2][2] = 1 - 2*(x2+y2)

	return mat

}
