package armature

import "github.com/go-gl/mathgl/mgl32"

// ToMgl32 converts the Matrix4 to a mgl32.Mat4 for handing off to OpenGL-style renderers. mgl32 matrices are column-major and
// transform column vectors, which lays the same transform out in memory exactly as a row-major, row-vector Matrix4 does, so
// a.Mult(b) in armature corresponds to b.Mul4(a) in mgl32.
func (matrix Matrix4) ToMgl32() mgl32.Mat4 {
	return mgl32.Mat4(matrix.ToFloats())
}

// NewMatrix4FromMgl32 converts a mgl32.Mat4 into a Matrix4.
func NewMatrix4FromMgl32(mat mgl32.Mat4) Matrix4 {
	return NewMatrix4FromColumnMajor([16]float32(mat))
}

// Inverted returns the inverse of the Matrix4. A singular Matrix4 inverts to the zero matrix.
func (matrix Matrix4) Inverted() Matrix4 {
	return NewMatrix4FromMgl32(matrix.ToMgl32().Inv())
}

// WorldTransformsMgl32 returns the world transforms of all bones in the Skeleton as mgl32 matrices, in bone order.
func (skeleton *Skeleton) WorldTransformsMgl32() []mgl32.Mat4 {
	world := skeleton.WorldTransforms()
	out := make([]mgl32.Mat4, len(world))
	for i, w := range world {
		out[i] = w.ToMgl32()
	}
	return out
}

// InverseBindTransformsMgl32 returns InverseBindTransforms as mgl32 matrices, in bone order.
func (skeleton *Skeleton) InverseBindTransformsMgl32() []mgl32.Mat4 {
	inverse := skeleton.InverseBindTransforms()
	out := make([]mgl32.Mat4, len(inverse))
	for i, m := range inverse {
		out[i] = m.ToMgl32()
	}
	return out
}
