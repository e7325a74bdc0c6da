// Package math32 wraps the parts of the math package the armature types need so they can be called with float32s.
package math32

import "math"

const Pi = float32(math.Pi)

// ToRadians converts degrees to radians, which is what the rotation functions take.
func ToRadians(degrees float32) float32 {
	return Pi * degrees / 180
}

// ToDegrees converts radians to degrees for human readability.
func ToDegrees(radians float32) float32 {
	return 180 / Pi * radians
}

// Sqrt returns the square root of x.
//
// Special cases are:
//
//	Sqrt(+Inf) = +Inf
//	Sqrt(±0) = ±0
//	Sqrt(x < 0) = NaN
//	Sqrt(NaN) = NaN
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
