/*
Package splines implements the numerical core of piecewise cubic paths in 3D:
numeric predicates, vector helpers and affine transformations shared by the
sub-packages polyn (real polynomials and root finding), curve (single cubic
curves) and spline (ordered control points and their segments).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package splines

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'splines'
func tracer() tracing.Trace {
	return tracing.Select("splines")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// Clamp01 clamps t to [0,1].
func Clamp01(t float64) float64 {
	return mgl64.Clamp(t, 0, 1)
}

// Lerp interpolates between a and b, with t clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// InverseLerp returns the fraction of v between a and b, clamped to [0,1].
// For a = b it returns 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// Repeat wraps t into [0,length).
func Repeat(t, length float64) float64 {
	return mgl64.Clamp(t-math.Floor(t/length)*length, 0, length)
}

// LerpAngle interpolates between two angles (radians), taking the shorter
// way around the circle.
func LerpAngle(a, b, t float64) float64 {
	delta := Repeat(b-a, 2*math.Pi)
	if delta > math.Pi {
		delta -= 2 * math.Pi
	}
	return a + delta*Clamp01(t)
}

// === Vectors ===============================================================

// Up is the world up direction.
var Up = mgl64.Vec3{0, 1, 0}

// Origin is the zero vector.
var Origin = mgl64.Vec3{}

// Unit returns v normalized. Vectors of (almost) zero length yield the
// zero vector instead of NaNs.
func Unit(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l <= Epsilon*Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// LerpVec interpolates linearly between a and b, with t clamped to [0,1].
func LerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(Clamp01(t)))
}

// Slerp interpolates spherically between a and b: directions are rotated
// towards each other, magnitudes are interpolated linearly. t is clamped
// to [0,1].
func Slerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	la, lb := a.Len(), b.Len()
	if Is0(la) || Is0(lb) {
		return LerpVec(a, b, t)
	}
	ua, ub := a.Mul(1/la), b.Mul(1/lb)
	cos := mgl64.Clamp(ua.Dot(ub), -1, 1)
	theta := math.Acos(cos)
	if Is0(theta) {
		return LerpVec(a, b, t)
	}
	axis := ua.Cross(ub)
	if Is0(axis.Len()) { // opposite directions, any perpendicular axis will do
		axis = perpendicular(ua)
	}
	axis = Unit(axis)
	dir := mgl64.QuatRotate(theta*t, axis).Rotate(ua)
	return dir.Mul(la + (lb-la)*t)
}

// Rotate rotates v around axis by angle (radians, right-handed).
// A zero axis leaves v unchanged.
func Rotate(v mgl64.Vec3, angle float64, axis mgl64.Vec3) mgl64.Vec3 {
	axis = Unit(axis)
	if axis == Origin || angle == 0 {
		return v
	}
	return mgl64.QuatRotate(angle, axis).Rotate(v)
}

// Angle returns the unsigned angle between a and b in radians.
func Angle(a, b mgl64.Vec3) float64 {
	ua, ub := Unit(a), Unit(b)
	if ua == Origin || ub == Origin {
		return 0
	}
	return math.Acos(mgl64.Clamp(ua.Dot(ub), -1, 1))
}

// SignedAngle returns the angle between from and to, signed by the
// orientation of from × to relative to axis.
func SignedAngle(from, to, axis mgl64.Vec3) float64 {
	angle := Angle(from, to)
	if from.Cross(to).Dot(axis) < 0 {
		return -angle
	}
	return angle
}

func perpendicular(v mgl64.Vec3) mgl64.Vec3 {
	if math.Abs(v.X()) < 0.9 {
		return v.Cross(mgl64.Vec3{1, 0, 0})
	}
	return v.Cross(mgl64.Vec3{0, 1, 0})
}

// IsFinite is a predicate: are all coordinates of v finite?
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// === Affine Transformations ================================================

// Identity transform. Will transform a point onto itself.
func Identity() mgl64.Mat4 {
	return mgl64.Ident4()
}

// Translation transform. Translate a point by v.
func Translation(v mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(v.X(), v.Y(), v.Z())
}

// Rotation transform. Rotate a point around axis (through the origin) by
// theta radians.
func Rotation(theta float64, axis mgl64.Vec3) mgl64.Mat4 {
	axis = Unit(axis)
	if axis == Origin {
		tracer().Errorf("rotation around zero axis, using identity")
		return mgl64.Ident4()
	}
	return mgl64.HomogRotate3D(theta, axis)
}

// Scaling transform. Scale a point component-wise by s.
func Scaling(s mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Scale3D(s.X(), s.Y(), s.Z())
}

// TransformPoint transforms a position (w = 1).
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection transforms a direction (w = 0), i.e. ignores
// translation.
func TransformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// IsUniformScale is a predicate: does m scale all three axes by the same
// factor (within ε)? A degenerate matrix is not uniform.
func IsUniformScale(m mgl64.Mat4) bool {
	sx := ScaleX(m)
	if Is0(sx) {
		return false
	}
	return Is1(m.Col(1).Vec3().Len()/sx) && Is1(m.Col(2).Vec3().Len()/sx)
}

// ScaleX returns the length of the transformed x-axis, the scale factor
// applied to lengths under a uniformly scaling transform.
func ScaleX(m mgl64.Mat4) float64 {
	return m.Col(0).Vec3().Len()
}
