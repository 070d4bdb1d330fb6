package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines"
)

// baseUp blends world up towards the direction of the second derivative,
// the more the steeper the curve runs at t.
func (c Poly3) baseUp(t float64) mgl64.Vec3 {
	slope := mgl64.Clamp(splines.Unit(c.D1(t)).Y(), -1, 1)
	w := math.Abs(math.Asin(slope) / math.Pi * 2)
	return splines.LerpVec(splines.Up, splines.Unit(c.D2(t)), w)
}

// UpVector returns the orientation vector of c at t. The base up vector is
// rolled around the tangent by an angle interpolated linearly between
// rollA (at t=0) and rollB (at t=1), in radians.
func (c Poly3) UpVector(rollA, rollB, t float64) mgl64.Vec3 {
	return splines.Rotate(c.baseUp(t), splines.Lerp(rollA, rollB, t), c.D1(t))
}

// Roll is the inverse of UpVector for a single t: the signed angle around
// the tangent at t between the base up vector and up.
func (c Poly3) Roll(up mgl64.Vec3, t float64) float64 {
	return splines.SignedAngle(c.baseUp(t), up, c.D1(t))
}
