package spline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines"
)

// TangentMode controls how editing one tangent handle of a control point
// affects the other one.
type TangentMode int

// Tangent modes.
const (
	TangentFree TangentMode = iota // handles move independently
	TangentLock                    // handles stay mirrored through the point
)

// Next cycles through the tangent modes.
func (m TangentMode) Next() TangentMode {
	return (m + 1) % 2
}

func (m TangentMode) String() string {
	switch m {
	case TangentFree:
		return "free"
	case TangentLock:
		return "lock"
	}
	return fmt.Sprintf("TangentMode(%d)", int(m))
}

// ControlPoint is a knot of a spline. Tangents are absolute positions, not
// offsets from Point. Angle rolls the orientation frame around the curve's
// direction at this point (radians).
type ControlPoint struct {
	Point      mgl64.Vec3
	InTangent  mgl64.Vec3
	OutTangent mgl64.Vec3
	Angle      float64
}

// NewControlPoint creates a control point with roll angle 0.
func NewControlPoint(point, in, out mgl64.Vec3) ControlPoint {
	return ControlPoint{Point: point, InTangent: in, OutTangent: out}
}

// Move translates the point together with both tangents.
func (cp *ControlPoint) Move(delta mgl64.Vec3) {
	cp.Point = cp.Point.Add(delta)
	cp.InTangent = cp.InTangent.Add(delta)
	cp.OutTangent = cp.OutTangent.Add(delta)
}

// Set moves the point to p, tangents following rigidly.
func (cp *ControlPoint) Set(p mgl64.Vec3) {
	cp.Move(p.Sub(cp.Point))
}

// SetTangent sets the inbound (in = true) or outbound tangent. With
// TangentLock the opposite tangent is mirrored through the point.
func (cp *ControlPoint) SetTangent(tangent mgl64.Vec3, in bool, mode TangentMode) {
	mirrored := cp.Point.Mul(2).Sub(tangent)
	switch {
	case in && mode == TangentLock:
		cp.InTangent, cp.OutTangent = tangent, mirrored
	case mode == TangentLock:
		cp.OutTangent, cp.InTangent = tangent, mirrored
	case in:
		cp.InTangent = tangent
	default:
		cp.OutTangent = tangent
	}
}

// Equal compares position and tangents. The roll angle is not considered.
func (cp ControlPoint) Equal(other ControlPoint) bool {
	return cp.Point == other.Point && cp.InTangent == other.InTangent &&
		cp.OutTangent == other.OutTangent
}

// IsValid is a predicate: are all coordinates finite?
func (cp ControlPoint) IsValid() bool {
	return splines.IsFinite(cp.Point) && splines.IsFinite(cp.InTangent) &&
		splines.IsFinite(cp.OutTangent)
}

// Transform maps position and tangents by m.
func (cp ControlPoint) Transform(m mgl64.Mat4) ControlPoint {
	cp.Point = splines.TransformPoint(m, cp.Point)
	cp.InTangent = splines.TransformPoint(m, cp.InTangent)
	cp.OutTangent = splines.TransformPoint(m, cp.OutTangent)
	return cp
}

func (cp ControlPoint) String() string {
	return fmt.Sprintf("<%v (%v … %v) roll %.4g>", cp.Point, cp.InTangent, cp.OutTangent, cp.Angle)
}
