package spline

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines"
)

// Sample is a position on a path together with its orientation frame.
// The frame is a local-to-world matrix with columns right, up, forward and
// the position.
type Sample struct {
	Frame mgl64.Mat4
}

// NewSample assembles a sample from a position and an orthonormal frame.
func NewSample(point, forward, right, up mgl64.Vec3) Sample {
	return Sample{Frame: mgl64.Mat4FromCols(right.Vec4(0), up.Vec4(0), forward.Vec4(0), point.Vec4(1))}
}

// frame builds a sample from the curve position and direction, keeping the
// frame as close as possible to up.
func frame(point, d1, up mgl64.Vec3) Sample {
	forward := splines.Unit(d1)
	right := splines.Unit(up.Cross(forward))
	return NewSample(point, forward, right, splines.Unit(forward.Cross(right)))
}

// Right is the first frame axis.
func (s Sample) Right() mgl64.Vec3 { return s.Frame.Col(0).Vec3() }

// Up is the second frame axis.
func (s Sample) Up() mgl64.Vec3 { return s.Frame.Col(1).Vec3() }

// Forward is the third frame axis, the direction of travel.
func (s Sample) Forward() mgl64.Vec3 { return s.Frame.Col(2).Vec3() }

// Point is the position of the sample.
func (s Sample) Point() mgl64.Vec3 { return s.Frame.Col(3).Vec3() }

// Transform returns the sample mapped by m.
func (s Sample) Transform(m mgl64.Mat4) Sample {
	return Sample{Frame: m.Mul4(s.Frame)}
}
