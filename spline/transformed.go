package spline

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines"
)

// Transformed is a view of a spline placed in the world by a local-to-world
// matrix. Queries take and return world coordinates and world distances;
// edits are mapped back into the spline's local space.
//
// Distances are converted with the scale of the transformed x-axis, so the
// transform is expected to scale uniformly.
type Transformed struct {
	spline *Spline
	m, inv mgl64.Mat4
}

var _ Path = (*Transformed)(nil)

// NewTransformed creates a view of s under the local-to-world matrix m.
func NewTransformed(s *Spline, m mgl64.Mat4) *Transformed {
	t := &Transformed{spline: s}
	t.SetTransform(m)
	return t
}

// SetTransform replaces the local-to-world matrix.
func (t *Transformed) SetTransform(m mgl64.Mat4) {
	t.m, t.inv = m, m.Inv()
	if t.scale() == 0 {
		tracer().Errorf("transformed spline with degenerate scale")
	} else if !splines.IsUniformScale(m) {
		tracer().Errorf("transformed spline with non-uniform scale, lengths are approximate")
	}
}

// Transform returns the local-to-world matrix.
func (t *Transformed) Transform() mgl64.Mat4 { return t.m }

// Spline returns the underlying spline.
func (t *Transformed) Spline() *Spline { return t.spline }

func (t *Transformed) scale() float64 { return splines.ScaleX(t.m) }

func (t *Transformed) toLocal(distance float64) float64 {
	if sc := t.scale(); sc != 0 {
		return distance / sc
	}
	return 0
}

// Loop reports whether the spline is closed.
func (t *Transformed) Loop() bool { return t.spline.Loop() }

// SetLoop opens or closes the spline.
func (t *Transformed) SetLoop(loop bool) { t.spline.SetLoop(loop) }

// Length is the world space arc length.
func (t *Transformed) Length() float64 { return t.spline.Length() * t.scale() }

// SegmentCount is the number of segments taking part in queries.
func (t *Transformed) SegmentCount() int { return t.spline.SegmentCount() }

// Segment returns segment i mapped to world space, see Segment.Transform.
func (t *Transformed) Segment(i int) Segment {
	return t.spline.Segment(i).Transform(t.m)
}

// SegmentAtDistance locates a world distance, see Spline.SegmentAtDistance.
// The distance within the segment is in world units.
func (t *Transformed) SegmentAtDistance(distance float64) (int, float64) {
	i, d := t.spline.SegmentAtDistance(t.toLocal(distance))
	return i, d * t.scale()
}

// Point returns the world position at world distance.
func (t *Transformed) Point(distance float64) mgl64.Vec3 {
	return splines.TransformPoint(t.m, t.spline.Point(t.toLocal(distance)))
}

// Sample returns the world sample at world distance.
func (t *Transformed) Sample(distance float64) Sample {
	return t.spline.Sample(t.toLocal(distance)).Transform(t.m)
}

// ClosestPoint returns the point of the spline nearest to the world
// position x.
func (t *Transformed) ClosestPoint(x mgl64.Vec3) mgl64.Vec3 {
	local := t.spline.ClosestPoint(splines.TransformPoint(t.inv, x))
	return splines.TransformPoint(t.m, local)
}

// ClosestSample returns the sample of the spline nearest to the world
// position x.
func (t *Transformed) ClosestSample(x mgl64.Vec3) Sample {
	return t.spline.ClosestSample(splines.TransformPoint(t.inv, x)).Transform(t.m)
}

// ClosestLength finds the point nearest to the world position x as segment
// index and parameter.
func (t *Transformed) ClosestLength(x mgl64.Vec3) (int, float64) {
	return t.spline.ClosestLength(splines.TransformPoint(t.inv, x))
}

// Split inserts a control point at world distance.
func (t *Transformed) Split(distance float64) (int, error) {
	return t.spline.Split(t.toLocal(distance))
}

// ControlPointCount is the number of control points.
func (t *Transformed) ControlPointCount() int { return t.spline.ControlPointCount() }

// ControlPoint returns control point i in world space.
func (t *Transformed) ControlPoint(i int) ControlPoint {
	return t.spline.ControlPoint(i).Transform(t.m)
}

// SetControlPoint sets control point i from world space.
func (t *Transformed) SetControlPoint(i int, cp ControlPoint) error {
	return t.spline.SetControlPoint(i, cp.Transform(t.inv))
}

// InsertControlPoint inserts a control point given in world space.
func (t *Transformed) InsertControlPoint(i int, cp ControlPoint) error {
	return t.spline.InsertControlPoint(i, cp.Transform(t.inv))
}

// AddControlPoint appends a control point given in world space.
func (t *Transformed) AddControlPoint(cp ControlPoint) error {
	return t.spline.AddControlPoint(cp.Transform(t.inv))
}

// RemoveControlPoint deletes control point i.
func (t *Transformed) RemoveControlPoint(i int) error {
	return t.spline.RemoveControlPoint(i)
}
