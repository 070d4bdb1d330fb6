package spline

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/curve"
	"github.com/npillmayer/splines/polyn"
)

// Segment is the cubic curve between two control points, with derived data
// cached at construction. Segments are values and never change after they
// have been built, except for their up vectors, which a spline averages with
// the neighbouring segments.
type Segment struct {
	curve      curve.Poly3
	length     float64
	bounds     curve.Bounds
	cpp        polyn.Polynomial    // closest point polynomial
	inflection float64             // split of the arc length fit, 0 for none
	inflLength float64             // arc length at inflection
	t2l        [2]polyn.Polynomial // arc length fit, one per piece
	upA, upB   mgl64.Vec3
	settings   curve.Settings
}

// NewSegment builds the segment from control point a to control point b,
// with default settings.
func NewSegment(a, b ControlPoint) Segment {
	return buildSegment(a, b, curve.Defaults)
}

func buildSegment(a, b ControlPoint, settings curve.Settings) Segment {
	points := curve.Points{A: a.Point, ATan: a.OutTangent, BTan: b.InTangent, B: b.Point}
	return SegmentFromPoints(points, a.Angle, b.Angle, settings)
}

// SegmentFromPoints builds a segment from a Bézier curve and the roll angles
// at its ends.
func SegmentFromPoints(points curve.Points, rollA, rollB float64, settings curve.Settings) Segment {
	c := points.Poly()
	s := Segment{
		curve:    c,
		bounds:   c.Bounds(),
		cpp:      c.ClosestPointPolynomial(),
		upA:      c.UpVector(rollA, rollB, 0),
		upB:      c.UpVector(rollA, rollB, 1),
		settings: settings,
	}
	if t, ok := settings.Inflection(c); ok && t > 0 && t < 1 {
		s.inflection = t
		s.inflLength = settings.ArcLength(c, t)
		s.length = settings.ArcLength(c, 1)
		left, right := points.Split(t)
		s.t2l[0] = settings.ArcLengthPolynomial(left.Poly())
		s.t2l[1] = settings.ArcLengthPolynomial(right.Poly())
	} else {
		s.t2l[0] = settings.ArcLengthPolynomial(c)
		s.length = s.t2l[0].Evaluate(1)
	}
	return s
}

// AverageUpVectors makes the orientation continuous across the junction of
// a and b: a's end up vector and b's start up vector are both set to their
// spherical average.
func AverageUpVectors(a, b *Segment) {
	m := splines.Slerp(a.upB, b.upA, 0.5)
	a.upB, b.upA = m, m
}

// Transform maps s by m, which is expected to scale uniformly. Lengths
// and the arc length fit are scaled, up vectors are rotated along, so the
// averaging done by the spline carries over. Nothing is integrated anew.
func (s Segment) Transform(m mgl64.Mat4) Segment {
	sc := splines.ScaleX(m)
	c := curve.Poly3{
		A: splines.TransformDirection(m, s.curve.A),
		B: splines.TransformDirection(m, s.curve.B),
		C: splines.TransformDirection(m, s.curve.C),
		D: splines.TransformPoint(m, s.curve.D),
	}
	w := s
	w.curve = c
	w.bounds = c.Bounds()
	w.cpp = c.ClosestPointPolynomial()
	w.length = s.length * sc
	w.inflLength = s.inflLength * sc
	for i, p := range s.t2l {
		w.t2l[i] = scaled(p, sc)
	}
	w.upA = splines.Unit(splines.TransformDirection(m, s.upA))
	w.upB = splines.Unit(splines.TransformDirection(m, s.upB))
	return w
}

func scaled(p polyn.Polynomial, f float64) polyn.Polynomial {
	if p == nil {
		return nil
	}
	q := make(polyn.Polynomial, len(p))
	for i, c := range p {
		q[i] = c * f
	}
	return q
}

// Length is the arc length of s.
func (s Segment) Length() float64 { return s.length }

// Bounds is the bounding box of s.
func (s Segment) Bounds() curve.Bounds { return s.bounds }

// Curve returns the curve of s in power form.
func (s Segment) Curve() curve.Poly3 { return s.curve }

// UpVectors returns the up vectors at the start and the end of s.
func (s Segment) UpVectors() (mgl64.Vec3, mgl64.Vec3) { return s.upA, s.upB }

// Inflection returns the parameter where the arc length fit of s is split.
func (s Segment) Inflection() (float64, bool) { return s.inflection, s.inflection != 0 }

// Point evaluates s at parameter t.
func (s Segment) Point(t float64) mgl64.Vec3 { return s.curve.Point(t) }

// D1 evaluates the first derivative of s at t.
func (s Segment) D1(t float64) mgl64.Vec3 { return s.curve.D1(t) }

// D2 evaluates the second derivative of s at t.
func (s Segment) D2(t float64) mgl64.Vec3 { return s.curve.D2(t) }

// Sample evaluates s at parameter t, with orientation.
func (s Segment) Sample(t float64) Sample {
	return s.sample(t, s.curve.Point(t), s.curve.D1(t))
}

func (s Segment) sample(t float64, point, d1 mgl64.Vec3) Sample {
	return frame(point, d1, splines.Slerp(s.upA, s.upB, t))
}

// piece selects the arc length fit for t and maps t into it.
// It returns the piece, its arc length offset, the local parameter and
// dlocal/dt.
func (s Segment) piece(t float64) (int, float64, float64, float64) {
	if s.inflection == 0 {
		return 0, 0, t, 1
	}
	if t > s.inflection {
		return 1, s.inflLength, splines.InverseLerp(s.inflection, 1, t), 1 / (1 - s.inflection)
	}
	return 0, 0, splines.InverseLerp(0, s.inflection, t), 1 / s.inflection
}

// ArcLength approximates the arc length of s from 0 to t by the fitted
// polynomial(s).
func (s Segment) ArcLength(t float64) float64 {
	i, offset, local, _ := s.piece(t)
	return offset + s.t2l[i].Evaluate(local)
}

// ArcLengthD1 is the derivative of ArcLength with respect to t.
func (s Segment) ArcLengthD1(t float64) float64 {
	i, _, local, scale := s.piece(t)
	return s.t2l[i].Derivative().Evaluate(local) * scale
}

// Parameter finds the parameter t ∈ [0,1] at arc length length.
func (s Segment) Parameter(length float64) float64 {
	f := func(t float64) float64 { return s.ArcLength(t) - length }
	return s.settings.Solver.HybridNewton(0, 1, f, s.ArcLengthD1)
}

// ClosestParameter finds the parameter of the point of s nearest to x.
func (s Segment) ClosestParameter(x mgl64.Vec3) float64 {
	return s.settings.ClosestParameter(s.curve, s.cpp, x)
}

// Split subdivides s at t. It returns both halves and the roll angle for a
// control point placed at the split.
func (s Segment) Split(t float64) (curve.Points, curve.Points, float64) {
	a, b := s.curve.SplitPoints(t)
	angle := splines.LerpAngle(s.curve.Roll(s.upA, 0), s.curve.Roll(s.upB, 1), t)
	return a, b, angle
}

// differences sets up forward differencing with step 1/res.
// It returns start point and the first three differences.
func (s Segment) differences(res int) (p, d1, d2, d3 mgl64.Vec3) {
	h := 1 / float64(res)
	a := s.curve.A.Mul(h * h * h)
	b := s.curve.B.Mul(h * h)
	d1 = a.Add(b).Add(s.curve.C.Mul(h))
	d2 = a.Mul(6).Add(b.Mul(2))
	d3 = a.Mul(6)
	return s.curve.D, d1, d2, d3
}

// Points iterates res+1 points of s at evenly spaced parameters 0, 1/res,
// …, 1. res < 1 is treated as 1.
func (s Segment) Points(res int) iter.Seq[mgl64.Vec3] {
	res = max(res, 1)
	return func(yield func(mgl64.Vec3) bool) {
		p, d1, d2, d3 := s.differences(res)
		for i := 0; i <= res; i++ {
			if !yield(p) {
				return
			}
			p, d1, d2 = p.Add(d1), d1.Add(d2), d2.Add(d3)
		}
	}
}

// Samples iterates res+1 samples of s at evenly spaced parameters, like
// Points.
func (s Segment) Samples(res int) iter.Seq[Sample] {
	res = max(res, 1)
	return func(yield func(Sample) bool) {
		p, d1, d2, d3 := s.differences(res)
		h := 1 / float64(res)
		for i := 0; i <= res; i++ {
			t := float64(i) * h
			// d1 is a forward difference, frames use the exact derivative
			if !yield(s.sample(t, p, s.curve.D1(t))) {
				return
			}
			p, d1, d2 = p.Add(d1), d1.Add(d2), d2.Add(d3)
		}
	}
}
