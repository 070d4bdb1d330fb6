/*
Package spline implements piecewise cubic paths in 3D.

A Spline is an ordered list of control points, each carrying a position, an
inbound and an outbound tangent handle and a roll angle. Between consecutive
control points lives a Segment, a cubic Bézier curve with cached derived
data: arc length, bounding box, a closed-form arc length fit (in two pieces
if the curve has an inflection point) and its closest-point polynomial.

	s := spline.MustNew([]spline.ControlPoint{
	    spline.NewControlPoint(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1}),
	    spline.NewControlPoint(mgl64.Vec3{4, 0, 4}, mgl64.Vec3{3, 0, 4}, mgl64.Vec3{5, 0, 4}),
	})
	p := s.Point(s.Length() / 2)

Queries address positions on a spline by arc length ("distance"), or find
the nearest point to a given position. Results are points or Samples, the
latter carrying an orientation frame. Orientation is continuous across
control points: whenever a control point changes, the up vectors of the
adjoining segments are averaged.

A spline always stores the closing segment from the last control point back
to the first one. It is part of queries and of the length only if the spline
loops.

Splines are not safe for concurrent mutation; readers must be serialized
with writers by the caller.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spline

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'splines.spline'
func tracer() tracing.Trace {
	return tracing.Select("splines.spline")
}

var (
	// ErrIndexOutOfRange indicates a control point index outside the spline.
	ErrIndexOutOfRange = errors.New("control point index out of range")
	// ErrLastControlPoint indicates an attempt to remove the only control point.
	ErrLastControlPoint = errors.New("cannot remove the last control point")
	// ErrTooFewControlPoints indicates construction with less than two control points.
	ErrTooFewControlPoints = errors.New("spline needs at least two control points")
	// ErrInvalidControlPoint indicates a control point coordinate containing NaN/Inf.
	ErrInvalidControlPoint = errors.New("control point has invalid coordinate")
	// ErrInvalidOption indicates a configuration value which cannot be used.
	ErrInvalidOption = errors.New("invalid spline option")
)
