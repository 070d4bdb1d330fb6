/*
Package curve deals with single cubic polynomial curves in 3D.

A curve is held in power form

	p(t) = a·t³ + b·t² + c·t + d,   t ∈ [0,1]

(type Poly3), which is cheap to evaluate and differentiate. The equivalent
Bézier control form (type Points) is used for subdivision and conversion
from/to control points with tangent handles.

Besides evaluation, the package offers the derived data a spline segment
needs: an axis-aligned bounding box, arc length by Gauss–Legendre
quadrature, the inverse mapping from arc length to parameter, closed-form
cubic fits of both mappings, an algebraic closest-point query, detection of
a representative inflection point, and the orientation ("up") vector used
to build sample frames.

Literature:

	Approximate Arc Length Parametrization -- Marcelo Walter, Alain Fournier
	Proceedings of SIBGRAPI '96

	Improved Algebraic Algorithm On Point Projection For Bézier Curves
	Xiao-Diao Chen, Yin Zhou, Zhenyu Shu, Hua Su, Jean-Claude Paul, 2007

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curve

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'splines.curve'
func tracer() tracing.Trace {
	return tracing.Select("splines.curve")
}
