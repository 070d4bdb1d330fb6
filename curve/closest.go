package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines/polyn"
)

// ClosestPointPolynomial returns the part of
//
//	p'(t)·(p(t) − x)
//
// which does not depend on the query point x, a polynomial of degree 5.
// Segments compute it once and complete it per query.
func (c Poly3) ClosestPointPolynomial() polyn.Polynomial {
	return polyn.New(
		3*c.A.Dot(c.A),
		5*c.A.Dot(c.B),
		4*c.A.Dot(c.C)+2*c.B.Dot(c.B),
		3*c.A.Dot(c.D)+3*c.B.Dot(c.C),
		2*c.B.Dot(c.D)+c.C.Dot(c.C),
		c.C.Dot(c.D),
	)
}

// ClosestParameter finds the parameter of the point on c nearest to x.
func (c Poly3) ClosestParameter(x mgl64.Vec3) float64 {
	return Defaults.ClosestParameter(c, c.ClosestPointPolynomial(), x)
}

// ClosestParameter finds the parameter t ∈ [0,1] of the point on c nearest
// to x. cpp is c's closest point polynomial. Candidates are the roots of
// p'·(p − x) in [0,1] and both ends of c; the one with the smallest distance
// to x wins, ties going to the earlier candidate.
func (s Settings) ClosestParameter(c Poly3, cpp polyn.Polynomial, x mgl64.Vec3) float64 {
	if len(cpp) != 6 {
		cpp = c.ClosestPointPolynomial()
	}
	q := polyn.New(cpp...)
	q[3] -= 3 * c.A.Dot(x)
	q[4] -= 2 * c.B.Dot(x)
	q[5] -= c.C.Dot(x)
	candidates := append([]float64{0, 1}, s.Solver.FindRoots(q, 0, 1)...)
	mint, mind := 0.0, math.MaxFloat64
	for _, t := range candidates {
		d := c.Point(t).Sub(x).LenSqr()
		if d < mind {
			mint, mind = t, d
		}
	}
	return mint
}

// InflectionPolynomial returns p'(t)·p''(t), the cubic whose roots in [0,1]
// mark where the speed of c has an extremum.
func (c Poly3) InflectionPolynomial() polyn.Polynomial {
	return polyn.New(
		18*c.A.Dot(c.A),
		18*c.A.Dot(c.B),
		6*c.A.Dot(c.C)+4*c.B.Dot(c.B),
		2*c.B.Dot(c.C),
	)
}

// Inflection finds a representative inflection parameter of c, see
// Settings.Inflection.
func (c Poly3) Inflection() (float64, bool) {
	return Defaults.Inflection(c)
}

// Inflection finds a representative inflection parameter of c in [0,1].
// With one root of the inflection polynomial, that root is used; with two,
// their midpoint; with three, the middle one. ok is false if there is none.
func (s Settings) Inflection(c Poly3) (t float64, ok bool) {
	roots := s.Solver.FindRoots(c.InflectionPolynomial(), 0, 1)
	switch len(roots) {
	case 0:
		return 0, false
	case 1:
		return roots[0], true
	case 2:
		return (roots[0] + roots[1]) * 0.5, true
	}
	return roots[1], true
}
