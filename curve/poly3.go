package curve

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/polyn"
)

// Poly3 is a cubic curve in power form: p(t) = A·t³ + B·t² + C·t + D.
type Poly3 struct {
	A, B, C, D mgl64.Vec3
}

// Points is a cubic Bézier curve given by its start point, the two tangent
// handles (absolute positions) and its end point.
type Points struct {
	A, ATan, BTan, B mgl64.Vec3
}

// FromPoints converts a Bézier curve to power form.
func FromPoints(p Points) Poly3 {
	c := p.ATan.Sub(p.A).Mul(3)
	b := p.BTan.Sub(p.ATan).Mul(3).Sub(c)
	a := p.B.Sub(p.A).Sub(c).Sub(b)
	return Poly3{A: a, B: b, C: c, D: p.A}
}

// Poly returns p in power form.
func (p Points) Poly() Poly3 {
	return FromPoints(p)
}

// Points converts c to Bézier control form.
func (c Poly3) Points() Points {
	aTan := c.C.Mul(1.0 / 3).Add(c.D)
	return Points{
		A:    c.D,
		ATan: aTan,
		BTan: c.B.Add(c.C).Mul(1.0 / 3).Add(aTan),
		B:    c.A.Add(c.B).Add(c.C).Add(c.D),
	}
}

// Point evaluates c at t.
func (c Poly3) Point(t float64) mgl64.Vec3 {
	return c.A.Mul(t).Add(c.B).Mul(t).Add(c.C).Mul(t).Add(c.D)
}

// D1 evaluates the first derivative of c at t.
func (c Poly3) D1(t float64) mgl64.Vec3 {
	return c.A.Mul(3 * t).Add(c.B.Mul(2)).Mul(t).Add(c.C)
}

// D2 evaluates the second derivative of c at t.
func (c Poly3) D2(t float64) mgl64.Vec3 {
	return c.A.Mul(6 * t).Add(c.B.Mul(2))
}

// D3 is the (constant) third derivative of c.
func (c Poly3) D3() mgl64.Vec3 {
	return c.A.Mul(6)
}

// Start is c(0).
func (c Poly3) Start() mgl64.Vec3 {
	return c.D
}

// End is c(1).
func (c Poly3) End() mgl64.Vec3 {
	return c.A.Add(c.B).Add(c.C).Add(c.D)
}

// Axis returns the coordinate polynomial of c for axis i (0=x, 1=y, 2=z).
func (c Poly3) Axis(i int) polyn.Polynomial {
	return polyn.New(c.A[i], c.B[i], c.C[i], c.D[i])
}

// Split splits c at t into two curves, each parametrized over [0,1].
func (c Poly3) Split(t float64) (Poly3, Poly3) {
	l, r := c.SplitPoints(t)
	return l.Poly(), r.Poly()
}

// SplitPoints splits c at t and returns both halves in control form.
func (c Poly3) SplitPoints(t float64) (Points, Points) {
	return c.Points().Split(t)
}

func (c Poly3) String() string {
	return fmt.Sprintf("(%v)t³ + (%v)t² + (%v)t + (%v)", c.A, c.B, c.C, c.D)
}

// Split subdivides p at t with de Casteljau's algorithm. The result is exact:
// the left curve covers p over [0,t], the right one over [t,1].
func (p Points) Split(t float64) (Points, Points) {
	m := lerp(p.ATan, p.BTan, t)
	aa := lerp(p.A, p.ATan, t)
	bb := lerp(p.BTan, p.B, t)
	ab := lerp(aa, m, t)
	ba := lerp(m, bb, t)
	mm := lerp(ab, ba, t)
	return Points{p.A, aa, ab, mm}, Points{mm, ba, bb, p.B}
}

// unclamped linear interpolation, de Casteljau needs t outside [0,1] as well
func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// ArcLengthSubdivision estimates the arc length of p over [0,t] by recursive
// halving. At the bottom of the recursion (depth levels) a piece contributes
// the mean of its chord length and its control polygon length.
// depth < 1 is treated as 1.
func (p Points) ArcLengthSubdivision(t float64, depth int) float64 {
	left, _ := p.Split(splines.Clamp01(t))
	if depth < 1 {
		depth = 1
	}
	return left.subdividedLength(depth)
}

func (p Points) subdividedLength(depth int) float64 {
	depth--
	if depth == 0 {
		chord := p.B.Sub(p.A).Len()
		hull := p.ATan.Sub(p.A).Len() + p.BTan.Sub(p.ATan).Len() + p.B.Sub(p.BTan).Len()
		return (chord + hull) * 0.5
	}
	l, r := p.Split(0.5)
	return l.subdividedLength(depth) + r.subdividedLength(depth)
}
