package curve

import (
	"github.com/npillmayer/splines/polyn"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// Quadrature selects the Gauss–Legendre rule used for arc length: the
// number of sample points. Legendre5 and Legendre8 use fixed tables, any
// other positive order is computed on the fly.
type Quadrature int

// Tabulated quadrature rules.
const (
	Legendre5 Quadrature = 5
	Legendre8 Quadrature = 8
)

// legendre weights with abscissae shifted to [0,2]
type legendreNode struct {
	w, x float64
}

var legendre5 = []legendreNode{
	{0.5688888888888889, 1},
	{0.4786286704993665, 0.4615306898943169},
	{0.4786286704993665, 1.5384693101056831},
	{0.2369268850561891, 0.0938201540613360},
	{0.2369268850561891, 1.9061798459386640},
}

var legendre8 = []legendreNode{
	{0.3626837833783620, 0.8165653575043502},
	{0.3626837833783620, 1.1834346424956498},
	{0.3137066458778873, 0.4744675900836710},
	{0.3137066458778873, 1.5255324099163290},
	{0.2223810344533745, 0.2033335225863733},
	{0.2223810344533745, 1.7966664774136267},
	{0.1012285362903763, 0.0397101435024637},
	{0.1012285362903763, 1.9602898564975363},
}

// ArcLength integrates the speed |c'| of c over [0,t].
func (q Quadrature) ArcLength(c Poly3, t float64) float64 {
	if t == 0 {
		return 0
	}
	switch q {
	case Legendre5:
		return legendreSum(c, t, legendre5)
	case Legendre8:
		return legendreSum(c, t, legendre8)
	}
	n := int(q)
	if n < 1 {
		tracer().Errorf("invalid quadrature order %d, using %d", n, Legendre5)
		return legendreSum(c, t, legendre5)
	}
	speed := func(s float64) float64 { return c.D1(s).Len() }
	if t < 0 {
		return -quad.Fixed(speed, t, 0, n, quad.Legendre{}, 0)
	}
	return quad.Fixed(speed, 0, t, n, quad.Legendre{}, 0)
}

func legendreSum(c Poly3, t float64, nodes []legendreNode) float64 {
	ht := t * 0.5
	sum := 0.0
	for _, n := range nodes {
		sum += n.w * c.D1(n.x*ht).Len()
	}
	return ht * sum
}

// Settings bundle the numeric choices of the arc length and closest point
// machinery.
type Settings struct {
	Solver     polyn.Solver
	Quadrature Quadrature
}

// Defaults are the settings used by the convenience methods of Poly3.
var Defaults = Settings{
	Solver:     polyn.Default,
	Quadrature: Legendre5,
}

// ArcLength is the arc length of c over [0,t], using Legendre5.
func (c Poly3) ArcLength(t float64) float64 {
	return Defaults.ArcLength(c, t)
}

// ArcLength8 is the arc length of c over [0,t], using Legendre8.
func (c Poly3) ArcLength8(t float64) float64 {
	return Legendre8.ArcLength(c, t)
}

// ArcLengthN is the arc length of c over [0,t], using an n-point
// Gauss–Legendre rule.
func (c Poly3) ArcLengthN(t float64, n int) float64 {
	return Quadrature(n).ArcLength(c, t)
}

// Parameter finds t with ArcLength(t) = length, see Settings.Parameter.
func (c Poly3) Parameter(length float64) float64 {
	return Defaults.Parameter(c, length)
}

// ArcLengthPolynomial fits a cubic arc length function, see
// Settings.ArcLengthPolynomial.
func (c Poly3) ArcLengthPolynomial() polyn.Polynomial {
	return Defaults.ArcLengthPolynomial(c)
}

// ParameterPolynomial fits a cubic inverse arc length function, see
// Settings.ParameterPolynomial.
func (c Poly3) ParameterPolynomial() polyn.Polynomial {
	return Defaults.ParameterPolynomial(c)
}

// ArcLength is the arc length of c over [0,t].
func (s Settings) ArcLength(c Poly3, t float64) float64 {
	return s.Quadrature.ArcLength(c, t)
}

// Parameter finds the parameter t ∈ [0,1] where the arc length of c equals
// length. A length beyond the ends of c yields (approximately) 0 or 1.
func (s Settings) Parameter(c Poly3, length float64) float64 {
	f := func(t float64) float64 { return s.ArcLength(c, t) - length }
	df := func(t float64) float64 { return c.D1(t).Len() }
	return s.Solver.HybridNewton(0, 1, f, df)
}

// fitMatrix maps samples of a function at 1/3, 2/3 and 1 to the t³, t², t
// coefficients of the cubic through the samples and the origin.
var fitMatrix = mat.NewDense(3, 3, []float64{
	13.5, -13.5, 4.5,
	-22.5, 18, -4.5,
	9, -4.5, 1,
})

func fitCubic(f1, f2, f3 float64) polyn.Polynomial {
	var coeff mat.VecDense
	coeff.MulVec(fitMatrix, mat.NewVecDense(3, []float64{f1, f2, f3}))
	return polyn.New(coeff.AtVec(0), coeff.AtVec(1), coeff.AtVec(2), 0)
}

// ArcLengthPolynomial returns a cubic polynomial l(t) with l(0) = 0 which
// interpolates the arc length of c at t = 1/3, 2/3 and 1. The fit is accurate
// for curves without an inflection point.
func (s Settings) ArcLengthPolynomial(c Poly3) polyn.Polynomial {
	return fitCubic(
		s.ArcLength(c, 1.0/3),
		s.ArcLength(c, 2.0/3),
		s.ArcLength(c, 1),
	)
}

// ParameterPolynomial returns a cubic polynomial t(l) with t(0) = 0 which
// interpolates the inverse arc length of c at a third, two thirds and all of
// its length. For a curve of length 0 the zero polynomial is returned.
func (s Settings) ParameterPolynomial(c Poly3) polyn.Polynomial {
	l := s.ArcLength(c, 1)
	if l == 0 {
		tracer().Debugf("parameter polynomial of a curve of length 0")
		return polyn.New(0, 0, 0, 0)
	}
	t1 := s.Parameter(c, l/3)
	t2 := s.Parameter(c, l*2/3)
	p := fitCubic(t1, t2, 1)
	invl := 1 / l
	p[0] *= invl * invl * invl
	p[1] *= invl * invl
	p[2] *= invl
	return p
}
