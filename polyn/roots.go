package polyn

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Default tolerances, matching the needs of curve geometry in unit-sized
// coordinates.
const (
	DefaultTolerance       = 0.001  // width of a root isolation interval
	DefaultNewtonTolerance = 0.0001 // bracket width for Newton refinement
	DefaultMaxIterations   = 100    // iteration cap for Newton refinement
)

const machineEpsilon = 2.220446049250313e-16

const third = 1.0 / 3.0

// Solver finds real roots of polynomials within an interval.
//
// Polynomials of degree ≤ 3 are solved in closed form. For higher degrees
// the roots are isolated by bisection guided by a Sturm sequence; intervals
// bracketing a single root are refined with a hybrid Newton–bisection.
// Intervals narrower than Tolerance without a clean bracket contribute their
// midpoint.
type Solver struct {
	Tolerance       float64 // isolation interval width
	NewtonTolerance float64 // refinement bracket width
	MaxIterations   int     // refinement iteration cap
}

// Default is the solver used by the package level functions.
var Default = Solver{
	Tolerance:       DefaultTolerance,
	NewtonTolerance: DefaultNewtonTolerance,
	MaxIterations:   DefaultMaxIterations,
}

// FindRoots finds the real roots of p within [a,b] (endpoints included),
// using the Default solver.
func FindRoots(p Polynomial, a, b float64) []float64 {
	return Default.FindRoots(p, a, b)
}

// FindRoots finds the real roots of p within [a,b]. Roots are returned in
// ascending order, without exact duplicates. A constant (or zero)
// polynomial has no roots.
//
// Endpoints are included for degree ≤ 3 only. For higher degrees a root
// exactly at b is not counted by the sign changes and gets lost, and a root
// exactly at a is reported as an interval midpoint, off by up to half the
// tolerance. Callers needing roots at the ends should widen the interval.
func (s Solver) FindRoots(p Polynomial, a, b float64) []float64 {
	p = p.RemoveLeadingZeros()
	var roots []float64
	switch len(p) {
	case 1:
		return nil
	case 2:
		roots = appendInRange(roots, -p[1]/p[0], a, b)
	case 3:
		roots = SolveQuadratic(p, a, b, roots)
	case 4:
		roots = SolveCubic(p, a, b, roots)
	default:
		roots = s.isolate(p.SturmSequence(), a, b, roots)
	}
	return normalize(roots)
}

func appendInRange(roots []float64, r, a, b float64) []float64 {
	if (r-a)*(r-b) <= 0 {
		return append(roots, r)
	}
	return roots
}

func normalize(roots []float64) []float64 {
	if len(roots) < 2 {
		return roots
	}
	sort.Float64s(roots)
	j := 0
	for i := 1; i < len(roots); i++ {
		if roots[i] != roots[j] {
			j++
			roots[j] = roots[i]
		}
	}
	return roots[:j+1]
}

// SolveQuadratic appends the real roots in [a,b] of the quadratic
// polynomial p (p[0] ≠ 0) to roots. A double root is reported once.
func SolveQuadratic(p Polynomial, a, b float64, roots []float64) []float64 {
	d := p[1]*p[1] - 4*p[0]*p[2]
	if d < 0 {
		return roots
	}
	dsqrt := math.Sqrt(d)
	inv2a := 0.5 / p[0]
	roots = appendInRange(roots, (-p[1]+dsqrt)*inv2a, a, b)
	if d != 0 {
		roots = appendInRange(roots, (-p[1]-dsqrt)*inv2a, a, b)
	}
	return roots
}

// SolveCubic appends the real roots in [a,b] of the cubic polynomial p
// (p[0] ≠ 0) to roots. The cubic is reduced to depressed form t³ + pt + q;
// the sign of the discriminant selects Cardano's formula (one real root),
// the complex cube root of the casus irreducibilis (three real roots), or
// the degenerate case of a double root.
func SolveCubic(p Polynomial, a, b float64, roots []float64) []float64 {
	a3, b3, c3, d3 := p[0], p[1], p[2], p[3]
	dp := (3*a3*c3 - b3*b3) / (3 * a3 * a3)
	dq := (2*b3*b3*b3 - 9*a3*b3*c3 + 27*a3*a3*d3) / (27 * a3 * a3 * a3)
	halfq := dq / 2
	pover3 := dp / 3
	d := halfq*halfq + pover3*pover3*pover3
	bover3a := b3 / (3 * a3)
	switch {
	case d > 0:
		dsqrt := math.Sqrt(d)
		r := math.Cbrt(-halfq-dsqrt) + math.Cbrt(-halfq+dsqrt) - bover3a
		roots = appendInRange(roots, r, a, b)
	case d < 0:
		u := cmplx.Pow(complex(-halfq, math.Sqrt(-d)), complex(third, 0))
		for k := 0; k < 3; k++ { // u·ω^k for the three cube roots of unity ω
			w := cmplx.Rect(1, float64(k)*2*math.Pi*third)
			roots = appendInRange(roots, 2*real(u*w)-bover3a, a, b)
		}
	default:
		u := math.Cbrt(-halfq)
		roots = appendInRange(roots, 2*u-bover3a, a, b)
		if u != 0 {
			roots = appendInRange(roots, -u-bover3a, a, b)
		}
	}
	return roots
}

// interval on the isolation work stack, with sign change counts at its ends
type interval struct {
	a, b   float64
	sa, sb int
}

// isolate walks intervals of [a,b] with an explicit work stack, splitting
// while the sign change difference is not exactly 1. Left halves are
// processed before right halves.
func (s Solver) isolate(seq SturmSequence, a, b float64, roots []float64) []float64 {
	p, dp := seq[0], seq[1]
	stack := arraystack.New()
	stack.Push(interval{a, b, seq.SignChanges(a), seq.SignChanges(b)})
	for !stack.Empty() {
		top, _ := stack.Pop()
		iv := top.(interval)
		v := iv.sa - iv.sb
		if v == 0 {
			continue
		}
		m := (iv.a + iv.b) * 0.5
		if v == 1 {
			fa, fb := p.Evaluate(iv.a), p.Evaluate(iv.b)
			if fa*fb < 0 {
				roots = append(roots, s.HybridNewton(iv.a, iv.b, p.Evaluate, dp.Evaluate))
				continue
			}
			if math.Abs(iv.b-iv.a) < s.Tolerance || p.Evaluate(m) == 0 {
				roots = append(roots, m)
				continue
			}
			msc := seq.SignChanges(m)
			if msc == iv.sa {
				stack.Push(interval{m, iv.b, msc, iv.sb})
			} else {
				stack.Push(interval{iv.a, m, iv.sa, msc})
			}
			continue
		}
		if math.Abs(iv.b-iv.a) < s.Tolerance {
			roots = append(roots, m)
			continue
		}
		msc := seq.SignChanges(m)
		stack.Push(interval{m, iv.b, msc, iv.sb})
		stack.Push(interval{iv.a, m, iv.sa, msc})
	}
	tracer().Debugf("isolated %d root(s) in [%g,%g]", len(roots), a, b)
	return roots
}

// HybridNewton finds a root of f in [l,r] with a safeguarded Newton
// iteration, using the Default solver's iteration cap. See
// Solver.HybridNewton.
func HybridNewton(l, r float64, f, df func(float64) float64, tol float64) float64 {
	s := Default
	s.NewtonTolerance = tol
	return s.HybridNewton(l, r, f, df)
}

// HybridNewton finds a root of f in [l,r] (rtsafe style). A bracket [xl,xh]
// with f(xl) < f(xh) is maintained; a Newton step is taken only if it stays
// inside the bracket and the bracket shrinks fast enough, otherwise the
// bracket is bisected.
//
// The iteration stops when the bracket is narrower than NewtonTolerance,
// when an iterate repeats, when |f| drops below machine epsilon, or after
// MaxIterations steps. The last iterate is returned in any case.
func (s Solver) HybridNewton(l, r float64, f, df func(float64) float64) float64 {
	xl, xh := r, l
	if f(l) < f(r) {
		xl, xh = l, r
	}
	lm := -math.MaxFloat64
	m := (xl + xh) * 0.5
	fm := f(m)
	dfm := df(m)
	for i := 0; i < s.MaxIterations; i++ {
		dx := math.Abs(xl - xh)
		if dx < s.NewtonTolerance {
			break
		}
		if 2*math.Abs(fm) > math.Abs(dx*dfm) {
			m = (xl + xh) * 0.5
		} else {
			m -= fm / dfm
			if (xl-m)*(xh-m) > 0 || math.IsNaN(m) {
				m = (xl + xh) * 0.5
			}
		}
		if m == lm {
			break
		}
		lm = m
		fm = f(m)
		if math.Abs(fm) < machineEpsilon {
			break
		}
		dfm = df(m)
		if fm < 0 {
			xl = m
		} else {
			xh = m
		}
	}
	return m
}

// Bisection finds a root of f in [a,b] by repeated halving, until the
// interval is not wider than prec or f vanishes at the midpoint.
// f(a) and f(b) should differ in sign.
func Bisection(a, b float64, f func(float64) float64, prec float64) float64 {
	for {
		m := (a + b) * 0.5
		if math.Abs(b-a) <= prec || m == a || m == b {
			return m
		}
		fm := f(m)
		if fm == 0 {
			return m
		}
		if f(a)*fm < 0 {
			b = m
		} else {
			a = m
		}
	}
}
