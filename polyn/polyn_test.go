package polyn

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// fromRoots expands (x−r0)(x−r1)… into coefficients, highest degree first.
func fromRoots(roots ...float64) Polynomial {
	p := Polynomial{1}
	for _, r := range roots {
		q := make(Polynomial, len(p)+1)
		for i, c := range p {
			q[i] += c
			q[i+1] -= c * r
		}
		p = q
	}
	return p
}

// companionRoots returns the real eigenvalues of the companion matrix of p,
// an independent estimate of p's real roots.
func companionRoots(t *testing.T, p Polynomial) []float64 {
	t.Helper()
	n := p.Degree()
	a := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		a.Set(0, j, -p[j+1]/p[0])
	}
	for i := 1; i < n; i++ {
		a.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		t.Fatalf("eigen decomposition of companion matrix failed")
	}
	var roots []float64
	for _, v := range eig.Values(nil) {
		if math.Abs(imag(v)) < 1e-9 {
			roots = append(roots, real(v))
		}
	}
	sort.Float64s(roots)
	return roots
}

func TestPolynomialBasics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := New(1, 0, -1)
	assert.Equal(t, 2, p.Degree())
	assert.Equal(t, 3.0, p.Evaluate(2))
	assert.Equal(t, Polynomial{2, 0}, p.Derivative())
	assert.Equal(t, Polynomial{0}, New(5).Derivative())
	assert.Equal(t, "x^2 - 1", p.String())
	assert.Equal(t, "-2x + 3", New(-2, 3).String())
	assert.Equal(t, "0", New().String())
	assert.True(t, New(0, 0).IsZero())
	assert.Equal(t, Polynomial{1, 2}, New(0, 0, 1, 2).RemoveLeadingZeros())
	assert.Equal(t, Polynomial{0}, New(0, 0, 0).RemoveLeadingZeros())
}

func TestRemainder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := New(1, -6, 11, -6)
	assert.Equal(t, Polynomial{0}, p.Remainder(New(1, -1)))
	assert.Equal(t, Polynomial{-1}, New(1, 0, -1).Remainder(New(2, 0)))
	// x³ + 1 = (x² − 1)·x + (x + 1)
	assert.Equal(t, Polynomial{1, 1}, New(1, 0, 0, 1).Remainder(New(1, 0, -1)))
	assert.Equal(t, Polynomial{0}, p.Remainder(New(0)))
}

func TestSturmSequence(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := New(1, 0, -1).SturmSequence()
	assert.Equal(t, SturmSequence{{1, 0, -1}, {2, 0}, {1}}, seq)
	assert.Equal(t, 2, seq.SignChanges(-2))
	assert.Equal(t, 0, seq.SignChanges(2))
	assert.Equal(t, 2, seq.CountRoots(-2, 2))
	assert.Equal(t, 1, seq.CountRoots(0.5, 2))
	// last term of a chain is a constant
	seq = fromRoots(1, 2, 3, 4).SturmSequence()
	assert.Equal(t, 0, seq[len(seq)-1].Degree())
	assert.Equal(t, 4, seq.CountRoots(0, 5))
}

func TestSignChangesCountsZeroTerm(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := New(1, 0, -1).SturmSequence()
	// p(1) = 0 forces an increment: (0, 2, 1)
	assert.Equal(t, 1, seq.SignChanges(1))
}

func TestFindRootsQuadratic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := New(1, 0, -1)
	assert.Equal(t, []float64{-1, 1}, FindRoots(p, -2, 2))
	assert.Equal(t, []float64{1}, FindRoots(p, 0, 2))
	assert.Equal(t, []float64{1}, FindRoots(p, 1, 2)) // endpoints are inclusive
	assert.Empty(t, FindRoots(New(1, 0, 1), -5, 5))
	assert.Equal(t, []float64{2}, FindRoots(fromRoots(2, 2), 0, 4))
}

func TestFindRootsLinearAndConstant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, []float64{0.5}, FindRoots(New(0, 0, 2, -1), 0, 1))
	assert.Empty(t, FindRoots(New(2, -1), 0.6, 1))
	assert.Empty(t, FindRoots(New(3), 0, 1))
	assert.Empty(t, FindRoots(New(0, 0), 0, 1))
}

func TestFindRootsCubic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	approx := cmpopts.EquateApprox(0, 1e-3)
	diff(t, []float64{1, 2, 3}, FindRoots(New(1, -6, 11, -6), 0, 4), approx)
	diff(t, []float64{2, 3}, FindRoots(New(1, -6, 11, -6), 1.5, 4), approx)
	// one real root: x³ + x − 2 = (x − 1)(x² + x + 2)
	diff(t, []float64{1}, FindRoots(New(1, 0, 1, -2), -10, 10), approx)
	// double root: x³ − 3x + 2 = (x − 1)²(x + 2)
	diff(t, []float64{-2, 1}, FindRoots(New(1, 0, -3, 2), -3, 3), approx)
	// negative radicand in the one-root case
	diff(t, []float64{-1}, FindRoots(New(1, 0, 1, 2), -10, 10), approx)
}

func TestFindRootsQuartic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	roots := FindRoots(fromRoots(1, 2, 3, 4), 0, 5)
	diff(t, []float64{1, 2, 3, 4}, roots, cmpopts.EquateApprox(0, 1e-3))
	roots = FindRoots(fromRoots(1, 2, 3, 4), 2.5, 5)
	diff(t, []float64{3, 4}, roots, cmpopts.EquateApprox(0, 1e-3))
}

func TestFindRootsAtIntervalEnds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := fromRoots(0, 0.3, 0.6, 1)
	// the root at b is lost, the one at a is approximated by a midpoint
	roots := FindRoots(p, -1, 1)
	diff(t, []float64{0, 0.3, 0.6}, roots, cmpopts.EquateApprox(0, 1e-3))
	assert.NotEqual(t, 0.0, roots[0])
	// a wider interval finds all of them
	roots = FindRoots(p, -1, 2)
	diff(t, []float64{0, 0.3, 0.6, 1}, roots, cmpopts.EquateApprox(0, 1e-3))
	// closed form solutions include both ends
	diff(t, []float64{0, 1}, FindRoots(fromRoots(0, 1), 0, 1))
}

func TestFindRootsAgainstCompanionMatrix(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, rr := range [][]float64{
		{-1, 0.5, 1.5, 2, 3},
		{-0.75, 0.1, 0.35, 0.8, 1.2, 2.4},
	} {
		p := fromRoots(rr...)
		want := companionRoots(t, p)
		got := FindRoots(p, -2, 4)
		diff(t, want, got, cmpopts.EquateApprox(0, 1e-3))
	}
	// x⁵ − x has roots −1, 0, 1 and a pair of complex roots
	p := New(1, 0, 0, 0, -1, 0)
	diff(t, companionRoots(t, p), FindRoots(p, -3, 3.3), cmpopts.EquateApprox(0, 1e-3))
}

func TestSolverTolerance(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Solver{Tolerance: 1e-6, NewtonTolerance: 1e-10, MaxIterations: 200}
	roots := s.FindRoots(fromRoots(0.1, 0.2, 0.3, 0.4, 0.5), 0, 1)
	diff(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, roots, cmpopts.EquateApprox(0, 1e-8))
}

func TestHybridNewton(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := func(x float64) float64 { return x*x - 2 }
	df := func(x float64) float64 { return 2 * x }
	assert.InDelta(t, math.Sqrt2, HybridNewton(0, 2, f, df, 1e-4), 1e-4)
	assert.InDelta(t, math.Sqrt2, HybridNewton(2, 0, f, df, 1e-4), 1e-4)
	// a derivative of 0 at the midpoint must fall back to bisection
	g := func(x float64) float64 { return x*x*x - 0.001 }
	dg := func(x float64) float64 { return 3 * x * x }
	assert.InDelta(t, 0.1, HybridNewton(-1, 1, g, dg, 1e-6), 1e-5)
}

func TestBisection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.InDelta(t, math.Pi/2, Bisection(0, 3, math.Cos, 1e-9), 1e-8)
	assert.InDelta(t, 0.5, Bisection(0, 1, func(x float64) float64 { return 2*x - 1 }, 1e-9), 1e-9)
}
