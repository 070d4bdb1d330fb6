package curve

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func vecApprox(t *testing.T, want, got mgl64.Vec3, tol float64) {
	t.Helper()
	if want.Sub(got).Len() > tol {
		t.Errorf("expected %v, got %v", want, got)
	}
}

var (
	wiggly = Points{
		A:    mgl64.Vec3{0, 0, 0},
		ATan: mgl64.Vec3{1, 2, 0.5},
		BTan: mgl64.Vec3{2, -1, 1},
		B:    mgl64.Vec3{3, 1, -0.5},
	}
	arch = Points{
		A:    mgl64.Vec3{0, 0, 0},
		ATan: mgl64.Vec3{0, 1, 0},
		BTan: mgl64.Vec3{1, 1, 0},
		B:    mgl64.Vec3{1, 0, 0},
	}
	scurve = Points{
		A:    mgl64.Vec3{0, 0, 0},
		ATan: mgl64.Vec3{1, 1, 0},
		BTan: mgl64.Vec3{2, -1, 0},
		B:    mgl64.Vec3{3, 0, 0},
	}
	// uniformly parametrized straight line of length 3
	line = Points{
		A:    mgl64.Vec3{0, 0, 0},
		ATan: mgl64.Vec3{1, 0, 0},
		BTan: mgl64.Vec3{2, 0, 0},
		B:    mgl64.Vec3{3, 0, 0},
	}
)

func TestConversion(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := FromPoints(scurve)
	assert.Equal(t, Poly3{
		A: mgl64.Vec3{0, 6, 0},
		B: mgl64.Vec3{0, -9, 0},
		C: mgl64.Vec3{3, 3, 0},
		D: mgl64.Vec3{0, 0, 0},
	}, c)
	p := FromPoints(wiggly).Points()
	vecApprox(t, wiggly.A, p.A, 1e-12)
	vecApprox(t, wiggly.ATan, p.ATan, 1e-12)
	vecApprox(t, wiggly.BTan, p.BTan, 1e-12)
	vecApprox(t, wiggly.B, p.B, 1e-12)
}

func TestDerivatives(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := FromPoints(wiggly)
	const h = 1e-6
	for _, x := range []float64{0.1, 0.5, 0.9} {
		d1 := c.Point(x + h).Sub(c.Point(x - h)).Mul(1 / (2 * h))
		vecApprox(t, d1, c.D1(x), 1e-5)
		d2 := c.D1(x + h).Sub(c.D1(x - h)).Mul(1 / (2 * h))
		vecApprox(t, d2, c.D2(x), 1e-5)
	}
	vecApprox(t, wiggly.B, c.End(), 1e-12)
	assert.InDelta(t, c.Point(0.4).Y(), c.Axis(1).Evaluate(0.4), 1e-12)
}

func TestBoundsContainCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, p := range []Points{wiggly, arch, scurve, line} {
		c := p.Poly()
		b := c.Bounds()
		tolerant := b.Expand(1e-9)
		for i := 0; i <= 1000; i++ {
			x := float64(i) / 1000
			if !tolerant.Contains(c.Point(x)) {
				t.Fatalf("bounds %v do not contain c(%g) = %v", b, x, c.Point(x))
			}
		}
	}
	b := arch.Poly().Bounds()
	assert.InDelta(t, 0.75, b.Max.Y(), 1e-12)
	assert.InDelta(t, 0.0, b.Min.Y(), 1e-12)
}

func TestBoundsQueries(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := BoundsAt(mgl64.Vec3{0, 0, 0}).Encapsulate(mgl64.Vec3{2, 2, 2})
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, b.Center())
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, b.Size())
	assert.Equal(t, 0.0, b.Distance(mgl64.Vec3{1, 1, 1}))
	assert.Equal(t, 3.0, b.Distance(mgl64.Vec3{5, 1, 1}))
	assert.Equal(t, mgl64.Vec3{2, 1, 0}, b.ClosestPoint(mgl64.Vec3{5, 1, -1}))
	u := b.Union(BoundsAt(mgl64.Vec3{-1, 3, 0}))
	assert.Equal(t, mgl64.Vec3{-1, 0, 0}, u.Min)
	assert.Equal(t, mgl64.Vec3{2, 3, 2}, u.Max)
}

func TestSplitReproducesCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, at := range []float64{0.3, 0.5, 0.85} {
		c := FromPoints(wiggly)
		l, r := c.Split(at)
		for i := 0; i <= 20; i++ {
			s := float64(i) / 20
			vecApprox(t, c.Point(at*s), l.Point(s), 1e-4)
			vecApprox(t, c.Point(at+(1-at)*s), r.Point(s), 1e-4)
		}
	}
}

func TestArcLengthOfLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := line.Poly()
	assert.InDelta(t, 3.0, c.ArcLength(1), 1e-12)
	assert.InDelta(t, 1.5, c.ArcLength(0.5), 1e-12)
	assert.InDelta(t, 3.0, c.ArcLength8(1), 1e-12)
	assert.InDelta(t, 3.0, c.ArcLengthN(1, 12), 1e-12)
	assert.InDelta(t, 3.0, line.ArcLengthSubdivision(1, 3), 1e-12)
	assert.InDelta(t, 1.5, line.ArcLengthSubdivision(0.5, 4), 1e-12)
	assert.Equal(t, 0.0, c.ArcLength(0))
}

func TestArcLengthAgainstHighOrderQuadrature(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, p := range []Points{arch, wiggly} {
		c := p.Poly()
		want := c.ArcLengthN(1, 64)
		assert.InEpsilon(t, want, c.ArcLength(1), 1e-3)
		assert.InEpsilon(t, want, c.ArcLength8(1), 1e-4)
		assert.InEpsilon(t, want, p.ArcLengthSubdivision(1, 6), 1e-2)
	}
}

func TestParameterInvertsArcLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, p := range []Points{arch, wiggly, scurve} {
		c := p.Poly()
		for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
			assert.InDelta(t, x, c.Parameter(c.ArcLength(x)), 1e-3)
		}
	}
}

func TestArcLengthPolynomial(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := arch.Poly()
	l := c.ArcLengthPolynomial()
	diff(t, []float64{c.ArcLength(1.0 / 3), c.ArcLength(2.0 / 3), c.ArcLength(1)},
		[]float64{l.Evaluate(1.0 / 3), l.Evaluate(2.0 / 3), l.Evaluate(1)},
		cmpopts.EquateApprox(0, 1e-9))
	assert.Equal(t, 0.0, l.Evaluate(0))
	tp := c.ParameterPolynomial()
	total := c.ArcLength(1)
	assert.InDelta(t, 1.0, tp.Evaluate(total), 1e-9)
	assert.InDelta(t, 0.5, tp.Evaluate(total/2), 1e-2)
	assert.Equal(t, 3, len(line.Poly().ParameterPolynomial())-1)
}

func TestClosestParameter(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := wiggly.Poly()
	for _, x := range []float64{0, 0.2, 0.45, 0.8, 1} {
		assert.InDelta(t, x, c.ClosestParameter(c.Point(x)), 1e-3)
	}
	a := arch.Poly()
	// the apex of the arch, seen from above
	assert.InDelta(t, 0.5, a.ClosestParameter(mgl64.Vec3{0.5, 3, 0}), 1e-3)
	// beyond the end
	assert.Equal(t, 1.0, line.Poly().ClosestParameter(mgl64.Vec3{5, 1, 0}))
	assert.Equal(t, 0.0, line.Poly().ClosestParameter(mgl64.Vec3{-1, 0, 2}))
}

func TestInflection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	x, ok := scurve.Poly().Inflection()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, x, 1e-6)
	_, ok = line.Poly().Inflection()
	assert.False(t, ok)
}

func TestUpVector(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := line.Poly()
	vecApprox(t, mgl64.Vec3{0, 1, 0}, c.UpVector(0, 0, 0.5), 1e-12)
	up := c.UpVector(math.Pi/2, math.Pi/2, 0.3)
	vecApprox(t, mgl64.Vec3{0, 0, 1}, up, 1e-12)
	assert.InDelta(t, math.Pi/2, c.Roll(up, 0.3), 1e-9)
	// roll is interpolated along the curve
	up = c.UpVector(0, math.Pi, 0.5)
	assert.InDelta(t, math.Pi/2, c.Roll(up, 0.5), 1e-9)
}
