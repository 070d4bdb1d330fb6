package polygon

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/spline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vecApprox(t *testing.T, want, got mgl64.Vec3, tol float64) {
	t.Helper()
	if want.Sub(got).Len() > tol {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// crossing is a straight spline of length 1 along x at z = 0.5, crossing
// the default spline in its middle.
func crossing() *spline.Spline {
	return spline.MustNew([]spline.ControlPoint{
		spline.NewControlPoint(mgl64.Vec3{-0.5, 0, 0.5}, mgl64.Vec3{-5.0 / 6, 0, 0.5}, mgl64.Vec3{-1.0 / 6, 0, 0.5}),
		spline.NewControlPoint(mgl64.Vec3{0.5, 0, 0.5}, mgl64.Vec3{1.0 / 6, 0, 0.5}, mgl64.Vec3{5.0 / 6, 0, 0.5}),
	})
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(mgl64.Vec3{0, 0, 0}).Knot(mgl64.Vec3{1, 0, 3}).Knot(mgl64.Vec3{3, 0, 0}).Cycle()
	tracer().Infof("pg = %s", AsString(pg))
	assert.Equal(t, 3, pg.N())
	assert.Equal(t, 1, pg.Contours())
	assert.InDelta(t, 4.5, Area(pg), 1e-12)
	assert.True(t, NullPolygon().Cycle().IsEmpty())
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{4, 0, 1})
	tracer().Infof("box = %s", AsString(box))
	assert.Equal(t, 4, box.N())
	assert.InDelta(t, 16.0, Area(box), 1e-12)
	assert.True(t, box.Contains(mgl64.Vec3{2, 7, 3}))
	assert.False(t, box.Contains(mgl64.Vec3{5, 0, 3}))
}

func TestBoxWithHole(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	outer := Box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 4})
	inner := Box(mgl64.Vec3{1, 0, 1}, mgl64.Vec3{3, 0, 3})
	frame := outer.Difference(inner)
	tracer().Infof("frame = %s", AsString(frame))
	assert.InDelta(t, 12.0, Area(frame), 1e-9)
	assert.False(t, frame.Contains(mgl64.Vec3{2, 0, 2}))
	assert.True(t, frame.Contains(mgl64.Vec3{0.5, 0, 2}))
	assert.InDelta(t, 4.0, Overlap(outer, inner), 1e-9)
}

func TestRibbon(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := spline.Default()
	mesh, err := Ribbon(s, 0.5, 4, mgl64.Ident4())
	require.NoError(t, err)
	assert.Equal(t, 10, len(mesh.Vertices))
	assert.Equal(t, 10, len(mesh.Normals))
	assert.Equal(t, 8, mesh.TriangleCount())
	assert.Equal(t, []int{0, 2, 1, 2, 3, 1}, mesh.Indices[:6])
	vecApprox(t, mgl64.Vec3{-0.25, 0, 0}, mesh.Vertices[0], 1e-9)
	vecApprox(t, mgl64.Vec3{0.25, 0, 0}, mesh.Vertices[1], 1e-9)
	vecApprox(t, mgl64.Vec3{0.25, 0, 1}, mesh.Vertices[9], 1e-9)
	for _, n := range mesh.Normals {
		vecApprox(t, splines.Up, n, 1e-9)
	}
	b := mesh.Bounds()
	vecApprox(t, mgl64.Vec3{-0.25, 0, 0}, b.Min, 1e-9)
	vecApprox(t, mgl64.Vec3{0.25, 0, 1}, b.Max, 1e-9)
	// placed in the world
	mesh, err = Ribbon(s, 0.5, 4, splines.Translation(mgl64.Vec3{1, 0, 0}))
	require.NoError(t, err)
	vecApprox(t, mgl64.Vec3{0.75, 0, 0}, mesh.Vertices[0], 1e-9)
}

func TestRibbonErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := spline.Default()
	_, err := Ribbon(s, 0, 4, mgl64.Ident4())
	assert.True(t, errors.Is(err, ErrInvalidWidth))
	_, err = Ribbon(s, 1, 0, mgl64.Ident4())
	assert.True(t, errors.Is(err, ErrInvalidResolution))
	_, err = Footprint(s, -1, 4)
	assert.True(t, errors.Is(err, ErrInvalidWidth))
}

func TestStraightFootprint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg, err := Footprint(spline.Default(), 0.5, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, pg.Contours())
	assert.Equal(t, 18, pg.N())
	assert.InDelta(t, 0.5, Area(pg), 1e-6)
	assert.True(t, pg.Contains(mgl64.Vec3{0.1, 0, 0.5}))
	assert.False(t, pg.Contains(mgl64.Vec3{0.3, 0, 0.5}))
}

func TestCurvedFootprint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := spline.MustNew([]spline.ControlPoint{
		spline.NewControlPoint(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1}),
		spline.NewControlPoint(mgl64.Vec3{2, 0, 2}, mgl64.Vec3{1, 0, 2}, mgl64.Vec3{3, 0, 2}),
		spline.NewControlPoint(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{4, 0, 1}, mgl64.Vec3{4, 0, -1}),
	})
	const w = 0.2
	pg, err := Footprint(s, w, 16)
	require.NoError(t, err)
	tracer().Infof("footprint = %s", AsString(pg))
	assert.InEpsilon(t, w*s.Length(), Area(pg), 0.05)
	assert.True(t, pg.Contains(s.Point(s.Length()/2)))
}

func TestOverlap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const w = 0.5
	a, err := Footprint(spline.Default(), w, 2)
	require.NoError(t, err)
	b, err := Footprint(crossing(), w, 2)
	require.NoError(t, err)
	assert.InDelta(t, w*w, Overlap(a, b), 1e-6)
	assert.InDelta(t, w*w, Overlap(b, a), 1e-6)
	// moved far away, the tracks do not touch
	moved := spline.NewTransformed(spline.Default(), splines.Translation(mgl64.Vec3{10, 0, 0}))
	c, err := Footprint(moved, w, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, Overlap(a, c), 1e-12)
	assert.InDelta(t, w, Area(c), 1e-6)
}
