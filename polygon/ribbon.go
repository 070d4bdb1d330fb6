package polygon

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines/curve"
	"github.com/npillmayer/splines/spline"
)

// Mesh is an indexed triangle mesh. Every three entries of Indices form a
// triangle.
type Mesh struct {
	Vertices []mgl64.Vec3
	Normals  []mgl64.Vec3
	Indices  []int
}

// TriangleCount is the number of triangles of m.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corners of triangle i.
func (m Mesh) Triangle(i int) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Bounds is the bounding box of the vertices of m.
func (m Mesh) Bounds() curve.Bounds {
	if len(m.Vertices) == 0 {
		return curve.Bounds{}
	}
	b := curve.BoundsAt(m.Vertices[0])
	for _, v := range m.Vertices[1:] {
		b = b.Encapsulate(v)
	}
	return b
}

func checkRibbon(width float64, res int) error {
	if !(width > 0) || math.IsInf(width, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidWidth, width)
	}
	if res < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidResolution, res)
	}
	return nil
}

// Ribbon builds a flat strip of the given width along p. Every segment is
// sampled res+1 times; each sample contributes two vertices at ±width/2
// along its right axis, both with the sample's up axis as normal.
// Consecutive vertex pairs are joined by two triangles. Samples are mapped
// by m before the vertices are placed.
func Ribbon(p spline.Path, width float64, res int, m mgl64.Mat4) (Mesh, error) {
	if err := checkRibbon(width, res); err != nil {
		return Mesh{}, err
	}
	var mesh Mesh
	hw := width / 2
	for i := 0; i < p.SegmentCount(); i++ {
		for smp := range p.Segment(i).Samples(res) {
			smp = smp.Transform(m)
			pt, right := smp.Point(), smp.Right().Mul(hw)
			mesh.Vertices = append(mesh.Vertices, pt.Sub(right), pt.Add(right))
			mesh.Normals = append(mesh.Normals, smp.Up(), smp.Up())
		}
	}
	quads := len(mesh.Vertices)/2 - 1
	for i := 0; i < quads; i++ {
		k := 2 * i
		mesh.Indices = append(mesh.Indices, k, k+2, k+1, k+2, k+3, k+1)
	}
	tracer().Debugf("ribbon with %d vertices, %d triangles", len(mesh.Vertices), mesh.TriangleCount())
	return mesh, nil
}

// outline is the ground plane contour of the ribbon around segment s:
// the left edge forward, then the right edge backwards.
func outline(s spline.Segment, hw float64, res int) Polygon {
	var left, right []mgl64.Vec3
	for smp := range s.Samples(res) {
		pt, r := smp.Point(), smp.Right().Mul(hw)
		left = append(left, pt.Sub(r))
		right = append(right, pt.Add(r))
	}
	b := NullPolygon()
	for _, k := range left {
		b.Knot(k)
	}
	for i := len(right) - 1; i >= 0; i-- {
		b.Knot(right[i])
	}
	return b.Cycle()
}

// Footprint projects the ribbon of the given width along p onto the ground
// plane. The outlines of the segments are united into one polygon.
func Footprint(p spline.Path, width float64, res int) (Polygon, error) {
	if err := checkRibbon(width, res); err != nil {
		return Polygon{}, err
	}
	var pg Polygon
	for i := 0; i < p.SegmentCount(); i++ {
		pg = pg.Union(outline(p.Segment(i), width/2, res))
	}
	tracer().Debugf("footprint with %d contours", pg.Contours())
	return pg, nil
}

// Overlap is the area of the intersection of two footprints.
func Overlap(a, b Polygon) float64 {
	return Area(a.Intersection(b))
}
