package polygon

import (
	"fmt"
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines"
)

// Polygon is a set of closed contours in the ground plane. Contours nested
// inside an odd number of other contours are holes.
type Polygon struct {
	pg polyclip.Polygon
}

// ground projects a point onto the ground plane.
func ground(p mgl64.Vec3) polyclip.Point {
	return polyclip.Point{X: p.X(), Y: p.Z()}
}

// Builder collects knots of a single contour.
type Builder struct {
	contour polyclip.Contour
}

// NullPolygon starts a polygon without any knots.
func NullPolygon() *Builder {
	return &Builder{}
}

// Knot appends a knot. Only the x and z coordinates of p are used.
func (b *Builder) Knot(p mgl64.Vec3) *Builder {
	b.contour.Add(ground(p))
	return b
}

// Cycle closes the contour and returns the polygon.
func (b *Builder) Cycle() Polygon {
	var pg polyclip.Polygon
	if len(b.contour) > 0 {
		pg.Add(b.contour)
	}
	return Polygon{pg: pg}
}

// Box is the rectangle spanned by the diagonal corners a and b.
func Box(a, b mgl64.Vec3) Polygon {
	return NullPolygon().
		Knot(a).
		Knot(mgl64.Vec3{b.X(), 0, a.Z()}).
		Knot(b).
		Knot(mgl64.Vec3{a.X(), 0, b.Z()}).
		Cycle()
}

// N is the number of knots over all contours.
func (p Polygon) N() int {
	return p.pg.NumVertices()
}

// Contours is the number of contours.
func (p Polygon) Contours() int {
	return len(p.pg)
}

// IsEmpty is true for a polygon without contours.
func (p Polygon) IsEmpty() bool {
	return p.N() == 0
}

// Knots returns the knots of contour i, lifted to y = 0.
func (p Polygon) Knots(i int) []mgl64.Vec3 {
	knots := make([]mgl64.Vec3, len(p.pg[i]))
	for j, k := range p.pg[i] {
		knots[j] = mgl64.Vec3{k.X, 0, k.Y}
	}
	return knots
}

// Union returns p ∪ q.
func (p Polygon) Union(q Polygon) Polygon {
	return p.construct(polyclip.UNION, q)
}

// Intersection returns p ∩ q.
func (p Polygon) Intersection(q Polygon) Polygon {
	return p.construct(polyclip.INTERSECTION, q)
}

// Difference returns p \ q.
func (p Polygon) Difference(q Polygon) Polygon {
	return p.construct(polyclip.DIFFERENCE, q)
}

func (p Polygon) construct(op polyclip.Op, q Polygon) Polygon {
	switch {
	case p.IsEmpty() && op != polyclip.UNION:
		return Polygon{}
	case p.IsEmpty():
		return q
	case q.IsEmpty() && op == polyclip.INTERSECTION:
		return Polygon{}
	case q.IsEmpty():
		return p
	}
	return Polygon{pg: p.pg.Construct(op, q.pg)}
}

// depth counts the other contours enclosing contour i.
func (p Polygon) depth(i int) int {
	if len(p.pg[i]) == 0 {
		return 0
	}
	probe := p.pg[i][0]
	n := 0
	for j, c := range p.pg {
		if j != i && c.Contains(probe) {
			n++
		}
	}
	return n
}

// Contains reports whether x, projected onto the ground plane, lies inside
// p.
func (p Polygon) Contains(x mgl64.Vec3) bool {
	n := 0
	for _, c := range p.pg {
		if c.Contains(ground(x)) {
			n++
		}
	}
	return n%2 == 1
}

// SignedArea is the shoelace area of contour c. It is positive for
// counter-clockwise contours, looking down the y-axis onto the x/z plane
// with x to the right and z up.
func SignedArea(c []mgl64.Vec3) float64 {
	var a float64
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X()*c[j].Z() - c[j].X()*c[i].Z()
	}
	return a / 2
}

// Area is the area covered by p, with holes subtracted, rounded to ε.
func Area(p Polygon) float64 {
	var a float64
	for i := range p.pg {
		ca := math.Abs(SignedArea(p.Knots(i)))
		if p.depth(i)%2 == 1 {
			ca = -ca
		}
		a += ca
	}
	return splines.Round(a)
}

// AsString returns a textual representation of p.
func AsString(p Polygon) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, c := range p.pg {
		if i > 0 {
			sb.WriteString(" ")
		}
		for _, k := range c {
			fmt.Fprintf(&sb, "(%.4g,%.4g)--", k.X, k.Y)
		}
		sb.WriteString("cycle")
	}
	sb.WriteString("}")
	return sb.String()
}

func (p Polygon) String() string {
	return AsString(p)
}
