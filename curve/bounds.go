package curve

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines/polyn"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// BoundsAt creates an empty box located at p.
func BoundsAt(p mgl64.Vec3) Bounds {
	return Bounds{Min: p, Max: p}
}

// Encapsulate returns the smallest box containing b and p.
func (b Bounds) Encapsulate(p mgl64.Vec3) Bounds {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return b.Encapsulate(o.Min).Encapsulate(o.Max)
}

// Expand grows b by d in every direction.
func (b Bounds) Expand(d float64) Bounds {
	delta := mgl64.Vec3{d, d, d}
	return Bounds{Min: b.Min.Sub(delta), Max: b.Max.Add(delta)}
}

// Contains is a predicate: is p inside b (borders included)?
func (b Bounds) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ClosestPoint returns the point of b nearest to p. For p inside b, this is p.
func (b Bounds) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		p[i] = mgl64.Clamp(p[i], b.Min[i], b.Max[i])
	}
	return p
}

// Distance returns the distance between p and the nearest point of b.
// It is a lower bound for the distance of p to anything inside b.
func (b Bounds) Distance(p mgl64.Vec3) float64 {
	return b.ClosestPoint(p).Sub(p).Len()
}

// Center of b.
func (b Bounds) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size is the extent of b along each axis.
func (b Bounds) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%v … %v]", b.Min, b.Max)
}

// Bounds computes the tight axis-aligned bounding box of c over [0,1]:
// the endpoints plus every point where a coordinate's derivative vanishes.
func (c Poly3) Bounds() Bounds {
	b := BoundsAt(c.End()).Encapsulate(c.Start())
	for i := 0; i < 3; i++ {
		dp := polyn.New(3*c.A[i], 2*c.B[i], c.C[i])
		for _, t := range polyn.FindRoots(dp, 0, 1) {
			b = b.Encapsulate(c.Point(t))
		}
	}
	return b
}
