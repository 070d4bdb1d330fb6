package spline

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines"
)

// Follower travels along a path at a constant speed.
//
// In exact mode every step adds speed·dt to Distance and evaluates the path
// there. In fast mode the follower keeps a segment and a curve parameter and
// advances the parameter by speed·dt/|p'(t)|, which avoids the arc length
// inversion; Distance is then accumulated from the distance actually
// travelled. Fast mode works well for small steps.
type Follower struct {
	Path     Path
	Speed    float64 // distance per time unit, may be negative
	Distance float64 // position on the path
	FastMode bool

	lastDistance float64
	segment      int
	t            float64
	synced       bool
	sample       Sample
}

// NewFollower creates a follower at the start of p.
func NewFollower(p Path, speed float64, fast bool) *Follower {
	f := &Follower{Path: p, Speed: speed, FastMode: fast}
	f.sample = p.Sample(0)
	return f
}

// Sample is the current position and orientation of the follower.
func (f *Follower) Sample() Sample { return f.sample }

// Point is the current position of the follower.
func (f *Follower) Point() mgl64.Vec3 { return f.sample.Point() }

// Segment returns the segment index and curve parameter of the follower
// in fast mode.
func (f *Follower) Segment() (int, float64) { return f.segment, f.t }

// Advance moves the follower by dt time units.
func (f *Follower) Advance(dt float64) {
	if f.Path == nil {
		return
	}
	if !f.FastMode {
		f.Distance = f.clamp(f.Distance + dt*f.Speed)
		f.sample = f.Path.Sample(f.Distance)
		return
	}
	if !f.synced || f.lastDistance != f.Distance {
		// Distance has been changed from outside, relocate
		var d float64
		f.segment, d = f.Path.SegmentAtDistance(f.Distance)
		f.t = f.Path.Segment(f.segment).Parameter(d)
		f.sample = f.Path.Segment(f.segment).Sample(f.t)
		f.lastDistance, f.synced = f.Distance, true
		return
	}
	speed := f.Path.Segment(f.segment).D1(splines.Clamp01(f.t)).Len()
	if speed > 0 {
		f.t += dt * f.Speed / speed
	}
	f.nextSegment()
	last := f.sample.Point()
	f.sample = f.Path.Segment(f.segment).Sample(f.t)
	travelled := f.sample.Point().Sub(last).Len()
	f.Distance = f.clamp(f.Distance + math.Copysign(travelled, f.Speed))
	f.lastDistance = f.Distance
}

// nextSegment moves to a neighbouring segment once t leaves [0,1].
func (f *Follower) nextSegment() {
	if f.t >= 0 && f.t <= 1 {
		return
	}
	n := f.Path.SegmentCount()
	next := f.segment + int(math.Floor(f.t))
	wrapped := math.Mod(math.Mod(f.t, 1)+1, 1)
	switch {
	case f.Path.Loop():
		f.segment = ((next % n) + n) % n
		f.t = wrapped
	case next < 0:
		f.segment, f.t = 0, 0
	case next > n-1:
		f.segment, f.t = n-1, 1
	default:
		f.segment, f.t = next, wrapped
	}
}

func (f *Follower) clamp(distance float64) float64 {
	if f.Path.Loop() {
		return distance
	}
	return mgl64.Clamp(distance, 0, f.Path.Length())
}
