package spline

import (
	"fmt"
	"iter"
	"math"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/splines/curve"
)

// Path is the query surface shared by splines and their transformed views.
type Path interface {
	Length() float64
	Loop() bool
	SegmentCount() int
	Segment(i int) Segment
	SegmentAtDistance(distance float64) (int, float64)
	Point(distance float64) mgl64.Vec3
	Sample(distance float64) Sample
	ClosestPoint(x mgl64.Vec3) mgl64.Vec3
	ClosestSample(x mgl64.Vec3) Sample
}

// Spline is an ordered list of control points with the segments between
// them.
//
// segments[i] always connects points[i] with points[(i+1) mod N], so there
// are as many segments as control points. The last one closes the loop and
// is ignored unless the spline loops.
type Spline struct {
	loop     bool
	length   float64
	points   []ControlPoint
	segments []Segment
	opts     Options
	settings curve.Settings
}

var _ Path = (*Spline)(nil)

// New creates a spline through the given control points. At least two
// control points are required.
func New(points []ControlPoint, opts ...Option) (*Spline, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewControlPoints, len(points))
	}
	for i, cp := range points {
		if !cp.IsValid() {
			return nil, fmt.Errorf("%w: control point %d is %v", ErrInvalidControlPoint, i, cp)
		}
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	s := &Spline{
		points:   append([]ControlPoint(nil), points...),
		opts:     o,
		settings: o.Settings(),
	}
	s.segments = make([]Segment, len(s.points))
	for i := range s.points {
		s.segments[i] = s.build(i)
	}
	s.averageAll()
	s.updateLength()
	tracer().Debugf("new spline with %d control points, length %.4f", len(s.points), s.length)
	return s, nil
}

// MustNew is like New, but panics on error.
func MustNew(points []ControlPoint, opts ...Option) *Spline {
	s, err := New(points, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Default creates a straight spline of length 1 from the origin along +z.
func Default(opts ...Option) *Spline {
	return MustNew([]ControlPoint{
		NewControlPoint(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -0.25}, mgl64.Vec3{0, 0, 0.25}),
		NewControlPoint(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 0.75}, mgl64.Vec3{0, 0, 1.25}),
	}, opts...)
}

// Clone returns an independent copy of s.
func (s *Spline) Clone() *Spline {
	c := *s
	c.points = append([]ControlPoint(nil), s.points...)
	c.segments = append([]Segment(nil), s.segments...)
	return &c
}

// Options returns the options s has been created with.
func (s *Spline) Options() Options { return s.opts }

// Loop reports whether s is closed.
func (s *Spline) Loop() bool { return s.loop }

// SetLoop opens or closes s.
func (s *Spline) SetLoop(loop bool) {
	if s.loop != loop {
		s.loop = loop
		s.updateLength()
	}
}

// Length is the arc length of s.
func (s *Spline) Length() float64 { return s.length }

// ControlPointCount is the number of control points of s.
func (s *Spline) ControlPointCount() int { return len(s.points) }

// ControlPoint returns control point i. It panics if i is out of range.
func (s *Spline) ControlPoint(i int) ControlPoint { return s.points[i] }

// SegmentCount is the number of segments taking part in queries: one less
// than the number of control points, unless s loops.
func (s *Spline) SegmentCount() int {
	if s.loop {
		return len(s.segments)
	}
	return len(s.segments) - 1
}

// Segment returns segment i, connecting control points i and i+1 (mod N).
// The closing segment is accessible even if s does not loop.
// It panics if i is out of range.
func (s *Spline) Segment(i int) Segment { return s.segments[i] }

// --- Mutation --------------------------------------------------------------

func (s *Spline) loopIndex(i int) int {
	n := len(s.points)
	return ((i % n) + n) % n
}

// build creates segment i from the current control points.
func (s *Spline) build(i int) Segment {
	return buildSegment(s.points[i], s.points[s.loopIndex(i+1)], s.settings)
}

func checkPoint(cp ControlPoint) error {
	if !cp.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidControlPoint, cp)
	}
	return nil
}

// SetControlPoint replaces control point i. The two segments touching it
// are rebuilt.
func (s *Spline) SetControlPoint(i int, cp ControlPoint) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: set %d of %d", ErrIndexOutOfRange, i, len(s.points))
	}
	if err := checkPoint(cp); err != nil {
		return err
	}
	s.points[i] = cp
	pre := s.loopIndex(i - 1)
	s.segments[i] = s.build(i)
	s.segments[pre] = s.build(pre)
	s.averageAround(i)
	s.updateLength()
	return nil
}

// InsertControlPoint inserts cp before control point i. i may equal the
// number of control points, which appends cp.
func (s *Spline) InsertControlPoint(i int, cp ControlPoint) error {
	if i < 0 || i > len(s.points) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, i, len(s.points))
	}
	if err := checkPoint(cp); err != nil {
		return err
	}
	s.points = append(s.points, ControlPoint{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = cp
	s.segments = append(s.segments, Segment{})
	copy(s.segments[i+1:], s.segments[i:])
	pre := s.loopIndex(i - 1)
	s.segments[i] = s.build(i)
	s.segments[pre] = s.build(pre)
	s.averageAround(i)
	s.updateLength()
	return nil
}

// AddControlPoint appends cp.
func (s *Spline) AddControlPoint(cp ControlPoint) error {
	return s.InsertControlPoint(len(s.points), cp)
}

// RemoveControlPoint deletes control point i. The last remaining control
// point cannot be removed.
func (s *Spline) RemoveControlPoint(i int) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfRange, i, len(s.points))
	}
	if len(s.points) == 1 {
		return ErrLastControlPoint
	}
	s.points = append(s.points[:i], s.points[i+1:]...)
	s.segments = append(s.segments[:i], s.segments[i+1:]...)
	pre := s.loopIndex(s.loopIndex(i) - 1)
	s.segments[pre] = s.build(pre)
	s.averageAroundSegment(pre)
	s.updateLength()
	return nil
}

// Split inserts a control point at distance, keeping the shape of the
// spline. It returns the index of the new control point.
func (s *Spline) Split(distance float64) (int, error) {
	i, d := s.SegmentAtDistance(distance)
	seg := s.segments[i]
	left, right, angle := seg.Split(seg.Parameter(d))
	cp := s.points[i]
	cp.OutTangent = left.ATan
	if err := s.SetControlPoint(i, cp); err != nil {
		return 0, err
	}
	next := s.loopIndex(i + 1)
	cp = s.points[next]
	cp.InTangent = right.BTan
	if err := s.SetControlPoint(next, cp); err != nil {
		return 0, err
	}
	mid := ControlPoint{Point: left.B, InTangent: left.BTan, OutTangent: right.ATan, Angle: angle}
	if err := s.InsertControlPoint(next, mid); err != nil {
		return 0, err
	}
	tracer().Debugf("split segment %d at distance %.4f", i, distance)
	return next, nil
}

func (s *Spline) average(a, b int) {
	AverageUpVectors(&s.segments[a], &s.segments[b])
}

// averageAround averages the junctions before, at and after control
// point i.
func (s *Spline) averageAround(i int) {
	for k := -1; k <= 1; k++ {
		j := s.loopIndex(i + k)
		s.average(s.loopIndex(j-1), j)
	}
}

// averageAroundSegment averages both junctions of segment i.
func (s *Spline) averageAroundSegment(i int) {
	s.average(s.loopIndex(i-1), i)
	s.average(i, s.loopIndex(i+1))
}

func (s *Spline) averageAll() {
	for i := 1; i < len(s.segments); i++ {
		s.average(i-1, i)
	}
	s.average(len(s.segments)-1, 0)
}

func (s *Spline) updateLength() {
	s.length = 0
	for i := 0; i < s.SegmentCount(); i++ {
		s.length += s.segments[i].Length()
	}
}

// --- Queries ---------------------------------------------------------------

// SegmentAtDistance locates distance on s. It returns the index of the
// first segment whose cumulative length reaches distance, and the distance
// within that segment. distance is clamped to [0,Length] for an open spline
// and wrapped for a loop.
func (s *Spline) SegmentAtDistance(distance float64) (int, float64) {
	n := s.SegmentCount()
	if n == 0 {
		return 0, 0
	}
	distance = s.normalize(distance)
	l := 0.0
	for i := 0; i < n; i++ {
		seg := s.segments[i].Length()
		l += seg
		if l >= distance {
			return i, distance - (l - seg)
		}
	}
	return n - 1, s.segments[n-1].Length()
}

func (s *Spline) normalize(distance float64) float64 {
	if s.length == 0 {
		return 0
	}
	if s.loop {
		return math.Mod(math.Mod(distance, s.length)+s.length, s.length)
	}
	return mgl64.Clamp(distance, 0, s.length)
}

// Point returns the position at distance.
func (s *Spline) Point(distance float64) mgl64.Vec3 {
	i, d := s.SegmentAtDistance(distance)
	seg := s.segments[i]
	return seg.Point(seg.Parameter(d))
}

// Sample returns position and orientation at distance.
func (s *Spline) Sample(distance float64) Sample {
	i, d := s.SegmentAtDistance(distance)
	seg := s.segments[i]
	return seg.Sample(seg.Parameter(d))
}

type candidate struct {
	segment int
	dist    float64
}

func byDistance(a, b interface{}) int {
	ca, cb := a.(candidate), b.(candidate)
	switch {
	case ca.dist < cb.dist:
		return -1
	case ca.dist > cb.dist:
		return 1
	}
	return ca.segment - cb.segment
}

// ClosestLength finds the point of s nearest to x, returned as segment
// index and parameter. Only the Options.ClosestCandidates segments with the
// nearest bounding boxes are searched, so for overlapping segments the result
// may not be the global optimum.
func (s *Spline) ClosestLength(x mgl64.Vec3) (int, float64) {
	n := s.SegmentCount()
	heap := binaryheap.NewWith(byDistance)
	for i := 0; i < n; i++ {
		heap.Push(candidate{i, s.segments[i].Bounds().Distance(x)})
	}
	segment, t, best := 0, 0.0, math.MaxFloat64
	for k := 0; k < s.opts.ClosestCandidates; k++ {
		top, ok := heap.Pop()
		if !ok {
			break
		}
		c := top.(candidate)
		seg := s.segments[c.segment]
		st := seg.ClosestParameter(x)
		if d := seg.Point(st).Sub(x).Len(); d < best {
			segment, t, best = c.segment, st, d
		}
	}
	return segment, t
}

// ClosestPoint returns the point of s nearest to x.
func (s *Spline) ClosestPoint(x mgl64.Vec3) mgl64.Vec3 {
	i, t := s.ClosestLength(x)
	return s.segments[i].Point(t)
}

// ClosestSample returns the sample of s nearest to x.
func (s *Spline) ClosestSample(x mgl64.Vec3) Sample {
	i, t := s.ClosestLength(x)
	return s.segments[i].Sample(t)
}

// ClosestDistance returns the distance along s of the point nearest to x.
func (s *Spline) ClosestDistance(x mgl64.Vec3) float64 {
	i, t := s.ClosestLength(x)
	d := 0.0
	for k := 0; k < i; k++ {
		d += s.segments[k].Length()
	}
	return d + s.segments[i].ArcLength(t)
}

// --- Iteration -------------------------------------------------------------

// ControlPoints iterates the control points of s with their indices.
func (s *Spline) ControlPoints() iter.Seq2[int, ControlPoint] {
	return func(yield func(int, ControlPoint) bool) {
		for i, cp := range s.points {
			if !yield(i, cp) {
				return
			}
		}
	}
}

// Segments iterates the segments taking part in queries.
func (s *Spline) Segments() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i := 0; i < s.SegmentCount(); i++ {
			if !yield(i, s.segments[i]) {
				return
			}
		}
	}
}

// Samples iterates res+1 samples per segment, see Segment.Samples.
// res < 1 selects the resolution configured in Options.
func (s *Spline) Samples(res int) iter.Seq[Sample] {
	if res < 1 {
		res = s.opts.Resolution
	}
	return func(yield func(Sample) bool) {
		for _, seg := range s.Segments() {
			for sample := range seg.Samples(res) {
				if !yield(sample) {
					return
				}
			}
		}
	}
}
