package polyn

// SturmSequence is a chain of polynomials
//
//	p, p', −rem(p,p'), −rem(p',−rem(p,p')), …
//
// used to count the real roots of p within an interval.
type SturmSequence []Polynomial

// SturmSequence builds the Sturm chain for p (leading zeros removed first).
// The chain ends with the first remainder of degree 0. An exactly-zero
// remainder (p has multiple roots) has degree 0 as well and is kept as the
// final element.
func (p Polynomial) SturmSequence() SturmSequence {
	p = p.RemoveLeadingZeros()
	seq := SturmSequence{p, p.Derivative()}
	if len(p) <= 1 {
		return seq
	}
	for {
		n := len(seq)
		rem := seq[n-2].Remainder(seq[n-1]).Negate()
		seq = append(seq, rem)
		if len(rem) <= 1 {
			break
		}
	}
	tracer().Debugf("Sturm sequence of length %d for %s", len(seq), p)
	return seq
}

// SignChanges counts the sign changes of the sequence evaluated at x.
//
// Whenever the previous term evaluates to exactly 0, the count is
// incremented unconditionally. This is a simplification of Sturm's theorem
// (which would skip zero terms); it is kept as is, root isolation depends on
// this counting rule.
func (seq SturmSequence) SignChanges(x float64) int {
	if len(seq) == 0 {
		return 0
	}
	c := 0
	lv := seq[0].Evaluate(x)
	for i := 1; i < len(seq); i++ {
		v := seq[i].Evaluate(x)
		if lv == 0 || v*lv < 0 {
			c++
		}
		lv = v
	}
	return c
}

// CountRoots returns the number of distinct real roots of the sequence's
// polynomial in (a,b], as estimated by sign changes.
func (seq SturmSequence) CountRoots(a, b float64) int {
	return seq.SignChanges(a) - seq.SignChanges(b)
}
