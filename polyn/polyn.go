// Package polyn is for arithmetic with real univariate polynomials and for
// finding their real roots.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'splines.polyn'
func tracer() tracing.Trace {
	return tracing.Select("splines.polyn")
}

// Polynomial is a type for real polynomials in one variable
//
//	a.n x^n + ... + a.1 x + a.0
//
// We store the coefficients only, highest degree first. The degree of
// a polynomial is len−1. The zero polynomial is {0}.
type Polynomial []float64

// New creates a polynomial from its coefficients, highest degree first.
//
// Use it as
//
//	polyn.New(1, 0, -1)
//
// to get
//
//	P(x) = x² − 1
func New(coeff ...float64) Polynomial {
	if len(coeff) == 0 {
		return Polynomial{0}
	}
	p := make(Polynomial, len(coeff))
	copy(p, coeff)
	return p
}

// Degree returns the formal degree of p, i.e. the number of coefficients
// minus one. Leading zeros are counted; call RemoveLeadingZeros first to
// get the true degree.
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// IsZero is a predicate: are all coefficients of p exactly 0?
func (p Polynomial) IsZero() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// Evaluate evaluates p at t with Horner's scheme. The empty polynomial
// evaluates to 0.
func (p Polynomial) Evaluate(t float64) float64 {
	var value float64
	for _, c := range p {
		value = value*t + c
	}
	return value
}

// Derivative returns p', with degree one less than p. The derivative of
// a constant is the zero polynomial.
func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{0}
	}
	n := len(p) - 1
	derv := make(Polynomial, n)
	order := float64(n)
	for i := 0; i < n; i++ {
		derv[i] = p[i] * order
		order--
	}
	return derv
}

// Negate returns −p.
func (p Polynomial) Negate() Polynomial {
	neg := make(Polynomial, len(p))
	for i, c := range p {
		neg[i] = -c
	}
	return neg
}

// RemoveLeadingZeros strips exactly-zero leading coefficients. If all
// coefficients are zero, the result is the zero polynomial {0}.
// p is not modified.
func (p Polynomial) RemoveLeadingZeros() Polynomial {
	if len(p) == 0 {
		return Polynomial{0}
	}
	o := leadingCoeff(p)
	if o == 0 {
		return p
	}
	return append(Polynomial(nil), p[o:]...)
}

// index of the first non-zero coefficient, or of the last one if all are zero
func leadingCoeff(p Polynomial) int {
	for i, c := range p {
		if c != 0 {
			return i
		}
	}
	return len(p) - 1
}

// Remainder computes p mod b by synthetic division. b must have a non-zero
// leading coefficient after stripping leading zeros; if b is the zero
// polynomial, the zero polynomial is returned.
func (p Polynomial) Remainder(b Polynomial) Polynomial {
	b = b.RemoveLeadingZeros()
	if b[0] == 0 {
		tracer().Errorf("polynomial remainder: division by zero polynomial")
		return Polynomial{0}
	}
	mod := make(Polynomial, len(p))
	copy(mod, p)
	op := len(p) - len(b) + 1
	binv := -1 / b[0]
	offset := 0
	for i := 0; i < op; i++ {
		coeff := mod[offset] * binv
		mod[offset] = 0
		offset++
		for j := 0; j < len(b)-1; j++ {
			mod[j+offset] += coeff * b[j+1]
		}
	}
	return mod.RemoveLeadingZeros()
}

// String creates a readable string representation for a Polynomial.
// Coefficients are printed with %g, zero terms are omitted.
func (p Polynomial) String() string {
	var buffer bytes.Buffer
	n := p.Degree()
	for i, c := range p {
		if c == 0 && !(buffer.Len() == 0 && i == n) {
			continue
		}
		exp := n - i
		if buffer.Len() > 0 {
			if c < 0 {
				buffer.WriteString(" - ")
			} else {
				buffer.WriteString(" + ")
			}
			c = math.Abs(c)
		}
		switch {
		case exp == 0:
			buffer.WriteString(fmt.Sprintf("%g", c))
		case c == 1:
		case c == -1:
			buffer.WriteString("-")
		default:
			buffer.WriteString(fmt.Sprintf("%g", c))
		}
		switch {
		case exp == 1:
			buffer.WriteString("x")
		case exp > 1:
			buffer.WriteString(fmt.Sprintf("x^%d", exp))
		}
	}
	if buffer.Len() == 0 {
		return "0"
	}
	return buffer.String()
}
