// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package monospline fits a monotone piecewise cubic Hermite interpolant
// through a non-decreasing sequence of (x, y) pairs and evaluates it.
//
// It implements the Fritsch-Carlson tangent rule (the same family as
// gonum's interp.FritschButland), specialized to the one shape the Ladder
// Adaptor needs: data that is already known to be non-decreasing, with no
// need for derivative evaluation or the general not-a-knot/clamped/natural
// boundary conditions interp.PiecewiseCubic supports.
package monospline

import (
	"fmt"
	"sort"
)

// Spline is a fitted monotone piecewise cubic Hermite interpolant.
type Spline struct {
	xs, ys   []float64
	tangents []float64
}

// Fit fits a monotone spline through (xs, ys). xs must be strictly
// increasing and ys must be non-decreasing; len(xs) must equal len(ys) and
// be at least 2. It returns an error instead of panicking on malformed
// input because the caller (the Ladder Adaptor) derives xs/ys from runtime
// rejection statistics, not compile-time constants.
func Fit(xs, ys []float64) (*Spline, error) {
	n := len(xs)
	if n != len(ys) {
		return nil, fmt.Errorf("monospline: len(xs)=%d != len(ys)=%d", n, len(ys))
	}
	if n < 2 {
		return nil, fmt.Errorf("monospline: need at least 2 points, got %d", n)
	}
	for i := 1; i < n; i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("monospline: xs not strictly increasing at index %d", i)
		}
		if ys[i] < ys[i-1] {
			return nil, fmt.Errorf("monospline: ys not non-decreasing at index %d", i)
		}
	}

	secants := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		secants[i] = (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
	}

	tangents := make([]float64, n)
	tangents[0] = secants[0]
	tangents[n-1] = secants[n-2]
	for i := 1; i < n-1; i++ {
		left, right := secants[i-1], secants[i]
		if left == 0 || right == 0 || (left > 0) != (right > 0) {
			tangents[i] = 0
			continue
		}
		// Harmonic-mean tangent (Fritsch-Carlson), weighted by segment
		// length, matching gonum's FritschButland interior-node formula.
		hL, hR := xs[i]-xs[i-1], xs[i+1]-xs[i]
		w1, w2 := 2*hR+hL, hR+2*hL
		tangents[i] = (w1 + w2) / (w1/left + w2/right)
	}

	return &Spline{
		xs:       append([]float64(nil), xs...),
		ys:       append([]float64(nil), ys...),
		tangents: tangents,
	}, nil
}

// Predict returns the interpolated value at x. Values of x outside
// [xs[0], xs[len(xs)-1]] are clamped to the nearest endpoint value, since
// the Ladder Adaptor only ever evaluates within the fitted range.
func (s *Spline) Predict(x float64) float64 {
	n := len(s.xs)
	if x <= s.xs[0] {
		return s.ys[0]
	}
	if x >= s.xs[n-1] {
		return s.ys[n-1]
	}
	i := sort.Search(n-1, func(k int) bool { return s.xs[k+1] > x })
	h := s.xs[i+1] - s.xs[i]
	t := (x - s.xs[i]) / h
	return hermite(t, h, s.ys[i], s.ys[i+1], s.tangents[i], s.tangents[i+1])
}

// hermite evaluates the cubic Hermite basis at parameter t in [0,1] over a
// segment of width h with endpoint values y0, y1 and endpoint tangents
// m0, m1 (in x-units, not t-units).
func hermite(t, h, y0, y1, m0, m1 float64) float64 {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*y0 + h10*h*m0 + h01*y1 + h11*h*m1
}

// Monotone reports whether the fitted spline is numerically non-decreasing
// across its knots, a sanity check the Ladder Adaptor runs once after Fit
// before trusting the spline for bisection.
func (s *Spline) Monotone() bool {
	const probesPerSegment = 8
	for i := 0; i+1 < len(s.xs); i++ {
		prev := s.ys[i]
		for k := 1; k <= probesPerSegment; k++ {
			x := s.xs[i] + float64(k)/float64(probesPerSegment)*(s.xs[i+1]-s.xs[i])
			v := s.Predict(x)
			if v < prev-1e-9 {
				return false
			}
			prev = v
		}
	}
	return true
}

// XRange returns the fitted domain [xs[0], xs[len-1]].
func (s *Spline) XRange() (lo, hi float64) {
	return s.xs[0], s.xs[len(s.xs)-1]
}
