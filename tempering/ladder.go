// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempering

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mcmc-go/nrpt"
	"github.com/mcmc-go/nrpt/tempering/internal/monospline"
)

// bisectTol is the default root-finding tolerance for UpdateBetas, matching
// spec's requirement of a tolerance no coarser than 1e-8.
const bisectTol = 1e-8

// Lambda is a fitted communication-barrier function: a monotone
// non-decreasing spline built from a ladder and its rejection vector, with
// Lambda(0) = 0 and Lambda(1) = Total.
type Lambda struct {
	spline *monospline.Spline
	Total  float64
}

// At evaluates Λ(β).
func (lam *Lambda) At(beta float64) float64 { return lam.spline.Predict(beta) }

// BuildLambda constructs the communication-barrier function from ladder and
// its averaged rejection vector, per spec.md §4.F steps 1-4: reverse the
// ladder onto an increasing x-axis, accumulate the rejection prefix sum as
// y, and fit a monotone cubic Hermite interpolant through (x, y).
func BuildLambda(ladder Ladder, rej RejectionVector) (*Lambda, error) {
	if err := ladder.Validate(); err != nil {
		return nil, &nrpt.InvalidArgumentError{Op: "BuildLambda", Msg: err.Error()}
	}
	n := len(ladder)
	if len(rej) != n-1 {
		return nil, &nrpt.InvalidArgumentError{Op: "BuildLambda", Msg: "len(rej) must be len(ladder)-1"}
	}

	x := make([]float64, n)
	for i, b := range ladder {
		x[n-1-i] = b
	}
	for _, v := range rej {
		if v < 0 {
			return nil, &nrpt.InvalidArgumentError{Op: "BuildLambda", Msg: "rejection entries must be >= 0"}
		}
	}
	y := make([]float64, n)
	floats.CumSum(y[1:], rej)

	total := floats.Sum(rej)
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, &nrpt.NumericError{Op: "BuildLambda", Msg: "Λ_total is non-finite"}
	}

	spline, err := monospline.Fit(x, y)
	if err != nil {
		return nil, &nrpt.NumericError{Op: "BuildLambda", Msg: err.Error()}
	}
	if !spline.Monotone() {
		return nil, &nrpt.NumericError{Op: "BuildLambda", Msg: "spline fit is not monotone non-decreasing"}
	}
	return &Lambda{spline: spline, Total: total}, nil
}

// UpdateBetas solves the equidistribution problem of spec.md §4.F: given
// the communication-barrier function built from the current ladder, find a
// new ladder whose interior entries satisfy Λ(β_n) ≈ Λ_total·(N-n)/(N-1)
// for positions n=2..N-1 (1-based), leaving β_1=1 and β_N=0 fixed. Read
// along the increasing β-axis (k = N+1-n), this is Λ_total·(k-1)/(N-1), so
// the returned ladder stays strictly decreasing.
//
// On the degenerate case Λ_total == 0 (no rejections observed anywhere),
// the input ladder is returned unchanged, per spec.md §4.F's numerics note.
func UpdateBetas(ladder Ladder, lam *Lambda) (Ladder, error) {
	if err := ladder.Validate(); err != nil {
		return nil, &nrpt.InvalidArgumentError{Op: "UpdateBetas", Msg: err.Error()}
	}
	n := len(ladder)
	if lam.Total == 0 {
		return ladder.Clone(), nil
	}

	out := make(Ladder, n)
	out[0] = 1.0
	out[n-1] = 0.0

	prevNew := 1.0
	for idx := 1; idx <= n-2; idx++ {
		target := lam.Total * float64(n-1-idx) / float64(n-1)
		lower := math.Max(0, prevNew-0.1)
		beta, err := bisect(lam, target, lower, 1.0, bisectTol)
		if err != nil {
			return nil, err
		}
		out[idx] = beta
		prevNew = beta
	}
	return out, nil
}

// bisect finds β ∈ [lower, 1.0] solving lam.At(β) = target, where lam.At is
// non-decreasing. If the tightened bracket [lower, 1.0] fails to contain
// the root (lam.At(lower) already exceeds target, which can happen for
// widely-spaced ladders), lower is widened to 0 before giving up.
func bisect(lam *Lambda, target, lower, upper, tol float64) (float64, error) {
	flo := lam.At(lower) - target
	if flo > 0 {
		lower = 0
		flo = lam.At(lower) - target
	}
	fhi := lam.At(upper) - target
	if flo > 0 || fhi < 0 {
		return 0, &nrpt.NumericError{Op: "bisect", Msg: "failed to bracket root"}
	}

	for upper-lower > tol {
		mid := 0.5 * (lower + upper)
		fm := lam.At(mid) - target
		if fm < 0 {
			lower = mid
		} else {
			upper = mid
		}
	}
	return 0.5 * (lower + upper), nil
}
