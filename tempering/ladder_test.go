// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempering

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestBuildLambdaBoundaryValues(t *testing.T) {
	ladder := Ladder{1.0, 0.66, 0.33, 0.0}
	rej := RejectionVector{0.2, 0.4, 0.4}
	lam, err := BuildLambda(ladder, rej)
	if err != nil {
		t.Fatalf("BuildLambda: %v", err)
	}
	if got := lam.At(0); math.Abs(got) > 1e-9 {
		t.Errorf("Λ(0) = %v, want 0", got)
	}
	want := 0.2 + 0.4 + 0.4
	if got := lam.At(1); !floats.EqualWithinAbsOrRel(got, want, 1e-9, 1e-9) {
		t.Errorf("Λ(1) = %v, want %v", got, want)
	}
	if !floats.EqualWithinAbsOrRel(lam.Total, want, 1e-9, 1e-9) {
		t.Errorf("Lambda.Total = %v, want %v", lam.Total, want)
	}
}

func TestBuildLambdaMonotoneOnGrid(t *testing.T) {
	ladder := Ladder{1.0, 0.8, 0.55, 0.3, 0.1, 0.0}
	rej := RejectionVector{0.1, 0, 0.3, 0.05, 0.2}
	lam, err := BuildLambda(ladder, rej)
	if err != nil {
		t.Fatalf("BuildLambda: %v", err)
	}
	prev := lam.At(0)
	for x := 0.0; x <= 1.0; x += 0.01 {
		v := lam.At(x)
		if v < prev-1e-9 {
			t.Fatalf("Λ not monotone at x=%v: %v < %v", x, v, prev)
		}
		prev = v
	}
}

func TestUpdateBetasEquidistributes(t *testing.T) {
	ladder := Ladder{1.0, 0.66, 0.33, 0.0}
	rej := RejectionVector{0.2, 0.4, 0.4}
	lam, err := BuildLambda(ladder, rej)
	if err != nil {
		t.Fatalf("BuildLambda: %v", err)
	}
	newLadder, err := UpdateBetas(ladder, lam)
	if err != nil {
		t.Fatalf("UpdateBetas: %v", err)
	}
	if err := newLadder.Validate(); err != nil {
		t.Fatalf("new ladder invalid: %v", err)
	}

	n := len(newLadder)
	for i := 1; i < n-1; i++ {
		target := lam.Total * float64(n-1-i) / float64(n-1)
		got := lam.At(newLadder[i])
		if !floats.EqualWithinAbsOrRel(got, target, 1e-6, 1e-6) {
			t.Errorf("Λ(β_%d)=%v, want %v (tol 1e-6)", i+1, got, target)
		}
	}
}

func TestUpdateBetasZeroRejectionIsIdentity(t *testing.T) {
	ladder := Ladder{1.0, 0.7, 0.4, 0.0}
	rej := RejectionVector{0, 0, 0}
	lam, err := BuildLambda(ladder, rej)
	if err != nil {
		t.Fatalf("BuildLambda: %v", err)
	}
	if lam.Total != 0 {
		t.Fatalf("Lambda.Total = %v, want 0", lam.Total)
	}
	newLadder, err := UpdateBetas(ladder, lam)
	if err != nil {
		t.Fatalf("UpdateBetas: %v", err)
	}
	if !floats.Equal(newLadder, ladder) {
		t.Errorf("UpdateBetas with zero rejection = %v, want unchanged %v", newLadder, ladder)
	}
}

func TestUpdateBetasFixedPoint(t *testing.T) {
	// Build Λ from a ladder whose rejections are already equidistributed
	// for that ladder; update_βs should return (approximately) the same
	// ladder back.
	ladder := Ladder{1.0, 0.75, 0.5, 0.25, 0.0}
	rej := RejectionVector{0.25, 0.25, 0.25, 0.25}
	lam, err := BuildLambda(ladder, rej)
	if err != nil {
		t.Fatalf("BuildLambda: %v", err)
	}
	newLadder, err := UpdateBetas(ladder, lam)
	if err != nil {
		t.Fatalf("UpdateBetas: %v", err)
	}
	for i := range ladder {
		if !floats.EqualWithinAbsOrRel(newLadder[i], ladder[i], 1e-2, 1e-2) {
			t.Errorf("newLadder[%d] = %v, want ≈ %v", i, newLadder[i], ladder[i])
		}
	}
}

func TestUpdateBetasWidelySpacedBracket(t *testing.T) {
	// Regression test for the bracket-tightening fallback: with a sharply
	// front-loaded rejection vector, the naive bracket
	// [β_{n-1}^new - 0.1, 1.0] does not contain the true root, and
	// UpdateBetas must still succeed by widening to [0, 1.0].
	ladder := Ladder{1.0, 0.66, 0.33, 0.0}
	rej := RejectionVector{0.2, 0.4, 0.4}
	lam, err := BuildLambda(ladder, rej)
	if err != nil {
		t.Fatalf("BuildLambda: %v", err)
	}
	newLadder, err := UpdateBetas(ladder, lam)
	if err != nil {
		t.Fatalf("UpdateBetas: %v", err)
	}
	if newLadder[1] >= 0.9 {
		t.Errorf("newLadder[1] = %v, want well below the naive bracket lower bound 0.9", newLadder[1])
	}
}

func TestBuildLambdaRejectsBadLadder(t *testing.T) {
	if _, err := BuildLambda(Ladder{0.5, 0.2}, RejectionVector{0.1}); err == nil {
		t.Error("BuildLambda with ladder[0] != 1.0: want error, got nil")
	}
}

func TestBuildLambdaRejectsNegativeRejection(t *testing.T) {
	ladder := Ladder{1.0, 0.5, 0.0}
	if _, err := BuildLambda(ladder, RejectionVector{0.1, -0.1}); err == nil {
		t.Error("BuildLambda with negative rejection: want error, got nil")
	}
}

func TestNewLinearLadder(t *testing.T) {
	l := NewLinearLadder(5)
	if err := l.Validate(); err != nil {
		t.Fatalf("NewLinearLadder(5) invalid: %v", err)
	}
	want := Ladder{1.0, 0.75, 0.5, 0.25, 0.0}
	for i := range want {
		if !floats.EqualWithinAbsOrRel(l[i], want[i], 1e-12, 1e-12) {
			t.Errorf("l[%d] = %v, want %v", i, l[i], want[i])
		}
	}
}
