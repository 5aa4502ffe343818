// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tempering implements a Non-Reversible Parallel Tempering (NRPT)
// engine on top of the nrpt.Sampler contract: a replica vector ordered by
// strictly decreasing inverse temperature β, a deterministic even-odd (DEO)
// swap schedule, and an adaptive β-ladder built from a monotone cubic
// interpolant of inter-replica rejection rates.
package tempering

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/mcmc-go/nrpt"
)

// Replica pins one sampler state to one inverse temperature. States are
// exclusively owned by their replica slot and never move between slots;
// only β values are exchanged by Swap.
type Replica[S nrpt.State] struct {
	State S
	Beta  float64
}

// Ladder is the ordered β vector assigned to replicas: Ladder[0] == 1.0
// (the target posterior), Ladder[len-1] == 0.0 (the reference), strictly
// decreasing in between.
type Ladder []float64

// Validate checks the invariants every Ladder must satisfy: length >= 2,
// Ladder[0] == 1, Ladder[len-1] == 0, and strictly decreasing throughout.
func (l Ladder) Validate() error {
	n := len(l)
	if n < 2 {
		return fmt.Errorf("tempering: ladder needs at least 2 replicas, got %d", n)
	}
	if l[0] != 1.0 {
		return fmt.Errorf("tempering: ladder[0] = %v, want 1.0", l[0])
	}
	if l[n-1] != 0.0 {
		return fmt.Errorf("tempering: ladder[%d] = %v, want 0.0", n-1, l[n-1])
	}
	for i := 1; i < n; i++ {
		if l[i] >= l[i-1] {
			return fmt.Errorf("tempering: ladder not strictly decreasing at index %d: %v >= %v", i, l[i], l[i-1])
		}
	}
	return nil
}

// Clone returns an independent copy of l.
func (l Ladder) Clone() Ladder {
	out := make(Ladder, len(l))
	copy(out, l)
	return out
}

// NewLinearLadder builds the n-replica ladder [1, ..., 0] linearly spaced,
// the conventional starting ladder before the first round of tuning.
func NewLinearLadder(n int) Ladder {
	if n < 2 {
		panic("tempering: NewLinearLadder: n must be >= 2")
	}
	l := make(Ladder, n)
	for i := 0; i < n; i++ {
		l[i] = 1.0 - float64(i)/float64(n-1)
	}
	l[0] = 1.0
	l[n-1] = 0.0
	return l
}

// RejectionVector accumulates, per adjacent pair, 1 - min(1, exp(-|Δβ|·Δlogπ))
// across the swap attempts of a tune round (the accounting term Swap uses,
// whose sign differs from its acceptance logα = Δβ·Δlogπ). Index i holds the statistic for
// the pair (replica i, replica i+1); only indices 0..N-2 are meaningful for
// an N-replica ladder, matching the rejection vector's 1..N-1 definition.
type RejectionVector []float64

// NewRejectionVector allocates a zeroed RejectionVector sized for n
// replicas (n-1 meaningful entries, one slot per adjacent pair).
func NewRejectionVector(n int) RejectionVector {
	return make(RejectionVector, n-1)
}

// Average divides each entry by sweeps, the number of swap attempts each
// pair saw in the round, turning an accumulated sum into a per-pair average
// rejection rate as required before feeding the Ladder Adaptor.
func (r RejectionVector) Average(sweeps int) RejectionVector {
	if sweeps <= 0 {
		panic("tempering: RejectionVector.Average: sweeps must be >= 1")
	}
	out := make(RejectionVector, len(r))
	copy(out, r)
	floats.Scale(1/float64(sweeps), out)
	return out
}
