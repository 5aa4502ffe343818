// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempering

import (
	"math"
	"math/rand"

	"github.com/mcmc-go/nrpt"
)

// Parity selects which adjacent pairs a Swap call attempts to exchange.
// Even DEO sweep numbers use ParityEven (s=2); odd sweep numbers use
// ParityOdd (s=1). This alternation is what makes the schedule
// non-reversible.
type Parity int

const (
	ParityOdd  Parity = 1
	ParityEven Parity = 2
)

// SweepParity returns the parity a DEO sweep numbered (1-based) sweep
// should use: odd sweep numbers get ParityOdd, even get ParityEven.
func SweepParity(sweep int) Parity {
	if sweep%2 == 0 {
		return ParityEven
	}
	return ParityOdd
}

// Swap performs one deterministic even-odd sweep over replicas: for every
// adjacent pair (i, i+1) it accumulates rejection statistics into rej
// unconditionally, then, for pairs selected by parity, draws a uniform
// variate and exchanges the pair's β values on acceptance. States never
// move between replica slots; only Beta fields are exchanged.
//
// rej must have length len(replicas)-1. A rej of any other length is a
// programmer error and panics, matching the Sampler contract's own append-only/fixed-shape
// conventions.
//
// Swap returns, for each of the n-1 pairs, whether the exchange occurred;
// callers that track which replica slot currently holds which ladder
// position (as the Controller does, to bundle per-β buffers correctly)
// use this to update their own bookkeeping.
func Swap[S nrpt.State](replicas []Replica[S], parity Parity, rej RejectionVector, rng *rand.Rand) []bool {
	n := len(replicas)
	if len(rej) != n-1 {
		panic("tempering: Swap: len(rej) must be len(replicas)-1")
	}
	swapped := make([]bool, n-1)
	for i := 0; i < n-1; i++ {
		dBeta := replicas[i].Beta - replicas[i+1].Beta
		dLogPi := replicas[i].State.LogDensity() - replicas[i+1].State.LogDensity()

		logAlpha := dBeta * dLogPi
		rej[i] += 1 - math.Min(1, math.Exp(-math.Abs(dBeta)*dLogPi))

		pair := i + 1 // 1-based pair index, per spec.md's i≡s(mod 2) convention
		if pair%2 != int(parity)%2 {
			continue
		}
		u := rng.Float64()
		if math.Log(1-u) <= logAlpha {
			replicas[i].Beta, replicas[i+1].Beta = replicas[i+1].Beta, replicas[i].Beta
			swapped[i] = true
		}
	}
	return swapped
}
