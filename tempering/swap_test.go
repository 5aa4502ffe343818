// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempering

import (
	"math"
	"math/rand"
	"testing"
)

// point is a minimal nrpt.State used only by these tests.
type point float64

func (p point) LogDensity() float64 { return float64(p) }

func TestSweepParityAlternates(t *testing.T) {
	cases := map[int]Parity{1: ParityOdd, 2: ParityEven, 3: ParityOdd, 4: ParityEven}
	for sweep, want := range cases {
		if got := SweepParity(sweep); got != want {
			t.Errorf("SweepParity(%d) = %v, want %v", sweep, got, want)
		}
	}
}

func TestSwapAccumulatesAllPairsRegardlessOfParity(t *testing.T) {
	replicas := []Replica[point]{
		{State: 10, Beta: 1.0},
		{State: 8, Beta: 0.66},
		{State: 6, Beta: 0.33},
		{State: 4, Beta: 0.0},
	}
	rej := NewRejectionVector(len(replicas))
	rng := rand.New(rand.NewSource(1))
	Swap(replicas, ParityOdd, rej, rng)
	for i, v := range rej {
		if v == 0 {
			t.Errorf("rej[%d] = 0 after one sweep, want > 0 for distinct states/betas", i)
		}
	}
}

func TestSwapOnlyAttemptsSelectedParity(t *testing.T) {
	// The states make logAlpha large and positive on every eligible pair, so
	// log(1-u) <= 0 < logAlpha accepts whatever u the rng draws; only the
	// parity decides which pairs may swap.
	replicas := []Replica[point]{
		{State: 100, Beta: 1.0},
		{State: 0, Beta: 0.75},
		{State: 100, Beta: 0.5},
		{State: 0, Beta: 0.25},
		{State: 100, Beta: 0.0},
	}
	rej := NewRejectionVector(len(replicas))
	rng := rand.New(rand.NewSource(7))

	swapped := Swap(replicas, ParityOdd, rej, rng)
	// ParityOdd (s=1) attempts pairs 1 and 3 (1-based) => indices 0 and 2.
	if len(swapped) != 4 {
		t.Fatalf("len(swapped) = %d, want 4", len(swapped))
	}
	for i, did := range swapped {
		attempted := (i+1)%2 == 1
		if !attempted && did {
			t.Errorf("pair index %d was not eligible for ParityOdd but swapped=true", i)
		}
	}
}

func TestSwapPreservesStateSlots(t *testing.T) {
	replicas := []Replica[point]{
		{State: 1, Beta: 1.0},
		{State: 2, Beta: 0.5},
		{State: 3, Beta: 0.0},
	}
	rej := NewRejectionVector(len(replicas))
	rng := rand.New(rand.NewSource(3))
	Swap(replicas, ParityOdd, rej, rng)

	states := []point{1, 2, 3}
	for i, r := range replicas {
		if r.State != states[i] {
			t.Errorf("replicas[%d].State = %v, want %v (states must not move slots)", i, r.State, states[i])
		}
	}
}

func TestSwapPanicsOnWrongRejLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Swap with mismatched rej length: want panic, got none")
		}
	}()
	replicas := []Replica[point]{{State: 1, Beta: 1.0}, {State: 2, Beta: 0.0}}
	Swap(replicas, ParityOdd, RejectionVector{0.1, 0.2}, rand.New(rand.NewSource(1)))
}

func TestRejectionVectorAverage(t *testing.T) {
	rv := RejectionVector{2, 4, 6}
	avg := rv.Average(2)
	want := []float64{1, 2, 3}
	for i, v := range avg {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("avg[%d] = %v, want %v", i, v, want[i])
		}
	}
}
