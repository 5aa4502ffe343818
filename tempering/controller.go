// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempering

import (
	"math"
	"math/rand"
	"time"

	"github.com/mcmc-go/nrpt"
)

// ModelAt builds the β-tempered model a replica's sampler should evaluate
// against, from the caller's base model and the replica's current inverse
// temperature. Most callers close over a fixed base model and return, e.g.,
// a struct pairing it with beta so the sampler's log-density combines the
// two (beta=1 the full posterior, beta=0 the reference).
type ModelAt func(base any, beta float64) any

// Diagnostics reports the communication-barrier statistics computed after
// each TUNE inner phase; the last report describes the state at the
// TUNE→SAMPLE transition.
type Diagnostics struct {
	LambdaTotal      float64
	EstimatedN       float64 // 2*LambdaTotal, the "replicas needed" estimate
	Round, PhaseInRd int
	Ladder           Ladder
}

// ControllerOptions configures a Controller run.
type ControllerOptions struct {
	// SwapEvery is the DEO-iteration interval between swap attempts. Must
	// be >= 1. Default 1.
	SwapEvery int

	// ChainType is forwarded to every per-β Sampler.Bundle call.
	ChainType nrpt.ChainType

	// Sink, if non-nil and nrpt.ProgressEnabled(), receives progress
	// reports during the SAMPLE phase (TUNE's total length is not known
	// up front in a way worth reporting fractionally).
	Sink nrpt.ProgressSink

	// OnRoundDone, if non-nil, is called after every TUNE inner phase with
	// that phase's Diagnostics, after the ladder has been updated
	// (Diagnostics.Ladder is the new ladder) and before the replicas are
	// reset onto it.
	OnRoundDone func(Diagnostics)
}

func (o *ControllerOptions) swapEvery() int {
	if o.SwapEvery == 0 {
		return 1
	}
	return o.SwapEvery
}

// Controller runs the NRPT state machine of spec.md §4.G: a TUNE phase that
// adapts the β-ladder over Maxround = floor(log2(NTune)) rounds of
// exponentially growing inner phases, followed by a single SAMPLE phase
// that writes exactly one sample per β per DEO iteration, followed by
// bundling each per-β buffer into a chain.
type Controller[S nrpt.State, T any, C any] struct {
	sampler nrpt.Sampler[S, T, C]
	model   any
	modelAt ModelAt

	ladder   Ladder
	replicas []Replica[S]
	// rank[i] is the ladder position (0-based) whose β value currently
	// sits in replica slot i. Swap exchanges β between adjacent slots, so
	// rank tracks which logical temperature rank has moved where.
	rank []int

	rng       *rand.Rand
	iteration int
	sweeps    int

	opt ControllerOptions
}

// NewController builds a Controller over nrpt.State states, one per ladder
// entry, obtained from sampler.InitialStep at each replica's initial
// (canonical) temperature.
func NewController[S nrpt.State, T any, C any](
	sampler nrpt.Sampler[S, T, C],
	model any,
	modelAt ModelAt,
	ladder Ladder,
	rng *rand.Rand,
	opt ControllerOptions,
) (*Controller[S, T, C], error) {
	if err := ladder.Validate(); err != nil {
		return nil, &nrpt.InvalidArgumentError{Op: "NewController", Msg: err.Error()}
	}
	if rng == nil {
		panic("tempering: NewController: rng is nil")
	}
	n := len(ladder)
	replicas := make([]Replica[S], n)
	for i := 0; i < n; i++ {
		_, state, err := sampler.InitialStep(rng, modelAt(model, ladder[i]))
		if err != nil {
			return nil, &nrpt.SamplerError{Op: "InitialStep", Err: err}
		}
		replicas[i] = Replica[S]{State: state, Beta: ladder[i]}
	}
	return &Controller[S, T, C]{
		sampler:  sampler,
		model:    model,
		modelAt:  modelAt,
		ladder:   ladder.Clone(),
		replicas: replicas,
		rank:     identityRank(n),
		rng:      rng,
		opt:      opt,
	}, nil
}

func identityRank(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}

// resetToCanonical reassigns the canonical ladder β to each replica slot in
// order and resets rank to identity, discarding any permutation swaps left
// over from the previous phase. It is called at the start of TUNE and
// SAMPLE and after every ladder update, so that per-phase rejection
// accounting and per-β buffer bundling always start from a known alignment
// between slot and ladder position.
func (c *Controller[S, T, C]) resetToCanonical() {
	for i := range c.replicas {
		c.replicas[i].Beta = c.ladder[i]
		c.rank[i] = i
	}
}

// Maxround returns floor(log2(nTune)), the number of TUNE rounds Run(nTune,
// nSample) will execute.
func Maxround(nTune int) int {
	if nTune < 1 {
		return 0
	}
	return int(math.Floor(math.Log2(float64(nTune))))
}

// runDEOIterations runs n DEO iterations: one local-exploration step per
// replica (at that replica's current β), optionally interleaved with swap
// attempts every opt.SwapEvery iterations. If buffers is non-nil, each
// iteration's sample is saved into buffers[rank[i]] (a per-β buffer);
// otherwise samples are discarded, as required during TUNE.
func (c *Controller[S, T, C]) runDEOIterations(n int, rej RejectionVector, buffers []nrpt.Buffer[T], startIndex, nHint int) error {
	swapEvery := c.opt.swapEvery()
	for k := 0; k < n; k++ {
		samples := make([]T, len(c.replicas))
		for i := range c.replicas {
			modelI := c.modelAt(c.model, c.replicas[i].Beta)
			sample, state, err := c.sampler.NextStep(c.rng, modelI, c.replicas[i].State)
			if err != nil {
				return &nrpt.SamplerError{Op: "NextStep", Err: err}
			}
			c.replicas[i].State = state
			samples[i] = sample
		}

		if buffers != nil {
			idx := startIndex + k
			for i := range c.replicas {
				pos := c.rank[i]
				if idx == 1 {
					buffers[pos] = c.sampler.NewBuffer(samples[i], c.modelAt(c.model, c.ladder[pos]), nHint)
				}
				buffers[pos] = c.sampler.Save(buffers[pos], samples[i], idx, c.modelAt(c.model, c.ladder[pos]), nHint)
			}
		}

		c.iteration++
		if c.iteration%swapEvery == 0 {
			c.sweeps++
			parity := SweepParity(c.sweeps)
			swapped := Swap(c.replicas, parity, rej, c.rng)
			applySwaps(c.rank, swapped)
		}
	}
	return nil
}

// applySwaps updates rank in place to reflect the pair exchanges Swap
// performed: when pair i swapped, the ladder-position labels attached to
// slots i and i+1 exchange along with the β values that carried them.
func applySwaps(rank []int, swapped []bool) {
	for i, did := range swapped {
		if did {
			rank[i], rank[i+1] = rank[i+1], rank[i]
		}
	}
}

// Run executes the full TUNE/SAMPLE/DONE state machine and returns one
// bundled chain per ladder position (index 0 is β=1, the target posterior),
// plus the communication-barrier total Λ(1) computed by the last TUNE phase
// (the SAMPLE phase does not recompute it).
func (c *Controller[S, T, C]) Run(nTune, nSample int) ([]C, float64, error) {
	if nTune < 2 {
		return nil, 0, &nrpt.InvalidArgumentError{Op: "Run", Msg: "nTune must be >= 2"}
	}
	if nSample < 1 {
		return nil, 0, &nrpt.InvalidArgumentError{Op: "Run", Msg: "nSample must be >= 1"}
	}

	c.resetToCanonical()

	maxRound := Maxround(nTune)
	var lastLambdaTotal float64
	for round := 1; round <= maxRound; round++ {
		for phase := 1; phase <= round; phase++ {
			iterations := 1 << uint(phase-1)
			rej := NewRejectionVector(len(c.replicas))
			sweepsBefore := c.sweeps
			if err := c.runDEOIterations(iterations, rej, nil, 1, 0); err != nil {
				return nil, 0, err
			}
			// rej is only accumulated on iterations where a swap is
			// attempted (c.iteration%swapEvery==0), so the divisor is the
			// number of such attempts this phase saw, not iterations
			// itself; the two coincide only when SwapEvery==1.
			attempts := c.sweeps - sweepsBefore
			rejAvg := rej
			if attempts > 0 {
				rejAvg = rej.Average(attempts)
			}
			lam, err := BuildLambda(c.ladder, rejAvg)
			if err != nil {
				return nil, 0, err
			}
			newLadder, err := UpdateBetas(c.ladder, lam)
			if err != nil {
				return nil, 0, err
			}
			c.ladder = newLadder
			lastLambdaTotal = lam.Total
			if c.opt.OnRoundDone != nil {
				c.opt.OnRoundDone(Diagnostics{
					LambdaTotal: lam.Total,
					EstimatedN:  2 * lam.Total,
					Round:       round,
					PhaseInRd:   phase,
					Ladder:      c.ladder.Clone(),
				})
			}
			c.resetToCanonical()
		}
	}

	buffers := make([]nrpt.Buffer[T], len(c.replicas))
	scratchRej := NewRejectionVector(len(c.replicas))
	start := time.Now()
	for iter := 1; iter <= nSample; iter++ {
		if err := c.runDEOIterations(1, scratchRej, buffers, iter, nSample); err != nil {
			return nil, 0, err
		}
		reportProgressTempering(c.opt.Sink, nSample, iter)
	}
	stats := nrpt.Stats{Start: start, Stop: time.Now()}
	stats.Duration = stats.Stop.Sub(stats.Start)

	chains := make([]C, len(c.replicas))
	finalState := make([]S, len(c.replicas))
	for i := range c.replicas {
		finalState[c.rank[i]] = c.replicas[i].State
	}
	for pos := 0; pos < len(c.replicas); pos++ {
		chain, err := c.sampler.Bundle(buffers[pos], c.modelAt(c.model, c.ladder[pos]), finalState[pos], c.opt.ChainType, stats)
		if err != nil {
			return nil, 0, &nrpt.SamplerError{Op: "Bundle", Err: err}
		}
		chains[pos] = chain
	}
	return chains, lastLambdaTotal, nil
}

// reportProgressTempering reports SAMPLE-phase progress if a sink is
// configured and progress reporting is enabled process-wide.
func reportProgressTempering(sink nrpt.ProgressSink, total, done int) {
	if sink == nil || !nrpt.ProgressEnabled() {
		return
	}
	sink.Report(done, total)
}
