// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gaussiantest provides a reference nrpt.Sampler over a Gaussian
// target, used only by tests and examples elsewhere in this module. It is
// a random-walk Metropolis-Hastings sampler in the style of gonum's
// stat/sampleuv.MetropolisHastingser, evaluating a distuv.Normal target.
package gaussiantest

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mcmc-go/nrpt"
)

// Model is the untempered problem: a Normal target and a random-walk
// proposal step size.
type Model struct {
	Target distuv.Normal
	Step   float64
}

// temperedModel pairs Model with the inverse temperature a replica is
// currently pinned to. ModelAt constructs one of these per replica so each
// State's LogDensity needs no extra arguments.
type temperedModel struct {
	Model
	Beta float64
}

// ModelAt implements tempering.ModelAt for Model: it tempers Target's
// log-density by beta.
func ModelAt(base any, beta float64) any {
	m := base.(Model)
	return temperedModel{Model: m, Beta: beta}
}

// State is the random-walk chain's position, log-tempered by Beta.
type State struct {
	X      float64
	Beta   float64
	Target distuv.Normal
}

// LogDensity returns Beta * Target.LogProb(X), the β-tempered log-density
// the Swap Engine compares across adjacent replicas.
func (s State) LogDensity() float64 { return s.Beta * s.Target.LogProb(s.X) }

// Sampler is a random-walk Metropolis-Hastings sampler for Model.
type Sampler struct{}

// InitialStep draws the chain's starting point from the (untempered)
// target distribution itself, a convenient and exact way to start a toy
// chain already near its stationary distribution.
func (Sampler) InitialStep(rng *rand.Rand, model any) (float64, State, error) {
	tm := model.(temperedModel)
	target := tm.Target
	target.Src = rng
	x := target.Rand()
	return x, State{X: x, Beta: tm.Beta, Target: tm.Target}, nil
}

// NextStep proposes x + Normal(0, Step) and accepts/rejects by the
// tempered log-density ratio.
func (Sampler) NextStep(rng *rand.Rand, model any, state State) (float64, State, error) {
	tm := model.(temperedModel)
	prop := state.X + rng.NormFloat64()*tm.Step

	curLL := tm.Beta * tm.Target.LogProb(state.X)
	propLL := tm.Beta * tm.Target.LogProb(prop)
	logAlpha := propLL - curLL

	x := state.X
	if logAlpha >= 0 || math.Log(rng.Float64()) < logAlpha {
		x = prop
	}
	return x, State{X: x, Beta: tm.Beta, Target: tm.Target}, nil
}

// NewBuffer allocates a slice-backed buffer pre-sized to nHint.
func (Sampler) NewBuffer(sample float64, model any, nHint int) nrpt.Buffer[float64] {
	return nrpt.NewSliceBuffer[float64](nHint)
}

// Save appends sample to buf; index is unused since SliceBuffer is
// append-only and the driver guarantees strictly increasing indices.
func (Sampler) Save(buf nrpt.Buffer[float64], sample float64, index int, model any, nHint int) nrpt.Buffer[float64] {
	buf.Append(sample)
	return buf
}

// Chain bundles the retained samples along with their empirical mean and
// variance, computed via gonum/stat, demonstrating the kind of
// post-processing Bundle is explicitly allowed to do.
type Chain struct {
	Samples  []float64
	Mean     float64
	Variance float64
	Duration nrpt.Stats
}

// Bundle computes the sample mean/variance of buf's contents via
// stat.MeanVariance.
func (Sampler) Bundle(buf nrpt.Buffer[float64], model any, final State, chainType nrpt.ChainType, stats nrpt.Stats) (Chain, error) {
	sb := buf.(*nrpt.SliceBuffer[float64])
	mean, variance := stat.MeanVariance(sb.Samples, nil)
	return Chain{Samples: sb.Samples, Mean: mean, Variance: variance, Duration: stats}, nil
}
