// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parallel runs independent MCMC chains concurrently. All three
// drivers (Threaded, Distributed, Serial) share one contract: run nChains
// independent nrpt.Sample invocations, each seeded from the parent rng, and
// stack the results into a fixed-size, disjointly-indexed slice. They
// differ only in execution substrate, mirroring gonum's optimize.Global,
// which separates "what to run" (a GlobalMethod) from "how tasks are
// dispatched" (its operation/result channel plumbing).
package parallel

import (
	"fmt"
	"math/rand"

	"github.com/mcmc-go/nrpt"
)

// Warning is a non-fatal observation a driver makes about its own
// configuration (too few workers, more chains requested than the run
// length can usefully parallelize, ...). Unlike the error types in the
// root package, a Warning never aborts a run.
type Warning struct {
	Op  string
	Msg string
}

func (w Warning) String() string {
	return fmt.Sprintf("nrpt/parallel: %s: %s", w.Op, w.Msg)
}

// deriveSeeds draws nChains independent int64 seeds from parent, in order,
// before any dispatch happens. Drawing seeds up front (rather than letting
// each worker pull from a shared rng) guarantees that a given parent seed
// produces the same per-chain seeds regardless of which driver variant
// runs them, the property spec.md §4.D requires.
func deriveSeeds(parent *rand.Rand, nChains int) []int64 {
	seeds := make([]int64, nChains)
	for i := range seeds {
		seeds[i] = parent.Int63()
	}
	return seeds
}

// runOneChain seeds a fresh *rand.Rand from seed, runs nrpt.Sample, and
// returns the result and any error wrapped as a *nrpt.WorkerError tagged
// with chainIndex.
func runOneChain[S nrpt.State, T any, C any](
	sampler nrpt.Sampler[S, T, C],
	model any,
	opt nrpt.Options[S, T],
	chainIndex int,
	seed int64,
) (C, error) {
	opt.Src = rand.New(rand.NewSource(seed))
	chain, err := nrpt.Sample(sampler, model, opt)
	if err != nil {
		var zero C
		return zero, &nrpt.WorkerError{ChainIndex: chainIndex, Err: err}
	}
	return chain, nil
}
