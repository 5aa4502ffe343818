// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parallel

import (
	"runtime"
	"sync"

	"github.com/mcmc-go/nrpt"
)

// job is one unit of dispatched work: run chain Index seeded with Seed.
type job struct {
	index int
	seed  int64
}

// jobResult is what a worker reports back after running job.
type jobResult[C any] struct {
	index int
	err   error
}

// RunDistributed runs nChains independent chains through a worker-pool
// abstraction: a fixed set of persistent workers pull jobs (a replica
// index and its pre-drawn seed) from a channel, run nrpt.Sample, and send
// completion pings on a result channel. A single goroutine drains the
// result channel, updates progress, and funnels the first error (if any)
// back to the caller — the same "one stats-combiner goroutine is the
// synchronization point" shape gonum's optimize.Global channel topology
// uses, sized here with the persistent-worker-pool idiom rather than
// spawning one goroutine per job.
//
// progress, if non-nil, receives each completed chain's index as it
// finishes; it is closed once every chain has reported (or the run has
// failed). Any worker error propagates only after every already-dispatched
// job has been drained, so failure in one chain never cancels others.
func RunDistributed[S nrpt.State, T any, C any](
	sampler nrpt.Sampler[S, T, C],
	model any,
	nChains int,
	opt nrpt.Options[S, T],
	progress chan<- int,
) ([]C, error) {
	if nChains < 1 {
		return nil, &nrpt.InvalidArgumentError{Op: "RunDistributed", Msg: "nChains must be >= 1"}
	}
	if opt.Src == nil {
		panic("nrpt/parallel: RunDistributed: opt.Src is nil")
	}

	workers := nChains
	if gm := runtime.GOMAXPROCS(0); gm < workers {
		workers = gm
	}

	seeds := deriveSeeds(opt.Src, nChains)
	chains := make([]C, nChains)

	jobs := make(chan job, nChains)
	results := make(chan jobResult[C], nChains)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				chain, err := runOneChain(sampler, model, opt, j.index, j.seed)
				if err == nil {
					chains[j.index] = chain
				}
				results <- jobResult[C]{index: j.index, err: err}
			}
		}()
	}
	for i := 0; i < nChains; i++ {
		jobs <- job{index: i, seed: seeds[i]}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for r := range results {
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		if progress != nil {
			progress <- r.index
		}
	}
	if progress != nil {
		close(progress)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return chains, nil
}
