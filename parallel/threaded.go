// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mcmc-go/nrpt"
)

// ThreadedSink receives a progress report each time a chain completes.
type ThreadedSink interface {
	ChainDone(chainIndex int)
}

// RunThreaded runs nChains independent chains with a bounded pool of
// worker goroutines, sized min(nChains, runtime.GOMAXPROCS(0)). Each
// goroutine seeds its own *rand.Rand from a seed drawn from parent before
// dispatch; results slot into a fixed-size, disjointly-indexed slice, so no
// locking is needed on the hot path. Model and sampler are shared read-only
// across workers — nrpt.Sampler implementations used with RunThreaded must
// not mutate any state reachable from their receiver or model argument.
//
// If only one worker is available for more than one chain, RunThreaded still
// runs correctly but sequentially; it reports this, and the case
// nChains > opt.N, as non-fatal Warnings. A single-chain run gets no
// single-worker Warning.
func RunThreaded[S nrpt.State, T any, C any](
	sampler nrpt.Sampler[S, T, C],
	model any,
	nChains int,
	opt nrpt.Options[S, T],
	sink ThreadedSink,
) ([]C, []Warning, error) {
	if nChains < 1 {
		return nil, nil, &nrpt.InvalidArgumentError{Op: "RunThreaded", Msg: "nChains must be >= 1"}
	}
	if opt.Src == nil {
		panic("nrpt/parallel: RunThreaded: opt.Src is nil")
	}

	workers := nChains
	if gm := runtime.GOMAXPROCS(0); gm < workers {
		workers = gm
	}

	var warnings []Warning
	if workers == 1 && nChains > 1 {
		warnings = append(warnings, Warning{Op: "RunThreaded", Msg: "only one worker available; chains run sequentially"})
	}
	if nChains > opt.N {
		warnings = append(warnings, Warning{Op: "RunThreaded", Msg: "nChains exceeds the per-chain sample count N"})
	}

	seeds := deriveSeeds(opt.Src, nChains)
	chains := make([]C, nChains)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < nChains; i++ {
		i := i
		g.Go(func() error {
			chainOpt := opt
			chain, err := runOneChain(sampler, model, chainOpt, i, seeds[i])
			if err != nil {
				return err
			}
			chains[i] = chain
			if sink != nil {
				sink.ChainDone(i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}
	return chains, warnings, nil
}
