// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parallel

import "github.com/mcmc-go/nrpt"

// RunSerial runs nChains independent chains sequentially on the calling
// goroutine, in order. It is the reference implementation the other two
// drivers must match bit-for-bit given the same parent seed, model, and
// sampler: the same seeds (see deriveSeeds) are drawn before any chain
// runs, so RunSerial, RunThreaded, and RunDistributed are interchangeable
// for a given parent seed.
func RunSerial[S nrpt.State, T any, C any](
	sampler nrpt.Sampler[S, T, C],
	model any,
	nChains int,
	opt nrpt.Options[S, T],
	sink ThreadedSink,
) ([]C, error) {
	if nChains < 1 {
		return nil, &nrpt.InvalidArgumentError{Op: "RunSerial", Msg: "nChains must be >= 1"}
	}
	if opt.Src == nil {
		panic("nrpt/parallel: RunSerial: opt.Src is nil")
	}

	seeds := deriveSeeds(opt.Src, nChains)
	chains := make([]C, nChains)
	for i := 0; i < nChains; i++ {
		chain, err := runOneChain(sampler, model, opt, i, seeds[i])
		if err != nil {
			return nil, err
		}
		chains[i] = chain
		if sink != nil {
			sink.ChainDone(i)
		}
	}
	return chains, nil
}
