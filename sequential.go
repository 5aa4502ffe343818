// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nrpt

import "time"

// Sample runs sampler against model for exactly opt.N retained samples,
// discarding opt.DiscardInitial initial transitions and saving every
// opt.Thinning-th transition thereafter. It implements the fixed-length
// driver: InitialStep, discard-and-thin NextStep transitions, Save each
// retained sample into a Buffer, and Bundle the result.
//
// The first retained sample is the result of InitialStep when
// DiscardInitial == 0; otherwise DiscardInitial-1 transitions are discarded
// after InitialStep and one further NextStep call produces the first
// retained sample. This keeps Ntotal, the number of states visited
// (InitialStep plus every subsequent NextStep call), equal to
// Thinning*(N-1) + DiscardInitial + 1 in every case.
func Sample[S State, T any, C any](sampler Sampler[S, T, C], model any, opt Options[S, T]) (C, error) {
	var zero C
	if err := opt.validate("Sample"); err != nil {
		return zero, err
	}

	stats := Stats{Start: time.Now()}
	thinning := opt.thinning()

	sample, state, err := sampler.InitialStep(opt.Src, model)
	if err != nil {
		return zero, &SamplerError{Op: "InitialStep", Err: err}
	}

	// Discard transitions before the first retained sample.
	toDiscard := opt.DiscardInitial
	if toDiscard > 0 {
		for i := 0; i < toDiscard-1; i++ {
			sample, state, err = sampler.NextStep(opt.Src, model, state)
			if err != nil {
				return zero, &SamplerError{Op: "NextStep", Err: err}
			}
		}
		sample, state, err = sampler.NextStep(opt.Src, model, state)
		if err != nil {
			return zero, &SamplerError{Op: "NextStep", Err: err}
		}
	}

	buf := sampler.NewBuffer(sample, model, opt.N)
	buf = sampler.Save(buf, sample, 1, model, opt.N)
	if opt.Callback != nil {
		if err := opt.Callback(1, sample); err != nil {
			return zero, &CallbackError{Index: 1, Err: err}
		}
	}
	reportProgress(opt.Sink, opt.ProgressEvery, 1, opt.N)

	for idx := 2; idx <= opt.N; idx++ {
		for i := 0; i < thinning-1; i++ {
			sample, state, err = sampler.NextStep(opt.Src, model, state)
			if err != nil {
				return zero, &SamplerError{Op: "NextStep", Err: err}
			}
		}
		sample, state, err = sampler.NextStep(opt.Src, model, state)
		if err != nil {
			return zero, &SamplerError{Op: "NextStep", Err: err}
		}

		buf = sampler.Save(buf, sample, idx, model, opt.N)
		if opt.Callback != nil {
			if err := opt.Callback(idx, sample); err != nil {
				return zero, &CallbackError{Index: idx, Err: err}
			}
		}
		reportProgress(opt.Sink, opt.ProgressEvery, idx, opt.N)
	}

	stats.Stop = time.Now()
	stats.Duration = stats.Stop.Sub(stats.Start)

	chain, err := sampler.Bundle(buf, model, state, opt.ChainType, stats)
	if err != nil {
		return zero, &SamplerError{Op: "Bundle", Err: err}
	}
	return chain, nil
}
