// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nrpt

import "time"

// IsDoneFunc reports whether a convergence-driven run should stop, given the
// buffer accumulated so far and the number of retained samples it holds. It
// is called after every retained sample is saved, including the first,
// except once MaxN samples are retained: the run then ends without calling it.
type IsDoneFunc[S State, T any] func(buf Buffer[T], retained int) bool

// ConvergenceOptions configures SampleUntil. Unlike Options.N, there is no
// fixed sample count: the run continues until IsDone reports true or MaxN
// transitions have been retained, whichever comes first. MaxN guards against
// an IsDone that never fires, matching spec.md §4.C's stated requirement
// that convergence-driven runs remain bounded.
type ConvergenceOptions[S State, T any] struct {
	Options[S, T]

	// IsDone is consulted after each retained sample before the MaxN-th. A
	// nil IsDone is a programmer error.
	IsDone IsDoneFunc[S, T]

	// MaxN bounds the number of retained samples taken if IsDone never
	// fires. Must be >= 1.
	MaxN int
}

func (o *ConvergenceOptions[S, T]) validate(op string) error {
	if o.IsDone == nil {
		panic("nrpt: " + op + ": ConvergenceOptions.IsDone is nil")
	}
	if o.MaxN < 1 {
		return &InvalidArgumentError{Op: op, Msg: "MaxN must be >= 1"}
	}
	o.Options.N = o.MaxN
	return o.Options.validate(op)
}

// SampleUntil runs sampler against model, retaining samples exactly as
// Sample does (DiscardInitial warm-up transitions, then one retained sample
// every Thinning transitions), but stops as soon as opt.IsDone reports true
// for the accumulated buffer, or after opt.MaxN retained samples, whichever
// comes first.
func SampleUntil[S State, T any, C any](sampler Sampler[S, T, C], model any, opt ConvergenceOptions[S, T]) (C, error) {
	var zero C
	if err := opt.validate("SampleUntil"); err != nil {
		return zero, err
	}

	stats := Stats{Start: time.Now()}
	thinning := opt.thinning()

	sample, state, err := sampler.InitialStep(opt.Src, model)
	if err != nil {
		return zero, &SamplerError{Op: "InitialStep", Err: err}
	}

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

	buf := sampler.NewBuffer(sample, model, opt.MaxN)
	buf = sampler.Save(buf, sample, 1, model, opt.MaxN)
	if opt.Callback != nil {
		if err := opt.Callback(1, sample); err != nil {
			return zero, &CallbackError{Index: 1, Err: err}
		}
	}
	reportProgress(opt.Sink, opt.ProgressEvery, 1, opt.MaxN)

	retained := 1
	for retained < opt.MaxN && !opt.IsDone(buf, retained) {
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

		retained++
		buf = sampler.Save(buf, sample, retained, model, opt.MaxN)
		if opt.Callback != nil {
			if err := opt.Callback(retained, sample); err != nil {
				return zero, &CallbackError{Index: retained, Err: err}
			}
		}
		reportProgress(opt.Sink, opt.ProgressEvery, retained, opt.MaxN)
	}

	stats.Stop = time.Now()
	stats.Duration = stats.Stop.Sub(stats.Start)

	chain, err := sampler.Bundle(buf, model, state, opt.ChainType, stats)
	if err != nil {
		return zero, &SamplerError{Op: "Bundle", Err: err}
	}
	return chain, nil
}
