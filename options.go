// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nrpt

import "math/rand"

// Options configures a Sample or SampleUntil run. The zero value is not
// valid: N must be set explicitly. Fields left at their zero value otherwise
// take the defaults documented below, mirroring the optional-Settings
// convention gonum's optimize package uses for Minimize.
type Options[S State, T any] struct {
	// N is the number of samples to retain. Must be >= 1.
	N int

	// DiscardInitial is the number of initial transitions discarded before
	// the first retained sample. Must be >= 0. Default 0.
	DiscardInitial int

	// Thinning is the number of transitions per retained sample; only every
	// Thinning-th post-warm-up state is saved. Must be >= 1. Default 1.
	Thinning int

	// Src is the random source driving the chain. A nil Src is a programmer
	// error: the driver panics rather than silently seeding from a package
	// global, matching distuv's convention that callers own their source.
	Src *rand.Rand

	// Callback, if non-nil, is invoked after each retained sample is saved,
	// in order, with the 1-based retained index and the sample itself. A
	// non-nil error aborts the run with a *CallbackError.
	Callback func(index int, sample T) error

	// ChainType is forwarded verbatim to Sampler.Bundle.
	ChainType ChainType

	// ProgressEvery, if > 0, reports progress to Sink every ProgressEvery
	// retained samples. A zero value reports only at the end of the run.
	ProgressEvery int

	// Sink receives progress reports when ProgressEnabled is true. A nil
	// Sink silently disables reporting regardless of ProgressEnabled.
	Sink ProgressSink
}

// validate checks o for the eagerly-detectable misuse spec.md §7 assigns to
// InvalidArgumentError, and panics on the programmer errors (nil Src) that
// §7 assigns to panics rather than errors.
func (o *Options[S, T]) validate(op string) error {
	if o.Src == nil {
		panic("nrpt: " + op + ": Options.Src is nil")
	}
	if o.N < 1 {
		return &InvalidArgumentError{Op: op, Msg: "N must be >= 1"}
	}
	if o.DiscardInitial < 0 {
		return &InvalidArgumentError{Op: op, Msg: "DiscardInitial must be >= 0"}
	}
	if o.Thinning < 0 {
		return &InvalidArgumentError{Op: op, Msg: "Thinning must be >= 1"}
	}
	return nil
}

// thinning returns the effective Thinning, applying the documented default.
func (o *Options[S, T]) thinning() int {
	if o.Thinning == 0 {
		return 1
	}
	return o.Thinning
}

// total returns Ntotal = Thinning*(N-1) + DiscardInitial + 1, the number of
// NextStep transitions (including the InitialStep) that produce exactly N
// retained samples under the given DiscardInitial/Thinning.
func (o *Options[S, T]) total() int {
	return o.thinning()*(o.N-1) + o.DiscardInitial + 1
}
