// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nrpt

import "fmt"

// InvalidArgumentError is returned eagerly, before any sampler or model call,
// when a driver's arguments cannot produce a valid run (N<1, a negative
// DiscardInitial, a negative Thinning, a non-monotone ladder, NTune<2, ...).
type InvalidArgumentError struct {
	Op  string
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("nrpt: invalid argument in %s: %s", e.Op, e.Msg)
}

// SamplerError wraps an error returned by a Sampler's InitialStep or
// NextStep, or by the model it evaluates. It is propagated unchanged in
// substance; any buffer in progress is discarded by the caller.
type SamplerError struct {
	Op  string
	Err error
}

func (e *SamplerError) Error() string {
	return fmt.Sprintf("nrpt: sampler failure in %s: %v", e.Op, e.Err)
}

func (e *SamplerError) Unwrap() error { return e.Err }

// CallbackError wraps an error returned by a driver's Callback option. Like
// SamplerError, it is fatal: tempering and sampling semantics forbid
// silently skipping a retained sample.
type CallbackError struct {
	Index int
	Err   error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("nrpt: callback failed at index %d: %v", e.Index, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// NumericError reports a non-recoverable numerical failure: a non-finite
// communication-barrier total, a spline fit that could not preserve
// monotonicity, or a bisection that failed to bracket a root. The NRPT
// controller aborts with its last-good ladder preserved for diagnostics.
type NumericError struct {
	Op  string
	Msg string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("nrpt: numeric failure in %s: %s", e.Op, e.Msg)
}

// WorkerError is returned by the parallel drivers once all already-dispatched
// workers have settled and the progress channel has been closed. It reports
// the first error observed across the fleet.
type WorkerError struct {
	ChainIndex int
	Err        error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("nrpt: chain %d failed: %v", e.ChainIndex, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }
