// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nrpt implements the sampler contract and the sequential and
// convergence-based drivers that run a single replica for a Markov Chain
// Monte Carlo chain.
//
// A concrete sampler (the transition kernel, e.g. HMC or Metropolis-Hastings)
// implements Sampler against an opaque model; Sample and SampleUntil drive it
// for a fixed sample count or until a caller-supplied predicate fires.
//
// Subpackage nrpt/parallel fans Sample out across independent chains.
// Subpackage nrpt/tempering builds a Non-Reversible Parallel Tempering engine
// on top of the contract defined here.
package nrpt // import "github.com/mcmc-go/nrpt"
