// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nrpt

import "sync/atomic"

// ProgressSink receives progress reports from Sample, SampleUntil, and the
// nrpt/parallel drivers. Report is called synchronously from the reporting
// goroutine; implementations that do non-trivial work should buffer or
// return quickly, the same contract gonum's optimize.Recorder places on its
// callers.
type ProgressSink interface {
	// Report is called with done, the number of retained samples saved so
	// far, and total, the number that will be saved overall. done == total
	// on the final call of a run that reaches its total; for SampleUntil,
	// total is MaxN, and a run that IsDone stops early never reaches it.
	Report(done, total int)
}

// progressEnabled gates whether drivers report progress at all. It defaults
// to false: progress reporting is opt-in, mirroring gonum's Settings.Recorder
// being nil by default. The flag is process-wide and lock-free to read,
// matching the contrib workerpool's atomic "closed" flag convention.
var progressEnabled atomic.Bool

// SetProgress enables or disables progress reporting process-wide. The flag
// is read at every report, so a change made while a run is in flight takes
// effect from that run's next report.
func SetProgress(enabled bool) { progressEnabled.Store(enabled) }

// ProgressEnabled reports whether progress reporting is currently enabled.
func ProgressEnabled() bool { return progressEnabled.Load() }

// reportProgress calls sink.Report(done, total) when sink is non-nil,
// progress is enabled, and done is a reporting boundary: every every-th
// retained sample, or the final one. every<=0 (the Options.ProgressEvery zero value)
// means "report only at the end," matching Options.ProgressEvery's
// documented default.
func reportProgress(sink ProgressSink, every, done, total int) {
	if sink == nil || !progressEnabled.Load() {
		return
	}
	if done == total || (every > 0 && done%every == 0) {
		sink.Report(done, total)
	}
}
