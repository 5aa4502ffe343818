// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nrpt_test

import (
	"math/rand"
	"testing"

	"github.com/mcmc-go/nrpt"
	"github.com/mcmc-go/nrpt/internal/gaussiantest"
)

func TestSampleUntilStopsOnPredicate(t *testing.T) {
	_, tm := gaussModel()
	opt := nrpt.ConvergenceOptions[gaussiantest.State, float64]{
		Options: nrpt.Options[gaussiantest.State, float64]{Src: rand.New(rand.NewSource(3))},
		MaxN:    1000,
		IsDone:  func(buf nrpt.Buffer[float64], retained int) bool { return retained >= 7 },
	}
	chain, err := nrpt.SampleUntil[gaussiantest.State, float64, gaussiantest.Chain](gaussiantest.Sampler{}, tm, opt)
	if err != nil {
		t.Fatalf("SampleUntil: %v", err)
	}
	if len(chain.Samples) != 7 {
		t.Errorf("len(chain.Samples) = %d, want 7", len(chain.Samples))
	}
}

func TestSampleUntilRespectsMaxN(t *testing.T) {
	_, tm := gaussModel()
	opt := nrpt.ConvergenceOptions[gaussiantest.State, float64]{
		Options: nrpt.Options[gaussiantest.State, float64]{Src: rand.New(rand.NewSource(3))},
		MaxN:    5,
		IsDone:  func(buf nrpt.Buffer[float64], retained int) bool { return false },
	}
	chain, err := nrpt.SampleUntil[gaussiantest.State, float64, gaussiantest.Chain](gaussiantest.Sampler{}, tm, opt)
	if err != nil {
		t.Fatalf("SampleUntil: %v", err)
	}
	if len(chain.Samples) != 5 {
		t.Errorf("len(chain.Samples) = %d, want 5 (MaxN bound)", len(chain.Samples))
	}
}

func TestSampleUntilPanicsOnNilIsDone(t *testing.T) {
	_, tm := gaussModel()
	defer func() {
		if recover() == nil {
			t.Error("SampleUntil with nil IsDone: want panic, got none")
		}
	}()
	opt := nrpt.ConvergenceOptions[gaussiantest.State, float64]{
		Options: nrpt.Options[gaussiantest.State, float64]{Src: rand.New(rand.NewSource(3))},
		MaxN:    5,
	}
	nrpt.SampleUntil[gaussiantest.State, float64, gaussiantest.Chain](gaussiantest.Sampler{}, tm, opt)
}
