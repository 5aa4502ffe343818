// Copyright ©2026 The NRPT Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nrpt_test

import (
	"errors"

	"github.com/mcmc-go/nrpt"
)

var errBoom = errors.New("boom")

func asCallbackError(err error, target **nrpt.CallbackError) bool {
	return errors.As(err, target)
}
