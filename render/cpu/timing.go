// Copyright © 2015-2018 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package cpu

// timing.go - per-stage render timing, supplementing the source's
// RAINBOW_TIME_SECTION macro as a logged duration per pipeline stage.

import (
	"fmt"
	"time"
)

// timeSection logs how long fn took under name, iff verbose logging is
// enabled.
func timeSection(verbose bool, name string, fn func()) {
	start := time.Now()
	fn()
	if verbose {
		fmt.Printf("cpu: %-20s %v\n", name, time.Since(start))
	}
}
