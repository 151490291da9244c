// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package cpu

// config.go reduces the New API footprint using functional options.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

// config holds the §4.1 pipeline parameters.
type config struct {
	photonCount int
	maxBounces  int
	k           int
	epsilon     float32
	workers     int
	seed        int64
	log         bool
}

// configDefaults names the constants fixed by §4.1/§4.2/§4.3.
var configDefaults = config{
	photonCount: 1_000_000,
	maxBounces:  5,
	k:           200,
	epsilon:     1e-6,
	workers:     0, // 0 means runtime.NumCPU()
	seed:        1,
	log:         false,
}

// Option configures a Backend at construction.
//
//	b := cpu.New(cpu.PhotonCount(200_000), cpu.Seed(42))
type Option func(*config)

// PhotonCount overrides the default 1,000,000 emitted photons per
// Render.
func PhotonCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.photonCount = n
		}
	}
}

// MaxBounces overrides the default bounce limit of 5.
func MaxBounces(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxBounces = n
		}
	}
}

// K overrides the default k-nearest-neighbour count of 200.
func K(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.k = n
		}
	}
}

// Seed fixes the RNG seed driving photon emission and bounce sampling,
// making a Render call reproducible bit-for-bit across runs.
func Seed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// Workers overrides the pool's worker count; 0 (the default) uses
// runtime.NumCPU().
func Workers(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.workers = n
		}
	}
}

// Verbose enables per-stage timing logs (§9 supplement, ported from
// the source's RAINBOW_TIME_SECTION).
func Verbose() Option {
	return func(c *config) { c.log = true }
}
