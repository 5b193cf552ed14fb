// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package geodesy

import (
	"runtime"

	"m4o.io/geodesy/ellipsoid"
)

const (
	// DefaultRadius is the IUGG mean Earth radius in meters used by the
	// spherical formulas.
	DefaultRadius = 6_371_009.0

	// DefaultTolerance is the convergence threshold, in radians, of the
	// iterative methods.
	DefaultTolerance = 1e-12

	// DefaultBowringIterations caps the ECEF to geographic iteration.
	DefaultBowringIterations = 25

	// DefaultVincentyIterations caps the Vincenty lambda iteration.
	DefaultVincentyIterations = 100
)

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// options provides optional configuration parameters for iterative methods,
// spherical formulas and the conversion pipeline.
type options struct {
	maxIterations int                  // iteration cap for Bowring and Vincenty
	tolerance     float64              // convergence threshold in radians
	radius        float64              // sphere radius for spherical formulas
	ellipsoid     *ellipsoid.Ellipsoid // overrides radius with its authalic radius
	nCPU          uint16               // the number of CPUs to use for background processing
}

// Option configures a measurement, conversion or pipeline.
type Option func(*options)

// WithMaxIterations lets you set the iteration cap of an iterative method.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance lets you set the convergence threshold, in radians, of an
// iterative method.
func WithTolerance(t float64) Option {
	return func(o *options) {
		o.tolerance = t
	}
}

// WithRadius lets you set the sphere radius, in meters, of the spherical
// formulas.
func WithRadius(r float64) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithEllipsoid makes spherical formulas use the ellipsoid's authalic radius,
// and Distance use the ellipsoid for Vincenty.
func WithEllipsoid(e *ellipsoid.Ellipsoid) Option {
	return func(o *options) {
		o.ellipsoid = e
	}
}

// WithNCpus lets you set the number of CPUs to use for background processing.
func WithNCpus(n uint16) Option {
	return func(o *options) {
		o.nCPU = n
	}
}

var bowringDefaults = options{
	maxIterations: DefaultBowringIterations,
	tolerance:     DefaultTolerance,
	radius:        DefaultRadius,
	nCPU:          DefaultNCpu(),
}

var vincentyDefaults = options{
	maxIterations: DefaultVincentyIterations,
	tolerance:     DefaultTolerance,
	radius:        DefaultRadius,
	nCPU:          DefaultNCpu(),
}

func configure(defaults options, opts []Option) options {
	cfg := defaults

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.maxIterations < 1 {
		cfg.maxIterations = defaults.maxIterations
	}

	if !(cfg.tolerance > 0) {
		cfg.tolerance = defaults.tolerance
	}

	if cfg.nCPU < 1 {
		cfg.nCPU = 1
	}

	return cfg
}

// sphereRadius returns the radius the spherical formulas work with.
func (o options) sphereRadius() float64 {
	if o.ellipsoid != nil {
		return o.ellipsoid.AuthalicRadius()
	}

	return o.radius
}
