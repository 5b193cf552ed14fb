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
	"fmt"
	"log/slog"
	"math"

	"m4o.io/geodesy/datum"
)

// ECEF is an Earth-centered Earth-fixed Cartesian point in meters.
type ECEF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ToLatLong recovers geographic coordinates with Bowring's iteration.  The
// iteration stops once successive latitudes differ by less than the tolerance
// (WithTolerance, default 1e-12 rad) and fails with ErrNoConvergence after
// WithMaxIterations rounds (default 25).
func (c ECEF) ToLatLong(d *datum.Datum, opts ...Option) (LatLong, error) {
	if d == nil {
		return LatLong{}, ErrMissingDatum
	}

	e := d.Ellipsoid()
	if err := e.Recompute(); err != nil {
		return LatLong{}, err
	}

	cfg := configure(bowringDefaults, opts)

	a := e.SemiMajorAxis()
	e2 := e.FirstEccentricitySquared()
	p := math.Hypot(c.X, c.Y)

	// on the polar axis longitude is undefined and latitude is +/-90
	if p == 0 {
		phi := math.Copysign(math.Pi/2, c.Z)

		return fromRadians(phi, 0, math.Abs(c.Z)-e.SemiMinorAxis()), nil
	}

	phi := math.Atan2(c.Z, p*(1-e2))
	converged := false

	for i := 0; i < cfg.maxIterations; i++ {
		s := math.Sin(phi)
		v := a / math.Sqrt(1-e2*s*s)
		next := math.Atan2(c.Z+e2*v*s, p)

		delta := math.Abs(next - phi)
		phi = next

		if delta < cfg.tolerance {
			converged = true

			break
		}
	}

	if !converged {
		slog.Debug("bowring iteration reached its cap", "ecef", c, "iterations", cfg.maxIterations)

		return LatLong{}, fmt.Errorf("%w: latitude after %d iterations", ErrNoConvergence, cfg.maxIterations)
	}

	sinPhi, cosPhi := math.Sincos(phi)
	v := a / math.Sqrt(1-e2*sinPhi*sinPhi)

	var h float64
	if math.Abs(phi) < math.Pi/4 {
		h = p/cosPhi - v
	} else {
		h = c.Z/sinPhi - v*(1-e2)
	}

	return fromRadians(phi, math.Atan2(c.Y, c.X), h), nil
}

// ToWGS84 transforms the point from the datum's frame into WGS 84.
func (c ECEF) ToWGS84(d *datum.Datum) (ECEF, error) {
	if d == nil {
		return ECEF{}, ErrMissingDatum
	}

	x, y, z := d.ToWGS84(c.X, c.Y, c.Z)

	return ECEF{X: x, Y: y, Z: z}, nil
}

// FromWGS84 transforms the point from WGS 84 into the datum's frame.
func (c ECEF) FromWGS84(d *datum.Datum) (ECEF, error) {
	if d == nil {
		return ECEF{}, ErrMissingDatum
	}

	x, y, z := d.FromWGS84(c.X, c.Y, c.Z)

	return ECEF{X: x, Y: y, Z: z}, nil
}

// Distance returns the straight-line distance between two points in meters.
func (c ECEF) Distance(o ECEF) float64 {
	dx, dy, dz := c.X-o.X, c.Y-o.Y, c.Z-o.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (c ECEF) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", c.X, c.Y, c.Z)
}
