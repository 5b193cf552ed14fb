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

package datum

import (
	"fmt"

	"m4o.io/geodesy/model"
)

const ppm = 1e-6

// BursaWolfParameters is a seven-parameter Helmert similarity transform
// between two Cartesian frames, in the position-vector convention.
type BursaWolfParameters struct {
	Tx, Ty, Tz float64     // translations in meters
	Rx, Ry, Rz model.Angle // rotations
	Scale      float64     // scale difference in parts per million
}

// NewBursaWolfParameters builds parameters from translations in meters,
// rotations in seconds of arc and a scale difference in parts per million.
func NewBursaWolfParameters(tx, ty, tz, rx, ry, rz, scale float64) BursaWolfParameters {
	return BursaWolfParameters{
		Tx:    tx,
		Ty:    ty,
		Tz:    tz,
		Rx:    model.FromArcSeconds(rx),
		Ry:    model.FromArcSeconds(ry),
		Rz:    model.FromArcSeconds(rz),
		Scale: scale,
	}
}

// Apply transforms a point using the small-angle rotation approximation:
//
//	x' = Tx + x(1+s) - Rz·y + Ry·z
//	y' = Ty + Rz·x + y(1+s) - Rx·z
//	z' = Tz - Ry·x + Rx·y + z(1+s)
func (p BursaWolfParameters) Apply(x, y, z float64) (float64, float64, float64) {
	m := 1 + p.Scale*ppm
	rx, ry, rz := p.Rx.Radians(), p.Ry.Radians(), p.Rz.Radians()

	return p.Tx + x*m - rz*y + ry*z,
		p.Ty + rz*x + y*m - rx*z,
		p.Tz - ry*x + rx*y + z*m
}

// Invert negates all seven parameters in place, reversing the direction of
// the transform to first order.
func (p *BursaWolfParameters) Invert() {
	p.Tx, p.Ty, p.Tz = -p.Tx, -p.Ty, -p.Tz
	p.Rx, p.Ry, p.Rz = -p.Rx, -p.Ry, -p.Rz
	p.Scale = -p.Scale
}

// Inverse returns a negated copy.
func (p BursaWolfParameters) Inverse() BursaWolfParameters {
	p.Invert()

	return p
}

// IsIdentity reports whether applying the parameters leaves points unchanged.
func (p BursaWolfParameters) IsIdentity() bool {
	return p == BursaWolfParameters{}
}

func (p BursaWolfParameters) String() string {
	return fmt.Sprintf("t=(%g, %g, %g) m r=(%g, %g, %g)\" s=%g ppm",
		p.Tx, p.Ty, p.Tz,
		p.Rx.ArcSeconds(), p.Ry.ArcSeconds(), p.Rz.ArcSeconds(),
		p.Scale)
}
