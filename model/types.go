// Copyright 2017-25 the original author or authors.
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

// Package model contains the scalar value types shared by the geodesy
// packages: angles, distances, areas and bounding boxes.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"golang.org/x/exp/constraints"
)

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Angle represents a 1D angle in radians.
type Angle s1.Angle

// Epsilon is an enumeration of precisions that can be used when comparing Degrees.
type Epsilon float64

// Degrees units.
const (
	Degree           Degrees = 1
	radiansPerPi             = 180
	Radian                   = (radiansPerPi / math.Pi) * Degree
	MinutesPerDegree         = 60
	SecondsPerDegree         = 3600

	E5 Epsilon = 1e-5
	E6 Epsilon = 1e-6
	E7 Epsilon = 1e-7
	E8 Epsilon = 1e-8
	E9 Epsilon = 1e-9

	TenMillionths      = 10_000_000
	Millionths         = 1_000_000
	HundredThousandths = 100_000

	Half = 0.5
)

// Angle returns the equivalent Angle.
func (d Degrees) Angle() Angle { return Angle(float64(d) * float64(s1.Degree)) }

// Radians returns the angle in radians.
func (d Degrees) Radians() float64 { return float64(d) * float64(s1.Degree) }

// FromRadians converts an angle in radians into Degrees.
func FromRadians(rad float64) Degrees { return Degrees(rad) * Radian }

func (d Degrees) String() string {
	var sign string
	if d < 0 {
		sign = "-"
	}

	val := math.Abs(float64(d))
	degrees := int(math.Floor(val))
	minutes := int(math.Floor(MinutesPerDegree * (val - float64(degrees))))
	seconds := SecondsPerDegree * (val - float64(degrees) - (float64(minutes) / MinutesPerDegree))

	return fmt.Sprintf("%s%d° %d' %s\"", sign, degrees, minutes, ftoa(seconds))
}

func (d Degrees) MarshalJSON() ([]byte, error) {
	return []byte(ftoa(float64(d))), nil
}

// EqualWithin checks if two degrees are within a specific epsilon.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// NormalizeLongitude wraps a longitude into [-180, 180].  Values already in
// range are returned unchanged; the antimeridian keeps the sign of the input.
func (d Degrees) NormalizeLongitude() Degrees {
	if d >= MinLon && d <= MaxLon {
		return d
	}

	r := Degrees(math.Remainder(float64(d), 360))
	if r == MinLon || r == MaxLon {
		return Degrees(math.Copysign(180, float64(d)))
	}

	return r
}

// NormalizeBearing wraps a bearing into [0, 360).
func (d Degrees) NormalizeBearing() Degrees {
	return Wrap(d, 0, 360)
}

// ClampLatitude limits a latitude to [-90, 90].
func (d Degrees) ClampLatitude() Degrees {
	return Clamp(d, -90, 90)
}

// Radians returns the angle in radians.
func (d Angle) Radians() float64 { return float64(d) }

// Degrees returns the angle in decimal degrees.
func (d Angle) Degrees() Degrees { return FromRadians(float64(d)) }

// ArcSeconds returns the angle in seconds of arc.
func (d Angle) ArcSeconds() float64 { return float64(d.Degrees()) * SecondsPerDegree }

// FromArcSeconds converts seconds of arc into an Angle.
func FromArcSeconds(sec float64) Angle {
	return Degrees(sec / SecondsPerDegree).Angle()
}

// EqualWithin checks if two angles are within a specific epsilon.
func (d Angle) EqualWithin(o Angle, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// E5 returns the angle in a hundred thousandths of degrees.
func (d Degrees) E5() int32 { return round(float64(d * HundredThousandths)) }

// E6 returns the angle in millionths of degrees.
func (d Degrees) E6() int32 { return round(float64(d * Millionths)) }

// E7 returns the angle in ten millionths of degrees.
func (d Degrees) E7() int32 { return round(float64(d * TenMillionths)) }

// round returns the value rounded to nearest as an int32.
// This does not match C++ exactly for the case of x.5.
func round(val float64) int32 {
	if val < 0 {
		return int32(val - Half)
	}

	return int32(val + Half)
}

// ParseDegrees converts a string to a Degrees instance.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}

// Wrap maps v into the half-open interval [lo, hi).
func Wrap[T constraints.Float](v, lo, hi T) T {
	if v >= lo && v < hi {
		return v
	}

	span := hi - lo
	r := T(math.Mod(float64(v-lo), float64(span)))
	if r < 0 {
		r += span
	}

	return r + lo
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

func ftoa(f float64) string {
	s := strconv.FormatFloat(f, 'f', 7, 64)
	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}
