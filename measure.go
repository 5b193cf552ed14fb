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
	"math"
	"strings"

	"m4o.io/geodesy/ellipsoid"
	"m4o.io/geodesy/model"
)

// Method selects the distance formula.
type Method int

const (
	// HaversineMethod treats the Earth as a sphere.
	HaversineMethod Method = iota

	// VincentyMethod iterates on the ellipsoid.
	VincentyMethod
)

func (m Method) String() string {
	switch m {
	case HaversineMethod:
		return "haversine"
	case VincentyMethod:
		return "vincenty"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod resolves a method name, ignoring case.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "haversine", "spherical", "great circle":
		return HaversineMethod, nil
	case "vincenty", "ellipsoidal":
		return VincentyMethod, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Set implements pflag.Value.
func (m *Method) Set(s string) error {
	v, err := ParseMethod(s)
	if err != nil {
		return err
	}

	*m = v

	return nil
}

// Type implements pflag.Value.
func (m *Method) Type() string {
	return "method"
}

// wgs84 backs measurements that need an ellipsoid and were given none.  It is
// never mutated.
var wgs84 = ellipsoid.WGS84()

// Distance measures the distance between two points with the given method.
// Vincenty uses the WithEllipsoid ellipsoid, WGS 84 by default.
func Distance(a, b LatLong, m Method, opts ...Option) (model.Distance, error) {
	switch m {
	case HaversineMethod:
		return Haversine(a, b, opts...), nil
	case VincentyMethod:
		cfg := configure(vincentyDefaults, opts)

		e := cfg.ellipsoid
		if e == nil {
			e = wgs84
		}

		return Vincenty(a, b, e, opts...)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}
}

// Haversine returns the great circle distance between two points on a sphere
// of radius WithRadius (default DefaultRadius) or the authalic radius of
// WithEllipsoid.  The result does not depend on the order of the points.
func Haversine(a, b LatLong, opts ...Option) model.Distance {
	cfg := configure(vincentyDefaults, opts)

	return model.Distance(cfg.sphereRadius() * centralAngle(a, b))
}

// centralAngle returns the angle subtended at the center of the sphere, in
// radians.
func centralAngle(a, b LatLong) float64 {
	phi1, phi2 := a.Lat.Radians(), b.Lat.Radians()
	dPhi := phi2 - phi1
	dLambda := math.Remainder(b.Lon.Radians()-a.Lon.Radians(), 2*math.Pi)

	sPhi := math.Sin(dPhi / 2)
	sLambda := math.Sin(dLambda / 2)

	h := sPhi*sPhi + math.Cos(phi1)*math.Cos(phi2)*sLambda*sLambda
	h = min(max(h, 0), 1)

	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// InitialBearing returns the great circle bearing leaving a towards b, in
// [0, 360).
func InitialBearing(a, b LatLong) model.Degrees {
	phi1, phi2 := a.Lat.Radians(), b.Lat.Radians()
	dLambda := b.Lon.Radians() - a.Lon.Radians()

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	return model.FromRadians(math.Atan2(y, x)).NormalizeBearing()
}

// FinalBearing returns the great circle bearing arriving at b from a, in
// [0, 360).
func FinalBearing(a, b LatLong) model.Degrees {
	return (InitialBearing(b, a) + 180).NormalizeBearing()
}

// Midpoint returns the point halfway along the great circle from a to b.  The
// height is the mean of the two heights.
func Midpoint(a, b LatLong) LatLong {
	phi1, phi2 := a.Lat.Radians(), b.Lat.Radians()
	lambda1 := a.Lon.Radians()
	dLambda := b.Lon.Radians() - lambda1

	bx := math.Cos(phi2) * math.Cos(dLambda)
	by := math.Cos(phi2) * math.Sin(dLambda)

	phi3 := math.Atan2(math.Sin(phi1)+math.Sin(phi2),
		math.Sqrt((math.Cos(phi1)+bx)*(math.Cos(phi1)+bx)+by*by))
	lambda3 := lambda1 + math.Atan2(by, math.Cos(phi1)+bx)

	return fromRadians(phi3, lambda3, (a.Height+b.Height)/2)
}

// Destination travels distance along the great circle leaving p on bearing.
func Destination(p LatLong, bearing model.Degrees, distance model.Distance, opts ...Option) LatLong {
	cfg := configure(vincentyDefaults, opts)

	delta := distance.Meters() / cfg.sphereRadius()
	theta := bearing.Radians()
	phi1, lambda1 := p.Lat.Radians(), p.Lon.Radians()

	sinPhi1, cosPhi1 := math.Sincos(phi1)
	sinDelta, cosDelta := math.Sincos(delta)

	sinPhi2 := sinPhi1*cosDelta + cosPhi1*sinDelta*math.Cos(theta)
	phi2 := math.Asin(min(max(sinPhi2, -1), 1))
	lambda2 := lambda1 + math.Atan2(math.Sin(theta)*sinDelta*cosPhi1, cosDelta-sinPhi1*sinPhi2)

	return fromRadians(phi2, lambda2, p.Height)
}
