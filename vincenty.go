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

	"m4o.io/geodesy/ellipsoid"
	"m4o.io/geodesy/model"
)

// geodesic is the solution of Vincenty's inverse problem.
type geodesic struct {
	distance float64 // meters
	initial  float64 // forward azimuth at the first point, radians
	final    float64 // forward azimuth at the second point, radians
}

// Vincenty returns the ellipsoidal distance between two points.  Coincident
// points return exactly zero without iterating; nearly antipodal points may
// fail with ErrNoConvergence once WithMaxIterations (default 100) rounds have
// run.  The result does not depend on the order of the points.
func Vincenty(a, b LatLong, e *ellipsoid.Ellipsoid, opts ...Option) (model.Distance, error) {
	if e == nil {
		return 0, ErrMissingEllipsoid
	}

	// solve in a fixed point order so that swapping the arguments is exact
	if b.Lat < a.Lat || (b.Lat == a.Lat && b.Lon < a.Lon) {
		a, b = b, a
	}

	g, err := vincentyInverse(a, b, e, configure(vincentyDefaults, opts))
	if err != nil {
		return 0, err
	}

	return model.Distance(g.distance), nil
}

// VincentyBearings returns the ellipsoidal initial bearing at a and final
// bearing at b, both in [0, 360).  Coincident points have bearing zero.
func VincentyBearings(a, b LatLong, e *ellipsoid.Ellipsoid, opts ...Option) (model.Degrees, model.Degrees, error) {
	if e == nil {
		return 0, 0, ErrMissingEllipsoid
	}

	g, err := vincentyInverse(a, b, e, configure(vincentyDefaults, opts))
	if err != nil {
		return 0, 0, err
	}

	return model.FromRadians(g.initial).NormalizeBearing(),
		model.FromRadians(g.final).NormalizeBearing(), nil
}

func vincentyInverse(p1, p2 LatLong, e *ellipsoid.Ellipsoid, cfg options) (geodesic, error) {
	if err := e.Recompute(); err != nil {
		return geodesic{}, err
	}

	a := e.SemiMajorAxis()
	b := e.SemiMinorAxis()
	f := e.Flattening()

	l := math.Remainder(p2.Lon.Radians()-p1.Lon.Radians(), 2*math.Pi)

	u1 := math.Atan((1 - f) * math.Tan(p1.Lat.Radians()))
	u2 := math.Atan((1 - f) * math.Tan(p2.Lat.Radians()))

	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := l

	var (
		sinLambda, cosLambda      float64
		sinSigma, cosSigma, sigma float64
		cosSqAlpha, cos2SigmaM    float64
		converged                 bool
	)

	for i := 0; i < cfg.maxIterations; i++ {
		sinLambda, cosLambda = math.Sincos(lambda)

		t1 := cosU2 * sinLambda
		t2 := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(t1*t1 + t2*t2)

		if sinSigma == 0 {
			return geodesic{}, nil
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha

		// equatorial line
		cos2SigmaM = 0
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		c := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))

		prev := lambda
		lambda = l + (1-c)*f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) < cfg.tolerance {
			converged = true

			break
		}
	}

	if !converged {
		slog.Debug("vincenty iteration reached its cap", "from", p1, "to", p2, "iterations", cfg.maxIterations)

		return geodesic{}, fmt.Errorf("%w: vincenty after %d iterations", ErrNoConvergence, cfg.maxIterations)
	}

	sinLambda, cosLambda = math.Sincos(lambda)

	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return geodesic{
		distance: b * bigA * (sigma - deltaSigma),
		initial:  math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda),
		final:    math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda),
	}, nil
}

// VincentyDestination solves Vincenty's direct problem: it travels distance
// along the geodesic leaving p on bearing and returns the end point and the
// final bearing there.
func VincentyDestination(
	p LatLong,
	bearing model.Degrees,
	distance model.Distance,
	e *ellipsoid.Ellipsoid,
	opts ...Option,
) (LatLong, model.Degrees, error) {
	if e == nil {
		return LatLong{}, 0, ErrMissingEllipsoid
	}

	if err := e.Recompute(); err != nil {
		return LatLong{}, 0, err
	}

	cfg := configure(vincentyDefaults, opts)

	a := e.SemiMajorAxis()
	b := e.SemiMinorAxis()
	f := e.Flattening()
	s := distance.Meters()

	sinAlpha1, cosAlpha1 := math.Sincos(bearing.Radians())

	tanU1 := (1 - f) * math.Tan(p.Lat.Radians())
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha

	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	sigma := s / (b * bigA)

	var (
		sinSigma, cosSigma, cos2SigmaM float64
		converged                      bool
	)

	for i := 0; i < cfg.maxIterations; i++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma = math.Sincos(sigma)

		deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

		prev := sigma
		sigma = s/(b*bigA) + deltaSigma

		if math.Abs(sigma-prev) < cfg.tolerance {
			converged = true

			break
		}
	}

	if !converged {
		return LatLong{}, 0, fmt.Errorf("%w: vincenty direct after %d iterations", ErrNoConvergence, cfg.maxIterations)
	}

	cos2SigmaM = math.Cos(2*sigma1 + sigma)
	sinSigma, cosSigma = math.Sincos(sigma)

	x := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	phi2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1, (1-f)*math.Sqrt(sinAlpha*sinAlpha+x*x))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)

	c := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
	l := lambda - (1-c)*f*sinAlpha*
		(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

	alpha2 := math.Atan2(sinAlpha, -x)

	return fromRadians(phi2, p.Lon.Radians()+l, p.Height),
		model.FromRadians(alpha2).NormalizeBearing(), nil
}
