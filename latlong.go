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
	"strconv"

	"github.com/golang/geo/s2"

	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/model"
)

// LatLong is a geographic point: geodetic latitude and longitude in degrees
// and ellipsoidal height in meters.
type LatLong struct {
	Lat    model.Degrees `json:"lat"`
	Lon    model.Degrees `json:"lon"`
	Height float64       `json:"height"`
}

// NewLatLong validates a point and normalizes its longitude into
// [-180, 180].  Any finite longitude is accepted and wrapped modulo 360.
func NewLatLong(lat, lon model.Degrees, height float64) (LatLong, error) {
	p := LatLong{Lat: lat, Lon: lon, Height: height}
	if err := p.Validate(); err != nil {
		return LatLong{}, err
	}

	p.Lon = p.Lon.NormalizeLongitude()

	return p, nil
}

// MustLatLong is like NewLatLong but panics on an invalid point.
func MustLatLong(lat, lon model.Degrees, height float64) LatLong {
	p, err := NewLatLong(lat, lon, height)
	if err != nil {
		panic(err)
	}

	return p
}

// Validate checks that the latitude lies within [-90, 90] and that every
// component is finite.
func (p LatLong) Validate() error {
	lat := float64(p.Lat)
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: %v", ErrInvalidLatitude, lat)
	}

	if lon := float64(p.Lon); math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidLongitude, lon)
	}

	if math.IsNaN(p.Height) || math.IsInf(p.Height, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidHeight, p.Height)
	}

	return nil
}

// EqualWithin checks if two points have the same latitude and longitude
// within a specific epsilon.  Height is ignored.
func (p LatLong) EqualWithin(o LatLong, eps model.Epsilon) bool {
	return p.Lat.EqualWithin(o.Lat, eps) && p.Lon.EqualWithin(o.Lon, eps)
}

// LatLng returns the point as an s2.LatLng.
func (p LatLong) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(float64(p.Lat), float64(p.Lon))
}

// ToECEF converts the point to Earth-centered Earth-fixed coordinates on the
// datum's ellipsoid.
func (p LatLong) ToECEF(d *datum.Datum) (ECEF, error) {
	if d == nil {
		return ECEF{}, ErrMissingDatum
	}

	e := d.Ellipsoid()
	if err := e.Recompute(); err != nil {
		return ECEF{}, err
	}

	phi := p.Lat.Radians()
	lambda := p.Lon.Radians()

	n := e.RadiusOfCurvaturePrimeVertical(phi)
	e2 := e.FirstEccentricitySquared()

	sinPhi, cosPhi := math.Sincos(phi)
	sinLambda, cosLambda := math.Sincos(lambda)

	return ECEF{
		X: (n + p.Height) * cosPhi * cosLambda,
		Y: (n + p.Height) * cosPhi * sinLambda,
		Z: ((1-e2)*n + p.Height) * sinPhi,
	}, nil
}

// ToUTM projects the point into its UTM zone.
func (p LatLong) ToUTM(d *datum.Datum) (UTM, error) {
	return toUTM(p, d)
}

// Transform re-expresses the point, given in datum from, in datum to by way
// of WGS 84 Cartesian coordinates.
func (p LatLong) Transform(from, to *datum.Datum, opts ...Option) (LatLong, error) {
	if from == nil || to == nil {
		return LatLong{}, ErrMissingDatum
	}

	c, err := p.ToECEF(from)
	if err != nil {
		return LatLong{}, err
	}

	if c, err = c.ToWGS84(from); err != nil {
		return LatLong{}, err
	}

	if c, err = c.FromWGS84(to); err != nil {
		return LatLong{}, err
	}

	return c.ToLatLong(to, opts...)
}

func (p LatLong) String() string {
	return fmt.Sprintf("(%s, %s, %s m)",
		strconv.FormatFloat(float64(p.Lat), 'f', -1, 64),
		strconv.FormatFloat(float64(p.Lon), 'f', -1, 64),
		strconv.FormatFloat(p.Height, 'f', -1, 64))
}

// fromRadians builds a point from radians, normalizing the longitude and
// clamping the latitude.
func fromRadians(phi, lambda, height float64) LatLong {
	return LatLong{
		Lat:    model.FromRadians(phi).ClampLatitude(),
		Lon:    model.FromRadians(lambda).NormalizeLongitude(),
		Height: height,
	}
}
