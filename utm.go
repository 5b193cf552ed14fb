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

	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/model"
)

const (
	// ScaleFactor is the UTM central meridian scale factor k0.
	ScaleFactor = 0.9996

	// FalseEasting is added to every easting.
	FalseEasting = 500_000.0

	// FalseNorthing is added to southern hemisphere northings.
	FalseNorthing = 10_000_000.0

	// MinUTMLatitude and MaxUTMLatitude bound the lettered bands.
	MinUTMLatitude model.Degrees = -80
	MaxUTMLatitude model.Degrees = 84

	zoneWidth = 6
	bandWidth = 8
	numZones  = 60
)

// bands are the latitude band letters from 80°S northwards.  X covers 12° so
// it appears twice.
const bands = "CDEFGHJKLMNPQRSTUVWXX"

// UTM is a Universal Transverse Mercator grid reference.
type UTM struct {
	Northing float64 `json:"northing"`
	Easting  float64 `json:"easting"`
	Band     byte    `json:"band"`
	Zone     int     `json:"zone"`
}

// NewUTM validates and returns a grid reference.
func NewUTM(zone int, band byte, easting, northing float64) (UTM, error) {
	u := UTM{Northing: northing, Easting: easting, Band: band, Zone: zone}
	if err := u.Validate(); err != nil {
		return UTM{}, err
	}

	return u, nil
}

// Validate checks the zone, band letter, easting and northing ranges.
func (u UTM) Validate() error {
	if u.Zone < 1 || u.Zone > numZones {
		return fmt.Errorf("%w: zone %d", ErrInvalidUTM, u.Zone)
	}

	if u.Band == 0 || !strings.ContainsRune(bands, rune(u.Band)) {
		return fmt.Errorf("%w: band %q", ErrInvalidUTM, u.Band)
	}

	if !(u.Easting >= 0 && u.Easting <= 2*FalseEasting) {
		return fmt.Errorf("%w: easting %v", ErrInvalidUTM, u.Easting)
	}

	if !(u.Northing >= 0 && u.Northing <= FalseNorthing) {
		return fmt.Errorf("%w: northing %v", ErrInvalidUTM, u.Northing)
	}

	return nil
}

// Southern reports whether the band lies in the southern hemisphere.
func (u UTM) Southern() bool {
	return u.Band < 'N'
}

// ZoneDesignator returns the zone number and band letter, e.g. "32V".
func (u UTM) ZoneDesignator() string {
	return fmt.Sprintf("%d%c", u.Zone, u.Band)
}

func (u UTM) String() string {
	return fmt.Sprintf("%s %.3fE %.3fN", u.ZoneDesignator(), u.Easting, u.Northing)
}

// centralMeridian returns the zone's central meridian in radians.
func centralMeridian(zone int) float64 {
	return model.Degrees((zone-1)*zoneWidth - 180 + zoneWidth/2).Radians()
}

// IdentifyLongitudeZone returns the UTM zone number for a point, including
// the widened zones over south-western Norway (32V) and Svalbard (31X, 33X,
// 35X, 37X).
func IdentifyLongitudeZone(lat, lon model.Degrees) int {
	lon = lon.NormalizeLongitude()

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}

	if lat >= 72 && lat <= 84 && lon >= 0 && lon < 42 {
		switch {
		case lon < 9:
			return 31
		case lon < 21:
			return 33
		case lon < 33:
			return 35
		default:
			return 37
		}
	}

	zone := int(math.Floor(float64(lon+180)/zoneWidth)) + 1

	return min(max(zone, 1), numZones)
}

// IdentifyLatitudeZone returns the UTM band letter for a latitude in
// [-80, 84].
func IdentifyLatitudeZone(lat model.Degrees) (byte, error) {
	if math.IsNaN(float64(lat)) || lat < MinUTMLatitude || lat > MaxUTMLatitude {
		return 0, fmt.Errorf("%w: %v", ErrOutsideUTM, float64(lat))
	}

	i := int(math.Floor(float64(lat-MinUTMLatitude) / bandWidth))

	return bands[min(i, len(bands)-1)], nil
}

func toUTM(p LatLong, d *datum.Datum) (UTM, error) {
	if d == nil {
		return UTM{}, ErrMissingDatum
	}

	if err := p.Validate(); err != nil {
		return UTM{}, err
	}

	band, err := IdentifyLatitudeZone(p.Lat)
	if err != nil {
		return UTM{}, err
	}

	e := d.Ellipsoid()
	if err := e.Recompute(); err != nil {
		return UTM{}, err
	}

	zone := IdentifyLongitudeZone(p.Lat, p.Lon)

	phi := p.Lat.Radians()
	lambda := p.Lon.NormalizeLongitude().Radians()

	ep2 := e.SecondEccentricitySquared()

	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := e.RadiusOfCurvaturePrimeVertical(phi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := cosPhi * math.Remainder(lambda-centralMeridian(zone), 2*math.Pi)
	m := e.MeridionalArc(phi)

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	x := ScaleFactor * n * (a +
		(1-t+c)*a3/6 +
		(5-18*t+t*t+72*c-58*ep2)*a5/120)

	y := ScaleFactor * (m + n*tanPhi*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*ep2)*a6/720))

	u := UTM{
		Easting:  x + FalseEasting,
		Northing: y,
		Band:     band,
		Zone:     zone,
	}

	if p.Lat < 0 {
		u.Northing += FalseNorthing
	}

	return u, nil
}

// ToLatLong inverts the projection using the footpoint latitude.
func (u UTM) ToLatLong(d *datum.Datum) (LatLong, error) {
	if d == nil {
		return LatLong{}, ErrMissingDatum
	}

	if err := u.Validate(); err != nil {
		return LatLong{}, err
	}

	e := d.Ellipsoid()
	if err := e.Recompute(); err != nil {
		return LatLong{}, err
	}

	a := e.SemiMajorAxis()
	e2 := e.FirstEccentricitySquared()
	ep2 := e.SecondEccentricitySquared()

	x := u.Easting - FalseEasting
	y := u.Northing
	if u.Southern() {
		y -= FalseNorthing
	}

	phi1 := e.FootpointLatitude(y / ScaleFactor)

	sinPhi1, cosPhi1 := math.Sincos(phi1)
	tanPhi1 := math.Tan(phi1)

	w := 1 - e2*sinPhi1*sinPhi1
	n1 := a / math.Sqrt(w)
	r1 := a * (1 - e2) / math.Pow(w, 1.5)
	t1 := tanPhi1 * tanPhi1
	c1 := ep2 * cosPhi1 * cosPhi1
	dd := x / (n1 * ScaleFactor)

	d2 := dd * dd
	d3 := d2 * dd
	d4 := d3 * dd
	d5 := d4 * dd
	d6 := d5 * dd

	phi := phi1 - (n1*tanPhi1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d6/720)

	lambda := centralMeridian(u.Zone) + (dd-
		(1+2*t1+c1)*d3/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d5/120)/cosPhi1

	return fromRadians(phi, lambda, 0), nil
}
