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
	"errors"

	"m4o.io/geodesy/datum"
)

var (
	// ErrMissingDatum is returned by conversions invoked with a nil datum.
	ErrMissingDatum = datum.ErrMissingDatum

	// ErrMissingEllipsoid is returned by ellipsoidal measurements invoked
	// with a nil ellipsoid.
	ErrMissingEllipsoid = errors.New("missing ellipsoid")

	// ErrInvalidLatitude is returned for latitudes outside [-90, 90] or that
	// are not finite.
	ErrInvalidLatitude = errors.New("invalid latitude")

	// ErrInvalidLongitude is returned for longitudes that are not finite.
	ErrInvalidLongitude = errors.New("invalid longitude")

	// ErrInvalidHeight is returned for heights that are not finite.
	ErrInvalidHeight = errors.New("invalid height")

	// ErrInvalidUTM is returned for UTM coordinates with an out of range zone,
	// band, easting or northing.
	ErrInvalidUTM = errors.New("invalid UTM coordinate")

	// ErrOutsideUTM is returned for latitudes outside the UTM bands, [-80, 84].
	ErrOutsideUTM = errors.New("latitude outside of UTM coverage")

	// ErrNoConvergence is returned when an iterative method reaches its
	// iteration cap before meeting its tolerance.
	ErrNoConvergence = errors.New("iteration did not converge")

	// ErrUnknownMethod is returned for unrecognized measurement method names.
	ErrUnknownMethod = errors.New("unknown measurement method")

	// ErrTooFewNodes is returned when a feature would hold fewer nodes than
	// its kind requires.
	ErrTooFewNodes = errors.New("too few nodes")

	// ErrNoSuchNode is returned for node indexes outside the feature.
	ErrNoSuchNode = errors.New("no such node")
)
