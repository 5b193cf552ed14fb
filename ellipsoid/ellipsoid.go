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

// Package ellipsoid models the reference ellipsoid: a semi-major axis plus one
// authoritative shape parameter, and the quantities derived from them.
//
// Derived values are held in an immutable snapshot published through an
// atomic pointer.  A nil snapshot is the dirty state; any accessor rebuilds
// the snapshot before answering.  Reading a constructed Ellipsoid from many
// goroutines is safe, mutating it concurrently is not.
package ellipsoid

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync/atomic"
)

var (
	// ErrMissingSemiMajorAxis is returned when the semi-major axis is unset,
	// zero, negative or not finite.
	ErrMissingSemiMajorAxis = errors.New("missing semi-major axis")

	// ErrMissingShape is returned when neither the semi-minor axis nor the
	// inverse flattening has been set.
	ErrMissingShape = errors.New("missing semi-minor axis or inverse flattening")

	// ErrInvalidShape is returned when a shape parameter is out of range.
	ErrInvalidShape = errors.New("invalid ellipsoid shape")

	// ErrUnknownEllipsoid is returned by Lookup for names that are not in the
	// registry.
	ErrUnknownEllipsoid = errors.New("unknown ellipsoid")
)

// shape records which of b and 1/f is authoritative.
type shape int

const (
	shapeNone shape = iota
	shapeMinorAxis
	shapeInverseFlattening
)

// derived is a snapshot of every value computed from a and the shape
// parameter.
type derived struct {
	f          float64
	invF       float64
	b          float64
	e2         float64
	ep2        float64
	mean       float64
	authalic   float64
	volumetric float64
}

var invalid = derived{
	f:          math.NaN(),
	invF:       math.NaN(),
	b:          math.NaN(),
	e2:         math.NaN(),
	ep2:        math.NaN(),
	mean:       math.NaN(),
	authalic:   math.NaN(),
	volumetric: math.NaN(),
}

// Ellipsoid is a reference ellipsoid.  Use it through a pointer; Clone
// produces an independent copy.
type Ellipsoid struct {
	name      string
	a         float64
	b         float64
	invF      float64
	authority shape
	cache     atomic.Pointer[derived]
}

// New creates an ellipsoid from its semi-major and semi-minor axes in meters.
func New(a, b float64) (*Ellipsoid, error) {
	e := &Ellipsoid{}
	if err := e.SetSemiMajorAxis(a); err != nil {
		return nil, err
	}

	if err := e.SetSemiMinorAxis(b); err != nil {
		return nil, err
	}

	return e, nil
}

// NewFromInverseFlattening creates an ellipsoid from its semi-major axis in
// meters and its inverse flattening.  An inverse flattening of +Inf is a
// sphere.
func NewFromInverseFlattening(a, invF float64) (*Ellipsoid, error) {
	e := &Ellipsoid{}
	if err := e.SetSemiMajorAxis(a); err != nil {
		return nil, err
	}

	if err := e.SetInverseFlattening(invF); err != nil {
		return nil, err
	}

	return e, nil
}

// Clone returns an independent copy of the ellipsoid.
func (e *Ellipsoid) Clone() *Ellipsoid {
	c := &Ellipsoid{
		name:      e.name,
		a:         e.a,
		b:         e.b,
		invF:      e.invF,
		authority: e.authority,
	}
	c.cache.Store(e.cache.Load())

	return c
}

// Name returns the preset name, or an empty string for a custom ellipsoid.
func (e *Ellipsoid) Name() string {
	return e.name
}

// SemiMajorAxis returns a in meters.
func (e *Ellipsoid) SemiMajorAxis() float64 {
	return e.a
}

// SetSemiMajorAxis replaces a, keeping the current shape parameter.
func (e *Ellipsoid) SetSemiMajorAxis(a float64) error {
	if !(a > 0) || math.IsInf(a, 1) {
		return fmt.Errorf("%w: %v", ErrMissingSemiMajorAxis, a)
	}

	if e.authority == shapeMinorAxis && e.b > a {
		return fmt.Errorf("%w: semi-major axis %v is less than semi-minor axis %v", ErrInvalidShape, a, e.b)
	}

	e.a = a
	e.markDirty()

	return nil
}

// SetSemiMinorAxis makes b authoritative and clears the inverse flattening.
func (e *Ellipsoid) SetSemiMinorAxis(b float64) error {
	if !(b > 0) || math.IsInf(b, 1) || (e.a > 0 && b > e.a) {
		return fmt.Errorf("%w: semi-minor axis %v", ErrInvalidShape, b)
	}

	e.b = b
	e.invF = 0
	e.authority = shapeMinorAxis
	e.markDirty()

	return nil
}

// SetInverseFlattening makes 1/f authoritative and clears the semi-minor
// axis.  +Inf describes a sphere.
func (e *Ellipsoid) SetInverseFlattening(invF float64) error {
	if !(invF > 1) {
		return fmt.Errorf("%w: inverse flattening %v", ErrInvalidShape, invF)
	}

	e.invF = invF
	e.b = 0
	e.authority = shapeInverseFlattening
	e.markDirty()

	return nil
}

// SetFlattening is SetInverseFlattening(1/f).  A flattening of zero is a
// sphere.
func (e *Ellipsoid) SetFlattening(f float64) error {
	if !(f >= 0 && f < 1) {
		return fmt.Errorf("%w: flattening %v", ErrInvalidShape, f)
	}

	if f == 0 {
		return e.SetInverseFlattening(math.Inf(1))
	}

	return e.SetInverseFlattening(1 / f)
}

// IsSphere reports whether the ellipsoid has no flattening.
func (e *Ellipsoid) IsSphere() bool {
	return e.params().f == 0
}

// Dirty reports whether derived values need to be recomputed.
func (e *Ellipsoid) Dirty() bool {
	return e.cache.Load() == nil
}

func (e *Ellipsoid) markDirty() {
	e.cache.Store(nil)
}

// Recompute rebuilds the derived values and reports a configuration error if
// the parameters are incomplete.  Accessors call it implicitly.
func (e *Ellipsoid) Recompute() error {
	d, err := e.compute()
	if err != nil {
		return err
	}

	e.cache.Store(d)

	return nil
}

// params returns the current snapshot, rebuilding it when dirty.  An
// incomplete ellipsoid yields NaN everywhere.
func (e *Ellipsoid) params() *derived {
	if d := e.cache.Load(); d != nil {
		return d
	}

	d, err := e.compute()
	if err != nil {
		slog.Debug("ellipsoid parameters are incomplete", "name", e.name, "error", err)

		return &invalid
	}

	e.cache.Store(d)

	return d
}

func (e *Ellipsoid) compute() (*derived, error) {
	if !(e.a > 0) {
		return nil, ErrMissingSemiMajorAxis
	}

	d := &derived{}
	a := e.a

	switch e.authority {
	case shapeMinorAxis:
		d.b = e.b
		d.f = (a - e.b) / a
		d.invF = math.Inf(1)
		if d.f != 0 {
			d.invF = a / (a - e.b)
		}
	case shapeInverseFlattening:
		d.invF = e.invF
		d.f = 1 / e.invF
		d.b = a * (1 - d.f)
	default:
		return nil, ErrMissingShape
	}

	d.e2 = d.f * (2 - d.f)
	d.ep2 = d.e2 / (1 - d.e2)
	d.mean = (2*a + d.b) / 3
	d.volumetric = math.Cbrt(a * a * d.b)

	if d.e2 == 0 {
		d.authalic = a
	} else {
		ecc := math.Sqrt(d.e2)
		d.authalic = a * math.Sqrt(0.5*(1+(1-d.e2)*math.Atanh(ecc)/ecc))
	}

	return d, nil
}

// SemiMinorAxis returns b in meters.
func (e *Ellipsoid) SemiMinorAxis() float64 { return e.params().b }

// Flattening returns f = (a-b)/a.
func (e *Ellipsoid) Flattening() float64 { return e.params().f }

// InverseFlattening returns 1/f, +Inf for a sphere.
func (e *Ellipsoid) InverseFlattening() float64 { return e.params().invF }

// FirstEccentricitySquared returns e² = f(2-f).
func (e *Ellipsoid) FirstEccentricitySquared() float64 { return e.params().e2 }

// FirstEccentricity returns e.
func (e *Ellipsoid) FirstEccentricity() float64 { return math.Sqrt(e.params().e2) }

// SecondEccentricitySquared returns e'² = e²/(1-e²).
func (e *Ellipsoid) SecondEccentricitySquared() float64 { return e.params().ep2 }

// SecondEccentricity returns e'.
func (e *Ellipsoid) SecondEccentricity() float64 { return math.Sqrt(e.params().ep2) }

// MeanRadius returns the IUGG mean radius (2a+b)/3.
func (e *Ellipsoid) MeanRadius() float64 { return e.params().mean }

// AuthalicRadius returns the radius of the sphere with the same surface area.
func (e *Ellipsoid) AuthalicRadius() float64 { return e.params().authalic }

// VolumetricRadius returns the radius of the sphere with the same volume.
func (e *Ellipsoid) VolumetricRadius() float64 { return e.params().volumetric }

// SurfaceArea returns the surface area in square meters.
func (e *Ellipsoid) SurfaceArea() float64 {
	r := e.params().authalic

	return 4 * math.Pi * r * r
}

// RadiusOfCurvatureMeridian returns the meridional radius of curvature at a
// latitude given in radians.
func (e *Ellipsoid) RadiusOfCurvatureMeridian(lat float64) float64 {
	e2 := e.params().e2
	s := math.Sin(lat)

	return e.a * (1 - e2) / math.Pow(1-e2*s*s, 1.5)
}

// RadiusOfCurvaturePrimeVertical returns the prime-vertical radius of
// curvature at a latitude given in radians.
func (e *Ellipsoid) RadiusOfCurvaturePrimeVertical(lat float64) float64 {
	e2 := e.params().e2
	s := math.Sin(lat)

	return e.a / math.Sqrt(1-e2*s*s)
}

// MeridionalArc returns the distance in meters along the meridian from the
// equator to a latitude given in radians.
func (e *Ellipsoid) MeridionalArc(lat float64) float64 {
	e2 := e.params().e2
	e4 := e2 * e2
	e6 := e4 * e2

	return e.a * ((1-e2/4-3*e4/64-5*e6/256)*lat -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*lat) +
		(15*e4/256+45*e6/1024)*math.Sin(4*lat) -
		(35*e6/3072)*math.Sin(6*lat))
}

// FootpointLatitude inverts MeridionalArc: it returns the latitude in radians
// whose meridional arc is m meters.
func (e *Ellipsoid) FootpointLatitude(m float64) float64 {
	e2 := e.params().e2
	e4 := e2 * e2
	e6 := e4 * e2

	mu := m / (e.a * (1 - e2/4 - 3*e4/64 - 5*e6/256))

	root := math.Sqrt(1 - e2)
	e1 := (1 - root) / (1 + root)
	e1sq := e1 * e1

	return mu +
		(3*e1/2-27*e1*e1sq/32)*math.Sin(2*mu) +
		(21*e1sq/16-55*e1sq*e1sq/32)*math.Sin(4*mu) +
		(151*e1*e1sq/96)*math.Sin(6*mu) +
		(1097*e1sq*e1sq/512)*math.Sin(8*mu)
}

func (e *Ellipsoid) String() string {
	name := e.name
	if name == "" {
		name = "custom"
	}

	return fmt.Sprintf("%s (a=%s m, 1/f=%s)", name,
		strconv.FormatFloat(e.a, 'f', -1, 64),
		strconv.FormatFloat(e.InverseFlattening(), 'f', -1, 64))
}
