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

// Package datum binds a reference ellipsoid to the Bursa-Wolf parameters that
// align it with WGS 84 over a named region.
package datum

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"m4o.io/geodesy/ellipsoid"
	"m4o.io/geodesy/internal/registry"
)

var (
	// ErrMissingDatum is returned by conversions invoked without a datum.
	ErrMissingDatum = errors.New("missing datum")

	// ErrUnknownDatum is returned for names that are not in the registry.
	ErrUnknownDatum = errors.New("unknown datum")

	// ErrUnknownRegion is returned when a datum has no parameters for a
	// region.
	ErrUnknownRegion = errors.New("unknown datum region")
)

//go:embed datums.yaml
var presetData []byte

type preset struct {
	Name      string               `yaml:"name"`
	Synonyms  []string             `yaml:"synonyms"`
	Ellipsoid string               `yaml:"ellipsoid"`
	Default   string               `yaml:"default"`
	Regions   map[string][]float64 `yaml:"regions"`
}

func (p preset) Aliases() []string {
	return append([]string{p.Name}, p.Synonyms...)
}

var presets = registry.MustLoad[preset](presetData)

// Datum is a named ellipsoid plus the transform to WGS 84 for one region.  A
// Datum owns its ellipsoid; two datums never share one.
type Datum struct {
	key       string
	name      string
	region    string
	ellipsoid *ellipsoid.Ellipsoid
	params    BursaWolfParameters
}

// New resolves a named datum.  An empty region selects the datum's default
// region.
func New(name, region string) (*Datum, error) {
	key, ok := presets.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDatum, name)
	}

	p, _ := presets.Get(key)

	e, err := ellipsoid.Lookup(p.Ellipsoid)
	if err != nil {
		return nil, fmt.Errorf("datum %q: %w", key, err)
	}

	d := &Datum{
		key:       key,
		name:      p.Name,
		ellipsoid: e,
	}

	if region == "" {
		region = p.Default
	}

	if err := d.SetRegion(region); err != nil {
		return nil, err
	}

	return d, nil
}

// MustNew is like New but panics on error.
func MustNew(name, region string) *Datum {
	d, err := New(name, region)
	if err != nil {
		panic(err)
	}

	return d
}

// WGS84 returns a new WGS 84 datum.
func WGS84() *Datum {
	return MustNew("wgs84", "")
}

// NewCustom builds a datum from an ellipsoid and explicit parameters that take
// it to WGS 84.  The datum takes ownership of e.
func NewCustom(name string, e *ellipsoid.Ellipsoid, params BursaWolfParameters) (*Datum, error) {
	if e == nil {
		return nil, fmt.Errorf("datum %q: %w", name, ellipsoid.ErrMissingSemiMajorAxis)
	}

	if err := e.Recompute(); err != nil {
		return nil, fmt.Errorf("datum %q: %w", name, err)
	}

	return &Datum{
		key:       name,
		name:      name,
		region:    "custom",
		ellipsoid: e,
		params:    params,
	}, nil
}

// SetRegion replaces the Bursa-Wolf parameters with those of another region
// of the same datum.
func (d *Datum) SetRegion(region string) error {
	p, ok := presets.Get(d.key)
	if !ok {
		return fmt.Errorf("%w: %q has no registered regions", ErrUnknownRegion, d.key)
	}

	want := registry.Normalize(region)
	for r, values := range p.Regions {
		if registry.Normalize(r) != want {
			continue
		}

		params, err := fromValues(values)
		if err != nil {
			return fmt.Errorf("datum %q region %q: %w", d.key, r, err)
		}

		d.region = r
		d.params = params

		return nil
	}

	return fmt.Errorf("%w: %q for datum %q", ErrUnknownRegion, region, d.key)
}

func fromValues(v []float64) (BursaWolfParameters, error) {
	switch len(v) {
	case 3:
		return NewBursaWolfParameters(v[0], v[1], v[2], 0, 0, 0, 0), nil
	case 7:
		return NewBursaWolfParameters(v[0], v[1], v[2], v[3], v[4], v[5], v[6]), nil
	default:
		return BursaWolfParameters{}, fmt.Errorf("expected 3 or 7 parameters, got %d", len(v))
	}
}

// Key returns the canonical registry key, e.g. "osgb36".
func (d *Datum) Key() string { return d.key }

// Name returns the descriptive name.
func (d *Datum) Name() string { return d.name }

// Region returns the region whose parameters are in effect.
func (d *Datum) Region() string { return d.region }

// Ellipsoid returns the datum's reference ellipsoid.
func (d *Datum) Ellipsoid() *ellipsoid.Ellipsoid { return d.ellipsoid }

// Parameters returns the transform from this datum to WGS 84.
func (d *Datum) Parameters() BursaWolfParameters { return d.params }

// Regions returns the region names registered for the datum, sorted.
func (d *Datum) Regions() []string {
	return Regions(d.key)
}

// ToWGS84 transforms a Cartesian point from this datum's frame to WGS 84.
func (d *Datum) ToWGS84(x, y, z float64) (float64, float64, float64) {
	return d.params.Apply(x, y, z)
}

// FromWGS84 transforms a Cartesian point from WGS 84 into this datum's frame.
func (d *Datum) FromWGS84(x, y, z float64) (float64, float64, float64) {
	return d.params.Inverse().Apply(x, y, z)
}

func (d *Datum) String() string {
	return fmt.Sprintf("%s/%s on %s", d.key, d.region, d.ellipsoid.Name())
}

// Names returns the canonical datum keys in sorted order.
func Names() []string {
	return presets.Keys()
}

// Regions returns the sorted region names of a named datum, or nil when the
// datum is unknown.
func Regions(name string) []string {
	p, ok := presets.Get(name)
	if !ok {
		return nil
	}

	regions := make([]string, 0, len(p.Regions))
	for r := range p.Regions {
		regions = append(regions, r)
	}

	sort.Strings(regions)

	return regions
}
