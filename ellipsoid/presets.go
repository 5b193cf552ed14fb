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

package ellipsoid

import (
	_ "embed"
	"fmt"

	"m4o.io/geodesy/internal/registry"
)

//go:embed ellipsoids.yaml
var presetData []byte

type preset struct {
	Name     string   `yaml:"name"`
	Synonyms []string `yaml:"synonyms"`
	A        float64  `yaml:"a"`
	B        float64  `yaml:"b"`
	Rf       float64  `yaml:"rf"`
}

func (p preset) Aliases() []string {
	return append([]string{p.Name}, p.Synonyms...)
}

var presets = registry.MustLoad[preset](presetData)

// Lookup returns a new ellipsoid built from a named preset.  Names are
// matched case-insensitively and ignoring punctuation; synonyms such as
// "GRS 1980" or "Hayford" are accepted.
func Lookup(name string) (*Ellipsoid, error) {
	key, ok := presets.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEllipsoid, name)
	}

	p, _ := presets.Get(key)

	var (
		e   *Ellipsoid
		err error
	)

	if p.Rf != 0 {
		e, err = NewFromInverseFlattening(p.A, p.Rf)
	} else {
		e, err = New(p.A, p.B)
	}

	if err != nil {
		return nil, fmt.Errorf("preset %q is malformed: %w", key, err)
	}

	e.name = key

	return e, nil
}

// MustLookup is like Lookup but panics on an unknown name.
func MustLookup(name string) *Ellipsoid {
	e, err := Lookup(name)
	if err != nil {
		panic(err)
	}

	return e
}

// WGS84 returns a new WGS 84 ellipsoid.
func WGS84() *Ellipsoid {
	return MustLookup("WGS84")
}

// Names returns the canonical preset keys in sorted order.
func Names() []string {
	return presets.Keys()
}

// Title returns the descriptive name of a preset, e.g. "Clarke 1866".
func Title(name string) (string, bool) {
	p, ok := presets.Get(name)

	return p.Name, ok
}
