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

// Package registry holds immutable tables of named reference records that are
// loaded once from embedded YAML and resolved by name or synonym.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateName is returned by Load when two records claim the same
	// normalized name.
	ErrDuplicateName = errors.New("duplicate registry name")

	// ErrEmptyName is returned by Load when a record has no usable name.
	ErrEmptyName = errors.New("registry record has no name")
)

// Record is a registry entry.  The first alias is the record's canonical key;
// the rest are synonyms.
type Record interface {
	Aliases() []string
}

// Registry maps canonical keys and synonyms onto records.  It is never
// modified after Load returns, so it may be shared between goroutines.
type Registry[T Record] struct {
	records map[string]T
	names   map[string]string
	keys    []string
}

// Load parses a YAML document holding a mapping of canonical key to record.
func Load[T Record](data []byte) (*Registry[T], error) {
	var doc map[string]T
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse registry: %w", err)
	}

	r := &Registry[T]{
		records: make(map[string]T, len(doc)),
		names:   make(map[string]string, len(doc)),
		keys:    make([]string, 0, len(doc)),
	}

	for key, rec := range doc {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, ErrEmptyName
		}

		r.records[key] = rec
		r.keys = append(r.keys, key)

		for _, name := range append([]string{key}, rec.Aliases()...) {
			n := Normalize(name)
			if n == "" {
				continue
			}

			if prev, ok := r.names[n]; ok && prev != key {
				return nil, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateName, name, prev, key)
			}

			r.names[n] = key
		}
	}

	sort.Strings(r.keys)

	return r, nil
}

// MustLoad is like Load but panics on a malformed document.  It is meant for
// go:embed tables parsed at package initialization.
func MustLoad[T Record](data []byte) *Registry[T] {
	r, err := Load[T](data)
	if err != nil {
		panic(err)
	}

	return r
}

// Resolve maps a name or synonym onto its canonical key.
func (r *Registry[T]) Resolve(name string) (string, bool) {
	key, ok := r.names[Normalize(name)]

	return key, ok
}

// Get returns the record for a name or synonym.
func (r *Registry[T]) Get(name string) (T, bool) {
	key, ok := r.Resolve(name)
	if !ok {
		var zero T

		return zero, false
	}

	return r.records[key], true
}

// Keys returns the canonical keys in sorted order.
func (r *Registry[T]) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)

	return keys
}

// Len returns the number of records.
func (r *Registry[T]) Len() int {
	return len(r.keys)
}

// Normalize folds a name for lookup: lower case, with spaces, dashes,
// underscores, dots and parentheses removed.
func Normalize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '_', '.', '(', ')':
			return -1
		}

		return r
	}, strings.ToLower(name))
}
