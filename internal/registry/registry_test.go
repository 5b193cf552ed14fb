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

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/geodesy/internal/registry"
)

type widget struct {
	Title    string   `yaml:"title"`
	Synonyms []string `yaml:"synonyms"`
}

func (w widget) Aliases() []string { return w.Synonyms }

const widgets = `
bolt:
  title: Hex bolt
  synonyms: [Hex-Bolt, "hex bolt (M8)"]
nut:
  title: Nut
`

func TestLoadAndResolve(t *testing.T) {
	r, err := registry.Load[widget]([]byte(widgets))
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"bolt", "nut"}, r.Keys())

	test_cases := []struct {
		name string
		key  string
		ok   bool
	}{
		{"bolt", "bolt", true},
		{"BOLT", "bolt", true},
		{"hex_bolt", "bolt", true},
		{"Hex Bolt M8", "bolt", true},
		{"n.u.t", "nut", true},
		{"washer", "", false},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			key, ok := r.Resolve(tc.name)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.key, key)
		})
	}

	w, ok := r.Get("hexbolt")
	require.True(t, ok)
	assert.Equal(t, "Hex bolt", w.Title)
}

func TestLoadDuplicate(t *testing.T) {
	_, err := registry.Load[widget]([]byte(`
a:
  synonyms: [x]
b:
  synonyms: [X]
`))
	assert.ErrorIs(t, err, registry.ErrDuplicateName)
}

func TestLoadMalformed(t *testing.T) {
	_, err := registry.Load[widget]([]byte("- not\n- a mapping\n"))
	assert.Error(t, err)

	assert.Panics(t, func() { registry.MustLoad[widget]([]byte("[")) })
}

func TestKeysIsACopy(t *testing.T) {
	r := registry.MustLoad[widget]([]byte(widgets))
	keys := r.Keys()
	keys[0] = "changed"

	assert.Equal(t, "bolt", r.Keys()[0])
}
