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

package geodesy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/geodesy"
	"m4o.io/geodesy/model"
)

func TestNewLine(t *testing.T) {
	_, err := geodesy.NewLine(geodesy.MustLatLong(0, 0, 0))
	assert.ErrorIs(t, err, geodesy.ErrTooFewNodes)

	_, err = geodesy.NewLine(geodesy.MustLatLong(0, 0, 0), geodesy.LatLong{Lon: model.Degrees(math.NaN())})
	assert.ErrorIs(t, err, geodesy.ErrInvalidLongitude)

	l, err := geodesy.NewLine(geodesy.MustLatLong(0, 0, 0), geodesy.LatLong{Lat: 0, Lon: 361})
	require.NoError(t, err)

	n, err := l.Node(1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(n.Lon), 1e-12)
}

func TestLineLength(t *testing.T) {
	l, err := geodesy.NewLine(
		geodesy.MustLatLong(0, 0, 0),
		geodesy.MustLatLong(0, 1, 0),
		geodesy.MustLatLong(0, 2, 0),
	)
	require.NoError(t, err)

	s, err := l.Length(geodesy.VincentyMethod)
	require.NoError(t, err)
	assert.InDelta(t, 2*111319.49, s.Meters(), 2)

	s, err = l.Length(geodesy.HaversineMethod, geodesy.WithRadius(180/math.Pi))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, s.Meters(), 1e-12)

	_, err = l.Length(geodesy.Method(9))
	assert.ErrorIs(t, err, geodesy.ErrUnknownMethod)
}

func TestLineMutations(t *testing.T) {
	a := geodesy.MustLatLong(0, 0, 0)
	b := geodesy.MustLatLong(0, 1, 0)
	c := geodesy.MustLatLong(0, 2, 0)

	l, err := geodesy.NewLine(a, c)
	require.NoError(t, err)

	require.NoError(t, l.Insert(1, b))
	assert.Equal(t, []geodesy.LatLong{a, b, c}, l.Nodes())

	d := geodesy.MustLatLong(1, 2, 0)
	require.NoError(t, l.Append(d))
	assert.Equal(t, 4, l.Len())

	require.NoError(t, l.Set(0, geodesy.MustLatLong(-1, 0, 0)))
	n, _ := l.Node(0)
	assert.Equal(t, geodesy.MustLatLong(-1, 0, 0), n)

	assert.ErrorIs(t, l.Insert(5, a), geodesy.ErrNoSuchNode)
	assert.ErrorIs(t, l.Set(4, a), geodesy.ErrNoSuchNode)

	require.NoError(t, l.Delete(3))
	require.NoError(t, l.Delete(0))
	assert.Equal(t, []geodesy.LatLong{b, c}, l.Nodes())
	assert.ErrorIs(t, l.Delete(0), geodesy.ErrTooFewNodes)
	assert.ErrorIs(t, l.Delete(2), geodesy.ErrNoSuchNode)
}

func TestLineBoundingBox(t *testing.T) {
	l, err := geodesy.NewLine(geodesy.MustLatLong(-1, 179, 0), geodesy.MustLatLong(1, -179, 0))
	require.NoError(t, err)

	b := l.BoundingBox()
	assert.True(t, b.CrossesAntimeridian())
	assert.InDelta(t, 179.0, float64(b.Left), 1e-9)
	assert.InDelta(t, -179.0, float64(b.Right), 1e-9)
	assert.True(t, b.Contains(0, 180))
}
