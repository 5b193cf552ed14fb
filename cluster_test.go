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
)

func TestNewCluster(t *testing.T) {
	_, err := geodesy.NewCluster(geodesy.MustLatLong(0, 0, 0))
	assert.ErrorIs(t, err, geodesy.ErrTooFewNodes)

	c, err := geodesy.NewCluster(geodesy.MustLatLong(0, 0, 0), geodesy.MustLatLong(1, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Append(geodesy.MustLatLong(2, 2, 0)))
	assert.Equal(t, 3, c.Len())
	assert.ErrorIs(t, c.Append(geodesy.LatLong{Lat: -91}), geodesy.ErrInvalidLatitude)

	require.NoError(t, c.Delete(0))
	assert.ErrorIs(t, c.Delete(0), geodesy.ErrTooFewNodes)
	assert.ErrorIs(t, c.Delete(-1), geodesy.ErrNoSuchNode)
}

func TestClusterCentroid(t *testing.T) {
	c, err := geodesy.NewCluster(geodesy.MustLatLong(10, 20, 100), geodesy.MustLatLong(20, 20, 300))
	require.NoError(t, err)

	p, err := c.Centroid()
	require.NoError(t, err)
	assert.InDelta(t, 15.0, float64(p.Lat), 1e-9)
	assert.InDelta(t, 20.0, float64(p.Lon), 1e-9)
	assert.InDelta(t, 200.0, p.Height, 1e-9)

	c, err = geodesy.NewCluster(geodesy.MustLatLong(0, 179, 0), geodesy.MustLatLong(0, -179, 0))
	require.NoError(t, err)

	p, err = c.Centroid()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, float64(p.Lat), 1e-9)
	assert.InDelta(t, 180.0, math.Abs(float64(p.Lon)), 1e-9)

	c, err = geodesy.NewCluster(geodesy.MustLatLong(10, 20, 0), geodesy.MustLatLong(-10, -160, 0))
	require.NoError(t, err)

	_, err = c.Centroid()
	assert.ErrorIs(t, err, geodesy.ErrNoSuchNode)
}

func TestClusterBoundingBox(t *testing.T) {
	c, err := geodesy.NewCluster(
		geodesy.MustLatLong(-17, 178, 0),
		geodesy.MustLatLong(-16, -179, 0),
		geodesy.MustLatLong(-18, 179.5, 0),
	)
	require.NoError(t, err)

	b := c.BoundingBox()
	assert.True(t, b.CrossesAntimeridian())
	assert.InDelta(t, -16.0, float64(b.Top), 1e-9)
	assert.InDelta(t, -18.0, float64(b.Bottom), 1e-9)
	assert.InDelta(t, 178.0, float64(b.Left), 1e-9)
	assert.InDelta(t, -179.0, float64(b.Right), 1e-9)
}
