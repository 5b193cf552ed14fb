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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/geodesy"
	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/model"
)

func TestECEFRoundTrip(t *testing.T) {
	datums := []*datum.Datum{
		datum.WGS84(),
		datum.MustNew("osgb36", ""),
		datum.MustNew("nad27", "alaska"),
		datum.MustNew("tokyo", ""),
		datum.MustNew("sk42", ""),
	}

	lats := []model.Degrees{-89.89, -60, -45, -44.99, -12.5, 0, 0.001, 33.3, 45, 71.2, 89.89}
	lons := []model.Degrees{-179.99, -90, -0.5, 0, 45, 135, 180}

	for _, d := range datums {
		for _, lat := range lats {
			for _, lon := range lons {
				t.Run(fmt.Sprintf("%s/%v/%v", d.Key(), float64(lat), float64(lon)), func(t *testing.T) {
					p := geodesy.MustLatLong(lat, lon, 0)

					c, err := p.ToECEF(d)
					require.NoError(t, err)

					q, err := c.ToLatLong(d)
					require.NoError(t, err)

					assert.InDelta(t, float64(p.Lat), float64(q.Lat), 1e-6)
					assert.InDelta(t, 0.0, float64((q.Lon-p.Lon).NormalizeLongitude()), 1e-6)
					assert.InDelta(t, 0.0, q.Height, 1e-3)
				})
			}
		}
	}
}

func TestECEFRoundTripWithHeight(t *testing.T) {
	d := datum.WGS84()

	for _, h := range []float64{-400, 8848, 35786000} {
		p := geodesy.MustLatLong(47.3, 8.5, h)

		c, err := p.ToECEF(d)
		require.NoError(t, err)

		q, err := c.ToLatLong(d)
		require.NoError(t, err)

		assert.InDelta(t, float64(p.Lat), float64(q.Lat), 1e-8)
		assert.InDelta(t, float64(p.Lon), float64(q.Lon), 1e-8)
		assert.InDelta(t, h, q.Height, 1e-3)
	}
}

func TestECEFPoles(t *testing.T) {
	d := datum.WGS84()
	b := d.Ellipsoid().SemiMinorAxis()

	p, err := geodesy.ECEF{Z: b + 10}.ToLatLong(d)
	require.NoError(t, err)
	assert.Equal(t, model.Degrees(90), p.Lat)
	assert.InDelta(t, 10.0, p.Height, 1e-6)

	p, err = geodesy.ECEF{Z: -b}.ToLatLong(d)
	require.NoError(t, err)
	assert.Equal(t, model.Degrees(-90), p.Lat)
	assert.InDelta(t, 0.0, p.Height, 1e-6)
}

func TestBowringNoConvergence(t *testing.T) {
	d := datum.WGS84()

	c, err := geodesy.MustLatLong(45, 45, 1_000_000).ToECEF(d)
	require.NoError(t, err)

	_, err = c.ToLatLong(d, geodesy.WithMaxIterations(1))
	assert.ErrorIs(t, err, geodesy.ErrNoConvergence)

	_, err = c.ToLatLong(d, geodesy.WithMaxIterations(25))
	assert.NoError(t, err)
}

func TestHelmertSymmetry(t *testing.T) {
	points := []geodesy.ECEF{
		{X: 3980581.21, Y: -111.16, Z: 4966824.52},
		{X: -2694892.46, Y: -4297418.90, Z: 3854579.61},
		{X: 6378137, Y: 0, Z: 0},
	}

	for _, name := range []string{"osgb36", "ire65", "dhdn", "nzgd49", "wgs72"} {
		d := datum.MustNew(name, "")

		for _, x := range points {
			local, err := x.FromWGS84(d)
			require.NoError(t, err)

			back, err := local.ToWGS84(d)
			require.NoError(t, err)

			assert.InDelta(t, 0.0, back.Distance(x), 0.05, name)
		}
	}

	w, err := points[0].ToWGS84(datum.WGS84())
	require.NoError(t, err)
	assert.Equal(t, points[0], w)
}
