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

package datum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/ellipsoid"
	"m4o.io/geodesy/model"
)

func TestNewDefaultRegion(t *testing.T) {
	d, err := datum.New("NAD27", "")
	require.NoError(t, err)

	assert.Equal(t, "nad27", d.Key())
	assert.Equal(t, "North American Datum 1927", d.Name())
	assert.Equal(t, "conus", d.Region())
	assert.Equal(t, "clrk66", d.Ellipsoid().Name())
	assert.Equal(t, datum.NewBursaWolfParameters(-8, 160, 176, 0, 0, 0, 0), d.Parameters())
}

func TestSetRegion(t *testing.T) {
	d, err := datum.New("nad27", "Alaska")
	require.NoError(t, err)
	assert.Equal(t, "alaska", d.Region())
	assert.Equal(t, -5.0, d.Parameters().Tx)

	require.NoError(t, d.SetRegion("canada"))
	assert.Equal(t, "canada", d.Region())
	assert.Equal(t, 187.0, d.Parameters().Tz)

	err = d.SetRegion("atlantis")
	assert.ErrorIs(t, err, datum.ErrUnknownRegion)
	assert.Equal(t, "canada", d.Region())
}

func TestUnknown(t *testing.T) {
	_, err := datum.New("mars2000", "")
	assert.ErrorIs(t, err, datum.ErrUnknownDatum)

	_, err = datum.New("osgb36", "france")
	assert.ErrorIs(t, err, datum.ErrUnknownRegion)

	assert.Nil(t, datum.Regions("mars2000"))
}

func TestEveryPresetResolves(t *testing.T) {
	for _, name := range datum.Names() {
		for _, region := range datum.Regions(name) {
			d, err := datum.New(name, region)
			require.NoError(t, err, "%s/%s", name, region)
			require.NoError(t, d.Ellipsoid().Recompute(), name)
		}
	}
}

func TestRegionsSorted(t *testing.T) {
	assert.Equal(t,
		[]string{"alaska", "canada", "caribbean", "central_america", "conus", "eastern_us", "mexico", "western_us"},
		datum.MustNew("nad27", "").Regions())
}

func TestApply(t *testing.T) {
	p := datum.NewBursaWolfParameters(1, 2, 3, 0, 0, 0, 0)
	x, y, z := p.Apply(10, 20, 30)
	assert.Equal(t, []float64{11, 22, 33}, []float64{x, y, z})

	s := datum.NewBursaWolfParameters(0, 0, 0, 0, 0, 0, 1)
	x, _, _ = s.Apply(1e6, 0, 0)
	assert.InDelta(t, 1e6+1, x, 1e-9)

	r := datum.BursaWolfParameters{Rz: model.Angle(1e-6)}
	x, y, _ = r.Apply(1e6, 0, 0)
	assert.InDelta(t, 1e6, x, 1e-9)
	assert.InDelta(t, 1.0, y, 1e-9)
}

func TestInvert(t *testing.T) {
	p := datum.NewBursaWolfParameters(446.448, -125.157, 542.060, 0.1502, 0.2470, 0.8421, -20.4894)
	q := p.Inverse()

	assert.Equal(t, -p.Tx, q.Tx)
	assert.Equal(t, -p.Ry, q.Ry)
	assert.Equal(t, -p.Scale, q.Scale)

	q.Invert()
	assert.Equal(t, p, q)

	assert.False(t, p.IsIdentity())
	assert.True(t, datum.WGS84().Parameters().IsIdentity())
}

func TestHelmertRoundTrip(t *testing.T) {
	test_cases := []struct {
		name   string
		region string
	}{
		{"osgb36", ""},
		{"ire65", ""},
		{"dhdn", ""},
		{"nzgd49", ""},
		{"ed50", "spain_portugal"},
	}

	points := [][3]float64{
		{3980581.21, -111.16, 4966824.52},
		{-2694892.46, -4297418.90, 3854579.61},
		{0, 0, 6356752.31},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			d := datum.MustNew(tc.name, tc.region)

			for _, pt := range points {
				x, y, z := d.FromWGS84(pt[0], pt[1], pt[2])
				x, y, z = d.ToWGS84(x, y, z)

				assert.InDelta(t, pt[0], x, 0.05)
				assert.InDelta(t, pt[1], y, 0.05)
				assert.InDelta(t, pt[2], z, 0.05)
			}
		})
	}
}

func TestNewCustom(t *testing.T) {
	e, err := ellipsoid.New(6371000, 6371000)
	require.NoError(t, err)

	d, err := datum.NewCustom("moonbase", e, datum.NewBursaWolfParameters(1, 0, 0, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "custom", d.Region())

	x, _, _ := d.ToWGS84(0, 0, 0)
	assert.Equal(t, 1.0, x)

	_, err = datum.NewCustom("broken", &ellipsoid.Ellipsoid{}, datum.BursaWolfParameters{})
	assert.ErrorIs(t, err, ellipsoid.ErrMissingSemiMajorAxis)
}

func TestString(t *testing.T) {
	assert.Equal(t, "osgb36/great_britain on airy", datum.MustNew("OSGB 1936", "").String())
}
