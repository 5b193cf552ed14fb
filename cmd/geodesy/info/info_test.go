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

package info

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/ellipsoid"
)

// capture redirects out for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	saved := out
	out = buf

	t.Cleanup(func() { out = saved })

	return buf
}

func TestRunEllipsoidInfo(t *testing.T) {
	info, err := runEllipsoidInfo("wgs 84")
	require.NoError(t, err)

	assert.Equal(t, "WGS84", info.Key)
	assert.Equal(t, "WGS 84", info.Name)
	assert.Equal(t, 6378137.0, info.SemiMajorAxis)
	assert.InDelta(t, 6356752.314245, info.SemiMinorAxis, 1e-6)
	assert.InDelta(t, 298.257223563, info.InverseFlattening, 1e-9)
	assert.InDelta(t, 0.00669437999014, info.FirstEccentricitySquared, 1e-14)
	assert.InDelta(t, 6371007.181, info.AuthalicRadius, 1e-3)

	_, err = runEllipsoidInfo("flat earth")
	assert.ErrorIs(t, err, ellipsoid.ErrUnknownEllipsoid)
}

func TestSphereInfo(t *testing.T) {
	sphere, err := ellipsoid.New(6371000, 6371000)
	require.NoError(t, err)

	info := describe(sphere)
	assert.Zero(t, info.InverseFlattening)
	assert.Zero(t, info.Flattening)

	buf := capture(t)
	renderJSON(info)
	assert.NotContains(t, buf.String(), "inverse_flattening")

	buf.Reset()
	renderEllipsoidTxt(info, "")
	assert.Contains(t, buf.String(), "InverseFlattening: sphere\n")
}

func TestRenderEllipsoidText(t *testing.T) {
	info, err := runEllipsoidInfo("WGS84")
	require.NoError(t, err)

	buf := capture(t)
	renderEllipsoidTxt(info, "")

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "Name: WGS 84 (WGS84)", lines[0])
	assert.Equal(t, "SemiMajorAxis: 6,378,137 m", lines[1])
	assert.Equal(t, "SemiMinorAxis: 6,356,752.314 m", lines[2])
	assert.Equal(t, "InverseFlattening: 298.257223563", lines[3])
	assert.True(t, strings.HasPrefix(lines[9], "SurfaceArea: 510,065,"), lines[9])
}

func TestRenderDatum(t *testing.T) {
	info := runDatumInfo(datum.MustNew("osgb36", ""))

	assert.Equal(t, "osgb36", info.Key)
	assert.Equal(t, "great_britain", info.Region)
	assert.Equal(t, "airy", info.Ellipsoid.Key)
	assert.Equal(t, [3]float64{446.448, -125.157, 542.060}, info.Translate)
	assert.InDelta(t, 0.1502, info.Rotate[0], 1e-9)
	assert.Equal(t, -20.4894, info.ScalePPM)
	assert.False(t, info.IsIdentity)

	buf := capture(t)
	renderDatumTxt(info)
	assert.Contains(t, buf.String(), "Translation: 446.4480, -125.1570, 542.0600 m\n")
	assert.Contains(t, buf.String(), "Rotation: 0.1502, 0.2470, 0.8421 arcsec\n")
	assert.Contains(t, buf.String(), "  SemiMajorAxis: 6,377,563.396 m\n")

	buf.Reset()
	renderJSON(info)

	decoded := &datumInfo{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), decoded))
	assert.Equal(t, info.Key, decoded.Key)
	assert.Equal(t, info.Regions, decoded.Regions)
	assert.Equal(t, info.Ellipsoid.Key, decoded.Ellipsoid.Key)

	wgs84 := runDatumInfo(datum.WGS84())
	assert.True(t, wgs84.IsIdentity)
}
