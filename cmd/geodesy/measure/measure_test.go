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

package measure

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/geodesy"
	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/model"
)

var (
	flindersPeak = geodesy.MustLatLong(-37.95103341667, 144.42486788889, 0)
	buninyong    = geodesy.MustLatLong(-37.65282113889, 143.92649552778, 0)
)

func TestRunMeasure(t *testing.T) {
	d := datum.MustNew("gda94", "")

	m, err := runMeasure(flindersPeak, buninyong, d, geodesy.VincentyMethod, model.Kilometer)
	require.NoError(t, err)
	assert.Equal(t, "vincenty", m.Method)
	assert.Equal(t, "km", m.Unit)
	assert.InDelta(t, 54.972271, m.Distance, 1e-6)
	assert.InDelta(t, 306.86815833, float64(m.InitialBearing), 1e-5)
	assert.InDelta(t, 307.17363056, float64(m.FinalBearing), 1e-5)

	h, err := runMeasure(flindersPeak, buninyong, d, geodesy.HaversineMethod, model.Kilometer)
	require.NoError(t, err)
	assert.Equal(t, "haversine", h.Method)
	assert.InEpsilon(t, m.Distance, h.Distance, 0.005)
	assert.InDelta(t, float64(m.InitialBearing), float64(h.InitialBearing), 0.5)

	_, err = runMeasure(flindersPeak, buninyong, d, geodesy.VincentyMethod, model.LengthUnit(42))
	assert.ErrorIs(t, err, model.ErrInvalidUnit)

	_, err = runMeasure(flindersPeak, buninyong, d, geodesy.Method(42), model.Meter)
	assert.ErrorIs(t, err, geodesy.ErrUnknownMethod)
}

func TestRender(t *testing.T) {
	m, err := runMeasure(geodesy.MustLatLong(0, 0, 0), geodesy.MustLatLong(0, 1, 0), datum.WGS84(), geodesy.VincentyMethod, model.Meter)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	saved := out
	out = buf

	defer func() { out = saved }()

	renderTxt(m)

	text := buf.String()
	assert.Contains(t, text, "From: (0, 0, 0 m)\n")
	assert.Contains(t, text, "To: (0, 1, 0 m)\n")
	assert.Contains(t, text, "Method: vincenty\n")
	assert.Contains(t, text, "Distance: 111,319.49")
	assert.Contains(t, text, "InitialBearing: 90.000000°\n")
	assert.Contains(t, text, "FinalBearing: 90.000000°\n")
	assert.Contains(t, text, "Midpoint: (0, ")

	buf.Reset()
	renderJSON(m)

	decoded := &measurement{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), decoded))
	assert.Equal(t, m.Method, decoded.Method)
	assert.InDelta(t, m.Distance, decoded.Distance, 1e-9)
}
