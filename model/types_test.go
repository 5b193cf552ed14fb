// Copyright 2017-25 the original author or authors.
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

package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/geodesy/model"
)

func TestDegreesAngle(t *testing.T) {
	assert.True(t, model.Angle(0.78539816).EqualWithin(model.Degrees(45.0).Angle(), model.E7))
	assert.InDelta(t, math.Pi/4, model.Degrees(45).Radians(), 1e-15)
	assert.InDelta(t, 45.0, float64(model.FromRadians(math.Pi/4)), 1e-12)
}

func TestDegreesEx(t *testing.T) {
	d := model.Degrees(53.123456789)

	assert.Equal(t, int32(5312346), d.E5())
	assert.Equal(t, int32(53123457), d.E6())
	assert.Equal(t, int32(531234568), d.E7())
}

func TestDegreesParse(t *testing.T) {
	d, err := model.ParseDegrees(" 53.123450")
	if err != nil {
		t.Error(err)
	}

	assert.True(t, model.Degrees(53.123450).EqualWithin(d, model.E5))

	_, err = model.ParseDegrees("abc")
	if err == nil {
		t.Error("Parsing should have failed")
	}
}

func TestDegreesEqualWithin(t *testing.T) {
	assert.True(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123454), model.E5))
	assert.False(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123462), model.E5))
}

func TestDegreesString(t *testing.T) {
	assert.Equal(t, "53° 7' 24.42\"", model.Degrees(53.123450).String())
	assert.Equal(t, "-0° 30' 0\"", model.Degrees(-0.5).String())
}

func TestNormalizeLongitude(t *testing.T) {
	test_cases := []struct {
		name     string
		in       model.Degrees
		expected model.Degrees
	}{
		{"inside", 45, 45},
		{"antimeridian", 180, 180},
		{"west antimeridian", -180, -180},
		{"just past", 181, -179},
		{"full turn", 370, 10},
		{"two turns", -710, 10},
		{"negative", -190, 170},
		{"east past one and a half turns", 540, 180},
		{"west past one and a half turns", -540, -180},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, float64(tc.expected), float64(tc.in.NormalizeLongitude()), 1e-12)
		})
	}
}

func TestNormalizeLongitudeKeepsInRangeValues(t *testing.T) {
	for _, lon := range []model.Degrees{18.4241, -0.0014, 2.2945, 179.9999999, -180, 180, 0, -123.456789012} {
		assert.Equal(t, lon, lon.NormalizeLongitude())
	}
}

func TestNormalizeBearing(t *testing.T) {
	assert.InDelta(t, 270.0, float64(model.Degrees(-90).NormalizeBearing()), 1e-12)
	assert.InDelta(t, 0.0, float64(model.Degrees(360).NormalizeBearing()), 1e-12)
	assert.InDelta(t, 45.0, float64(model.Degrees(405).NormalizeBearing()), 1e-12)
	assert.Equal(t, model.Degrees(306.86815833), model.Degrees(306.86815833).NormalizeBearing())
}

func TestClampLatitude(t *testing.T) {
	assert.Equal(t, model.Degrees(90), model.Degrees(90.0000001).ClampLatitude())
	assert.Equal(t, model.Degrees(-90), model.Degrees(-91).ClampLatitude())
	assert.Equal(t, model.Degrees(12.5), model.Degrees(12.5).ClampLatitude())
}

func TestArcSeconds(t *testing.T) {
	a := model.FromArcSeconds(3600)
	assert.True(t, a.EqualWithin(model.Degrees(1).Angle(), model.E9))
	assert.InDelta(t, 3600.0, a.ArcSeconds(), 1e-9)
}
