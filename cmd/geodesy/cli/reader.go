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

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"m4o.io/geodesy"
	"m4o.io/geodesy/model"
)

// ErrMalformedPoint is returned for text that is not "lat,lon[,height]".
var ErrMalformedPoint = errors.New("malformed point")

// ParseLatLong parses "lat,lon" or "lat,lon,height" in decimal degrees and
// meters.
func ParseLatLong(s string) (geodesy.LatLong, error) {
	return parseFields(strings.Split(s, ","))
}

func parseFields(fields []string) (geodesy.LatLong, error) {
	if len(fields) < 2 || len(fields) > 3 {
		return geodesy.LatLong{}, fmt.Errorf("%w: want lat,lon[,height], got %d fields", ErrMalformedPoint, len(fields))
	}

	lat, err := model.ParseDegrees(fields[0])
	if err != nil {
		return geodesy.LatLong{}, fmt.Errorf("%w: latitude: %w", ErrMalformedPoint, err)
	}

	lon, err := model.ParseDegrees(fields[1])
	if err != nil {
		return geodesy.LatLong{}, fmt.Errorf("%w: longitude: %w", ErrMalformedPoint, err)
	}

	var height float64
	if len(fields) == 3 && strings.TrimSpace(fields[2]) != "" {
		if height, err = strconv.ParseFloat(strings.TrimSpace(fields[2]), 64); err != nil {
			return geodesy.LatLong{}, fmt.Errorf("%w: height: %w", ErrMalformedPoint, err)
		}
	}

	return geodesy.NewLatLong(lat, lon, height)
}

// -- geodesy.LatLong Value
type latLongValue struct {
	value *geodesy.LatLong
}

// NewLatLongValue creates a cobra Value object for a geodesy.LatLong given
// as "lat,lon[,height]".
func NewLatLongValue(def geodesy.LatLong, p *geodesy.LatLong) pflag.Value {
	v := &latLongValue{value: p}
	*v.value = def

	return v
}

func (v *latLongValue) Set(val string) error {
	p, err := ParseLatLong(val)
	if err != nil {
		return err
	}

	*v.value = p

	return nil
}

func (v *latLongValue) Type() string {
	return "lat,lon[,height]"
}

func (v *latLongValue) String() string {
	p := *v.value

	return strconv.FormatFloat(float64(p.Lat), 'f', -1, 64) + "," +
		strconv.FormatFloat(float64(p.Lon), 'f', -1, 64)
}
