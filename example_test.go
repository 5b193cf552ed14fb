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
	"context"
	"fmt"
	"log"

	"m4o.io/geodesy"
	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/ellipsoid"
)

func Example() {
	flinders := geodesy.MustLatLong(-37.95103341667, 144.42486788889, 0)
	buninyong := geodesy.MustLatLong(-37.65282113889, 143.92649552778, 0)

	s, err := geodesy.Vincenty(flinders, buninyong, ellipsoid.MustLookup("GRS80"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%.2f m\n", s.Meters())
	// Output:
	// 54972.27 m
}

func ExampleLatLong_ToUTM() {
	u, err := geodesy.MustLatLong(0, 0, 0).ToUTM(datum.WGS84())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s %.0fE %.0fN\n", u.ZoneDesignator(), u.Easting, u.Northing)
	// Output:
	// 31N 166021E 0N
}

func ExampleConvertAll() {
	points := []geodesy.LatLong{
		geodesy.MustLatLong(51.4778, -0.0014, 0),
		geodesy.MustLatLong(89.5, 0, 0),
	}

	conversions, err := geodesy.ConvertAll(context.Background(), points, datum.WGS84())
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range conversions {
		if c.HasUTM {
			fmt.Println(c.Geographic, c.UTM.ZoneDesignator())
		} else {
			fmt.Println(c.Geographic, "outside UTM")
		}
	}
	// Output:
	// (51.4778, -0.0014, 0 m) 30U
	// (89.5, 0, 0 m) outside UTM
}
