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
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/geodesy"
	"m4o.io/geodesy/cmd/geodesy/cli"
	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/model"
)

var out io.Writer = os.Stdout

type measurement struct {
	From           geodesy.LatLong `json:"from"`
	To             geodesy.LatLong `json:"to"`
	Method         string          `json:"method"`
	Distance       float64         `json:"distance"`
	Unit           string          `json:"unit"`
	InitialBearing model.Degrees   `json:"initial_bearing"`
	FinalBearing   model.Degrees   `json:"final_bearing"`
	Midpoint       geodesy.LatLong `json:"midpoint"`
}

func init() {
	cli.RootCmd.AddCommand(measureCmd)

	measureCmd.Flags().BoolP("json", "j", false, "format the measurement in JSON")
}

var measureCmd = &cobra.Command{
	Use:   "measure <lat,lon> <lat,lon>",
	Short: "Measure the distance and bearings between two points",
	Long: "Measure the distance and bearings between two points on the datum's ellipsoid " +
		"(vincenty) or its authalic sphere (haversine).",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := cli.ParseLatLong(args[0])
		if err != nil {
			log.Fatal(err)
		}

		b, err := cli.ParseLatLong(args[1])
		if err != nil {
			log.Fatal(err)
		}

		d, err := cli.Datum()
		if err != nil {
			log.Fatal(err)
		}

		unit, err := cli.LengthUnit()
		if err != nil {
			log.Fatal(err)
		}

		m, err := runMeasure(a, b, d, cli.Method(), unit)
		if err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := cmd.Flags().GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(m)
		} else {
			renderTxt(m)
		}
	},
}

func runMeasure(a, b geodesy.LatLong, d *datum.Datum, method geodesy.Method, unit model.LengthUnit) (*measurement, error) {
	e := d.Ellipsoid()

	s, err := geodesy.Distance(a, b, method, geodesy.WithEllipsoid(e))
	if err != nil {
		return nil, err
	}

	dist, err := s.In(unit)
	if err != nil {
		return nil, err
	}

	m := &measurement{
		From:     a,
		To:       b,
		Method:   method.String(),
		Distance: dist,
		Unit:     unit.String(),
		Midpoint: geodesy.Midpoint(a, b),
	}

	if method == geodesy.VincentyMethod {
		if m.InitialBearing, m.FinalBearing, err = geodesy.VincentyBearings(a, b, e); err != nil {
			return nil, err
		}
	} else {
		m.InitialBearing = geodesy.InitialBearing(a, b)
		m.FinalBearing = geodesy.FinalBearing(a, b)
	}

	return m, nil
}

func renderJSON(m *measurement) {
	b, err := json.Marshal(m)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprint(out, string(b))
}

func renderTxt(m *measurement) {
	fmt.Fprintf(out, "From: %s\n", m.From)
	fmt.Fprintf(out, "To: %s\n", m.To)
	fmt.Fprintf(out, "Method: %s\n", m.Method)
	fmt.Fprintf(out, "Distance: %s %s\n", humanize.CommafWithDigits(m.Distance, 3), m.Unit)
	fmt.Fprintf(out, "InitialBearing: %s°\n", strconv.FormatFloat(float64(m.InitialBearing), 'f', 6, 64))
	fmt.Fprintf(out, "FinalBearing: %s°\n", strconv.FormatFloat(float64(m.FinalBearing), 'f', 6, 64))
	fmt.Fprintf(out, "Midpoint: %s\n", m.Midpoint)
}
