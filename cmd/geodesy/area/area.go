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

package area

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/geodesy"
	"m4o.io/geodesy/cmd/geodesy/cli"
	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/model"
)

var (
	out     io.Writer = os.Stdout
	contain geodesy.LatLong
)

type report struct {
	Nodes           int                `json:"nodes"`
	AreaPlanar      float64            `json:"area_planar"`
	AreaEllipsoidal float64            `json:"area_ellipsoidal"`
	AreaUnit        string             `json:"area_unit"`
	Perimeter       float64            `json:"perimeter"`
	Unit            string             `json:"unit"`
	Centroid        geodesy.LatLong    `json:"centroid"`
	BoundingBox     *model.BoundingBox `json:"bounding_box"`
	Contains        *bool              `json:"contains,omitempty"`
}

type units struct {
	length model.LengthUnit
	area   model.AreaUnit
}

func init() {
	cli.RootCmd.AddCommand(areaCmd)

	flags := areaCmd.Flags()
	flags.BoolP("json", "j", false, "format the report in JSON")
	flags.Var(cli.NewLatLongValue(geodesy.LatLong{}, &contain), "contains", "also test whether a point lies inside")
}

var areaCmd = &cobra.Command{
	Use:   "area [<polygon file>]",
	Short: "Measure a polygon given as lat,lon lines",
	Long: "Measure the area, perimeter and centroid of a polygon given as lat,lon lines.  " +
		"The ring is closed automatically.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}

		in, err := cli.OpenInput(path, false)
		if err != nil {
			log.Fatal(err)
		}

		d, err := cli.Datum()
		if err != nil {
			log.Fatal(err)
		}

		var u units
		if u.length, err = cli.LengthUnit(); err != nil {
			log.Fatal(err)
		}

		if u.area, err = cli.AreaUnit(); err != nil {
			log.Fatal(err)
		}

		var probe *geodesy.LatLong
		if cmd.Flags().Changed("contains") {
			probe = &contain
		}

		r, err := runArea(in, d, cli.Method(), u, probe)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := cmd.Flags().GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(r)
		} else {
			renderTxt(r)
		}
	},
}

func runArea(in io.Reader, d *datum.Datum, method geodesy.Method, u units, probe *geodesy.LatLong) (*report, error) {
	points, err := cli.ReadPoints(in)
	if err != nil {
		return nil, err
	}

	region, err := geodesy.NewRegion(points...)
	if err != nil {
		return nil, err
	}

	e := d.Ellipsoid()

	r := &report{
		Nodes:       region.Len() - 1,
		AreaUnit:    u.area.String(),
		Unit:        u.length.String(),
		BoundingBox: region.BoundingBox(),
	}

	if r.AreaPlanar, err = region.AreaPlanar(geodesy.WithEllipsoid(e)).In(u.area); err != nil {
		return nil, err
	}

	ellipsoidal, err := region.AreaEllipsoidal(e)
	if err != nil {
		return nil, err
	}

	if r.AreaEllipsoidal, err = ellipsoidal.In(u.area); err != nil {
		return nil, err
	}

	perimeter, err := region.Perimeter(method, geodesy.WithEllipsoid(e))
	if err != nil {
		return nil, err
	}

	if r.Perimeter, err = perimeter.In(u.length); err != nil {
		return nil, err
	}

	if r.Centroid, err = region.Centroid(); err != nil {
		return nil, err
	}

	if probe != nil {
		inside := region.Contains(*probe)
		r.Contains = &inside
	}

	return r, nil
}

func renderJSON(r *report) {
	b, err := json.Marshal(r)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprint(out, string(b))
}

func renderTxt(r *report) {
	fmt.Fprintf(out, "Nodes: %d\n", r.Nodes)
	fmt.Fprintf(out, "AreaPlanar: %s %s\n", humanize.CommafWithDigits(r.AreaPlanar, 3), r.AreaUnit)
	fmt.Fprintf(out, "AreaEllipsoidal: %s %s\n", humanize.CommafWithDigits(r.AreaEllipsoidal, 3), r.AreaUnit)
	fmt.Fprintf(out, "Perimeter: %s %s\n", humanize.CommafWithDigits(r.Perimeter, 3), r.Unit)
	fmt.Fprintf(out, "Centroid: %s\n", r.Centroid)
	fmt.Fprintf(out, "BoundingBox: %s\n", r.BoundingBox)
	if r.Contains != nil {
		fmt.Fprintf(out, "Contains: %t\n", *r.Contains)
	}
}
