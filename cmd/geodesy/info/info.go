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

package info

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/geodesy/cmd/geodesy/cli"
	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/ellipsoid"
)

var out io.Writer = os.Stdout

type ellipsoidInfo struct {
	Key                       string  `json:"key"`
	Name                      string  `json:"name"`
	SemiMajorAxis             float64 `json:"semi_major_axis"`
	SemiMinorAxis             float64 `json:"semi_minor_axis"`
	Flattening                float64 `json:"flattening"`
	InverseFlattening         float64 `json:"inverse_flattening,omitempty"`
	FirstEccentricitySquared  float64 `json:"first_eccentricity_squared"`
	SecondEccentricitySquared float64 `json:"second_eccentricity_squared"`
	MeanRadius                float64 `json:"mean_radius"`
	AuthalicRadius            float64 `json:"authalic_radius"`
	VolumetricRadius          float64 `json:"volumetric_radius"`
	SurfaceArea               float64 `json:"surface_area"`
}

type datumInfo struct {
	Key        string        `json:"key"`
	Name       string        `json:"name"`
	Region     string        `json:"region"`
	Regions    []string      `json:"regions"`
	Ellipsoid  ellipsoidInfo `json:"ellipsoid"`
	Translate  [3]float64    `json:"translation"`
	Rotate     [3]float64    `json:"rotation"`
	ScalePPM   float64       `json:"scale_ppm"`
	IsIdentity bool          `json:"is_identity"`
}

type catalog struct {
	Ellipsoids []string `json:"ellipsoids"`
	Datums     []string `json:"datums"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)
	infoCmd.AddCommand(ellipsoidCmd, datumCmd)

	infoCmd.PersistentFlags().BoolP("json", "j", false, "format information in JSON")
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "List the known ellipsoids and datums",
	Long:  "List the known ellipsoids and datums",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		c := &catalog{Ellipsoids: ellipsoid.Names(), Datums: datum.Names()}

		if jsonFlag(cmd) {
			renderJSON(c)
		} else {
			fmt.Fprintf(out, "Ellipsoids: %s\n", strings.Join(c.Ellipsoids, ", "))
			fmt.Fprintf(out, "Datums: %s\n", strings.Join(c.Datums, ", "))
		}
	},
}

var ellipsoidCmd = &cobra.Command{
	Use:   "ellipsoid <name>",
	Short: "Print the derived parameters of an ellipsoid",
	Long:  "Print the derived parameters of an ellipsoid",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		info, err := runEllipsoidInfo(args[0])
		if err != nil {
			log.Fatal(err)
		}

		if jsonFlag(cmd) {
			renderJSON(info)
		} else {
			renderEllipsoidTxt(info, "")
		}
	},
}

var datumCmd = &cobra.Command{
	Use:   "datum [<name>]",
	Short: "Print a datum's ellipsoid and its shift to WGS 84",
	Long:  "Print a datum's ellipsoid and its shift to WGS 84.  The name defaults to --datum.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			d   *datum.Datum
			err error
		)

		if len(args) == 1 {
			d, err = datum.New(args[0], cmd.Flag("region").Value.String())
		} else {
			d, err = cli.Datum()
		}

		if err != nil {
			log.Fatal(err)
		}

		info := runDatumInfo(d)

		if jsonFlag(cmd) {
			renderJSON(info)
		} else {
			renderDatumTxt(info)
		}
	},
}

func jsonFlag(cmd *cobra.Command) bool {
	jsonfmt, err := cmd.Flags().GetBool("json")
	if err != nil {
		log.Fatal(err)
	}

	return jsonfmt
}

func runEllipsoidInfo(name string) (*ellipsoidInfo, error) {
	e, err := ellipsoid.Lookup(name)
	if err != nil {
		return nil, err
	}

	return describe(e), nil
}

func describe(e *ellipsoid.Ellipsoid) *ellipsoidInfo {
	title, _ := ellipsoid.Title(e.Name())

	info := &ellipsoidInfo{
		Key:                       e.Name(),
		Name:                      title,
		SemiMajorAxis:             e.SemiMajorAxis(),
		SemiMinorAxis:             e.SemiMinorAxis(),
		Flattening:                e.Flattening(),
		FirstEccentricitySquared:  e.FirstEccentricitySquared(),
		SecondEccentricitySquared: e.SecondEccentricitySquared(),
		MeanRadius:                e.MeanRadius(),
		AuthalicRadius:            e.AuthalicRadius(),
		VolumetricRadius:          e.VolumetricRadius(),
		SurfaceArea:               e.SurfaceArea(),
	}

	// a sphere has no finite inverse flattening
	if f := e.InverseFlattening(); !math.IsInf(f, 0) {
		info.InverseFlattening = f
	}

	return info
}

func runDatumInfo(d *datum.Datum) *datumInfo {
	p := d.Parameters()

	return &datumInfo{
		Key:        d.Key(),
		Name:       d.Name(),
		Region:     d.Region(),
		Regions:    d.Regions(),
		Ellipsoid:  *describe(d.Ellipsoid()),
		Translate:  [3]float64{p.Tx, p.Ty, p.Tz},
		Rotate:     [3]float64{p.Rx.ArcSeconds(), p.Ry.ArcSeconds(), p.Rz.ArcSeconds()},
		ScalePPM:   p.Scale,
		IsIdentity: p.IsIdentity(),
	}
}

func renderJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprint(out, string(b))
}

func renderEllipsoidTxt(info *ellipsoidInfo, indent string) {
	fmt.Fprintf(out, "%sName: %s (%s)\n", indent, info.Name, info.Key)
	fmt.Fprintf(out, "%sSemiMajorAxis: %s m\n", indent, meters(info.SemiMajorAxis))
	fmt.Fprintf(out, "%sSemiMinorAxis: %s m\n", indent, meters(info.SemiMinorAxis))
	if info.InverseFlattening != 0 {
		fmt.Fprintf(out, "%sInverseFlattening: %s\n", indent, strconv.FormatFloat(info.InverseFlattening, 'f', -1, 64))
	} else {
		fmt.Fprintf(out, "%sInverseFlattening: sphere\n", indent)
	}
	fmt.Fprintf(out, "%sFirstEccentricitySquared: %s\n", indent, strconv.FormatFloat(info.FirstEccentricitySquared, 'g', 12, 64))
	fmt.Fprintf(out, "%sSecondEccentricitySquared: %s\n", indent, strconv.FormatFloat(info.SecondEccentricitySquared, 'g', 12, 64))
	fmt.Fprintf(out, "%sMeanRadius: %s m\n", indent, meters(info.MeanRadius))
	fmt.Fprintf(out, "%sAuthalicRadius: %s m\n", indent, meters(info.AuthalicRadius))
	fmt.Fprintf(out, "%sVolumetricRadius: %s m\n", indent, meters(info.VolumetricRadius))
	fmt.Fprintf(out, "%sSurfaceArea: %s km²\n", indent, humanize.CommafWithDigits(info.SurfaceArea/1e6, 0))
}

func renderDatumTxt(info *datumInfo) {
	fmt.Fprintf(out, "Name: %s (%s)\n", info.Name, info.Key)
	fmt.Fprintf(out, "Region: %s\n", info.Region)
	fmt.Fprintf(out, "Regions: %s\n", strings.Join(info.Regions, ", "))
	fmt.Fprintf(out, "Translation: %s m\n", triple(info.Translate))
	fmt.Fprintf(out, "Rotation: %s arcsec\n", triple(info.Rotate))
	fmt.Fprintf(out, "Scale: %s ppm\n", strconv.FormatFloat(info.ScalePPM, 'f', -1, 64))
	fmt.Fprintf(out, "Ellipsoid:\n")
	renderEllipsoidTxt(&info.Ellipsoid, "  ")
}

func meters(v float64) string {
	return humanize.CommafWithDigits(v, 3)
}

func triple(v [3]float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'f', 4, 64)
	}

	return strings.Join(parts, ", ")
}
