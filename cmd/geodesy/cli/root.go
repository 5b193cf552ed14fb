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

// Package cli holds the root command of the geodesy tool and the helpers its
// subcommands share.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"m4o.io/geodesy"
	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/model"
)

// settings are the persistent flags every subcommand sees.
type settings struct {
	datum    string
	region   string
	method   geodesy.Method
	unit     string
	areaUnit string
	cpu      uint16
	config   string
	verbose  bool
}

var global = settings{
	datum:    "wgs84",
	method:   geodesy.VincentyMethod,
	unit:     "m",
	areaUnit: "km2",
	cpu:      geodesy.DefaultNCpu(),
}

// RootCmd is the geodesy command.  Subcommands add themselves in init.
var RootCmd = &cobra.Command{
	Use:   "geodesy",
	Short: "Convert coordinates and measure on the ellipsoid",
	Long: "Convert between geographic, ECEF and UTM coordinates, shift between datums " +
		"and measure distances and areas.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if global.config != "" {
			cfg, err := LoadConfig(global.config)
			if err != nil {
				return err
			}

			if err := cfg.Apply(cmd.Flags()); err != nil {
				return err
			}
		}

		if global.verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}

		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&global.datum, "datum", "d", global.datum, "geodetic datum of the coordinates")
	flags.StringVarP(&global.region, "region", "r", global.region, "datum region (default: the datum's own)")
	flags.VarP(&global.method, "method", "m", "distance method: vincenty or haversine")
	flags.StringVarP(&global.unit, "unit", "u", global.unit, "length unit for distances")
	flags.StringVar(&global.areaUnit, "area-unit", global.areaUnit, "unit for areas")
	flags.Uint16VarP(&global.cpu, "cpu", "c", global.cpu, "number of CPUs to use for batch conversion")
	flags.StringVar(&global.config, "config", "", "YAML file of flag defaults")
	flags.BoolVarP(&global.verbose, "verbose", "v", false, "log numerical diagnostics")
}

// Datum resolves the --datum and --region flags.
func Datum() (*datum.Datum, error) {
	return datum.New(global.datum, global.region)
}

// Method returns the --method flag.
func Method() geodesy.Method {
	return global.method
}

// LengthUnit resolves the --unit flag.
func LengthUnit() (model.LengthUnit, error) {
	return model.ParseLengthUnit(global.unit)
}

// AreaUnit resolves the --area-unit flag.
func AreaUnit() (model.AreaUnit, error) {
	return model.ParseAreaUnit(global.areaUnit)
}

// NCpu returns the --cpu flag.
func NCpu() uint16 {
	return max(global.cpu, 1)
}
