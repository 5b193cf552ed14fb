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

package convert

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/destel/rill"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/geodesy"
	"m4o.io/geodesy/cmd/geodesy/cli"
	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/internal/codec"
	"m4o.io/geodesy/model"
)

// ErrUnknownFormat is returned for an output format other than csv or pb.
var ErrUnknownFormat = errors.New("unknown output format")

const (
	formatCSV = "csv"
	formatPB  = "pb"
)

var header = []string{"lat", "lon", "height", "x", "y", "z", "zone", "easting", "northing"}

func init() {
	cli.RootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringP("output", "o", "-", "output file")
	flags.StringP("format", "f", formatCSV, "output format: csv or pb")
	flags.StringP("compress", "z", "", "output compression (default: by output extension)")
	flags.BoolP("progress", "p", true, "show a progress bar when reading a file")
}

var convertCmd = &cobra.Command{
	Use:   "convert [<point file>]",
	Short: "Convert lat,lon[,height] points to ECEF and UTM",
	Long: "Convert lat,lon[,height] points to ECEF and UTM.  The input may be compressed " +
		"with zlib, zstd, lz4, lzma or xz, chosen by its extension.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}

		progress, err := flags.GetBool("progress")
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.OpenInput(path, progress)
		if err != nil {
			log.Fatal(err)
		}

		output, err := flags.GetString("output")
		if err != nil {
			log.Fatal(err)
		}

		format, err := flags.GetString("format")
		if err != nil {
			log.Fatal(err)
		}

		compress, err := flags.GetString("compress")
		if err != nil {
			log.Fatal(err)
		}

		c := codec.FromPath(output)
		if compress != "" {
			if c, err = codec.ParseCompression(compress); err != nil {
				log.Fatal(err)
			}
		}

		d, err := cli.Datum()
		if err != nil {
			log.Fatal(err)
		}

		var dst io.WriteCloser = os.Stdout
		if output != "-" {
			if dst, err = os.Create(output); err != nil {
				log.Fatal(err)
			}
		}

		w, err := codec.NewWriter(dst, c)
		if err != nil {
			log.Fatal(err)
		}

		bbox, n, err := runConvert(cmd.Context(), in, w, d, format, cli.NCpu())
		if err != nil {
			log.Fatal(err)
		}

		if err := errors.Join(w.Close(), in.Close()); err != nil {
			log.Fatal(err)
		}

		if dst != os.Stdout {
			if err := dst.Close(); err != nil {
				log.Fatal(err)
			}
		}

		fmt.Fprintf(os.Stderr, "Converted %s points within %s\n", humanize.Comma(n), bbox)
	},
}

// runConvert converts every point of in, in datum d, and writes the
// conversions to out.  It returns the bounds and number of the points.
func runConvert(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	d *datum.Datum,
	format string,
	ncpu uint16,
) (*model.BoundingBox, int64, error) {
	var write func(<-chan rill.Try[geodesy.Conversion]) (int64, error)

	switch format {
	case formatCSV:
		write = func(conversions <-chan rill.Try[geodesy.Conversion]) (int64, error) {
			return writeCSV(out, conversions)
		}
	case formatPB:
		write = func(conversions <-chan rill.Try[geodesy.Conversion]) (int64, error) {
			return writeRecords(out, conversions)
		}
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	conversions := geodesy.ConvertStream(ctx, cli.StreamPoints(in), d, geodesy.WithNCpus(ncpu))
	conversions, bboxes := geodesy.ExtractBoundingBox(conversions)

	n, err := write(conversions)
	if err != nil {
		return nil, n, err
	}

	return <-bboxes, n, nil
}

func writeCSV(out io.Writer, conversions <-chan rill.Try[geodesy.Conversion]) (int64, error) {
	w := csv.NewWriter(out)

	if err := w.Write(header); err != nil {
		rill.DrainNB(conversions)

		return 0, err
	}

	var n int64

	for c := range conversions {
		if c.Error != nil {
			rill.DrainNB(conversions)

			return n, c.Error
		}

		if err := w.Write(record(c.Value)); err != nil {
			rill.DrainNB(conversions)

			return n, err
		}

		n++
	}

	w.Flush()

	return n, w.Error()
}

func record(c geodesy.Conversion) []string {
	r := []string{
		ftoa(float64(c.Geographic.Lat), -1),
		ftoa(float64(c.Geographic.Lon), -1),
		ftoa(c.Geographic.Height, -1),
		ftoa(c.ECEF.X, 3),
		ftoa(c.ECEF.Y, 3),
		ftoa(c.ECEF.Z, 3),
		"", "", "",
	}

	if c.HasUTM {
		r[6] = c.UTM.ZoneDesignator()
		r[7] = ftoa(c.UTM.Easting, 3)
		r[8] = ftoa(c.UTM.Northing, 3)
	}

	return r
}

func writeRecords(out io.Writer, conversions <-chan rill.Try[geodesy.Conversion]) (int64, error) {
	var n int64

	statuses := codec.SaveRecords(out, conversions)

	for s := range statuses {
		if s.Error != nil {
			rill.DrainNB(statuses)

			return n, s.Error
		}

		n++
	}

	return n, nil
}

func ftoa(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}
