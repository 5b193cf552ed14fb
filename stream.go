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

package geodesy

import (
	"context"
	"errors"

	"github.com/destel/rill"

	"m4o.io/geodesy/datum"
	"m4o.io/geodesy/model"
)

// Conversion holds one point in every representation.  HasUTM is false for
// points outside the UTM bands.
type Conversion struct {
	Geographic LatLong `json:"geographic"`
	ECEF       ECEF    `json:"ecef"`
	UTM        UTM     `json:"utm"`
	HasUTM     bool    `json:"has_utm"`
}

// Convert expresses p, given in datum d, in every representation.
func Convert(p LatLong, d *datum.Datum) (Conversion, error) {
	c := Conversion{Geographic: p}

	var err error
	if c.ECEF, err = p.ToECEF(d); err != nil {
		return Conversion{}, err
	}

	c.UTM, err = p.ToUTM(d)

	switch {
	case err == nil:
		c.HasUTM = true
	case errors.Is(err, ErrOutsideUTM):
		c.UTM = UTM{}
	default:
		return Conversion{}, err
	}

	return c, nil
}

// ConvertStream converts points concurrently on WithNCpus goroutines, keeping
// their order.  Errors travel in the stream next to the point they belong
// to; cancelling ctx turns the remaining points into ctx.Err().
func ConvertStream(
	ctx context.Context,
	in <-chan rill.Try[LatLong],
	d *datum.Datum,
	opts ...Option,
) <-chan rill.Try[Conversion] {
	if d == nil {
		rill.DrainNB(in)

		return rill.FromSlice[Conversion](nil, ErrMissingDatum)
	}

	cfg := configure(vincentyDefaults, opts)

	return rill.OrderedMap(in, int(cfg.nCPU), func(p LatLong) (Conversion, error) {
		if err := ctx.Err(); err != nil {
			return Conversion{}, err
		}

		return Convert(p, d)
	})
}

// ConvertAll is ConvertStream over a slice.  It returns the first error.
func ConvertAll(ctx context.Context, points []LatLong, d *datum.Datum, opts ...Option) ([]Conversion, error) {
	return rill.ToSlice(ConvertStream(ctx, rill.FromSlice(points, nil), d, opts...))
}

// ExtractBoundingBox passes a conversion stream through unchanged while
// tracking the bounds of its geographic points.  The second channel delivers
// the bounds once the stream is exhausted.
func ExtractBoundingBox(
	in <-chan rill.Try[Conversion],
) (
	<-chan rill.Try[Conversion],
	<-chan *model.BoundingBox,
) {
	out := make(chan rill.Try[Conversion])
	bch := make(chan *model.BoundingBox, 1)

	go func() {
		defer close(bch)
		defer close(out)

		bbox := model.InitialBoundingBox()

		for c := range in {
			if c.Error == nil {
				bbox.ExpandWithLatLng(c.Value.Geographic.Lat, c.Value.Geographic.Lon)
			}

			out <- c
		}

		bch <- bbox
	}()

	return out, bch
}
