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

package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/destel/rill"

	"m4o.io/geodesy"
)

// StreamPoints reads "lat,lon[,height]" records from r.  Lines starting with
// '#' are skipped, as is a first line that does not parse as a point, which
// is taken to be a header.  A malformed record travels in the stream as an
// error naming its line; reading continues after it.
func StreamPoints(r io.Reader) <-chan rill.Try[geodesy.LatLong] {
	out := make(chan rill.Try[geodesy.LatLong])

	go func() {
		defer close(out)

		cr := csv.NewReader(r)
		cr.Comment = '#'
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		cr.ReuseRecord = true

		first := true

		for {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				out <- rill.Wrap(geodesy.LatLong{}, err)

				return
			}

			line, _ := cr.FieldPos(0)

			p, err := parseFields(record)
			if err != nil && first && errors.Is(err, ErrMalformedPoint) {
				first = false

				continue
			}

			first = false

			if err != nil {
				err = fmt.Errorf("line %d: %w", line, err)
			}

			out <- rill.Wrap(p, err)
		}
	}()

	return out
}

// ReadPoints reads every point of r, failing on the first malformed record.
func ReadPoints(r io.Reader) ([]geodesy.LatLong, error) {
	return rill.ToSlice(StreamPoints(r))
}
