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

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/destel/rill"
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/geodesy"
	"m4o.io/geodesy/model"
)

// Record field numbers.  Doubles are fixed64; the UTM fields are present only
// for points inside the UTM bands.
const (
	fieldLat      protowire.Number = 1
	fieldLon      protowire.Number = 2
	fieldHeight   protowire.Number = 3
	fieldX        protowire.Number = 4
	fieldY        protowire.Number = 5
	fieldZ        protowire.Number = 6
	fieldZone     protowire.Number = 7
	fieldBand     protowire.Number = 8
	fieldEasting  protowire.Number = 9
	fieldNorthing protowire.Number = 10
)

// MaxRecordSize bounds the length prefix accepted by ReadRecord.
const MaxRecordSize = 64 * 1024

var ErrRecordTooLarge = errors.New("record too large")

// MarshalConversion encodes a conversion as a protobuf-wire message.
func MarshalConversion(c geodesy.Conversion) []byte {
	b := make([]byte, 0, 96)

	b = appendDouble(b, fieldLat, float64(c.Geographic.Lat))
	b = appendDouble(b, fieldLon, float64(c.Geographic.Lon))
	b = appendDouble(b, fieldHeight, c.Geographic.Height)
	b = appendDouble(b, fieldX, c.ECEF.X)
	b = appendDouble(b, fieldY, c.ECEF.Y)
	b = appendDouble(b, fieldZ, c.ECEF.Z)

	if c.HasUTM {
		b = protowire.AppendTag(b, fieldZone, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(c.UTM.Zone))
		b = protowire.AppendTag(b, fieldBand, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte{c.UTM.Band})
		b = appendDouble(b, fieldEasting, c.UTM.Easting)
		b = appendDouble(b, fieldNorthing, c.UTM.Northing)
	}

	return b
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)

	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// UnmarshalConversion decodes a message written by MarshalConversion.
// Unknown fields are skipped.
func UnmarshalConversion(b []byte) (geodesy.Conversion, error) {
	var c geodesy.Conversion

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return geodesy.Conversion{}, fmt.Errorf("could not read tag: %w", protowire.ParseError(n))
		}

		b = b[n:]

		switch {
		case typ == protowire.Fixed64Type && num >= fieldLat && num <= fieldNorthing:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return geodesy.Conversion{}, fmt.Errorf("could not read field %d: %w", num, protowire.ParseError(n))
			}

			setDouble(&c, num, math.Float64frombits(v))
			b = b[n:]
		case typ == protowire.VarintType && num == fieldZone:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return geodesy.Conversion{}, fmt.Errorf("could not read zone: %w", protowire.ParseError(n))
			}

			c.UTM.Zone = int(v)
			c.HasUTM = true
			b = b[n:]
		case typ == protowire.BytesType && num == fieldBand:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return geodesy.Conversion{}, fmt.Errorf("could not read band: %w", protowire.ParseError(n))
			}

			if len(v) == 1 {
				c.UTM.Band = v[0]
			}

			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return geodesy.Conversion{}, fmt.Errorf("could not skip field %d: %w", num, protowire.ParseError(n))
			}

			b = b[n:]
		}
	}

	return c, nil
}

func setDouble(c *geodesy.Conversion, num protowire.Number, v float64) {
	switch num {
	case fieldLat:
		c.Geographic.Lat = model.Degrees(v)
	case fieldLon:
		c.Geographic.Lon = model.Degrees(v)
	case fieldHeight:
		c.Geographic.Height = v
	case fieldX:
		c.ECEF.X = v
	case fieldY:
		c.ECEF.Y = v
	case fieldZ:
		c.ECEF.Z = v
	case fieldEasting:
		c.UTM.Easting = v
	case fieldNorthing:
		c.UTM.Northing = v
	}
}

// WriteRecord writes a conversion prefixed by its length as a big-endian
// uint32.
func WriteRecord(w io.Writer, c geodesy.Conversion) error {
	b := MarshalConversion(c)

	if err := binary.Write(w, binary.BigEndian, uint32(len(b))); err != nil {
		return fmt.Errorf("could not write record size: %w", err)
	}

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("could not write record: %w", err)
	}

	return nil
}

// ReadRecord reads one length-prefixed conversion.  It returns io.EOF when r
// is exhausted at a record boundary.
func ReadRecord(r io.Reader) (geodesy.Conversion, error) {
	var size uint32
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		if errors.Is(err, io.EOF) {
			return geodesy.Conversion{}, io.EOF
		}

		return geodesy.Conversion{}, fmt.Errorf("could not read record size: %w", err)
	}

	if size > MaxRecordSize {
		return geodesy.Conversion{}, fmt.Errorf("%w: %d bytes", ErrRecordTooLarge, size)
	}

	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return geodesy.Conversion{}, fmt.Errorf("could not read record: %w", err)
	}

	return UnmarshalConversion(b)
}

// SaveRecords writes every conversion of a stream to w, reporting one status
// per record.  Stream errors are passed through without writing.
func SaveRecords(w io.Writer, in <-chan rill.Try[geodesy.Conversion]) <-chan rill.Try[struct{}] {
	out := make(chan rill.Try[struct{}])

	go func() {
		defer close(out)

		for c := range in {
			if c.Error != nil {
				out <- rill.Wrap(struct{}{}, c.Error)

				continue
			}

			out <- rill.Wrap(struct{}{}, WriteRecord(w, c.Value))
		}
	}()

	return out
}
