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

package codec_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/destel/rill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/geodesy"
	"m4o.io/geodesy/internal/codec"
)

var greenwich = geodesy.Conversion{
	Geographic: geodesy.LatLong{Lat: 51.4778, Lon: -0.0014, Height: 45.2},
	ECEF:       geodesy.ECEF{X: 3980581.21, Y: -97.27, Z: 4966824.52},
	UTM:        geodesy.UTM{Northing: 5705365.3, Easting: 708259.1, Band: 'U', Zone: 30},
	HasUTM:     true,
}

var svalbardPole = geodesy.Conversion{
	Geographic: geodesy.LatLong{Lat: 89.5, Lon: 10},
	ECEF:       geodesy.ECEF{X: 54649.3, Y: 9636.3, Z: 6356561.9},
}

func TestRecordRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, codec.WriteRecord(&buf, greenwich))
	require.NoError(t, codec.WriteRecord(&buf, svalbardPole))

	c, err := codec.ReadRecord(&buf)
	require.NoError(t, err)
	assert.Equal(t, greenwich, c)

	c, err = codec.ReadRecord(&buf)
	require.NoError(t, err)
	assert.Equal(t, svalbardPole, c)
	assert.False(t, c.HasUTM)

	_, err = codec.ReadRecord(&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	b := codec.MarshalConversion(greenwich)
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "future use")

	c, err := codec.UnmarshalConversion(b)
	require.NoError(t, err)
	assert.Equal(t, greenwich, c)
}

func TestReadRecordErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(codec.MaxRecordSize+1)))

	_, err := codec.ReadRecord(&buf)
	assert.ErrorIs(t, err, codec.ErrRecordTooLarge)

	buf.Reset()
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(10)))
	buf.WriteString("short")

	_, err = codec.ReadRecord(&buf)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = codec.UnmarshalConversion([]byte{0x09, 0x01})
	assert.Error(t, err)
}

func TestSaveRecords(t *testing.T) {
	var buf bytes.Buffer

	statuses := codec.SaveRecords(&buf, rill.FromSlice([]geodesy.Conversion{greenwich, svalbardPole}, nil))
	require.NoError(t, rill.Err(statuses))

	c, err := codec.ReadRecord(&buf)
	require.NoError(t, err)
	assert.Equal(t, greenwich, c)
}
