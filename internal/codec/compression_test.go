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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/geodesy/internal/codec"
)

func TestCompressionRoundTrip(t *testing.T) {
	payload := strings.Repeat("51.4778,-0.0014,45.2\n", 500)

	for _, c := range []codec.Compression{codec.Raw, codec.Zlib, codec.Zstd, codec.Lz4, codec.Lzma, codec.Xz} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer

			w, err := codec.NewWriter(&buf, c)
			require.NoError(t, err)

			_, err = io.WriteString(w, payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if c != codec.Raw {
				assert.Less(t, buf.Len(), len(payload))
			}

			r, err := codec.NewReader(&buf, c)
			require.NoError(t, err)

			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
		})
	}
}

func TestUnknownCompression(t *testing.T) {
	_, err := codec.NewReader(&bytes.Buffer{}, codec.Compression(42))
	assert.ErrorIs(t, err, codec.ErrUnknownCompressionType)

	_, err = codec.NewWriter(&bytes.Buffer{}, codec.Compression(42))
	assert.ErrorIs(t, err, codec.ErrUnknownCompressionType)

	_, err = codec.ParseCompression("brotli")
	assert.ErrorIs(t, err, codec.ErrUnknownCompressionType)
}

func TestParseCompression(t *testing.T) {
	test_cases := []struct {
		name     string
		expected codec.Compression
	}{
		{"", codec.Raw},
		{"none", codec.Raw},
		{"ZSTD", codec.Zstd},
		{" lz4 ", codec.Lz4},
		{"xz", codec.Xz},
		{"lzma", codec.Lzma},
		{"zlib", codec.Zlib},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := codec.ParseCompression(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestFromPath(t *testing.T) {
	assert.Equal(t, codec.Zstd, codec.FromPath("points.csv.zst"))
	assert.Equal(t, codec.Xz, codec.FromPath("/tmp/points.CSV.XZ"))
	assert.Equal(t, codec.Lz4, codec.FromPath("points.lz4"))
	assert.Equal(t, codec.Zlib, codec.FromPath("points.zz"))
	assert.Equal(t, codec.Raw, codec.FromPath("points.csv"))
	assert.Equal(t, codec.Raw, codec.FromPath("-"))

	assert.Equal(t, ".zst", codec.Zstd.Extension())
	assert.Equal(t, "", codec.Raw.Extension())
}
