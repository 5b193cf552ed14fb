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

// Package codec reads and writes the byte streams of batch conversions:
// stream compression picked by name or file extension, and a length-framed
// protobuf-wire record format for conversion results.
package codec

import (
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

var ErrUnknownCompressionType = errors.New("unknown compression type")

// Compression is an enumeration of the supported stream compressions.
type Compression int

const (
	Raw Compression = iota
	Zlib
	Zstd
	Lz4
	Lzma
	Xz
)

var compressionNames = map[Compression]string{
	Raw:  "raw",
	Zlib: "zlib",
	Zstd: "zstd",
	Lz4:  "lz4",
	Lzma: "lzma",
	Xz:   "xz",
}

var extensions = map[string]Compression{
	".zz":   Zlib,
	".zlib": Zlib,
	".zst":  Zstd,
	".zstd": Zstd,
	".lz4":  Lz4,
	".lzma": Lzma,
	".xz":   Xz,
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}

	return fmt.Sprintf("compression(%d)", int(c))
}

// Extension returns the file extension conventionally used for c, or an
// empty string for Raw.
func (c Compression) Extension() string {
	switch c {
	case Zlib:
		return ".zz"
	case Zstd:
		return ".zst"
	case Lz4:
		return ".lz4"
	case Lzma:
		return ".lzma"
	case Xz:
		return ".xz"
	default:
		return ""
	}
}

// ParseCompression resolves a compression name such as "zstd" or "none".
func ParseCompression(name string) (Compression, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return Raw, nil
	}

	for c, cn := range compressionNames {
		if n == cn {
			return c, nil
		}
	}

	return Raw, fmt.Errorf("%w: %q", ErrUnknownCompressionType, name)
}

// FromPath picks the compression from a file name's extension.  Unknown
// extensions are Raw.
func FromPath(path string) Compression {
	if c, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	return Raw
}

// NewReader wraps r with a decompressing reader.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	var factory func(r io.Reader) (io.ReadCloser, error)

	switch c {
	case Raw:
		return io.NopCloser(r), nil
	case Zlib:
		factory = zlib.NewReader
	case Zstd:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	case Lz4:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(r)), nil
		}
	case Lzma:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			lr, err := lzma.NewReader(r)

			return io.NopCloser(lr), err
		}
	case Xz:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r)

			return io.NopCloser(xr), err
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompressionType, c)
	}

	rdr, err := factory(r)
	if err != nil {
		return nil, fmt.Errorf("%v reader factory error: %w", c, err)
	}

	return rdr, nil
}

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}

// NewWriter wraps w with a compressing writer.  Close flushes the compressed
// stream but leaves w open.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	var (
		wc  io.WriteCloser
		err error
	)

	switch c {
	case Raw:
		wc = nopCloserWriter{w}
	case Zlib:
		wc = zlib.NewWriter(w)
	case Zstd:
		wc, err = zstd.NewWriter(w)
	case Lz4:
		wc = lz4.NewWriter(w)
	case Lzma:
		wc, err = lzma.NewWriter(w)
	case Xz:
		wc, err = xz.NewWriter(w)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompressionType, c)
	}

	if err != nil {
		return nil, fmt.Errorf("%v writer factory error: %w", c, err)
	}

	return wc, nil
}
