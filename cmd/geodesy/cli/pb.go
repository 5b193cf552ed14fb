// Copyright 2017 the original author or authors.
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
	"errors"
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"

	"m4o.io/geodesy/internal/codec"
)

// input is a decompressing ReadCloser over a file with an optional
// ProgressBar that tracks the compressed bytes read relative to the total.
// Closing it closes the file as well as clearing the terminal line of
// progress output.
type input struct {
	r   io.ReadCloser
	f   *os.File
	bar *pb.ProgressBar
}

// OpenInput opens a point file, or stdin when path is "" or "-", and
// decompresses it according to its extension.  A progress bar is drawn on
// stderr for regular files when progress is set.
func OpenInput(path string, progress bool) (io.ReadCloser, error) {
	in := &input{f: os.Stdin}

	var src io.Reader = os.Stdin

	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		in.f = f
		src = f

		if progress {
			fi, err := f.Stat()
			if err != nil {
				f.Close()

				return nil, err
			}

			in.bar = pb.New64(fi.Size()).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
			in.bar.Output = os.Stderr
			in.bar.Start()

			src = in.bar.NewProxyReader(f)
		}
	}

	r, err := codec.NewReader(src, codec.FromPath(path))
	if err != nil {
		in.closeFile()

		return nil, fmt.Errorf("%s: %w", path, err)
	}

	in.r = r

	return in, nil
}

// Read implements io.Reader.Read by simple delegation.
func (in *input) Read(p []byte) (int, error) {
	return in.r.Read(p)
}

// Close implements io.Closer.Close by closing the decompressor and the file
// as well as clearing the terminal line of progress output.
func (in *input) Close() error {
	return errors.Join(in.r.Close(), in.closeFile())
}

func (in *input) closeFile() error {
	if in.bar != nil {
		// make sure newline is not printed by Finish()
		in.bar.Output = nil
		in.bar.NotPrint = true

		in.bar.Finish()

		fmt.Fprintf(os.Stderr, "\033[2K\r") // clear status bar

		in.bar = nil
	}

	if in.f == os.Stdin {
		// never close stdin
		return nil
	}

	return in.f.Close()
}
