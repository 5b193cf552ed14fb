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
	"fmt"

	"m4o.io/geodesy/model"
)

const minLineNodes = 2

// Line is an open chain of at least two nodes.
type Line struct {
	Feature
}

// NewLine builds a line from at least two nodes.
func NewLine(nodes ...LatLong) (*Line, error) {
	if len(nodes) < minLineNodes {
		return nil, fmt.Errorf("%w: line needs %d nodes, has %d", ErrTooFewNodes, minLineNodes, len(nodes))
	}

	chain, err := validateAll(nodes)
	if err != nil {
		return nil, err
	}

	return &Line{Feature{nodes: chain}}, nil
}

// Append adds a node at the end of the line.
func (l *Line) Append(p LatLong) error {
	return l.Insert(len(l.nodes), p)
}

// Insert adds a node before index i.  i may equal Len.
func (l *Line) Insert(i int, p LatLong) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := checkIndex(i, len(l.nodes)+1); err != nil {
		return err
	}

	p.Lon = p.Lon.NormalizeLongitude()
	l.nodes = append(l.nodes[:i], append([]LatLong{p}, l.nodes[i:]...)...)

	return nil
}

// Set replaces the node at index i.
func (l *Line) Set(i int, p LatLong) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := checkIndex(i, len(l.nodes)); err != nil {
		return err
	}

	p.Lon = p.Lon.NormalizeLongitude()
	l.nodes[i] = p

	return nil
}

// Delete removes the node at index i.  A line never shrinks below two nodes.
func (l *Line) Delete(i int) error {
	if err := checkIndex(i, len(l.nodes)); err != nil {
		return err
	}

	if len(l.nodes) <= minLineNodes {
		return fmt.Errorf("%w: line needs %d nodes", ErrTooFewNodes, minLineNodes)
	}

	l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)

	return nil
}

// BoundingBox returns the bounds of the line's geodesic edges.
func (l *Line) BoundingBox() *model.BoundingBox {
	return l.edgeBounds()
}

// Length returns the summed length of the line's segments.
func (l *Line) Length(m Method, opts ...Option) (model.Distance, error) {
	return l.chainLength(m, opts)
}
