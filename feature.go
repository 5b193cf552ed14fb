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
	"math"

	"github.com/golang/geo/s2"

	"m4o.io/geodesy/model"
)

// Feature is an ordered sequence of nodes.  It carries the operations shared
// by Region, Line and Cluster; the kinds add their own size rules.
type Feature struct {
	nodes []LatLong
}

// Len returns the number of nodes.
func (f *Feature) Len() int {
	return len(f.nodes)
}

// Node returns the node at index i.
func (f *Feature) Node(i int) (LatLong, error) {
	if i < 0 || i >= len(f.nodes) {
		return LatLong{}, fmt.Errorf("%w: %d of %d", ErrNoSuchNode, i, len(f.nodes))
	}

	return f.nodes[i], nil
}

// Nodes returns a copy of the nodes.
func (f *Feature) Nodes() []LatLong {
	nodes := make([]LatLong, len(f.nodes))
	copy(nodes, f.nodes)

	return nodes
}

// Nearest returns the index of, and distance to, the node closest to p.
func (f *Feature) Nearest(p LatLong, m Method, opts ...Option) (int, model.Distance, error) {
	if len(f.nodes) == 0 {
		return -1, 0, fmt.Errorf("%w: feature is empty", ErrNoSuchNode)
	}

	best := -1
	shortest := model.Distance(math.Inf(1))

	for i, n := range f.nodes {
		d, err := Distance(p, n, m, opts...)
		if err != nil {
			return -1, 0, err
		}

		if d < shortest {
			best, shortest = i, d
		}
	}

	return best, shortest, nil
}

// edgeBounds returns the bounds of the nodes joined by geodesic edges.
func (f *Feature) edgeBounds() *model.BoundingBox {
	if len(f.nodes) == 0 {
		return model.InitialBoundingBox()
	}

	rb := s2.NewRectBounder()
	for _, n := range f.nodes {
		rb.AddPoint(s2.PointFromLatLng(n.LatLng()))
	}

	return fromRect(rb.RectBound())
}

// pointBounds returns the bounds of the nodes alone.
func (f *Feature) pointBounds() *model.BoundingBox {
	if len(f.nodes) == 0 {
		return model.InitialBoundingBox()
	}

	r := s2.EmptyRect()
	for _, n := range f.nodes {
		r = r.AddPoint(n.LatLng())
	}

	return fromRect(r)
}

func fromRect(r s2.Rect) *model.BoundingBox {
	return &model.BoundingBox{
		Top:    model.FromRadians(float64(r.Lat.Hi)),
		Left:   model.FromRadians(r.Lng.Lo),
		Bottom: model.FromRadians(float64(r.Lat.Lo)),
		Right:  model.FromRadians(r.Lng.Hi),
	}
}

// chainLength sums the distances between consecutive nodes.
func (f *Feature) chainLength(m Method, opts []Option) (model.Distance, error) {
	var total model.Distance

	for i := 1; i < len(f.nodes); i++ {
		d, err := Distance(f.nodes[i-1], f.nodes[i], m, opts...)
		if err != nil {
			return 0, err
		}

		total += d
	}

	return total, nil
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d of %d", ErrNoSuchNode, i, n)
	}

	return nil
}

func validateAll(nodes []LatLong) ([]LatLong, error) {
	out := make([]LatLong, len(nodes))

	for i, n := range nodes {
		p, err := NewLatLong(n.Lat, n.Lon, n.Height)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}

		out[i] = p
	}

	return out, nil
}

// sameNode compares horizontal position only.
func sameNode(a, b LatLong) bool {
	return a.Lat == b.Lat && a.Lon == b.Lon
}
