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

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"m4o.io/geodesy/model"
)

const minClusterNodes = 2

// cancelled is the length, per node, below which the summed unit vectors are
// treated as zero.
const cancelled = 1e-9

// Cluster is an unordered group of at least two nodes.
type Cluster struct {
	Feature
}

// NewCluster builds a cluster from at least two nodes.
func NewCluster(nodes ...LatLong) (*Cluster, error) {
	if len(nodes) < minClusterNodes {
		return nil, fmt.Errorf("%w: cluster needs %d nodes, has %d", ErrTooFewNodes, minClusterNodes, len(nodes))
	}

	members, err := validateAll(nodes)
	if err != nil {
		return nil, err
	}

	return &Cluster{Feature{nodes: members}}, nil
}

// Append adds a node to the cluster.
func (c *Cluster) Append(p LatLong) error {
	if err := p.Validate(); err != nil {
		return err
	}

	p.Lon = p.Lon.NormalizeLongitude()
	c.nodes = append(c.nodes, p)

	return nil
}

// Delete removes the node at index i.  A cluster never shrinks below two
// nodes.
func (c *Cluster) Delete(i int) error {
	if err := checkIndex(i, len(c.nodes)); err != nil {
		return err
	}

	if len(c.nodes) <= minClusterNodes {
		return fmt.Errorf("%w: cluster needs %d nodes", ErrTooFewNodes, minClusterNodes)
	}

	c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)

	return nil
}

// BoundingBox returns the bounds of the nodes.
func (c *Cluster) BoundingBox() *model.BoundingBox {
	return c.pointBounds()
}

// Centroid returns the normalized mean of the nodes' unit vectors, which is
// well defined across the antimeridian.  Nodes that cancel out, such
// as two antipodes, have no centroid and yield ErrNoSuchNode.
func (c *Cluster) Centroid() (LatLong, error) {
	var (
		sum    r3.Vector
		height float64
	)

	for _, n := range c.nodes {
		sum = sum.Add(s2.PointFromLatLng(n.LatLng()).Vector)
		height += n.Height
	}

	if sum.Norm() < cancelled*float64(len(c.nodes)) {
		return LatLong{}, fmt.Errorf("%w: cluster centroid is undefined", ErrNoSuchNode)
	}

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})

	return NewLatLong(model.Degrees(ll.Lat.Degrees()), model.Degrees(ll.Lng.Degrees()), height/float64(len(c.nodes)))
}
