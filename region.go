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
	"log/slog"
	"math"

	"m4o.io/geodesy/ellipsoid"
	"m4o.io/geodesy/model"
)

const minRegionNodes = 3

// Region is a closed polygon.  Its last node always repeats its first; the
// closing node is appended automatically.  A Region with no nodes is
// undefined: its area and perimeter are zero and it contains nothing.
//
// Append, Insert, Set and Delete index the ring without its closing node and
// re-close it afterwards.
type Region struct {
	Feature
}

// NewRegion builds a region from at least three distinct nodes, or an
// undefined region from none.
func NewRegion(nodes ...LatLong) (*Region, error) {
	r := &Region{}
	if len(nodes) == 0 {
		return r, nil
	}

	ring, err := validateAll(nodes)
	if err != nil {
		return nil, err
	}

	if len(ring) > 1 && sameNode(ring[0], ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}

	if err := r.setRing(ring); err != nil {
		return nil, err
	}

	return r, nil
}

// IsDefined reports whether the region has nodes.
func (r *Region) IsDefined() bool {
	return len(r.nodes) > 0
}

// ring returns a copy of the nodes without the closing node.
func (r *Region) ring() []LatLong {
	if len(r.nodes) == 0 {
		return nil
	}

	ring := make([]LatLong, len(r.nodes)-1)
	copy(ring, r.nodes)

	return ring
}

func (r *Region) setRing(ring []LatLong) error {
	if len(ring) < minRegionNodes {
		return fmt.Errorf("%w: region needs %d nodes, has %d", ErrTooFewNodes, minRegionNodes, len(ring))
	}

	if n := distinctNodes(ring, minRegionNodes); n < minRegionNodes {
		return fmt.Errorf("%w: region needs %d distinct nodes, has %d", ErrTooFewNodes, minRegionNodes, n)
	}

	r.nodes = append(ring, ring[0])

	return nil
}

// distinctNodes counts the distinct positions in nodes, stopping at limit.
func distinctNodes(nodes []LatLong, limit int) int {
	seen := make([]LatLong, 0, limit)

outer:
	for _, n := range nodes {
		for _, s := range seen {
			if sameNode(n, s) {
				continue outer
			}
		}

		if seen = append(seen, n); len(seen) == limit {
			break
		}
	}

	return len(seen)
}

// winding returns the longitude swept by the ring in degrees and the edge
// by edge unwrapped longitudes of its nodes relative to lon.  A sweep of
// ±360 means the ring encloses a pole.
func winding(ring []LatLong, lon model.Degrees) (float64, []float64) {
	x := make([]float64, len(ring))
	x[0] = math.Remainder(float64(ring[0].Lon-lon), 360)

	for i := 1; i < len(ring); i++ {
		x[i] = x[i-1] + math.Remainder(float64(ring[i].Lon-ring[i-1].Lon), 360)
	}

	closing := x[len(x)-1] + math.Remainder(float64(ring[0].Lon-ring[len(ring)-1].Lon), 360)

	return closing - x[0], x
}

// enclosesPole reports whether a sweep from winding circles a pole.
func enclosesPole(sweep float64) bool {
	return math.Abs(sweep) > 180
}

// poleLatitude picks the pole on the side of the equator holding most of the
// ring.
func poleLatitude(ring []LatLong) float64 {
	var sum float64
	for _, n := range ring {
		sum += float64(n.Lat)
	}

	if sum < 0 {
		return float64(model.MinLat)
	}

	return float64(model.MaxLat)
}

// Append adds a node at the end of the ring.
func (r *Region) Append(p LatLong) error {
	return r.Insert(max(len(r.nodes)-1, 0), p)
}

// Insert adds a node before ring index i.  i may equal the ring length.
func (r *Region) Insert(i int, p LatLong) error {
	if err := p.Validate(); err != nil {
		return err
	}

	ring := r.ring()
	if err := checkIndex(i, len(ring)+1); err != nil {
		return err
	}

	p.Lon = p.Lon.NormalizeLongitude()

	ring = append(ring[:i], append([]LatLong{p}, ring[i:]...)...)

	return r.setRing(ring)
}

// Set replaces the node at ring index i.
func (r *Region) Set(i int, p LatLong) error {
	if err := p.Validate(); err != nil {
		return err
	}

	ring := r.ring()
	if err := checkIndex(i, len(ring)); err != nil {
		return err
	}

	p.Lon = p.Lon.NormalizeLongitude()
	ring[i] = p

	return r.setRing(ring)
}

// Delete removes the node at ring index i.  A region never shrinks below
// three nodes.
func (r *Region) Delete(i int) error {
	ring := r.ring()
	if err := checkIndex(i, len(ring)); err != nil {
		return err
	}

	return r.setRing(append(ring[:i], ring[i+1:]...))
}

// BoundingBox returns the bounds of the polygon's geodesic edges.
func (r *Region) BoundingBox() *model.BoundingBox {
	return r.edgeBounds()
}

// Contains reports whether p lies inside the region using an even-odd ray
// cast in the latitude/longitude plane.  The ring is unwrapped edge by edge,
// each edge taking the shorter way round, so rings that straddle the
// antimeridian work.  A ring that circles a pole is closed through the pole
// on the side of the equator holding most of its nodes.
func (r *Region) Contains(p LatLong) bool {
	ring := r.ring()
	if len(ring) < minRegionNodes {
		return false
	}

	sweep, x := winding(ring, p.Lon)

	y := make([]float64, len(ring))
	for i, n := range ring {
		y[i] = float64(n.Lat)
	}

	if enclosesPole(sweep) {
		pole := poleLatitude(ring)
		end := x[0] + sweep

		x = append(x, end, end, x[0])
		y = append(y, y[0], pole, pole)
	}

	for _, px := range []float64{0, 360, -360} {
		if rayCast(x, y, px, float64(p.Lat)) {
			return true
		}
	}

	return false
}

// rayCast is the even-odd test of (px, py) against the polygon x, y.
func rayCast(x, y []float64, px, py float64) bool {
	inside := false

	for i, j := 0, len(x)-1; i < len(x); j, i = i, i+1 {
		if (y[i] > py) != (y[j] > py) &&
			px < (x[j]-x[i])*(py-y[i])/(y[j]-y[i])+x[i] {
			inside = !inside
		}
	}

	return inside
}

// AreaPlanar returns the area of the region on a sphere of radius WithRadius
// (default DefaultRadius) or the authalic radius of WithEllipsoid, summing the
// spherical excess of each edge.
func (r *Region) AreaPlanar(opts ...Option) model.Area {
	ring := r.ring()
	if len(ring) < minRegionNodes {
		return 0
	}

	cfg := configure(vincentyDefaults, opts)
	radius := cfg.sphereRadius()

	var excess, sweep float64

	for i := range ring {
		p1, p2 := ring[i], ring[(i+1)%len(ring)]

		dLambda := math.Remainder(p2.Lon.Radians()-p1.Lon.Radians(), 2*math.Pi)
		t1 := math.Tan(p1.Lat.Radians() / 2)
		t2 := math.Tan(p2.Lat.Radians() / 2)

		excess += 2 * math.Atan2(math.Tan(dLambda/2)*(t1+t2), 1+t1*t2)
		sweep += dLambda
	}

	// the excess is measured against the equator, so a ring circling a pole
	// yields the hemisphere minus its cap
	area := math.Abs(excess)
	if math.Abs(sweep) > math.Pi {
		area = 2*math.Pi - area
	}

	return model.Area(area * radius * radius)
}

// ellipsoidalArea holds the series coefficients of the authalic latitude
// integrals for one ellipsoid.
type ellipsoidalArea struct {
	qa, qb, qc                 float64
	qbarA, qbarB, qbarC, qbarD float64
	ae, qp, total              float64
}

func newEllipsoidalArea(e *ellipsoid.Ellipsoid) ellipsoidalArea {
	a := e.SemiMajorAxis()
	e2 := e.FirstEccentricitySquared()
	e4 := e2 * e2
	e6 := e4 * e2

	s := ellipsoidalArea{
		qa:    (2.0 / 3.0) * e2,
		qb:    (3.0 / 5.0) * e4,
		qc:    (4.0 / 7.0) * e6,
		qbarA: -1.0 - (2.0/3.0)*e2 - (3.0/5.0)*e4 - (4.0/7.0)*e6,
		qbarB: (2.0/9.0)*e2 + (2.0/5.0)*e4 + (4.0/7.0)*e6,
		qbarC: -(3.0/25.0)*e4 - (12.0/35.0)*e6,
		qbarD: (4.0 / 49.0) * e6,
		ae:    a * a * (1 - e2),
	}

	s.qp = s.q(math.Pi / 2)
	s.total = 4 * math.Pi * s.qp * s.ae

	return s
}

func (s ellipsoidalArea) q(x float64) float64 {
	sinx := math.Sin(x)
	sinx2 := sinx * sinx

	return sinx * (1 + sinx2*(s.qa+sinx2*(s.qb+sinx2*s.qc)))
}

func (s ellipsoidalArea) qbar(x float64) float64 {
	cosx := math.Cos(x)
	cosx2 := cosx * cosx

	return cosx * (s.qbarA + cosx2*(s.qbarB+cosx2*(s.qbarC+cosx2*s.qbarD)))
}

// flatEdge is the latitude difference, in radians, below which an edge is
// integrated at its mid latitude.
const flatEdge = 1e-6

// AreaEllipsoidal returns the area of the region on an ellipsoid.  Edges
// crossing the antimeridian are unwrapped; a ring around the south pole,
// which the integral measures as the complement around the north pole, is
// reflected.
func (r *Region) AreaEllipsoidal(e *ellipsoid.Ellipsoid) (model.Area, error) {
	if e == nil {
		return 0, ErrMissingEllipsoid
	}

	if err := e.Recompute(); err != nil {
		return 0, err
	}

	ring := r.ring()
	if len(ring) < minRegionNodes {
		return 0, nil
	}

	s := newEllipsoidalArea(e)

	last := ring[len(ring)-1]
	x2, y2 := last.Lon.Radians(), last.Lat.Radians()
	qbar2 := s.qbar(y2)

	var area float64

	for _, n := range ring {
		x1, y1, qbar1 := x2, y2, qbar2
		x2, y2 = n.Lon.Radians(), n.Lat.Radians()
		qbar2 = s.qbar(y2)

		if x1 > x2 {
			for x1-x2 > math.Pi {
				x2 += 2 * math.Pi
			}
		} else if x2 > x1 {
			for x2-x1 > math.Pi {
				x1 += 2 * math.Pi
			}
		}

		dx := x2 - x1
		q2 := s.q(y2)
		area += dx * (s.qp - q2)

		if dy := y2 - y1; math.Abs(dy) > flatEdge {
			area += dx*q2 - (dx/dy)*(qbar2-qbar1)
		} else {
			area += dx * (q2 - s.q((y1+y2)/2))
		}
	}

	area = math.Abs(area * s.ae)

	if area > s.total {
		area = s.total
	}

	if area > s.total/2 {
		area = s.total - area
	}

	return model.Area(area), nil
}

// Perimeter returns the length of the closed ring.
func (r *Region) Perimeter(m Method, opts ...Option) (model.Distance, error) {
	return r.chainLength(m, opts)
}

// Centroid returns the area-weighted centroid of the ring in the
// latitude/longitude plane.  A ring with zero area falls back to the mean of
// its nodes.
func (r *Region) Centroid() (LatLong, error) {
	ring := r.ring()
	if len(ring) < minRegionNodes {
		return LatLong{}, fmt.Errorf("%w: region is undefined", ErrTooFewNodes)
	}

	origin := ring[0].Lon

	x := make([]float64, len(ring))
	y := make([]float64, len(ring))

	for i, n := range ring {
		x[i] = math.Remainder(float64(n.Lon-origin), 360)
		y[i] = float64(n.Lat)
	}

	var area, cx, cy float64

	for i := range ring {
		j := (i + 1) % len(ring)
		cross := x[i]*y[j] - x[j]*y[i]

		area += cross
		cx += (x[i] + x[j]) * cross
		cy += (y[i] + y[j]) * cross
	}

	area /= 2

	var lat, lon float64

	if area == 0 {
		slog.Debug("region has zero area, using the mean of its nodes", "nodes", len(ring))

		for i := range ring {
			lon += x[i]
			lat += y[i]
		}

		lon /= float64(len(ring))
		lat /= float64(len(ring))
	} else {
		lon = cx / (6 * area)
		lat = cy / (6 * area)
	}

	return NewLatLong(model.Degrees(lat), origin+model.Degrees(lon), 0)
}
