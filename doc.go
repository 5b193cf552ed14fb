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

// Package geodesy converts points between geographic, Earth-centered
// Earth-fixed and UTM coordinates on a reference ellipsoid, and measures
// distances, bearings and polygon areas between them.
//
// Every conversion is parameterized by a *datum.Datum:
//
//	d := datum.MustNew("osgb36", "")
//	p, _ := geodesy.NewLatLong(51.4778, -0.0014, 0)
//	xyz, _ := p.ToECEF(d)
//	utm, _ := p.ToUTM(d)
//
// Results are new values; nothing in this package mutates its inputs.
package geodesy
