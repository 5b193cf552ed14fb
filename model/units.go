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

package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidUnit is returned when converting to or from a unit that is not
// part of the unit table for the measurement kind.
var ErrInvalidUnit = errors.New("invalid unit of measure")

// LengthUnit is an enumeration of units a Distance can be expressed in.
type LengthUnit int

const (
	Meter LengthUnit = iota
	Kilometer
	Centimeter
	Millimeter
	Foot
	USSurveyFoot
	Yard
	Mile
	NauticalMile
)

// AreaUnit is an enumeration of units an Area can be expressed in.
type AreaUnit int

const (
	SquareMeter AreaUnit = iota
	SquareKilometer
	Hectare
	Acre
	SquareFoot
	SquareMile
)

// AngleUnit is an enumeration of units Degrees can be expressed in.
type AngleUnit int

const (
	AngleDegrees AngleUnit = iota
	AngleRadians
	AngleGradians
	AngleArcMinutes
	AngleArcSeconds
)

// unitDef is one row of a linear conversion table: value * factor gives the
// value in the canonical unit.
type unitDef struct {
	factor float64
	symbol string
	names  []string
}

var lengthUnits = map[LengthUnit]unitDef{
	Meter:        {1, "m", []string{"meter", "meters", "metre", "metres"}},
	Kilometer:    {1000, "km", []string{"kilometer", "kilometers", "kilometre", "kilometres"}},
	Centimeter:   {0.01, "cm", []string{"centimeter", "centimeters"}},
	Millimeter:   {0.001, "mm", []string{"millimeter", "millimeters"}},
	Foot:         {0.3048, "ft", []string{"foot", "feet"}},
	USSurveyFoot: {1200.0 / 3937.0, "ftUS", []string{"us survey foot", "us survey feet", "survey foot"}},
	Yard:         {0.9144, "yd", []string{"yard", "yards"}},
	Mile:         {1609.344, "mi", []string{"mile", "miles", "statute mile"}},
	NauticalMile: {1852, "nmi", []string{"nautical mile", "nautical miles", "nm"}},
}

var areaUnits = map[AreaUnit]unitDef{
	SquareMeter:     {1, "m²", []string{"m2", "sq m", "square meter", "square meters", "square metre"}},
	SquareKilometer: {1e6, "km²", []string{"km2", "sq km", "square kilometer", "square kilometers"}},
	Hectare:         {1e4, "ha", []string{"hectare", "hectares"}},
	Acre:            {4046.8564224, "ac", []string{"acre", "acres"}},
	SquareFoot:      {0.09290304, "ft²", []string{"ft2", "sq ft", "square foot", "square feet"}},
	SquareMile:      {2589988.110336, "mi²", []string{"mi2", "sq mi", "square mile", "square miles"}},
}

var angleUnits = map[AngleUnit]unitDef{
	AngleDegrees:    {1, "°", []string{"deg", "degree", "degrees"}},
	AngleRadians:    {180 / math.Pi, "rad", []string{"radian", "radians"}},
	AngleGradians:   {0.9, "gon", []string{"grad", "gradian", "gradians"}},
	AngleArcMinutes: {1.0 / MinutesPerDegree, "'", []string{"arcmin", "arcminute", "arcminutes"}},
	AngleArcSeconds: {1.0 / SecondsPerDegree, "\"", []string{"arcsec", "arcsecond", "arcseconds"}},
}

func (u LengthUnit) String() string { return unitSymbol(lengthUnits, u) }

func (u AreaUnit) String() string { return unitSymbol(areaUnits, u) }

func (u AngleUnit) String() string { return unitSymbol(angleUnits, u) }

func unitSymbol[U comparable](table map[U]unitDef, u U) string {
	if def, ok := table[u]; ok {
		return def.symbol
	}

	return fmt.Sprintf("unit(%d)", any(u))
}

// ParseLengthUnit resolves a unit token such as "km" or "nautical mile".
func ParseLengthUnit(s string) (LengthUnit, error) { return parseUnit(lengthUnits, s) }

// ParseAreaUnit resolves a unit token such as "ha" or "km2".
func ParseAreaUnit(s string) (AreaUnit, error) { return parseUnit(areaUnits, s) }

// ParseAngleUnit resolves a unit token such as "rad" or "arcsec".
func ParseAngleUnit(s string) (AngleUnit, error) { return parseUnit(angleUnits, s) }

func parseUnit[U comparable](table map[U]unitDef, s string) (U, error) {
	token := strings.ToLower(strings.TrimSpace(s))

	for u, def := range table {
		if token == strings.ToLower(def.symbol) {
			return u, nil
		}

		for _, name := range def.names {
			if token == name {
				return u, nil
			}
		}
	}

	var zero U

	return zero, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
}

func factor[U comparable](table map[U]unitDef, u U) (float64, error) {
	def, ok := table[u]
	if !ok {
		return 0, fmt.Errorf("%w: unit(%d)", ErrInvalidUnit, any(u))
	}

	return def.factor, nil
}

// Distance is a length in meters.
type Distance float64

// NewDistance converts a value expressed in unit u into a Distance.
func NewDistance(v float64, u LengthUnit) (Distance, error) {
	f, err := factor(lengthUnits, u)
	if err != nil {
		return 0, err
	}

	return Distance(v * f), nil
}

// Meters returns the distance in meters.
func (d Distance) Meters() float64 { return float64(d) }

// In returns the distance expressed in unit u.
func (d Distance) In(u LengthUnit) (float64, error) {
	f, err := factor(lengthUnits, u)
	if err != nil {
		return 0, err
	}

	return float64(d) / f, nil
}

func (d Distance) String() string {
	return ftoa(float64(d)) + " m"
}

// Area is a surface area in square meters.
type Area float64

// NewArea converts a value expressed in unit u into an Area.
func NewArea(v float64, u AreaUnit) (Area, error) {
	f, err := factor(areaUnits, u)
	if err != nil {
		return 0, err
	}

	return Area(v * f), nil
}

// SquareMeters returns the area in square meters.
func (a Area) SquareMeters() float64 { return float64(a) }

// In returns the area expressed in unit u.
func (a Area) In(u AreaUnit) (float64, error) {
	f, err := factor(areaUnits, u)
	if err != nil {
		return 0, err
	}

	return float64(a) / f, nil
}

func (a Area) String() string {
	return ftoa(float64(a)) + " m²"
}

// NewDegrees converts an angle expressed in unit u into Degrees.
func NewDegrees(v float64, u AngleUnit) (Degrees, error) {
	f, err := factor(angleUnits, u)
	if err != nil {
		return 0, err
	}

	return Degrees(v * f), nil
}

// In returns the angle expressed in unit u.
func (d Degrees) In(u AngleUnit) (float64, error) {
	f, err := factor(angleUnits, u)
	if err != nil {
		return 0, err
	}

	return float64(d) / f, nil
}
