package schema

import (
	"fmt"
	"strconv"
	"strings"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Point is a geographic point. The well-known-text form is
// "POINT(longitude latitude)", longitude first.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ParsePoint parses a well-known-text POINT geometry
func ParsePoint(wkt string) (Point, error) {
	value := strings.TrimSpace(wkt)
	if !strings.HasPrefix(strings.ToUpper(value), "POINT") {
		return Point{}, meteo.ErrBadParameter.Withf("invalid WKT point %q", wkt)
	}
	value = strings.TrimSpace(value[len("POINT"):])
	if !strings.HasPrefix(value, "(") || !strings.HasSuffix(value, ")") {
		return Point{}, meteo.ErrBadParameter.Withf("invalid WKT point %q", wkt)
	}

	// Coordinates are longitude then latitude, separated by whitespace
	fields := strings.Fields(value[1 : len(value)-1])
	if len(fields) != 2 {
		return Point{}, meteo.ErrBadParameter.Withf("invalid WKT point %q", wkt)
	}
	lng, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, meteo.ErrBadParameter.Withf("invalid longitude %q", fields[0])
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, meteo.ErrBadParameter.Withf("invalid latitude %q", fields[1])
	}
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return Point{}, meteo.ErrBadParameter.Withf("coordinates out of range in %q", wkt)
	}

	return Point{Longitude: lng, Latitude: lat}, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

// WKT returns the well-known-text form of the point
func (p Point) WKT() string {
	return fmt.Sprintf("POINT(%s %s)",
		strconv.FormatFloat(p.Longitude, 'f', -1, 64),
		strconv.FormatFloat(p.Latitude, 'f', -1, 64),
	)
}

func (p Point) String() string {
	return p.WKT()
}
