// Package geo projects procedure geometry for the map renderer.
//
// Positions arrive as WGS84 degrees (EPSG:4326). The map draws in web
// mercator (EPSG:3857), so everything leaving this package is projected.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/flightdeck/companion/pkg/core"
)

// MaxMercatorLatitude is the latitude where web mercator is cut off.
const MaxMercatorLatitude = 85.05112878

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

var to3857 = wgs84.EPSG().Transform(4326, 3857)

// ParseLatLon parses "lat,lon" in decimal degrees.
func ParseLatLon(s string) (core.LatLon, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return core.LatLon{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return core.LatLon{}, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return core.LatLon{}, ErrInvalidCoordinates
	}
	ll := core.LatLon{Latitude: lat, Longitude: lon}
	if !valid(ll) {
		return core.LatLon{}, ErrInvalidCoordinates
	}
	return ll, nil
}

func valid(ll core.LatLon) bool {
	if math.IsNaN(ll.Latitude) || math.IsNaN(ll.Longitude) {
		return false
	}
	return math.Abs(ll.Latitude) <= 90 && math.Abs(ll.Longitude) <= 180
}

// Coords3857From4326 projects a longitude and latitude to a web mercator
// point. Latitudes beyond MaxMercatorLatitude are clamped to it.
func Coords3857From4326(
	longitude float64,
	latitude float64,
) (
	point geom.Point,
	err error,
) {
	x, y, err := project(core.LatLon{Latitude: latitude, Longitude: longitude})
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXY), err
	}
	point, err = geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
		},
	)
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXY), fmt.Errorf("error creating point: %w", err)
	}
	return point, nil
}

func project(ll core.LatLon) (x, y float64, err error) {
	if !valid(ll) {
		return 0, 0, ErrInvalidCoordinates
	}
	lat := math.Max(-MaxMercatorLatitude, math.Min(MaxMercatorLatitude, ll.Latitude))
	x, y, _ = to3857(ll.Longitude, lat, 0)
	return x, y, nil
}
