// Package geo resolves coordinates out of free-text cell-site descriptors and
// measures great-circle distance between them.
package geo

import (
	"regexp"
	"strconv"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Band is the plausible latitude/longitude range for the deployment region.
// It disambiguates which of two embedded decimals is latitude vs longitude,
// so the engine stays redeployable outside one country.
type Band struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

// Contains reports whether (lat, lon) falls inside the band
func (b Band) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

// Point is a resolved coordinate pair
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// decimalRe matches a DD.DDDD+ style decimal: one or more integer digits and
// at least four fractional digits. Cell-site text embeds coordinates at this
// precision; shorter decimals are street numbers, sector ids and similar noise.
var decimalRe = regexp.MustCompile(`\d{1,3}\.\d{4,}`)

// ParseLatLon extracts a coordinate pair from a raw cell-site descriptor.
// The first two qualifying decimals are tried in both orderings and the one
// that falls inside the band wins; lat-first is preferred when both fit.
// ok is false when the text holds no resolvable pair.
func ParseLatLon(raw string, band Band) (Point, bool) {
	m := decimalRe.FindAllString(raw, 2)
	if len(m) < 2 {
		return Point{}, false
	}

	a, err := strconv.ParseFloat(m[0], 64)
	if err != nil {
		return Point{}, false
	}
	b, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Point{}, false
	}

	if band.Contains(a, b) {
		return Point{Lat: a, Lon: b}, true
	}
	if band.Contains(b, a) {
		return Point{Lat: b, Lon: a}, true
	}
	return Point{}, false
}

// DistanceKm returns the haversine great-circle distance between two points
// in kilometers.
func DistanceKm(p1, p2 Point) float64 {
	a := orb.Point{p1.Lon, p1.Lat}
	b := orb.Point{p2.Lon, p2.Lat}
	return orbgeo.DistanceHaversine(a, b) / 1000.0
}
