// internal/app/system/geo/geo.go

// Package geo holds the spherical-distance math and coordinate validation
// used by the provider matcher.
package geo

import (
	"math"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
)

// earthRadiusMeters is the mean Earth radius for the spherical model.
const earthRadiusMeters = 6371000

// ValidateCoords rejects non-finite or out-of-range coordinates. A missing or
// garbage origin must be a validation error, never a silent empty result.
func ValidateCoords(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return apperr.Validation("origin coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 {
		return apperr.Validation("latitude %v out of range [-90,90]", lat)
	}
	if lng < -180 || lng > 180 {
		return apperr.Validation("longitude %v out of range [-180,180]", lng)
	}
	return nil
}

// Haversine returns the great-circle distance in meters between two points
// on the spherical Earth model.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
