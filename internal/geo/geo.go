package geo

import (
	"fmt"
	"math"
)

// earthRadiusM is the mean Earth radius in meters.
const earthRadiusM = 6371000.0

// walkingSpeedMPerMin is the assumed average walking speed (4.5 km/h).
const walkingSpeedMPerMin = 75.0

// Distance returns the great-circle distance in meters between two
// latitude/longitude points, using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusM * c
}

// WithinRadius reports whether (lat, lng) lies within radiusM meters of the
// center point.
func WithinRadius(lat, lng, centerLat, centerLng, radiusM float64) bool {
	return Distance(centerLat, centerLng, lat, lng) <= radiusM
}

// FormatDistance formats a distance in meters for display: "350m" below one
// kilometer, "1.5km" above.
func FormatDistance(distanceM float64) string {
	if distanceM < 1000 {
		return fmt.Sprintf("%dm", int(distanceM))
	}
	return fmt.Sprintf("%.1fkm", distanceM/1000)
}

// WalkingTime estimates walking time for a distance in meters.
func WalkingTime(distanceM float64) string {
	minutes := distanceM / walkingSpeedMPerMin
	if minutes < 1 {
		return "1분 미만"
	}
	return fmt.Sprintf("도보 %d분", int(minutes))
}
