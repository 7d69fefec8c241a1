package naver

import "strconv"

// The local search API has shipped two coordinate encodings over time:
// WGS84 latitude/longitude scaled by 10^7 (large-magnitude integers, current
// responses) and legacy projected TM128 values (smaller magnitude). The
// legacy branch uses a fitted linear approximation that is only accurate
// enough for radius filtering around the metro area, not a geodetic
// transform.

// wgs84ScaleThreshold separates scaled-WGS84 mapx values from legacy ones.
const wgs84ScaleThreshold = 1000000

// Serviceable-country bounding box for sanity checking converted coordinates.
const (
	minLat = 33.0
	maxLat = 39.5
	minLng = 124.0
	maxLng = 132.0
)

// NormalizeCoords converts a vendor mapx/mapy pair into latitude/longitude.
// ok is false for missing, non-numeric, or implausible inputs; callers fall
// back to the request center so the candidate is never dropped.
func NormalizeCoords(mapx, mapy string) (lat, lng float64, ok bool) {
	x, errX := strconv.ParseInt(mapx, 10, 64)
	y, errY := strconv.ParseInt(mapy, 10, 64)
	if errX != nil || errY != nil || x <= 0 || y <= 0 {
		return 0, 0, false
	}

	if x > wgs84ScaleThreshold {
		lng = float64(x) / 1e7
		lat = float64(y) / 1e7
	} else {
		lng = 123.76 + float64(x)*1.0e-5
		lat = 32.85 + float64(y)*8.8e-6
	}

	if lat < minLat || lat > maxLat || lng < minLng || lng > maxLng {
		return 0, 0, false
	}

	return lat, lng, true
}
