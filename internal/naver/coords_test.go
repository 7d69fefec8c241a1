package naver

import "testing"

func TestNormalizeCoordsScaledWGS84(t *testing.T) {
	// mapx=1269873882 encodes lng=126.9873882; sample from a live response.
	lat, lng, ok := NormalizeCoords("1269873882", "375697049")
	if !ok {
		t.Fatal("expected valid coordinates")
	}
	if lng < 126.98 || lng > 126.99 {
		t.Errorf("lng = %v, want ~126.987", lng)
	}
	if lat < 37.56 || lat > 37.58 {
		t.Errorf("lat = %v, want ~37.570", lat)
	}
}

func TestNormalizeCoordsLegacyProjection(t *testing.T) {
	// Legacy magnitude values go through the linear approximation and must
	// land inside the serviceable bounding box.
	lat, lng, ok := NormalizeCoords("320000", "540000")
	if !ok {
		t.Fatal("expected valid coordinates for legacy sample")
	}
	if lat < minLat || lat > maxLat || lng < minLng || lng > maxLng {
		t.Errorf("legacy conversion out of bounding box: lat=%v lng=%v", lat, lng)
	}
}

func TestNormalizeCoordsGarbageInput(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"abc", "def"},
		{"1269873882", ""},
		{"0", "0"},
		{"-5", "100"},
	}
	for _, c := range cases {
		if _, _, ok := NormalizeCoords(c[0], c[1]); ok {
			t.Errorf("NormalizeCoords(%q, %q) should be invalid", c[0], c[1])
		}
	}
}

func TestNormalizeCoordsOutOfBoundingBox(t *testing.T) {
	// Valid numbers, but nowhere near the serviceable country.
	if _, _, ok := NormalizeCoords("101000000", "101000000"); ok {
		t.Error("coordinates far outside the bounding box should be rejected")
	}
}
