package geo

import (
	"math"
	"math/rand"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want, tolerance        float64
	}{
		{"same point", -6.9175, 107.6191, -6.9175, 107.6191, 0, 1e-9},
		{"one degree of longitude on the equator", 0, 0, 0, 1, 111.195, 0.01},
		{"one degree of latitude", 10, 20, 11, 20, 111.195, 0.01},
		{"Bandung to Jakarta", -6.9175, 107.6191, -6.2088, 106.8456, 116.0, 3},
		{"antipodal", 0, 0, 0, 180, math.Pi * EarthRadiusKm, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("DistanceKm() = %v, want %v (+/- %v)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	point := func() (float64, float64) {
		return rng.Float64()*180 - 90, rng.Float64()*360 - 180
	}

	for i := 0; i < 500; i++ {
		aLat, aLng := point()
		bLat, bLng := point()
		cLat, cLng := point()

		if d := DistanceKm(aLat, aLng, aLat, aLng); d != 0 {
			t.Fatalf("identity: got %v for (%v,%v)", d, aLat, aLng)
		}

		ab := DistanceKm(aLat, aLng, bLat, bLng)
		ba := DistanceKm(bLat, bLng, aLat, aLng)
		if ab < 0 || math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("symmetry: ab=%v ba=%v", ab, ba)
		}

		bc := DistanceKm(bLat, bLng, cLat, cLng)
		ac := DistanceKm(aLat, aLng, cLat, cLng)
		if ac > ab+bc+1e-6 {
			t.Fatalf("triangle inequality: ac=%v > ab+bc=%v", ac, ab+bc)
		}
	}
}

func BenchmarkDistanceKm(b *testing.B) {
	for i := 0; i < b.N; i++ {
		DistanceKm(-6.9175, 107.6191, -6.8915, 107.6107)
	}
}
