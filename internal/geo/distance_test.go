package geo

import "testing"

func TestHaversineKm_ZeroDistance(t *testing.T) {
	d := HaversineKm(9.9312, 76.2673, 9.9312, 76.2673)
	if d < 0 || d > 1e-9 {
		t.Fatalf("zero distance expected ~0, got %v", d)
	}
}

func TestHaversineKm_KnownPair(t *testing.T) {
	// Kochi to Thiruvananthapuram is roughly 200 km great-circle.
	d := HaversineKm(9.9312, 76.2673, 8.5241, 76.9366)
	if d < 150 || d > 220 {
		t.Fatalf("Kochi-Trivandrum distance = %v km, want ~170-200", d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := HaversineKm(10, 76, 11, 77)
	b := HaversineKm(11, 77, 10, 76)
	if diff := a - b; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestIsWithinKm(t *testing.T) {
	if !IsWithinKm(10, 76, 10.001, 76.001, 1) {
		t.Fatalf("expected near points within 1 km")
	}
	if IsWithinKm(9.9312, 76.2673, 8.5241, 76.9366, 50) {
		t.Fatalf("expected far cities outside 50 km")
	}
}
