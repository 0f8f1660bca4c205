package services

import (
	"math"
	"testing"
)

func TestETAMinutes(t *testing.T) {
	tests := []struct {
		km   float64
		want int
	}{
		{0, 3},
		{1.0, 3},
		{2.0, 3},
		{3.0, 5},
		{3.5, 6},
		{4.0, 7},
		{10, 7},
		{math.Inf(1), 7},
		{math.NaN(), 7},
	}

	for _, tt := range tests {
		if got := ETAMinutes(tt.km); got != tt.want {
			t.Fatalf("ETAMinutes(%v): got %d, want %d", tt.km, got, tt.want)
		}
	}
}

func TestETAMinutesAlwaysInRange(t *testing.T) {
	for km := 0.0; km <= 20; km += 0.05 {
		got := ETAMinutes(km)
		if got < MinETAMinutes || got > MaxETAMinutes {
			t.Fatalf("ETAMinutes(%v) = %d out of range", km, got)
		}
	}
}
