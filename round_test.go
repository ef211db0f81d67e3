package schoolmeal

import "testing"

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2, 2},
		{14.0 / 7, 2},
		{10.0 / 3, 3.3},
		{2.25, 2.2},
		{2.35, 2.4},
		{0.04, 0},
		{123.456, 123.5},
		{1.05, 1.1},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		observed, recommended float64
		want                  string
	}{
		{1000, 2000, "50.0%"},
		{2000, 2000, "100.0%"},
		{823.4, 2000, "41.2%"},
		{291.9, 700, "41.7%"},
		{35.1, 55, "63.8%"},
		{0, 54, "0.0%"},
		{4000, 2000, "200.0%"},
		{11, 2000, "0.5%"},
		{13, 2000, "0.7%"},
		{1, 2000, "0.1%"},
	}
	for _, tt := range tests {
		got := Ratio(tt.observed, tt.recommended)
		if got.String() != tt.want {
			t.Errorf("Ratio(%v, %v) = %q, want %q", tt.observed, tt.recommended, got, tt.want)
		}
	}
	if f := Ratio(1000, 2000).Float64(); f != 50 {
		t.Errorf("Ratio(1000, 2000).Float64() = %v, want 50", f)
	}
}
