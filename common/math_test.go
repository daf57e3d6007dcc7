package common

import "testing"

func TestLerp(t *testing.T) {
	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", 0, 10, 0, 0},
		{"half", 0, 10, 0.5, 5},
		{"end", 0, 10, 1, 10},
		{"overshoot_clamped", 0, 10, 3, 10},
		{"negative_clamped", 0, 10, -1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Lerp(tc.a, tc.b, tc.t); got != tc.want {
				t.Fatalf("Lerp(%v, %v, %v) = %v, want %v", tc.a, tc.b, tc.t, got, tc.want)
			}
		})
	}
}

func TestSign(t *testing.T) {
	for v, want := range map[float64]float64{-0.3: -1, 0: 0, 2: 1} {
		if got := Sign(v); got != want {
			t.Fatalf("Sign(%v) = %v, want %v", v, got, want)
		}
	}
}
