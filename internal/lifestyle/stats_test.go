package lifestyle

import (
	"math"
	"testing"
	"time"
)

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return value
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want float64
	}{
		{name: "perfect positive", xs: []float64{1, 2, 3, 4}, ys: []float64{2, 4, 6, 8}, want: 1},
		{name: "perfect negative", xs: []float64{1, 2, 3}, ys: []float64{9, 6, 3}, want: -1},
		{name: "constant series", xs: []float64{5, 5, 5}, ys: []float64{1, 1, 1}, want: 0},
		{name: "one constant series", xs: []float64{1, 2, 3}, ys: []float64{1, 1, 1}, want: 0},
		{name: "length mismatch", xs: []float64{1, 2, 3}, ys: []float64{1, 2}, want: 0},
		{name: "single sample", xs: []float64{1}, ys: []float64{2}, want: 0},
		{name: "empty", xs: nil, ys: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pearson(tt.xs, tt.ys)
			if math.IsNaN(got) || math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Pearson() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPearsonStaysWithinBounds(t *testing.T) {
	xs := []float64{3, 7, 1, 9, 4, 4, 8}
	ys := []float64{2, 5, 1, 7, 6, 3, 8}

	got := Pearson(xs, ys)
	if got < -1 || got > 1 {
		t.Fatalf("expected correlation in [-1,1], got %v", got)
	}
	if reverse := Pearson(ys, xs); reverse != got {
		t.Fatalf("expected symmetric correlation, got %v and %v", got, reverse)
	}
}
