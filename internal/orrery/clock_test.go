package orrery

import (
	"math"
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 900_000_000, time.UTC)

	tests := []struct {
		name    string
		from    time.Time
		seconds float64
		want    time.Time
		ok      bool
	}{
		{"whole seconds", start, 60, start.Add(time.Minute), true},
		{"carry nanoseconds", start, 0.2, start.Add(200 * time.Millisecond), true},
		{"backwards", start, -86400, start.Add(-24 * time.Hour), true},
		{"century", start, 36525 * 86400, start.Add(36525 * 24 * time.Hour), true},
		{"past max", MaxTime, 1, MaxTime, false},
		{"before min", MinTime, -1, MinTime, false},
		{"huge", start, 1e300, start, false},
		{"nan", start, math.NaN(), start, false},
		{"inf", start, math.Inf(-1), start, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := advance(tt.from, tt.seconds)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
