package orrery

import (
	"math"
	"time"
)

// The simulation clock is confined to years 1 through 9999.
var (
	MinTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxTime = time.Date(9999, time.December, 31, 23, 59, 59, 999_999_999, time.UTC)
)

// advance moves t by seconds. It reports false when the result would
// leave [MinTime, MaxTime] or seconds is not finite.
func advance(t time.Time, seconds float64) (time.Time, bool) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return t, false
	}

	target := float64(t.Unix()) + seconds
	if target < float64(MinTime.Unix())-1 || target > float64(MaxTime.Unix())+1 {
		return t, false
	}

	whole, frac := math.Modf(seconds)
	next := time.Unix(t.Unix()+int64(whole), int64(t.Nanosecond())+int64(math.Round(frac*1e9))).UTC()
	if next.Before(MinTime) || next.After(MaxTime) {
		return t, false
	}
	return next, true
}

func inRange(t time.Time) bool {
	return !t.Before(MinTime) && !t.After(MaxTime)
}
