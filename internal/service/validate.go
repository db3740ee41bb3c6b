package service

import (
	"math"
	"regexp"
	"time"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// validDate reports whether d parses as a sheet date (2006-01-02).
func validDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

// validClock reports whether t is an HH:MM 24-hour time.
func validClock(t string) bool {
	return clockPattern.MatchString(t)
}

// dateAfterOrEqual reports whether end is on or after start. Callers must
// have validated both dates already.
func dateAfterOrEqual(start, end string) bool {
	s, err1 := time.Parse("2006-01-02", start)
	e, err2 := time.Parse("2006-01-02", end)
	if err1 != nil || err2 != nil {
		return false
	}
	return !e.Before(s)
}

// clockDuration computes end minus start in hours, rounded to 2 decimals.
// Returns 0 or a negative value when end is not after start.
func clockDuration(start, end string) float64 {
	s, err1 := time.Parse("15:04", start)
	e, err2 := time.Parse("15:04", end)
	if err1 != nil || err2 != nil {
		return 0
	}
	minutes := e.Sub(s).Minutes()
	return round2(minutes / 60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
