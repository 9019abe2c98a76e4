// Package timetricks has calendar helpers that respect the zone of the times
// they are given.
package timetricks

import (
	"time"
)

const dayFormat = "20060102"

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.In(t.Location()).Format(dayFormat)
}

// TrimClock returns midnight at the start of t's day in t's zone. Unlike
// subtracting the clock reading, this stays correct on days with a daylight
// saving switch.
func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayLength is the length of t's day, 23 or 25 hours on switch days.
func DayLength(t time.Time) time.Duration {
	start := TrimClock(t)
	return start.AddDate(0, 0, 1).Sub(start)
}

// UniqueDay returns a string representation of t that is unique by the day.
// For instance, two seperate times on the same calendar day return identical
// strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}

// Relative names t's day relative to now: "Heute", "Morgen", "Gestern", or
// the plain date for other days.
func Relative(t, now time.Time) string {
	today := TrimClock(now)
	tday := TrimClock(t.In(now.Location()))
	switch {
	case tday.Equal(today):
		return "Heute"
	case tday.Equal(today.AddDate(0, 0, 1)):
		return "Morgen"
	case tday.Equal(today.AddDate(0, 0, -1)):
		return "Gestern"
	}
	return tday.Format("02.01.2006")
}
