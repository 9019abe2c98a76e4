// Package sunset computes daylight at a fixed reference point so tide times
// can be shown against it.
package sunset

import (
	"fmt"
	"time"

	"github.com/spencer-p/tidewidget/pkg/timetricks"

	"github.com/keep94/sunrise"
)

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Lat, Long float64
	Location  *time.Location
}

// Window is one day's daylight.
type Window struct {
	Sunrise time.Time
	Sunset  time.Time
}

// Contains reports whether t is between sunrise and sunset.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Sunrise) && !t.After(w.Sunset)
}

func (w Window) String() string {
	return fmt.Sprintf("%s-%s", w.Sunrise.Format("15:04"), w.Sunset.Format("15:04"))
}

// Daylight returns sunrise and sunset of date's calendar day at place. It
// reports false where the sun does not rise and set that day.
func Daylight(date time.Time, place Place) (Window, bool) {
	day := timetricks.TrimClock(date.In(place.Location)).Add(12 * time.Hour)

	var s sunrise.Sunrise
	s.Around(place.Lat, place.Long, day)

	// The sunrise package is not very clean with its dates; step until the
	// sunrise lands on the day asked for.
	for i := 0; i < 3 && !timetricks.SameDay(day, s.Sunrise()); i++ {
		if s.Sunrise().Before(day) {
			s.AddDays(1)
		} else {
			s.AddDays(-1)
		}
	}
	if !timetricks.SameDay(day, s.Sunrise()) || !s.Sunset().After(s.Sunrise()) {
		return Window{}, false
	}
	return Window{
		Sunrise: s.Sunrise().In(place.Location),
		Sunset:  s.Sunset().In(place.Location),
	}, true
}
