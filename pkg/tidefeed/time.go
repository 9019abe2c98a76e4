package tidefeed

import (
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Source is the zone the upstream feed reports its times in. It is a fixed
// offset and never switches to summer time.
var Source = time.FixedZone("UTC+1", 60*60)

// Normalizer converts feed times into the observer's wall clock. The zero
// value uses time.Local and time.Now.
type Normalizer struct {
	// Zone is the observer's zone.
	Zone *time.Location
	// Now reports the current instant.
	Now func() time.Time
}

func (n Normalizer) zone() *time.Location {
	if n.Zone == nil {
		return time.Local
	}
	return n.Zone
}

func (n Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now().In(n.zone())
	}
	return n.Now().In(n.zone())
}

// ToLocal interprets date and clock as a wall clock reading in Source and
// returns the same instant in the observer's zone. The result may fall on the
// day before or after date.
//
// clock must be H:mm or HH:mm on a 24 hour clock.
func (n Normalizer) ToLocal(date, clock string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	c, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, &ParseError{Text: clock, Err: ErrMalformedTime}
	}
	src := time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, Source)
	return src.In(n.zone()), nil
}

// DateKey returns today's date in the observer's zone as yyyy-MM-dd, the form
// the upstream expects in requests.
func (n Normalizer) DateKey() string {
	return n.now().Format(dateLayout)
}

// FormatClock renders t as zero padded HH:mm.
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// ParseDate parses a yyyy-MM-dd calendar date. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Text: s, Err: ErrInvalidDate}
	}
	return t, nil
}
