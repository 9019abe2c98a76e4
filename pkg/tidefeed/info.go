package tidefeed

import (
	"fmt"
	"time"
)

const fetchedAtLayout = "02.01.2006 15:04:05"

var germanWeekdays = [...]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."}

// TidesInfo is the tide record of one location and day. It is built once per
// feed and never changed afterwards.
type TidesInfo struct {
	LocationID   string
	LocationName string
	// Date is midnight of the requested day in the observer's zone.
	Date time.Time

	HighTide1, HighTide2 TideEvent
	LowTide1, LowTide2   TideEvent

	// FetchedAt is when the record was built, not a time from the feed.
	FetchedAt time.Time
}

// HighTides renders both high tide slots through format, which takes two %s
// verbs, e.g. "%s / %s".
func (ti TidesInfo) HighTides(format string) string {
	return fmt.Sprintf(format, ti.HighTide1, ti.HighTide2)
}

// LowTides is HighTides for the low tide slots.
func (ti TidesInfo) LowTides(format string) string {
	return fmt.Sprintf(format, ti.LowTide1, ti.LowTide2)
}

// DateKey returns Date as yyyy-MM-dd.
func (ti TidesInfo) DateKey() string {
	return ti.Date.Format(dateLayout)
}

// DateLabel renders Date the way the widget header shows it, e.g.
// "Di. 02.08.22".
func (ti TidesInfo) DateLabel() string {
	return germanWeekdays[ti.Date.Weekday()] + " " + ti.Date.Format("02.01.06")
}

func (ti TidesInfo) FetchedAtLabel() string {
	return ti.FetchedAt.Format(fetchedAtLayout)
}

func (ti TidesInfo) String() string {
	return fmt.Sprintf("{location: %s (%s), date: %s, high: %s, low: %s, fetched: %s}",
		ti.LocationName, ti.LocationID, ti.DateKey(),
		ti.HighTides("%s / %s"), ti.LowTides("%s / %s"),
		ti.FetchedAt.Format(time.RFC3339))
}
