package visualize

import (
	"fmt"
	"io"
	"time"

	"github.com/spencer-p/tidewidget/pkg/sunset"
	"github.com/spencer-p/tidewidget/pkg/tidefeed"
	"github.com/spencer-p/tidewidget/pkg/timetricks"
)

const (
	width  = 1200
	height = 120

	highMarkY = 10
	lowMarkY  = 70
)

// Timeline draws one day as an SVG strip with daylight shaded and a marker
// for every tide that has a clock time.
type Timeline struct {
	info     tidefeed.TidesInfo
	daylight *sunset.Window
}

func NewTimeline(info tidefeed.TidesInfo, daylight *sunset.Window) *Timeline {
	return &Timeline{info: info, daylight: daylight}
}

func (img *Timeline) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil && err == nil {
			err = nexterr
		}
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height))

	if img.daylight != nil {
		risex := img.timeToX(img.daylight.Sunrise)
		setx := img.timeToX(img.daylight.Sunset)
		io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
			0, 0, risex, height))
		io(fmt.Fprintf(w, `<rect class="daytime" fill="lightyellow" x="%d" y="%d" width="%d" height="%d"/>`,
			risex, 0, setx-risex, height))
		io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
			setx, 0, width-setx, height))
	}

	// Hour ticks every three hours.
	start := timetricks.TrimClock(img.info.Date)
	for h := 3; h < 24; h += 3 {
		x := img.timeToX(start.Add(time.Duration(h) * time.Hour))
		io(fmt.Fprintf(w, `<line class="hour" stroke="#ccc" x1="%d" y1="%d" x2="%d" y2="%d"/>`,
			x, 0, x, height))
	}

	for _, ev := range []tidefeed.TideEvent{img.info.HighTide1, img.info.HighTide2} {
		img.marker(io, w, ev, "high", "skyblue", highMarkY)
	}
	for _, ev := range []tidefeed.TideEvent{img.info.LowTide1, img.info.LowTide2} {
		img.marker(io, w, ev, "low", "#e9c46a", lowMarkY)
	}

	// Insert date of this graph as unix.
	io(fmt.Fprintf(w, `<text class="unixtime" visibility="hidden">%d</text>`, start.Unix()))

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

// marker draws a bar from y down to the bottom edge at the tide's time.
// Tides that were converted onto another day are off the strip.
func (img *Timeline) marker(emit func(int, error), w io.Writer, ev tidefeed.TideEvent, class, fill string, y int) {
	if ev.Kind != tidefeed.Present {
		return
	}
	x := img.timeToX(ev.Time)
	if x < 0 || x > width {
		return
	}
	emit(fmt.Fprintf(w, `<rect class="%s" fill="%s" x="%d" y="%d" width="%d" height="%d"/>`,
		class, fill, x-2, y, 4, height-y))
	emit(fmt.Fprintf(w, `<text class="%s" x="%d" y="%d" font-size="14">%s</text>`,
		class, x+4, y+14, tidefeed.FormatClock(ev.Time)))
}

// timeToX places t on the strip, scaled to the real length of the day.
func (img *Timeline) timeToX(t time.Time) int {
	start := timetricks.TrimClock(img.info.Date)
	day := timetricks.DayLength(img.info.Date)
	return int(t.Sub(start) * width / day)
}
