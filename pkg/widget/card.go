package widget

import (
	"fmt"

	"github.com/spencer-p/tidewidget/pkg/sunset"
	"github.com/spencer-p/tidewidget/pkg/tidefeed"
)

const slotsFormat = "%s / %s"

// Card is the display form of a TidesInfo.
type Card struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Date         string `json:"date"`
	DateLabel    string `json:"date_label"`

	High string `json:"high"`
	Low  string `json:"low"`

	HighTides [2]tidefeed.TideEvent `json:"high_tides"`
	LowTides  [2]tidefeed.TideEvent `json:"low_tides"`

	Sunrise string `json:"sunrise,omitempty"`
	Sunset  string `json:"sunset,omitempty"`

	FetchedAt string `json:"fetched_at"`

	Info     tidefeed.TidesInfo `json:"-"`
	Daylight *sunset.Window     `json:"-"`
}

// Card lays out info for display, with daylight if the service has a Place.
func (s *Service) Card(info tidefeed.TidesInfo) Card {
	c := Card{
		LocationID:   info.LocationID,
		LocationName: info.LocationName,
		Date:         info.DateKey(),
		DateLabel:    info.DateLabel(),
		High:         info.HighTides(slotsFormat),
		Low:          info.LowTides(slotsFormat),
		HighTides:    [2]tidefeed.TideEvent{info.HighTide1, info.HighTide2},
		LowTides:     [2]tidefeed.TideEvent{info.LowTide1, info.LowTide2},
		FetchedAt:    info.FetchedAtLabel(),
		Info:         info,
	}
	if s.Place != nil {
		if w, ok := sunset.Daylight(info.Date, *s.Place); ok {
			c.Daylight = &w
			c.Sunrise = w.Sunrise.Format("15:04")
			c.Sunset = w.Sunset.Format("15:04")
		}
	}
	return c
}

func (c Card) String() string {
	return fmt.Sprintf("High: %s\nLow: %s", c.High, c.Low)
}
