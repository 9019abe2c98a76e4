// Package widget fetches and builds the tide card a widget shows for one
// location and day.
package widget

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spencer-p/tidewidget/pkg/metrics"
	"github.com/spencer-p/tidewidget/pkg/sunset"
	"github.com/spencer-p/tidewidget/pkg/tidefeed"
	"github.com/spencer-p/tidewidget/pkg/timetricks"
)

// Feeder supplies raw upstream text. *fetch.Client implements it.
type Feeder interface {
	TideFeed(ctx context.Context, locationID, date string) (string, error)
	LocationsCatalog(ctx context.Context) (string, error)
}

type Service struct {
	Feeds      Feeder
	Normalizer tidefeed.Normalizer
	// Place is where daylight is computed. Nil leaves it out.
	Place *sunset.Place
}

// Tides fetches and parses the tides of loc on date (yyyy-MM-dd).
func (s *Service) Tides(ctx context.Context, loc tidefeed.Location, date string) (tidefeed.TidesInfo, error) {
	if _, err := tidefeed.ParseDate(date); err != nil {
		return tidefeed.TidesInfo{}, err
	}
	raw, err := s.Feeds.TideFeed(ctx, loc.ID, date)
	if err != nil {
		return tidefeed.TidesInfo{}, err
	}
	info, err := s.Normalizer.Build(loc, date, raw)
	if err != nil {
		metrics.CountFeedError(ErrorKind(err))
		log.Printf("Rejected tide feed of %s on %s: %v", loc.ID, date, err)
		return tidefeed.TidesInfo{}, fmt.Errorf("tides of %s on %s: %w", loc.ID, date, err)
	}
	flagCrossedDays(info)
	return info, nil
}

// flagCrossedDays logs tides the zone conversion moved off the day their feed
// rows were labelled with. They are still shown in their slot.
func flagCrossedDays(info tidefeed.TidesInfo) {
	for _, ev := range []tidefeed.TideEvent{info.HighTide1, info.HighTide2, info.LowTide1, info.LowTide2} {
		if ev.Kind == tidefeed.Present && !timetricks.SameDay(ev.Time, info.Date) {
			log.Printf("Tide of %s labelled %s falls on %s locally",
				info.LocationID, info.DateKey(), ev.Time.Format(time.DateTime))
		}
	}
}

// Today is Tides for the observer's current date.
func (s *Service) Today(ctx context.Context, loc tidefeed.Location) (tidefeed.TidesInfo, error) {
	return s.Tides(ctx, loc, s.Normalizer.DateKey())
}

// Locations fetches and parses the locations catalog.
func (s *Service) Locations(ctx context.Context) ([]tidefeed.Location, error) {
	raw, err := s.Feeds.LocationsCatalog(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := tidefeed.ParseLocationsCatalog(raw)
	if err != nil {
		metrics.CountFeedError(ErrorKind(err))
		log.Printf("Rejected locations catalog: %v", err)
		return nil, fmt.Errorf("locations catalog: %w", err)
	}
	return locations, nil
}

// Lookup finds the catalog entry for id, so callers that only know an ID get
// the location's name.
func (s *Service) Lookup(ctx context.Context, id string) (tidefeed.Location, error) {
	locations, err := s.Locations(ctx)
	if err != nil {
		return tidefeed.Location{}, err
	}
	want := tidefeed.Location{ID: id}
	for _, loc := range locations {
		if loc.Equal(want) {
			return loc, nil
		}
	}
	return tidefeed.Location{}, fmt.Errorf("location %q: %w", id, ErrUnknownLocation)
}

var ErrUnknownLocation = errors.New("not in catalog")

// ErrorKind names the defect behind a parse error for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, tidefeed.ErrTooFewLines):
		return "too_few_lines"
	case errors.Is(err, tidefeed.ErrTooFewColumns):
		return "too_few_columns"
	case errors.Is(err, tidefeed.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, tidefeed.ErrMalformedTime):
		return "malformed_time"
	case errors.Is(err, tidefeed.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, tidefeed.ErrInvalidCatalogLine):
		return "invalid_catalog_line"
	default:
		return "other"
	}
}
