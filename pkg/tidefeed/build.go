package tidefeed

import (
	"time"
)

// Build parses raw, the feed fetched for location and target (yyyy-MM-dd),
// into a TidesInfo using the local zone and clock.
func Build(location Location, target string, raw string) (TidesInfo, error) {
	return Normalizer{}.Build(location, target, raw)
}

// Build is the package level Build with n's zone and clock. Either all four
// slots are filled or an error is returned.
func (n Normalizer) Build(location Location, target string, raw string) (TidesInfo, error) {
	rows, err := ParseTideFeed(raw)
	if err != nil {
		return TidesInfo{}, err
	}
	day, err := ParseDate(target)
	if err != nil {
		return TidesInfo{}, err
	}

	high1, high2, err := n.Classify(rows, HighTide, target)
	if err != nil {
		return TidesInfo{}, err
	}
	low1, low2, err := n.Classify(rows, LowTide, target)
	if err != nil {
		return TidesInfo{}, err
	}

	return TidesInfo{
		LocationID:   location.ID,
		LocationName: location.Name,
		Date:         time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, n.zone()),
		HighTide1:    high1,
		HighTide2:    high2,
		LowTide1:     low1,
		LowTide2:     low2,
		FetchedAt:    n.now(),
	}, nil
}
