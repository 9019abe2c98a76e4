package tidefeed

import (
	"fmt"
	"strings"
)

// The feed wraps its data rows in one header line and two trailer lines.
const (
	headerLines  = 1
	trailerLines = 2
	minFeedLines = headerLines + trailerLines + 1
	minColumns   = 3
)

// Category is high or low water, coded "H" or "N" in the feed.
type Category uint8

const (
	HighTide Category = iota
	LowTide
)

func (c Category) Valid() bool {
	return c == HighTide || c == LowTide
}

func (c Category) String() string {
	switch c {
	case HighTide:
		return "H"
	case LowTide:
		return "N"
	default:
		return "invalid"
	}
}

func parseCategory(code string) (Category, bool) {
	switch code {
	case "H":
		return HighTide, true
	case "N":
		return LowTide, true
	default:
		return 0, false
	}
}

// Row is one data line of a tide feed. Date and Clock are kept as the
// upstream wrote them, minus surrounding whitespace.
type Row struct {
	Date     string
	Clock    string
	Category Category
}

// Rows is a feed's data lines in file order.
type Rows []Row

// ParseTideFeed splits a raw feed into its data rows. It fails on the first
// structural defect and returns no rows in that case.
//
// An example feed:
//
//	STARTDATA+
//	2022-07-07; 0:38;N
//	2022-07-07; 6:55;H
//	2022-07-07;12:39;N
//	2022-07-07;19:04;H
//	ENDDATA+
//	Pegel/Date 510P at 2022-07-07
func ParseTideFeed(raw string) (Rows, error) {
	lines := split(raw, "\n")
	if len(lines) < minFeedLines {
		return nil, &ParseError{
			Err: fmt.Errorf("got %d, want at least %d: %w", len(lines), minFeedLines, ErrTooFewLines),
		}
	}

	body := lines[headerLines : len(lines)-trailerLines]
	rows := make(Rows, 0, len(body))
	for i, line := range body {
		lineno := headerLines + i + 1
		cols := split(line, ";")
		if len(cols) < minColumns {
			return nil, &ParseError{Line: lineno, Text: line, Err: ErrTooFewColumns}
		}
		code := strings.TrimSpace(cols[2])
		cat, ok := parseCategory(code)
		if !ok {
			return nil, &ParseError{
				Line: lineno,
				Text: line,
				Err:  fmt.Errorf("%q: %w", code, ErrUnknownCategory),
			}
		}
		rows = append(rows, Row{
			Date:     strings.TrimSpace(cols[0]),
			Clock:    strings.TrimSpace(cols[1]),
			Category: cat,
		})
	}
	return rows, nil
}

// split is strings.Split with trailing empty fields dropped, so a final
// newline or separator does not count as a field of its own.
func split(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
