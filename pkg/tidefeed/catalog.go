package tidefeed

import (
	"strings"
)

// Location is a harbour known to the upstream. Two locations are the same
// when their IDs match.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (l Location) Equal(other Location) bool {
	return l.ID == other.ID
}

// ParseLocationsCatalog parses the catalog feed, one "name;id" pair per line
// with no header or trailer. Order is preserved. A catalog without entries is
// invalid.
func ParseLocationsCatalog(raw string) ([]Location, error) {
	lines := split(raw, "\n")
	if len(lines) == 0 {
		return nil, &ParseError{Line: 1, Err: ErrInvalidCatalogLine}
	}
	locations := make([]Location, 0, len(lines))
	for i, line := range lines {
		cols := split(line, ";")
		if len(cols) < 2 {
			return nil, &ParseError{Line: i + 1, Text: line, Err: ErrInvalidCatalogLine}
		}
		loc := Location{
			Name: strings.TrimSpace(cols[0]),
			ID:   strings.TrimSpace(cols[1]),
		}
		if loc.ID == "" {
			return nil, &ParseError{Line: i + 1, Text: line, Err: ErrInvalidCatalogLine}
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// FormatLocationsCatalog writes locations back in catalog form.
func FormatLocationsCatalog(locations []Location) string {
	var b strings.Builder
	for _, loc := range locations {
		b.WriteString(loc.Name)
		b.WriteByte(';')
		b.WriteString(loc.ID)
		b.WriteByte('\n')
	}
	return b.String()
}
