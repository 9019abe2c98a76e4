package tidefeed

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLocationsCatalog(t *testing.T) {
	raw := readFeed(t, "locations.txt")
	got, err := ParseLocationsCatalog(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Location{
		{ID: "631P", Name: "Amrum Hafen"},
		{ID: "675P", Name: "Husum"},
		{ID: "750P", Name: "Büsum"},
		{ID: "510P", Name: "Helgoland Binnenhafen"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog differs (-want,+got):\n%s", diff)
	}

	// Writing the catalog back yields the same text.
	if diff := cmp.Diff(raw, FormatLocationsCatalog(got)); diff != "" {
		t.Errorf("round trip differs (-want,+got):\n%s", diff)
	}
}

func TestParseLocationsCatalogEmpty(t *testing.T) {
	for _, raw := range []string{"", "\n", "\n\n"} {
		got, err := ParseLocationsCatalog(raw)
		if !errors.Is(err, ErrInvalidCatalogLine) {
			t.Errorf("ParseLocationsCatalog(%q) = %v, %v; want %v", raw, got, err, ErrInvalidCatalogLine)
		}
	}
}

func TestParseLocationsCatalogErrors(t *testing.T) {
	table := []struct {
		name     string
		input    string
		wantLine int
		wantText string
	}{
		{"no separator", "Amrum Hafen;631P\nHusum\n", 2, "Husum"},
		{"empty id", "Husum;\n", 1, "Husum;"},
		{"blank id", "Husum; \n", 1, "Husum; "},
		{"blank line", "Amrum Hafen;631P\n\nHusum;675P\n", 2, ""},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLocationsCatalog(tc.input)
			if !errors.Is(err, ErrInvalidCatalogLine) {
				t.Fatalf("got error %v, want %v", err, ErrInvalidCatalogLine)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if perr.Line != tc.wantLine || perr.Text != tc.wantText {
				t.Errorf("got line %d %q, want %d %q", perr.Line, perr.Text, tc.wantLine, tc.wantText)
			}
		})
	}
}

func TestLocationEqual(t *testing.T) {
	a := Location{ID: "631P", Name: "Amrum"}
	b := Location{ID: "631P", Name: "Amrum Hafen"}
	if !a.Equal(b) {
		t.Errorf("locations with the same id should be equal")
	}
	if a.Equal(Location{ID: "675P", Name: "Amrum"}) {
		t.Errorf("locations with different ids should differ")
	}
}
