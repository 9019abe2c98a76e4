package visualize

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spencer-p/tidewidget/pkg/sunset"
	"github.com/spencer-p/tidewidget/pkg/tidefeed"
)

func TestTimeline(t *testing.T) {
	raw := "STARTDATA+\n" +
		"2022-08-02; 6:00;H\n" +
		"2022-08-02;12:00;N\n" +
		"2022-08-02;18:00;H\n" +
		"ENDDATA+\n" +
		"Pegel/Date 631P at 2022-08-02\n"
	info, err := tidefeed.Normalizer{Zone: tidefeed.Source}.Build(
		tidefeed.Location{ID: "631P", Name: "Amrum Hafen"}, "2022-08-02", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day := info.Date
	w := &sunset.Window{Sunrise: day.Add(5 * time.Hour), Sunset: day.Add(21 * time.Hour)}

	var buf bytes.Buffer
	n, err := NewTimeline(info, w).Encode(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	svg := buf.String()
	for _, want := range []string{
		// 06:00 is a quarter of the way along.
		`<rect class="high" fill="skyblue" x="298" y="10"`,
		`<rect class="high" fill="skyblue" x="898" y="10"`,
		`<rect class="low" fill="#e9c46a" x="598" y="70"`,
		`<rect class="daytime" fill="lightyellow" x="250" y="0" width="800"`,
		`>06:00</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg is missing %q:\n%s", want, svg)
		}
	}
	// Slot 2 of the low tides is shifted and has no marker.
	if got := strings.Count(svg, `class="low"`); got != 2 {
		t.Errorf("got %d low tide elements, want 2", got)
	}
}
