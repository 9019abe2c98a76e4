package tidefeed

import (
	"encoding/json"
	"time"
)

// Placeholders shown instead of a clock time.
const (
	ShiftedGlyph = " "
	AbsentGlyph  = "*"
)

// Kind tells which of the three states a TideEvent is in.
type Kind uint8

const (
	// Absent means the harbour has no tide of this category on the day,
	// usually because it runs dry.
	Absent Kind = iota
	// Present means the tide happens at TideEvent.Time.
	Present
	// Shifted means the tide exists but its local time falls on the
	// neighbouring day. The instant itself is not known.
	Shifted
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Shifted:
		return "shifted"
	default:
		return "invalid"
	}
}

// TideEvent fills one slot of a TidesInfo. The zero value is Absent.
type TideEvent struct {
	Kind Kind
	// Time is the local wall clock instant of a Present tide and zero
	// otherwise.
	Time time.Time
}

// PresentAt returns a Present event at t.
func PresentAt(t time.Time) TideEvent {
	return TideEvent{Kind: Present, Time: t}
}

// ShiftedEvent returns an event for a tide pushed onto the adjacent day.
func ShiftedEvent() TideEvent {
	return TideEvent{Kind: Shifted}
}

// Format renders a Present event as HH:mm and the others with the given
// placeholders.
func (e TideEvent) Format(shifted, absent string) string {
	switch e.Kind {
	case Present:
		return FormatClock(e.Time)
	case Shifted:
		return shifted
	case Absent:
		return absent
	default:
		return "invalid"
	}
}

func (e TideEvent) String() string {
	return e.Format(ShiftedGlyph, AbsentGlyph)
}

type tideEventJSON struct {
	Kind    string     `json:"kind"`
	Clock   string     `json:"clock,omitempty"`
	Instant *time.Time `json:"instant,omitempty"`
}

func (e TideEvent) MarshalJSON() ([]byte, error) {
	out := tideEventJSON{Kind: e.Kind.String()}
	if e.Kind == Present {
		t := e.Time
		out.Clock = FormatClock(t)
		out.Instant = &t
	}
	return json.Marshal(out)
}
