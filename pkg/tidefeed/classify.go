package tidefeed

// slots is the fold state while assigning rows of one category.
type slots struct {
	rows [2]Row
	n    int
}

func (s slots) add(row Row) slots {
	// Feeds do not report more than two tides per category and day. Extra
	// rows are dropped.
	if s.n < len(s.rows) {
		s.rows[s.n] = row
		s.n++
	}
	return s
}

// Classify assigns the rows of one category to the two slots of the target
// day. A row belongs to the day when its own date label equals target, before
// any zone conversion.
//
//	matching rows  slot 1    slot 2
//	0              Absent    Absent
//	1              Present   Shifted
//	2 or more      Present   Present
//
// With a single row the second tide is assumed to have been pushed across
// midnight by the conversion. Rows of the neighbouring day are not consulted.
func (n Normalizer) Classify(rows Rows, cat Category, target string) (first, second TideEvent, err error) {
	var s slots
	for _, row := range rows {
		if row.Category == cat && row.Date == target {
			s = s.add(row)
		}
	}

	switch s.n {
	case 0:
		return TideEvent{}, TideEvent{}, nil
	case 1:
		t, err := n.ToLocal(s.rows[0].Date, s.rows[0].Clock)
		if err != nil {
			return TideEvent{}, TideEvent{}, err
		}
		return PresentAt(t), ShiftedEvent(), nil
	default:
		t1, err := n.ToLocal(s.rows[0].Date, s.rows[0].Clock)
		if err != nil {
			return TideEvent{}, TideEvent{}, err
		}
		t2, err := n.ToLocal(s.rows[1].Date, s.rows[1].Clock)
		if err != nil {
			return TideEvent{}, TideEvent{}, err
		}
		return PresentAt(t1), PresentAt(t2), nil
	}
}
