package interval

import "time"

const (
	// DisplayLayout renders an instant for human-readable slot listings.
	DisplayLayout = "Mon, Jan 2, 2006, 03:04 PM"
	// FormValueLayout renders an instant as a local datetime string suitable
	// for round-tripping into a rescheduling form. No timezone offset is
	// included; the service runs in a single implicit location.
	FormValueLayout = "2006-01-02T15:04"
)

// Slot is a free interval together with its two presentation renderings. Both
// renderings derive from the same pair of instants.
type Slot struct {
	Start    time.Time
	End      time.Time
	Label    string
	EndLabel string
	StartISO string
	EndISO   string
}

// PresentSlots renders free intervals for API responses.
func PresentSlots(free []Interval) []Slot {
	if len(free) == 0 {
		return nil
	}
	slots := make([]Slot, 0, len(free))
	for _, iv := range free {
		slots = append(slots, Slot{
			Start:    iv.Start,
			End:      iv.End,
			Label:    iv.Start.Format(DisplayLayout),
			EndLabel: iv.End.Format(DisplayLayout),
			StartISO: iv.Start.Format(FormValueLayout),
			EndISO:   iv.End.Format(FormValueLayout),
		})
	}
	return slots
}
