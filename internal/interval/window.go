package interval

import "time"

// DayWindow returns the scheduling window for the given calendar date. When the
// date is today the window opens at now, so free slots are never offered in the
// past; otherwise it opens at midnight. The window always closes at 23:59:59.999
// of the date. All boundaries are computed in now's location.
func DayWindow(date time.Time, now time.Time) Interval {
	loc := now.Location()
	day := date.In(loc)

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999000000, loc)

	if SameDay(day, now) && now.After(start) {
		start = now
	}

	return Interval{Start: start, End: end}
}

// SameDay reports whether two instants fall on the same calendar date in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
