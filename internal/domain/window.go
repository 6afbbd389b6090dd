package domain

import "time"

// TimeWindow is a closed time interval.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window is well-formed (end strictly after start).
func (w TimeWindow) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.End.After(w.Start)
}

// Overlaps reports whether two windows share any instant. Comparisons are
// inclusive: a trip ending at 10:00 conflicts with one starting at 10:00.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return !w.Start.After(other.End) && !other.Start.After(w.End)
}
