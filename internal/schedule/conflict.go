package schedule

import "weekly-agenda/internal/model"

// Slot is the part of a task that occupies the grid.
type Slot struct {
	Date      string
	StartTime string
	Duration  int
}

// SlotOf extracts the slot of an existing task.
func SlotOf(t model.Task) Slot {
	return Slot{Date: t.Date, StartTime: t.StartTime, Duration: t.Duration}
}

// span returns the half-open [start, end) interval in minutes since midnight.
// Durations beyond a day are capped: every same-date slot starts before
// midnight, so the cap never changes an overlap result.
func (s Slot) span() (start, end int, ok bool) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return 0, 0, false
	}
	return start, start + min(s.Duration, minutesPerDay), true
}

// Overlaps reports whether two slots intersect. Touching endpoints do not
// overlap. Dates are not compared.
func Overlaps(a, b Slot) bool {
	aStart, aEnd, ok := a.span()
	if !ok {
		return false
	}
	bStart, bEnd, ok := b.span()
	if !ok {
		return false
	}
	return aStart < bEnd && aEnd > bStart
}

// FindConflict returns the first sibling whose slot overlaps candidate, or nil.
//
// siblings must already be restricted to the candidate's owner and date, and
// must not contain the task being updated.
func FindConflict(candidate Slot, siblings []model.Task) *model.Task {
	for i := range siblings {
		if Overlaps(candidate, SlotOf(siblings[i])) {
			return &siblings[i]
		}
	}
	return nil
}
