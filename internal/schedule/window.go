package schedule

import (
	"time"

	"weekly-agenda/internal/model"
)

// ReminderWindow returns the half-open [opens, closes) interval during which a
// reminder for t may fire: from start-offset until the task starts.
func ReminderWindow(t model.Task, loc *time.Location) (opens, closes time.Time, err error) {
	start, err := Instant(t.Date, t.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.Add(-time.Duration(t.Reminder.Minutes()) * time.Minute), start, nil
}

// ShouldRemind reports whether now falls inside the reminder window of t.
// Tasks without a reminder, or with an unparseable slot, never qualify.
func ShouldRemind(t model.Task, now time.Time, loc *time.Location) bool {
	if !t.Reminder.Enabled() {
		return false
	}
	opens, closes, err := ReminderWindow(t, loc)
	if err != nil {
		return false
	}
	return !now.Before(opens) && now.Before(closes)
}
