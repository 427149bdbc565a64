package model

import "fmt"

// ReminderOffset is how long before a task starts its reminder fires.
type ReminderOffset string

const (
	ReminderNone      ReminderOffset = "none"
	Reminder15Minutes ReminderOffset = "15min"
	Reminder1Hour     ReminderOffset = "1hour"
	Reminder1Day      ReminderOffset = "1day"
	Reminder2Days     ReminderOffset = "2days"
)

var reminderOffsets = map[ReminderOffset]struct {
	minutes int
	label   string
}{
	ReminderNone:      {0, ""},
	Reminder15Minutes: {15, "15 minutes"},
	Reminder1Hour:     {60, "1 hour"},
	Reminder1Day:      {1440, "1 day"},
	Reminder2Days:     {2880, "2 days"},
}

// ParseReminderOffset maps user input to an offset. Empty input means no reminder;
// anything else outside the known set is rejected.
func ParseReminderOffset(raw string) (ReminderOffset, error) {
	if raw == "" {
		return ReminderNone, nil
	}
	r := ReminderOffset(raw)
	if _, ok := reminderOffsets[r]; !ok {
		return ReminderNone, fmt.Errorf("unknown reminder %q", raw)
	}
	return r, nil
}

// Valid reports whether r is one of the known offsets.
func (r ReminderOffset) Valid() bool {
	_, ok := reminderOffsets[r]
	return ok
}

// Enabled reports whether r schedules a reminder at all.
func (r ReminderOffset) Enabled() bool {
	return r != "" && r != ReminderNone && r.Valid()
}

// Minutes returns the offset in minutes before the task start, 0 for none.
func (r ReminderOffset) Minutes() int {
	return reminderOffsets[r].minutes
}

// Label is the human-readable form used in reminder messages.
func (r ReminderOffset) Label() string {
	if l := reminderOffsets[r].label; l != "" {
		return l
	}
	return string(r)
}
