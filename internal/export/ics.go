package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"weekly-agenda/internal/model"
	"weekly-agenda/internal/schedule"
)

const (
	productID = "-//Weekly Agenda//EN"
	uidDomain = "agenda.local"

	// Floating local time: no zone suffix, no TZID.
	floatingLayout = "20060102T150405"
)

// WriteICS writes tasks as a VCALENDAR with one VEVENT each. Start and end
// are floating wall-clock times; tasks with a reminder carry a VALARM.
func WriteICS(w io.Writer, tasks []model.Task, stamp time.Time) error {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	for _, t := range tasks {
		start, err := schedule.Instant(t.Date, t.StartTime, time.UTC)
		if err != nil {
			return fmt.Errorf("task %d: %w", t.ID, err)
		}
		end := start.Add(time.Duration(t.Duration) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("%d@%s", t.ID, uidDomain))
		event.SetDtStampTime(stamp)
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(floatingLayout))
		event.SetSummary(t.Title)
		event.SetDescription(t.Description)
		event.AddCategory(t.Category)

		if t.Reminder.Enabled() {
			alarm := event.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", t.Reminder.Minutes()))
			alarm.SetDescription(t.Title)
		}
	}

	return cal.SerializeTo(w, ics.WithNewLineWindows)
}
