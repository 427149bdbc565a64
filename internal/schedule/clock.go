// Package schedule holds the wall-clock arithmetic behind the week grid:
// parsing naive dates and times, detecting overlapping tasks and deciding
// when a reminder is due. Everything here is pure.
package schedule

import (
	"fmt"
	"strconv"
	"time"
)

const (
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// ParseClock converts HH:MM (24-hour) to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// Instant combines a date and a start time into a wall-clock instant in loc.
func Instant(date, startTime string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseClock(startTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), m/60, m%60, 0, 0, loc), nil
}

// Day is one column of the week grid.
type Day struct {
	Date    string `json:"date"`
	Name    string `json:"dayName"`
	Number  int    `json:"dayNumber"`
	IsToday bool   `json:"isToday"`
}

// Week is a Monday-to-Sunday range.
type Week struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
	Days  []Day  `json:"days"`
}

// WeekOf returns the Monday-start week containing day. today marks the
// matching column.
func WeekOf(day, today time.Time) Week {
	offset := (int(day.Weekday()) + 6) % 7
	monday := time.Date(day.Year(), day.Month(), day.Day()-offset, 0, 0, 0, 0, day.Location())
	sunday := monday.AddDate(0, 0, 6)

	todayStr := today.Format(DateLayout)
	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		days = append(days, Day{
			Date:    d.Format(DateLayout),
			Name:    d.Format("Mon"),
			Number:  d.Day(),
			IsToday: d.Format(DateLayout) == todayStr,
		})
	}

	return Week{
		Start: monday.Format(DateLayout),
		End:   sunday.Format(DateLayout),
		Label: fmt.Sprintf("%s-%s", monday.Format("Jan 2"), sunday.Format("2, 2006")),
		Days:  days,
	}
}
