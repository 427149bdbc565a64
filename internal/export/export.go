// Package export renders a user's tasks as CSV or iCalendar files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"weekly-agenda/internal/model"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatICS Format = "ics"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatCSV, FormatICS:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or ics)", raw)
	}
}

func (f Format) ContentType() string {
	if f == FormatICS {
		return "text/calendar; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Filename() string {
	return "agenda." + string(f)
}

// Write renders tasks in format f. stamp is used as DTSTAMP for calendar output.
func Write(w io.Writer, f Format, tasks []model.Task, stamp time.Time) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, tasks)
	case FormatICS:
		return WriteICS(w, tasks, stamp)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
