package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"weekly-agenda/internal/model"
)

var csvHeader = []string{"Title", "Description", "Date", "Start Time", "Duration (min)", "Category", "Reminder"}

// WriteCSV writes one row per task after a header row.
func WriteCSV(w io.Writer, tasks []model.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range tasks {
		reminder := ""
		if t.Reminder.Enabled() {
			reminder = string(t.Reminder)
		}
		row := []string{
			t.Title,
			t.Description,
			t.Date,
			t.StartTime,
			strconv.Itoa(t.Duration),
			t.Category,
			reminder,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for task %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
