package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"weekly-agenda/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{
			ID: 1, Title: `Review "Q1" plan`, Description: "numbers, charts", Date: "2024-01-15",
			StartTime: "09:00", Duration: 90, Category: model.CategoryWork, Reminder: model.Reminder1Hour,
			Email: "me@example.com",
		},
		{
			ID: 2, Title: "Late call", Date: "2024-01-15", StartTime: "23:30", Duration: 60,
			Category: model.CategoryPersonal, Reminder: model.ReminderNone,
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Format{"csv": FormatCSV, " ICS ": FormatICS} {
		got, err := ParseFormat(raw)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(pdf) error = nil")
	}
	if FormatICS.Filename() != "agenda.ics" || !strings.HasPrefix(FormatICS.ContentType(), "text/calendar") {
		t.Error("unexpected ics file metadata")
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTasks()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if strings.Join(rows[0], ",") != "Title,Description,Date,Start Time,Duration (min),Category,Reminder" {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{`Review "Q1" plan`, "numbers, charts", "2024-01-15", "09:00", "90", "work", "1hour"}
	for i := range want {
		if rows[1][i] != want[i] {
			t.Errorf("row 1 col %d = %q, want %q", i, rows[1][i], want[i])
		}
	}
	if rows[2][6] != "" {
		t.Errorf("reminder column for none = %q, want empty", rows[2][6])
	}
}

func TestWriteICS(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stamp := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	if err := WriteICS(&buf, sampleTasks(), stamp); err != nil {
		t.Fatalf("WriteICS() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//Weekly Agenda//EN",
		"UID:1@agenda.local",
		"DTSTART:20240115T090000\r\n",
		"DTEND:20240115T103000\r\n",
		"SUMMARY:Review \"Q1\" plan",
		"CATEGORIES:work",
		"TRIGGER:-PT60M",
		"UID:2@agenda.local",
		"DTSTART:20240115T233000\r\n",
		"DTEND:20240116T003000\r\n",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q\n%s", want, out)
		}
	}
	if n := strings.Count(out, "BEGIN:VALARM"); n != 1 {
		t.Errorf("got %d alarms, want 1", n)
	}
	if strings.Contains(out, "DTSTART:20240115T090000Z") {
		t.Error("start time must be floating, not UTC")
	}
}

func TestWriteICS_BadTask(t *testing.T) {
	t.Parallel()

	bad := []model.Task{{ID: 9, Date: "2024-02-30", StartTime: "09:00", Duration: 30}}
	if err := WriteICS(&bytes.Buffer{}, bad, time.Now()); err == nil {
		t.Fatal("WriteICS() error = nil for an invalid date")
	}
}
