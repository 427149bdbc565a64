package notify

import (
	"fmt"
	"html"
	"strings"
)

// Reminder holds what a reminder message says about a task.
type Reminder struct {
	To    string
	Title string
	Date  string
	Time  string
	// Offset is the human-readable lead time, e.g. "1 hour".
	Offset string
}

// ReminderMessage renders the subject and both bodies of a task reminder.
func ReminderMessage(r Reminder) Message {
	title := strings.TrimSpace(r.Title)

	var text strings.Builder
	text.WriteString("This is a reminder for your upcoming task:\n\n")
	text.WriteString(fmt.Sprintf("Task: %s\n", title))
	text.WriteString(fmt.Sprintf("Date: %s\n", r.Date))
	text.WriteString(fmt.Sprintf("Time: %s\n\n", r.Time))
	text.WriteString(fmt.Sprintf("This reminder was set for %s before the task.", r.Offset))

	esc := html.EscapeString
	var body strings.Builder
	body.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	body.WriteString(`<h2 style="color: #1A73E8;">Task Reminder</h2>`)
	body.WriteString(`<div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">`)
	body.WriteString(fmt.Sprintf(`<h3 style="margin: 0 0 10px 0; color: #333;">%s</h3>`, esc(title)))
	body.WriteString(fmt.Sprintf(`<p style="margin: 5px 0; color: #666;"><strong>Date:</strong> %s</p>`, esc(r.Date)))
	body.WriteString(fmt.Sprintf(`<p style="margin: 5px 0; color: #666;"><strong>Time:</strong> %s</p>`, esc(r.Time)))
	body.WriteString(`</div>`)
	body.WriteString(fmt.Sprintf(`<p style="color: #666; font-size: 14px;">This reminder was set for %s before the task.</p>`, esc(r.Offset)))
	body.WriteString(`</div>`)

	return Message{
		To:      r.To,
		Subject: "Reminder: " + title,
		Text:    text.String(),
		HTML:    body.String(),
	}
}
