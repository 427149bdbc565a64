package model

import "time"

// Task is a time-boxed entry on a user's week grid.
type Task struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"index:idx_task_owner_date" json:"userId"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Date         string         `gorm:"index:idx_task_owner_date;size:10;not null" json:"date"`
	StartTime    string         `gorm:"size:5;not null" json:"startTime"`
	Duration     int            `gorm:"not null" json:"duration"`
	Category     string         `gorm:"not null" json:"category"`
	Reminder     ReminderOffset `gorm:"default:none;not null" json:"reminder"`
	Email        string         `json:"email,omitempty"`
	ReminderSent bool           `gorm:"default:false;index" json:"reminderSent"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// HasReminder reports whether the task is in the Scheduled reminder state.
func (t Task) HasReminder() bool {
	return t.Reminder.Enabled() && t.Email != "" && !t.ReminderSent
}
