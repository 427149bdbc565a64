package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"weekly-agenda/internal/model"
	"weekly-agenda/internal/repository"
	"weekly-agenda/internal/schedule"
)

// Task length bounds, in minutes.
const (
	MinDuration = 15
	MaxDuration = 24 * 60
)

// TaskStore is the persistence the task and reminder services need.
type TaskStore interface {
	ListByOwner(ctx context.Context, userID uint) ([]model.Task, error)
	ListByOwnerAndDateRange(ctx context.Context, userID uint, from, to string) ([]model.Task, error)
	Get(ctx context.Context, userID, taskID uint) (*model.Task, error)
	Insert(ctx context.Context, task *model.Task, check repository.SlotCheck) error
	Update(ctx context.Context, task *model.Task, check repository.SlotCheck) error
	Delete(ctx context.Context, userID, taskID uint) (bool, error)
	ReminderStore
}

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Date        string
	StartTime   string
	Duration    int
	Category    string
	Reminder    string
	Email       string
}

// TaskPatch holds the fields an update changes. Nil fields keep their value.
type TaskPatch struct {
	Title       *string
	Description *string
	Date        *string
	StartTime   *string
	Duration    *int
	Category    *string
	Reminder    *string
	Email       *string
}

// TaskService wraps task-related business logic.
type TaskService struct {
	store TaskStore
	now   func() time.Time
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store, now: time.Now}
}

// List returns the user's tasks, optionally restricted to from..to inclusive.
// Both bounds or neither must be given.
func (s *TaskService) List(ctx context.Context, userID uint, from, to string) ([]model.Task, error) {
	if from == "" && to == "" {
		return s.store.ListByOwner(ctx, userID)
	}

	fields := map[string]string{}
	if _, err := schedule.ParseDate(from); err != nil {
		fields["startDate"] = err.Error()
	}
	if _, err := schedule.ParseDate(to); err != nil {
		fields["endDate"] = err.Error()
	}
	if len(fields) == 0 && from > to {
		fields["endDate"] = "must not be before startDate"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return s.store.ListByOwnerAndDateRange(ctx, userID, from, to)
}

// Week returns the Monday-start week containing day and the user's tasks in it.
func (s *TaskService) Week(ctx context.Context, userID uint, day time.Time) (schedule.Week, []model.Task, error) {
	week := schedule.WeekOf(day, s.now().In(day.Location()))
	tasks, err := s.store.ListByOwnerAndDateRange(ctx, userID, week.Start, week.End)
	if err != nil {
		return schedule.Week{}, nil, err
	}
	return week, tasks, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.store.Get(ctx, userID, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return task, err
}

// Create validates input and stores it unless it overlaps another task of the
// same user on the same date, in which case a *ConflictError is returned.
func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	task := model.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Date:        strings.TrimSpace(input.Date),
		StartTime:   strings.TrimSpace(input.StartTime),
		Duration:    input.Duration,
		Category:    strings.TrimSpace(input.Category),
		Email:       strings.TrimSpace(input.Email),
	}

	fields := map[string]string{}
	reminder, err := model.ParseReminderOffset(strings.TrimSpace(input.Reminder))
	if err != nil {
		fields["reminder"] = err.Error()
	}
	task.Reminder = reminder
	validateTask(&task, fields)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if err := s.store.Insert(ctx, &task, conflictCheck(task)); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies patch to a stored task. The conflict check only runs when
// the date, start time or duration actually change.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, patch TaskPatch) (*model.Task, error) {
	existing, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task := *existing
	fields := map[string]string{}
	applyPatch(&task, patch, fields)
	validateTask(&task, fields)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var check repository.SlotCheck
	if schedule.SlotOf(task) != schedule.SlotOf(*existing) {
		check = conflictCheck(task)
	}

	err = s.store.Update(ctx, &task, check)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	ok, err := s.store.Delete(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

func conflictCheck(task model.Task) repository.SlotCheck {
	slot := schedule.SlotOf(task)
	return func(siblings []model.Task) error {
		if c := schedule.FindConflict(slot, siblings); c != nil {
			return &ConflictError{Task: *c}
		}
		return nil
	}
}

func applyPatch(task *model.Task, p TaskPatch, fields map[string]string) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&task.Title, p.Title)
	set(&task.Description, p.Description)
	set(&task.Date, p.Date)
	set(&task.StartTime, p.StartTime)
	set(&task.Category, p.Category)
	set(&task.Email, p.Email)
	if p.Duration != nil {
		task.Duration = *p.Duration
	}
	if p.Reminder != nil {
		reminder, err := model.ParseReminderOffset(strings.TrimSpace(*p.Reminder))
		if err != nil {
			fields["reminder"] = err.Error()
			return
		}
		task.Reminder = reminder
	}
}

// validateTask records field errors and normalizes the reminder pair: a task
// without a reminder carries no email.
func validateTask(task *model.Task, fields map[string]string) {
	if task.Title == "" {
		fields["title"] = "title is required"
	}
	if task.Date == "" {
		fields["date"] = "date is required"
	} else if _, err := schedule.ParseDate(task.Date); err != nil {
		fields["date"] = err.Error()
	}
	if task.StartTime == "" {
		fields["startTime"] = "start time is required"
	} else if _, err := schedule.ParseClock(task.StartTime); err != nil {
		fields["startTime"] = err.Error()
	}
	switch {
	case task.Duration < MinDuration:
		fields["duration"] = fmt.Sprintf("duration must be at least %d minutes", MinDuration)
	case task.Duration > MaxDuration:
		fields["duration"] = fmt.Sprintf("duration must be at most %d minutes", MaxDuration)
	}
	if !model.IsCategory(task.Category) {
		fields["category"] = "unknown category"
	}

	if _, bad := fields["reminder"]; bad {
		return
	}
	if !task.Reminder.Enabled() {
		task.Reminder = model.ReminderNone
		task.Email = ""
		return
	}
	if task.Email == "" {
		fields["email"] = "email is required for reminders"
		return
	}
	if addr, err := mail.ParseAddress(task.Email); err != nil || addr.Address != task.Email {
		fields["email"] = "invalid email address"
	}
}
