package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"weekly-agenda/internal/model"
	"weekly-agenda/internal/notify"
	"weekly-agenda/internal/schedule"
)

// ReminderStore is the slice of the task store the reminder tick touches.
type ReminderStore interface {
	ListReminderCandidates(ctx context.Context, since string) ([]model.Task, error)
	MarkReminderSent(ctx context.Context, taskID uint) (bool, error)
}

// TickResult summarizes one pass over the reminder candidates.
type TickResult struct {
	Candidates int
	Due        int
	Sent       int
	Failed     int
}

// ReminderService fires at-most-once reminders for tasks whose reminder
// window contains the current time.
type ReminderService struct {
	store    ReminderStore
	notifier notify.Notifier
	loc      *time.Location
	now      func() time.Time
}

func NewReminderService(store ReminderStore, notifier notify.Notifier, loc *time.Location) *ReminderService {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderService{store: store, notifier: notifier, loc: loc, now: time.Now}
}

// Tick evaluates every candidate once. Delivery failures leave the task
// unmarked so a later tick retries while the window is still open; only a
// failure to load candidates is returned.
func (s *ReminderService) Tick(ctx context.Context) (TickResult, error) {
	now := s.now().In(s.loc)
	// A day of slack keeps tasks near midnight in view.
	since := now.AddDate(0, 0, -1).Format(schedule.DateLayout)

	tasks, err := s.store.ListReminderCandidates(ctx, since)
	if err != nil {
		return TickResult{}, fmt.Errorf("load reminder candidates: %w", err)
	}

	res := TickResult{Candidates: len(tasks)}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !task.HasReminder() || !schedule.ShouldRemind(task, now, s.loc) {
			continue
		}
		res.Due++

		msg := notify.ReminderMessage(notify.Reminder{
			To:     task.Email,
			Title:  task.Title,
			Date:   task.Date,
			Time:   task.StartTime,
			Offset: task.Reminder.Label(),
		})
		if err := s.notifier.Send(ctx, msg); err != nil {
			log.Printf("[warn] reminder for task %d not delivered: %v", task.ID, err)
			res.Failed++
			continue
		}

		marked, err := s.store.MarkReminderSent(ctx, task.ID)
		if err != nil {
			log.Printf("[error] reminder for task %d delivered but not marked: %v", task.ID, err)
			res.Failed++
			continue
		}
		if !marked {
			log.Printf("[warn] reminder for task %d was already marked sent", task.ID)
		}
		res.Sent++
		log.Printf("[info] reminder sent for task %d (%s %s)", task.ID, task.Date, task.StartTime)
	}

	return res, nil
}

// RunTick is the scheduler job: one Tick bounded by timeout, with errors logged.
func (s *ReminderService) RunTick(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := s.Tick(ctx)
	if err != nil {
		log.Printf("[error] reminder tick: %v", err)
		return
	}
	if res.Due > 0 {
		log.Printf("[info] reminder tick: candidates=%d due=%d sent=%d failed=%d", res.Candidates, res.Due, res.Sent, res.Failed)
	}
}
