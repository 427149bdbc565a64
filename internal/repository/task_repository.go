package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"weekly-agenda/internal/model"
)

// SlotCheck inspects the tasks already on the candidate's owner+date and
// returns a non-nil error to abort the write.
type SlotCheck func(siblings []model.Task) error

const ownerLockStripes = 64

// TaskRepository handles CRUD for tasks.
//
// Writes that change a task's slot run the sibling query, the SlotCheck and
// the write in one transaction, serialized per owner.
type TaskRepository struct {
	db    *gorm.DB
	locks [ownerLockStripes]sync.Mutex
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) lockOwner(userID uint) func() {
	mu := &r.locks[userID%ownerLockStripes]
	mu.Lock()
	return mu.Unlock
}

// lockOwnerTx extends the in-process lock across instances sharing a
// PostgreSQL database. The lock is released at commit or rollback.
func lockOwnerTx(tx *gorm.DB, userID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(userID)).Error; err != nil {
		return fmt.Errorf("lock owner: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("date ASC, start_time ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListByOwnerAndDateRange returns tasks with from <= date <= to.
func (r *TaskRepository) ListByOwnerAndDateRange(ctx context.Context, userID uint, from, to string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, start_time ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

// Insert creates task after check accepts the existing tasks on the same
// owner and date. Errors returned by check are passed through unchanged.
func (r *TaskRepository) Insert(ctx context.Context, task *model.Task, check SlotCheck) error {
	unlock := r.lockOwner(task.UserID)
	defer unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwnerTx(tx, task.UserID); err != nil {
			return err
		}
		if check != nil {
			siblings, err := siblingsOf(tx, task.UserID, task.Date, 0)
			if err != nil {
				return err
			}
			if err := check(siblings); err != nil {
				return err
			}
		}
		task.ID = 0
		task.ReminderSent = false
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		return nil
	})
}

// Update writes the editable columns of task. When check is non-nil it sees
// the owner's other tasks on task.Date.
//
// reminder_sent is only written when the reminder has been cleared, so an
// edit never undoes a concurrent MarkReminderSent.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task, check SlotCheck) error {
	unlock := r.lockOwner(task.UserID)
	defer unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwnerTx(tx, task.UserID); err != nil {
			return err
		}
		if check != nil {
			siblings, err := siblingsOf(tx, task.UserID, task.Date, task.ID)
			if err != nil {
				return err
			}
			if err := check(siblings); err != nil {
				return err
			}
		}

		task.UpdatedAt = time.Now()
		updates := map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"date":        task.Date,
			"start_time":  task.StartTime,
			"duration":    task.Duration,
			"category":    task.Category,
			"reminder":    task.Reminder,
			"email":       task.Email,
			"updated_at":  task.UpdatedAt,
		}
		if !task.Reminder.Enabled() {
			task.ReminderSent = false
			updates["reminder_sent"] = false
		}

		res := tx.Model(&model.Task{}).Where("id = ? AND user_id = ?", task.ID, task.UserID).Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		// Pick up a reminder_sent flip that happened before we locked the row.
		var stored model.Task
		if err := tx.Select("reminder_sent", "created_at").Where("id = ?", task.ID).First(&stored).Error; err != nil {
			return fmt.Errorf("reload task: %w", err)
		}
		task.ReminderSent = stored.ReminderSent
		task.CreatedAt = stored.CreatedAt
		return nil
	})
}

// Delete removes a task for the given user. It reports whether a row was removed.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return false, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListReminderCandidates returns every task dated since or later with a
// configured, unsent reminder and an address to send it to, across all owners.
// Older tasks have started, so their window is closed for good.
func (r *TaskRepository) ListReminderCandidates(ctx context.Context, since string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("reminder <> ? AND reminder <> '' AND reminder_sent = ? AND email IS NOT NULL AND email <> ''", model.ReminderNone, false).
		Where("date >= ?", since).
		Order("date ASC, start_time ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list reminder candidates: %w", err)
	}
	return tasks, nil
}

// MarkReminderSent flips reminder_sent for a task that has not been marked
// yet. It reports whether this call performed the flip.
func (r *TaskRepository) MarkReminderSent(ctx context.Context, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND reminder_sent = ?", taskID, false).
		Update("reminder_sent", true)
	if res.Error != nil {
		return false, fmt.Errorf("mark reminder sent: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func siblingsOf(tx *gorm.DB, userID uint, date string, excludeID uint) ([]model.Task, error) {
	var tasks []model.Task
	q := tx.Where("user_id = ? AND date = ?", userID, date)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list siblings: %w", err)
	}
	return tasks, nil
}
