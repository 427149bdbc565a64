package service

import (
	"context"
	"sort"
	"sync"

	"weekly-agenda/internal/model"
	"weekly-agenda/internal/notify"
	"weekly-agenda/internal/repository"
)

// memStore is an in-memory TaskStore that runs slot checks the same way the
// gorm repository does.
type memStore struct {
	mu     sync.Mutex
	nextID uint
	tasks  map[uint]model.Task

	markErr error
	listErr error
	since   string
}

func newMemStore(seed ...model.Task) *memStore {
	s := &memStore{tasks: map[uint]model.Task{}}
	for _, t := range seed {
		s.nextID++
		if t.ID == 0 {
			t.ID = s.nextID
		} else if t.ID > s.nextID {
			s.nextID = t.ID
		}
		s.tasks[t.ID] = t
	}
	return s
}

func (s *memStore) sorted(keep func(model.Task) bool) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) ListByOwner(_ context.Context, userID uint) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(t model.Task) bool { return t.UserID == userID }), nil
}

func (s *memStore) ListByOwnerAndDateRange(_ context.Context, userID uint, from, to string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(t model.Task) bool {
		return t.UserID == userID && t.Date >= from && t.Date <= to
	}), nil
}

func (s *memStore) Get(_ context.Context, userID, taskID uint) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *memStore) Insert(_ context.Context, task *model.Task, check repository.SlotCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if check != nil {
		siblings := s.sorted(func(t model.Task) bool { return t.UserID == task.UserID && t.Date == task.Date })
		if err := check(siblings); err != nil {
			return err
		}
	}
	s.nextID++
	task.ID = s.nextID
	task.ReminderSent = false
	s.tasks[task.ID] = *task
	return nil
}

func (s *memStore) Update(_ context.Context, task *model.Task, check repository.SlotCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return repository.ErrNotFound
	}
	if check != nil {
		siblings := s.sorted(func(t model.Task) bool {
			return t.UserID == task.UserID && t.Date == task.Date && t.ID != task.ID
		})
		if err := check(siblings); err != nil {
			return err
		}
	}
	task.ReminderSent = stored.ReminderSent
	if !task.Reminder.Enabled() {
		task.ReminderSent = false
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *memStore) Delete(_ context.Context, userID, taskID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(s.tasks, taskID)
	return true, nil
}

func (s *memStore) ListReminderCandidates(_ context.Context, since string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.since = since
	return s.sorted(func(t model.Task) bool {
		return t.Reminder.Enabled() && !t.ReminderSent && t.Email != "" && t.Date >= since
	}), nil
}

func (s *memStore) MarkReminderSent(_ context.Context, taskID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return false, s.markErr
	}
	t, ok := s.tasks[taskID]
	if !ok || t.ReminderSent {
		return false, nil
	}
	t.ReminderSent = true
	s.tasks[taskID] = t
	return true, nil
}

func (s *memStore) task(id uint) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

type fakeNotifier struct {
	mu       sync.Mutex
	SendFunc func(ctx context.Context, msg notify.Message) error
	sent     []notify.Message
}

func (f *fakeNotifier) Send(ctx context.Context, msg notify.Message) error {
	if f.SendFunc != nil {
		if err := f.SendFunc(ctx, msg); err != nil {
			return err
		}
	}
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
