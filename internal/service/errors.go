package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"weekly-agenda/internal/model"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError lists problems with a request, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// ConflictError reports the existing task that blocks a slot.
type ConflictError struct {
	Task model.Task
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("task conflicts with task %d (%s %s, %d min)", e.Task.ID, e.Task.Date, e.Task.StartTime, e.Task.Duration)
}
