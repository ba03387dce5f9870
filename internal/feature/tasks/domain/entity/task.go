// Package entity defines the domain models for the tasks feature.
package entity

import (
	"errors"
	"fmt"
	"strings"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusOpen       TaskStatus = "OPEN"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// ErrInvalidStatus is returned by ParseStatus for unknown values.
var ErrInvalidStatus = errors.New("invalid status")

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uint
	Title       string
	Description string
	Status      TaskStatus
	UserID      uint // owner
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus normalizes raw to uppercase and checks it against the known statuses.
func ParseStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(strings.ToUpper(raw))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// InvalidStatusMessage is the client-facing text for a rejected status value.
func InvalidStatusMessage(raw string) string {
	return fmt.Sprintf("%s is an invalid status.", strings.ToUpper(raw))
}

// Filter narrows a task listing. Nil fields impose no constraint.
type Filter struct {
	Status *TaskStatus
	Search *string
}
