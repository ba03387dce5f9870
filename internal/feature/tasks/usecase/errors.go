// Package usecase implements the business logic for the tasks feature.
package usecase

import (
	"errors"

	"task_backend/internal/feature/tasks/domain/entity"
)

var (
	// ErrTaskNotFound is returned when the task does not exist or belongs to another user.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidStatus is returned for a status outside OPEN, IN_PROGRESS and DONE.
	ErrInvalidStatus = entity.ErrInvalidStatus

	// ErrInternal is returned when persistence fails.
	ErrInternal = errors.New("internal error")
)
