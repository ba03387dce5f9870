package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskRepository abstracts owner-scoped task persistence.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	// List returns the owner's tasks matching filter, ordered by id.
	List(ctx context.Context, ownerID uint, filter entity.Filter) ([]entity.Task, error)
	// FindByID returns (nil, nil) when the task is absent or owned by someone else.
	FindByID(ctx context.Context, ownerID, id uint) (*entity.Task, error)
	// Create persists a new task with status OPEN.
	Create(ctx context.Context, ownerID uint, title, description string) (*entity.Task, error)
	// DeleteByID returns the number of rows removed.
	DeleteByID(ctx context.Context, ownerID, id uint) (int64, error)
	// UpdateStatus saves task.Status.
	UpdateStatus(ctx context.Context, task *entity.Task) error
}

// CreateTaskInput carries the fields supplied by the client on creation.
type CreateTaskInput struct {
	Title       string
	Description string
}

// taskUsecase enforces ownership and not-found semantics on top of a TaskRepository.
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase creates a new instance of taskUsecase.
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// GetTasks lists the owner's tasks matching filter.
func (u *taskUsecase) GetTasks(ctx context.Context, filter entity.Filter, ownerID uint) ([]entity.Task, error) {
	slog.Debug("retrieving tasks", "user_id", ownerID, "filter", filterAttrs(filter))

	tasks, err := u.tasks.List(ctx, ownerID, filter)
	if err != nil {
		slog.Error("failed to list tasks", "error", err, "user_id", ownerID)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return tasks, nil
}

// GetTaskByID returns ErrTaskNotFound when the owner has no task with id.
func (u *taskUsecase) GetTaskByID(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
	slog.Debug("retrieving task", "task_id", id, "user_id", ownerID)

	task, err := u.tasks.FindByID(ctx, ownerID, id)
	if err != nil {
		slog.Error("failed to load task", "error", err, "task_id", id, "user_id", ownerID)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if task == nil {
		slog.Warn("task not found", "task_id", id, "user_id", ownerID)
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// CreateTask stores a new OPEN task for the owner.
func (u *taskUsecase) CreateTask(ctx context.Context, in CreateTaskInput, ownerID uint) (*entity.Task, error) {
	slog.Debug("creating task", "user_id", ownerID, "title", in.Title)

	task, err := u.tasks.Create(ctx, ownerID, in.Title, in.Description)
	if err != nil {
		slog.Error("failed to create task", "error", err, "user_id", ownerID)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return task, nil
}

// DeleteTask removes the owner's task, or returns ErrTaskNotFound if nothing was removed.
func (u *taskUsecase) DeleteTask(ctx context.Context, id, ownerID uint) error {
	slog.Debug("deleting task", "task_id", id, "user_id", ownerID)

	affected, err := u.tasks.DeleteByID(ctx, ownerID, id)
	if err != nil {
		slog.Error("failed to delete task", "error", err, "task_id", id, "user_id", ownerID)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if affected == 0 {
		slog.Warn("task not found", "task_id", id, "user_id", ownerID)
		return ErrTaskNotFound
	}
	return nil
}

// UpdateTaskStatus sets the status of the owner's task and returns the updated task.
// Any transition between statuses is allowed.
func (u *taskUsecase) UpdateTaskStatus(ctx context.Context, id uint, status entity.TaskStatus, ownerID uint) (*entity.Task, error) {
	slog.Debug("updating task status", "task_id", id, "status", status, "user_id", ownerID)

	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	task, err := u.GetTaskByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := u.tasks.UpdateStatus(ctx, task); err != nil {
		slog.Error("failed to update task status", "error", err, "task_id", id, "user_id", ownerID)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return task, nil
}

func filterAttrs(f entity.Filter) slog.Value {
	var attrs []slog.Attr
	if f.Status != nil {
		attrs = append(attrs, slog.String("status", string(*f.Status)))
	}
	if f.Search != nil {
		attrs = append(attrs, slog.String("search", *f.Search))
	}
	return slog.GroupValue(attrs...)
}
