// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"task_backend/internal/api"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/validation"
)

const (
	msgInvalidTaskID = "invalid task id"
	msgEmptySearch   = "search should not be empty"
	msgTaskNotFound  = "task not found"
	msgUnauthorized  = "unauthorized"
	msgInternal      = "internal server error"
)

// TaskUsecase はタスク操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TaskUsecase interface {
	GetTasks(ctx context.Context, filter entity.Filter, ownerID uint) ([]entity.Task, error)
	GetTaskByID(ctx context.Context, id, ownerID uint) (*entity.Task, error)
	CreateTask(ctx context.Context, in usecase.CreateTaskInput, ownerID uint) (*entity.Task, error)
	DeleteTask(ctx context.Context, id, ownerID uint) error
	UpdateTaskStatus(ctx context.Context, id uint, status entity.TaskStatus, ownerID uint) (*entity.Task, error)
}

// TaskHandler はタスクのHTTPリクエストを処理します。
// すべてのエンドポイントはjwtmw.AuthRequiredの後段で動作する前提です。
type TaskHandler struct {
	uc TaskUsecase
}

// NewTaskHandler は指定されたusecaseでTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(uc TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// List は認証ユーザーのタスク一覧を返します。
//
// エンドポイント例:
// GET /tasks?status=OPEN&search=milk
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	var params api.ListTasksParams
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid status parameter"})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", query, &params.Search); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid search parameter"})
		return
	}

	var filter entity.Filter
	if params.Status != nil {
		status, err := entity.ParseStatus(*params.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: entity.InvalidStatusMessage(*params.Status)})
			return
		}
		filter.Status = &status
	}
	if query.Has("search") {
		if params.Search == nil || *params.Search == "" {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgEmptySearch})
			return
		}
		filter.Search = params.Search
	}

	tasks, err := h.uc.GetTasks(c.Request.Context(), filter, ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]api.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDで指定されたタスクを返します。
func (h *TaskHandler) Get(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.uc.GetTaskByID(c.Request.Context(), id, ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(task))
}

// Create は新しいタスクをステータスOPENで作成します。
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	var req api.CreateTaskJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create task validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}

	task, err := h.uc.CreateTask(c.Request.Context(), usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}, ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(task))
}

// Delete はタスクを削除します。成功時は204を返却します。
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteTask(c.Request.Context(), id, ownerID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus はタスクのステータスを更新します。
// ステータスは大文字に正規化され、不正な値は400を返却します。
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req api.UpdateTaskStatusJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	status, err := entity.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: entity.InvalidStatusMessage(req.Status)})
		return
	}

	task, err := h.uc.UpdateTaskStatus(c.Request.Context(), id, status, ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(task))
}

// owner はミドルウェアが設定した認証ユーザーのIDを返します。
func (h *TaskHandler) owner(c *gin.Context) (uint, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: msgUnauthorized})
		return 0, false
	}
	return user.ID, true
}

// fail はユースケースのエラーをHTTPステータスに変換します。内部エラーの詳細は返しません。
func (h *TaskHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: msgTaskNotFound})
	case errors.Is(err, usecase.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("task request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternal})
	}
}

// taskID はパスパラメータ:idを正の整数として読み取ります。
func taskID(c *gin.Context) (uint, bool) {
	var id api.TaskID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgInvalidTaskID})
		return 0, false
	}
	return uint(id), true
}

func toResponse(t *entity.Task) api.TaskResponse {
	return api.TaskResponse{
		Id:          int64(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Status:      api.TaskResponseStatus(t.Status),
	}
}
