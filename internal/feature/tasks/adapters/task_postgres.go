// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	authentity "task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// TaskModel はtasksテーブルの行を表します。
type TaskModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Status      string `gorm:"size:16;not null;index"`
	UserID      uint   `gorm:"not null;index"`

	// 所有者への外部キー制約を作成するためだけに保持します。
	Owner authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

func toEntity(m TaskModel) entity.Task {
	return entity.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entity.TaskStatus(m.Status),
		UserID:      m.UserID,
	}
}

// taskPostgres はTaskRepositoryインターフェースのPostgreSQL実装です。
// すべてのクエリは所有者IDで絞り込みます。
type taskPostgres struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskPostgres)(nil)

// NewTaskRepository は指定されたDB接続でtaskPostgresの新しいインスタンスを生成します。
func NewTaskRepository(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// likeEscaper はLIKEのワイルドカードをリテラルとして扱うためのエスケープです。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List は所有者のタスクをid昇順で返します。
// statusは完全一致、searchはタイトルまたは説明文の部分一致で絞り込みます。
func (r *taskPostgres) List(ctx context.Context, ownerID uint, filter entity.Filter) ([]entity.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != nil {
		pattern := "%" + likeEscaper.Replace(*filter.Search) + "%"
		// ORは括弧で囲み、所有者条件とANDで結合する
		q = q.Where(`(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var rows []TaskModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindByID は所有者のタスクを取得します。存在しない場合や他ユーザーのタスクの場合は (nil, nil) を返します。
func (r *taskPostgres) FindByID(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
	var m TaskModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	t := toEntity(m)
	return &t, nil
}

// Create はステータスOPENでタスクを作成します。
func (r *taskPostgres) Create(ctx context.Context, ownerID uint, title, description string) (*entity.Task, error) {
	m := TaskModel{
		Title:       title,
		Description: description,
		Status:      string(entity.StatusOpen),
		UserID:      ownerID,
	}
	if err := r.db.WithContext(ctx).Omit("Owner").Create(&m).Error; err != nil {
		return nil, err
	}
	t := toEntity(m)
	return &t, nil
}

// DeleteByID は所有者のタスクを削除し、削除件数を返します。
func (r *taskPostgres) DeleteByID(ctx context.Context, ownerID, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&TaskModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// UpdateStatus はタスクのステータスのみを保存します。
func (r *taskPostgres) UpdateStatus(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Update("status", string(task.Status)).Error
}
