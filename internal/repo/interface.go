package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/dashboard-api/internal/model"
)

// TodoRepository определяет интерфейс для работы с задачами
type TodoRepository interface {
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	Get(ctx context.Context, id uuid.UUID) (model.Todo, error)
	List(ctx context.Context, filter model.TodoFilter, limit int) ([]model.Todo, error)
	Update(ctx context.Context, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePriorities(ctx context.Context, todoType string, updates []model.PriorityUpdate) error
	SaveIdempotencyKey(ctx context.Context, key string, resourceID uuid.UUID) error
	GetIdempotencyKey(ctx context.Context, key string) (uuid.UUID, error)
	GetStats(ctx context.Context) (TodoStats, error)
}

// ReviewRepository определяет интерфейс для ревью и аудита
type ReviewRepository interface {
	GetByPath(ctx context.Context, filePath string) (model.ContentReview, error)
	List(ctx context.Context) ([]model.ContentReview, error)
	ListByStatus(ctx context.Context, status string) ([]model.ContentReview, error)
	Upsert(ctx context.Context, r model.ContentReview, refreshReviewedAt bool) (model.ContentReview, error)
	AppendAudit(ctx context.Context, e model.AuditEntry) (model.AuditEntry, error)
	ListAudit(ctx context.Context, contentID int64) ([]model.AuditEntry, error)
	GetStats(ctx context.Context) (ReviewStats, error)
}

type TodoStats struct {
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	ByType    map[string]int `json:"by_type"`
}

type ReviewStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}
