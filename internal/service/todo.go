package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/dashboard-api/internal/model"
	"github.com/BuzzLyutic/dashboard-api/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

type TodoService struct {
	repo  repo.TodoRepository
	owner string
	now   func() time.Time
}

func NewTodoService(r repo.TodoRepository, owner string) *TodoService {
	return &TodoService{
		repo:  r,
		owner: owner,
		now:   time.Now,
	}
}

func (s *TodoService) Create(ctx context.Context, t model.Todo, idempKey string) (model.Todo, error) {
	if strings.TrimSpace(t.Title) == "" {
		return t, ErrValidation
	}
	if t.TodoType == "" {
		t.TodoType = model.TypePersistent
	}
	if !model.ValidTodoType(t.TodoType) {
		return t, ErrValidation
	}
	if t.AssignedTo == "" {
		t.AssignedTo = s.owner
	}

	// Поля срока и повторения имеют смысл только для своего типа задачи
	switch t.TodoType {
	case model.TypeRecurring:
		if !model.ValidRecurrence(t.Recurrence) {
			return t, ErrValidation
		}
		t.DueDate = nil
	case model.TypeScheduled:
		t.Recurrence = ""
	default:
		t.Recurrence = ""
		t.DueDate = nil
	}

	if idempKey != "" { // Повторный запрос с тем же ключом возвращает уже созданную задачу
		if existingID, err := s.repo.GetIdempotencyKey(ctx, idempKey); err == nil {
			return s.repo.Get(ctx, existingID)
		}
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return created, err
	}

	if idempKey != "" {
		s.repo.SaveIdempotencyKey(ctx, idempKey, created.ID)
	}

	return created, nil
}

func (s *TodoService) Get(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	return s.repo.Get(ctx, id)
}

// List возвращает задачи с производным состоянием повторяющихся:
// если окно правила истекло, задача показывается невыполненной,
// но сохраненный флаг не трогается
func (s *TodoService) List(ctx context.Context, filter model.TodoFilter, limit int) ([]model.Todo, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	todos, err := s.repo.List(ctx, filter, limit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range todos {
		t := &todos[i]
		if t.TodoType != model.TypeRecurring || !t.Completed {
			continue
		}
		if ShouldReset(t.Recurrence, t.LastCompletedDate, now) {
			t.Completed = false
			t.CompletedAt = nil
		}
	}
	return todos, nil
}

func (s *TodoService) Update(ctx context.Context, id uuid.UUID, patch model.TodoPatch) (model.Todo, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return t, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return t, ErrValidation
		}
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Body != nil {
		t.Body = *patch.Body
	}
	if patch.TodoType != nil {
		if !model.ValidTodoType(*patch.TodoType) {
			return t, ErrValidation
		}
		t.TodoType = *patch.TodoType
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Recurrence != nil {
		if *patch.Recurrence != "" && !model.ValidRecurrence(*patch.Recurrence) {
			return t, ErrValidation
		}
		t.Recurrence = *patch.Recurrence
	}

	if patch.Completed != nil && *patch.Completed != t.Completed {
		t.Completed = *patch.Completed
		if t.Completed {
			now := s.now()
			t.CompletedAt = &now
			if t.TodoType == model.TypeRecurring {
				t.LastCompletedDate = &now
			}
		} else {
			t.CompletedAt = nil
		}
	}

	return s.repo.Update(ctx, t)
}

func (s *TodoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Reorder переводит порядок перетаскивания в приоритеты: верхняя задача
// получает N, нижняя 1. Значения считаются на сервере по присланному
// порядку и пишутся одним пакетом
func (s *TodoService) Reorder(ctx context.Context, todoType string, ids []uuid.UUID) error {
	if !model.ValidTodoType(todoType) {
		return ErrValidation
	}
	if len(ids) == 0 {
		return ErrValidation
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	updates := make([]model.PriorityUpdate, 0, len(ids))
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			return ErrValidation
		}
		seen[id] = struct{}{}
		updates = append(updates, model.PriorityUpdate{
			ID:       id,
			Priority: len(ids) - i,
		})
	}

	return s.repo.UpdatePriorities(ctx, todoType, updates)
}

func (s *TodoService) GetStats(ctx context.Context) (repo.TodoStats, error) {
	return s.repo.GetStats(ctx)
}
