package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BuzzLyutic/dashboard-api/internal/model"
	"github.com/BuzzLyutic/dashboard-api/internal/notify"
	"github.com/BuzzLyutic/dashboard-api/internal/repo"
)

// Notifier доставляет уведомления о ревью в фоне, не блокируя ответ
type Notifier interface {
	Enqueue(n notify.Notification)
}

type ReviewService struct {
	repo     repo.ReviewRepository
	notifier Notifier
}

func NewReviewService(r repo.ReviewRepository, notifier Notifier) *ReviewService {
	return &ReviewService{
		repo:     r,
		notifier: notifier,
	}
}

func (s *ReviewService) GetByPath(ctx context.Context, filePath string) (model.ContentReview, error) {
	rev, err := s.repo.GetByPath(ctx, filePath)
	if errors.Is(err, repo.ErrorNotFound) {
		// Для неизвестного файла отдаем пустую заготовку со статусом pending
		return model.ContentReview{
			FilePath:    filePath,
			Status:      model.StatusPending,
			Category:    "general",
			Subcategory: "general",
		}, nil
	}
	return rev, err
}

func (s *ReviewService) List(ctx context.Context) ([]model.ContentReview, error) {
	return s.repo.List(ctx)
}

func (s *ReviewService) ListAudit(ctx context.Context, contentID int64) ([]model.AuditEntry, error) {
	return s.repo.ListAudit(ctx, contentID)
}

// Upsert сохраняет ревью и фиксирует изменения в журнале аудита.
// Смена статуса и смена заметок проверяются независимо по состоянию
// ДО записи, так что один вызов дает ноль, одну или две записи
func (s *ReviewService) Upsert(ctx context.Context, actor string, in model.ReviewInput) (model.ContentReview, error) {
	if strings.TrimSpace(in.FilePath) == "" || in.Status == "" {
		return model.ContentReview{}, ErrValidation
	}
	if !model.ValidStatus(in.Status) {
		return model.ContentReview{}, ErrValidation
	}

	var existing *model.ContentReview
	prev, err := s.repo.GetByPath(ctx, in.FilePath)
	switch {
	case err == nil:
		existing = &prev
	case errors.Is(err, repo.ErrorNotFound):
	default:
		return model.ContentReview{}, err
	}

	statusChanged := existing == nil || existing.Status != in.Status
	notesChanged := existing != nil && existing.Notes != in.Notes

	rev := model.ContentReview{
		FilePath:    in.FilePath,
		Status:      in.Status,
		Notes:       in.Notes,
		Category:    defaultLabel(in.Category),
		Subcategory: defaultLabel(in.Subcategory),
	}

	saved, err := s.repo.Upsert(ctx, rev, statusChanged)
	if err != nil {
		return saved, err
	}

	if statusChanged {
		var from string
		if existing != nil {
			from = existing.Status
		}
		if _, err := s.repo.AppendAudit(ctx, model.AuditEntry{
			ContentID:  saved.ID,
			Action:     model.AuditStatusChange,
			Actor:      actor,
			FromStatus: from,
			ToStatus:   in.Status,
		}); err != nil {
			return saved, err
		}
	}

	if notesChanged && strings.TrimSpace(in.Notes) != "" {
		if _, err := s.repo.AppendAudit(ctx, model.AuditEntry{
			ContentID: saved.ID,
			Action:    model.AuditNotesUpdated,
			Actor:     actor,
			Notes:     in.Notes,
		}); err != nil {
			return saved, err
		}
	}

	if s.notifier != nil {
		s.notifier.Enqueue(notify.Notification{
			FilePath:   saved.FilePath,
			Status:     saved.Status,
			Notes:      saved.Notes,
			Actor:      actor,
			ReviewedAt: saved.ReviewedAt,
		})
	}

	return saved, nil
}

func (s *ReviewService) GetStats(ctx context.Context) (repo.ReviewStats, error) {
	return s.repo.GetStats(ctx)
}

func defaultLabel(s string) string {
	if s == "" {
		return "general"
	}
	return s
}
