package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/dashboard-api/internal/auth"
	"github.com/BuzzLyutic/dashboard-api/internal/content"
	"github.com/BuzzLyutic/dashboard-api/internal/model"
	"github.com/BuzzLyutic/dashboard-api/internal/repo"
	"github.com/BuzzLyutic/dashboard-api/internal/service"
	"github.com/BuzzLyutic/dashboard-api/pkg/respond"
)

type ReviewHandler struct {
	service *service.ReviewService
	catalog *content.Catalog
	logger  *zap.Logger
}

func NewReviewHandler(srv *service.ReviewService, catalog *content.Catalog, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: srv,
		catalog: catalog,
		logger:  logger,
	}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, reviews)
}

// GetByPath отдает ревью по пути файла; для неизвестного файла —
// заготовку со статусом pending
func (h *ReviewHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	filePath := r.URL.Query().Get("filePath")
	if filePath == "" {
		respond.Error(w, r, http.StatusBadRequest, "filePath required")
		return
	}

	review, err := h.service.GetByPath(r.Context(), filePath)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, review)
}

func (h *ReviewHandler) Audit(w http.ResponseWriter, r *http.Request) {
	contentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	entries, err := h.service.ListAudit(r.Context(), contentID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, entries)
}

func (h *ReviewHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	actor := auth.ActorFromContext(r.Context())
	review, err := h.service.Upsert(r.Context(), actor, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, review)
}

// Drafts отдает каталог черновиков с диска, слитый с ревью из БД
func (h *ReviewHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	drafts, err := h.catalog.List(reviews)
	if err != nil {
		h.logger.Error("failed to read drafts", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, r, http.StatusOK, drafts)
}

func (h *ReviewHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
