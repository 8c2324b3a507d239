package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/dashboard-api/internal/repo"
	"github.com/BuzzLyutic/dashboard-api/internal/service"
	"github.com/BuzzLyutic/dashboard-api/pkg/respond"
)

// BlogHandler — публичная читалка одобренных постов, без аутентификации
type BlogHandler struct {
	service *service.BlogService
	logger  *zap.Logger
}

func NewBlogHandler(srv *service.BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list posts", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, r, http.StatusOK, posts)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.service.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			respond.Error(w, r, http.StatusNotFound, "not found")
			return
		}
		h.logger.Error("failed to render post", zap.String("slug", slug), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, r, http.StatusOK, post)
}
