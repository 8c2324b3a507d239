package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/dashboard-api/internal/repo"
	"github.com/BuzzLyutic/dashboard-api/internal/service"
	"github.com/BuzzLyutic/dashboard-api/pkg/respond"
)

type StatsHandler struct {
	todos   *service.TodoService
	reviews *service.ReviewService
	logger  *zap.Logger
}

func NewStatsHandler(todos *service.TodoService, reviews *service.ReviewService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		todos:   todos,
		reviews: reviews,
		logger:  logger,
	}
}

type dashboardStats struct {
	Todos   repo.TodoStats   `json:"todos"`
	Reviews repo.ReviewStats `json:"reviews"`
}

// Stats — сводные счетчики для главной страницы дашборда
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	todoStats, err := h.todos.GetStats(r.Context())
	if err != nil {
		h.logger.Error("failed to get todo stats", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	reviewStats, err := h.reviews.GetStats(r.Context())
	if err != nil {
		h.logger.Error("failed to get review stats", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, r, http.StatusOK, dashboardStats{
		Todos:   todoStats,
		Reviews: reviewStats,
	})
}
