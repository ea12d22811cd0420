package planlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/visahelper/visa-helper/internal/http/response"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
)

// Handler обрабатывает запросы на публичный список тарифов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка тарифов.
type Service interface {
	ListPlans(ctx context.Context) ([]*models.Membership, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список тарифов
// @Description Возвращает доступные для покупки тарифы в порядке отображения.
// @Tags Memberships
// @Produce  json
// @Success 200 {object} map[string]any "Список тарифов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /memberships [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.planlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not list plans"))
		return
	}

	log.Info("plans listed", slog.Int("count", len(plans)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count":  len(plans),
		"memberships": plans,
	}))
}
