// Package questionapprove реализует административный HTTP-обработчик
// одобрения вопроса. Одобрить можно только вопрос в статусе PENDING.
package questionapprove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/visahelper/visa-helper/internal/http/response"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
)

// Handler управляет HTTP-запросами на одобрение вопросов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики одобрения вопроса.
type Service interface {
	Approve(ctx context.Context, questionID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Одобрить вопрос
// @Description Переводит вопрос из PENDING в APPROVED, делая его публично видимым.
// @Tags Admin
// @Produce  json
// @Param id path int true "ID вопроса"
// @Success 200 {object} map[string]any "Вопрос одобрен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или вопрос уже обработан"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Вопрос не найден"
// @Router /admin/questions/{id}/approve [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.questionapprove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	if err := h.service.Approve(r.Context(), id); err != nil {
		log.Error("failed to approve question", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not approve question"))
		return
	}

	log.Info("question approved", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     id,
		"status": models.QuestionStatusApproved,
	}))
}
