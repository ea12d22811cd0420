// Package questionreject реализует административный HTTP-обработчик
// отклонения вопроса с необязательным примечанием.
package questionreject

import (
	"context"
	"encoding/json"
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

// Handler управляет HTTP-запросами на отклонение вопросов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отклонения вопроса.
type Service interface {
	Reject(ctx context.Context, questionID int, reason string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отклонить вопрос
// @Description Переводит вопрос из PENDING в REJECTED с необязательным примечанием.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID вопроса"
// @Param request body models.DummyReject false "Причина отклонения"
// @Success 200 {object} map[string]any "Вопрос отклонен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или вопрос уже обработан"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Вопрос не найден"
// @Router /admin/questions/{id}/reject [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.questionreject"

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

	// Тело запроса необязательно: отклонение без причины допустимо.
	var req models.DummyReject
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.service.Reject(r.Context(), id, req.Reason); err != nil {
		log.Error("failed to reject question", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not reject question"))
		return
	}

	log.Info("question rejected", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     id,
		"status": models.QuestionStatusRejected,
	}))
}
