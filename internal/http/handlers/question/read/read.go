// Package read реализует HTTP-обработчик для получения одобренного вопроса по ID.
//
// Вопросы, не прошедшие модерацию, для публики не существуют и возвращают 404.
package read

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

// Handler обрабатывает запросы на получение вопроса по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения вопроса.
type Service interface {
	GetPublic(ctx context.Context, questionID int) (*models.Question, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить вопрос
// @Description Возвращает одобренный вопрос по ID.
// @Tags Questions
// @Produce  json
// @Param id path int true "ID вопроса"
// @Success 200 {object} map[string]any "Данные вопроса"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Вопрос не найден"
// @Router /questions/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.read"

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

	question, err := h.service.GetPublic(r.Context(), id)
	if err != nil {
		log.Error("failed to read question", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not read question"))
		return
	}

	log.Info("question read", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"question": question,
	}))
}
