package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/visahelper/visa-helper/internal/http/response"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
)

// Handler обрабатывает запросы на публичный список одобренных вопросов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики публичного списка вопросов.
type Service interface {
	ListPublic(ctx context.Context, limit, offset int) ([]*models.Question, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Публичный список вопросов
// @Description Возвращает одобренные вопросы с пагинацией.
// @Tags Questions
// @Produce  json
// @Param limit query int false "Максимум записей" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список вопросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /questions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	questions, err := h.service.ListPublic(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list questions", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not list questions"))
		return
	}

	log.Info("questions listed", slog.Int("count", len(questions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(questions),
		"questions":  questions,
	}))
}
