// Package questionlist реализует административный HTTP-обработчик списка
// вопросов по статусу. Статус по умолчанию задаётся при создании Handler,
// что позволяет монтировать один обработчик и на общий список, и на
// очередь модерации.
package questionlist

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

// Handler обрабатывает запросы на административный список вопросов.
type Handler struct {
	log           *slog.Logger
	service       Service
	defaultStatus string
}

// Service описывает интерфейс бизнес-логики списка вопросов по статусу.
type Service interface {
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Question, error)
}

// New создает новый Handler. defaultStatus используется, когда
// query-параметр status не передан.
func New(log *slog.Logger, service Service, defaultStatus string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		defaultStatus: defaultStatus,
	}
}

// ServeHTTP godoc
// @Summary Список вопросов по статусу
// @Description Возвращает вопросы в заданном статусе для модерации.
// @Tags Admin
// @Produce  json
// @Param status query string false "Статус вопросов (PENDING, APPROVED, REJECTED)"
// @Param limit query int false "Максимум записей" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список вопросов"
// @Failure 400 {object} response.ErrorResponse "Неизвестный статус"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Router /admin/questions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.questionlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := r.URL.Query().Get("status")
	if status == "" {
		status = h.defaultStatus
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	questions, err := h.service.ListByStatus(r.Context(), status, limit, offset)
	if err != nil {
		log.Error("failed to list questions", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not list questions"))
		return
	}

	log.Info("questions listed", slog.String("status", status), slog.Int("count", len(questions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status":     status,
		"list_count": len(questions),
		"questions":  questions,
	}))
}
