package commentlist

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

// Handler обрабатывает запросы на список комментариев одобренного вопроса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики комментариев.
type Service interface {
	ListComments(ctx context.Context, questionID int) ([]*models.Comment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список комментариев вопроса
// @Description Возвращает комментарии одобренного вопроса.
// @Tags Comments
// @Produce  json
// @Param id path int true "ID вопроса"
// @Success 200 {object} map[string]any "Список комментариев"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Вопрос не найден"
// @Router /questions/{id}/comments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	questionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	comments, err := h.service.ListComments(r.Context(), questionID)
	if err != nil {
		log.Error("failed to list comments", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not list comments"))
		return
	}

	log.Info("comments listed", slog.Int("count", len(comments)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(comments),
		"comments":   comments,
	}))
}
