package bloglist

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

// Handler обрабатывает запросы на публичный список записей блога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка блога.
type Service interface {
	ListBlogs(ctx context.Context) ([]*models.Blog, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список записей блога
// @Description Возвращает опубликованные записи блога в порядке отображения.
// @Tags Content
// @Produce  json
// @Success 200 {object} map[string]any "Список записей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /blogs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.bloglist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	blogs, err := h.service.ListBlogs(r.Context())
	if err != nil {
		log.Error("failed to list blogs", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not list blogs"))
		return
	}

	log.Info("blogs listed", slog.Int("count", len(blogs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(blogs),
		"blogs":      blogs,
	}))
}
