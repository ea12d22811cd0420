// Package check реализует HTTP-обработчик для просмотра квоты AI-подсказок
// текущего пользователя. Запрос только читает состояние и не расходует квоту.
package check

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/visahelper/visa-helper/internal/http/middlewarectx"
	"github.com/visahelper/visa-helper/internal/http/response"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
)

// Handler обрабатывает запросы на просмотр состояния квоты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс движка квот.
type Service interface {
	CheckLimit(ctx context.Context, userUID string) (*models.UsageInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Состояние квоты AI-подсказок
// @Description Возвращает использование и лимит AI-подсказок текущего пользователя.
// @Tags Usage
// @Produce  json
// @Success 200 {object} map[string]any "Состояние квоты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /usage [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usage.check"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	info, err := h.service.CheckLimit(r.Context(), userUID)
	if err != nil {
		log.Error("failed to check usage limit", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not check usage limit"))
		return
	}

	log.Info("usage checked", slog.Int("used", info.Used), slog.Int("limit", info.Limit))
	render.JSON(w, r, response.StatusOKWithData(info))
}
