// Package suggest реализует HTTP-обработчик генерации AI-подсказок.
//
// Тема передаётся в query-параметре topic. При исчерпанной квоте
// возвращается 429 вместе с текущим состоянием квоты.
package suggest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/visahelper/visa-helper/internal/http/middlewarectx"
	"github.com/visahelper/visa-helper/internal/http/response"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
	"github.com/visahelper/visa-helper/internal/services/suggestion"
)

// Handler обрабатывает запросы на генерацию подсказок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сервиса подсказок.
type Service interface {
	Suggest(ctx context.Context, userUID, topic string) (*suggestion.Result, *models.UsageInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сгенерировать AI-подсказки
// @Description Генерирует список вопросов-подсказок по теме. Расходует одну единицу квоты.
// @Tags Suggestions
// @Produce  json
// @Param topic query string false "Тема подсказок"
// @Success 200 {object} map[string]any "Список подсказок и состояние квоты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 429 {object} response.ErrorResponse "Квота исчерпана"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /suggestions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.suggestion.suggest"

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

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = "general"
	}

	res, info, err := h.service.Suggest(r.Context(), userUID, topic)
	if err != nil {
		if errors.Is(err, suggestion.ErrQuotaExceeded) {
			log.Info("quota exceeded", slog.Int("used", info.Used), slog.Int("limit", info.Limit))
			w.WriteHeader(http.StatusTooManyRequests)
			render.JSON(w, r, response.Response{
				Status: response.StatusError,
				Error:  "ai suggestion quota exceeded",
				Data:   info,
			})
			return
		}
		log.Error("failed to generate suggestions", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not generate suggestions"))
		return
	}

	log.Info("suggestions generated", slog.Int("count", len(res.Suggestions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"suggestions": res.Suggestions,
		"usage":       res.Usage,
	}))
}
