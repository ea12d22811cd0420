// Package plancreate реализует административный HTTP-обработчик создания тарифа.
package plancreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/visahelper/visa-helper/internal/http/response"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
)

// Handler управляет HTTP-запросами на создание тарифов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания тарифа.
type Service interface {
	CreatePlan(ctx context.Context, req models.DummyMembership) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать тариф
// @Description Создает новый тариф подписки.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyMembership true "Данные тарифа"
// @Success 200 {object} map[string]any "Тариф создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/memberships [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.plancreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMembership
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := h.service.CreatePlan(r.Context(), req)
	if err != nil {
		log.Error("failed to create plan", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not create plan"))
		return
	}

	log.Info("plan created", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
