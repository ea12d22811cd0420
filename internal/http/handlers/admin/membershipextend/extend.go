// Package membershipextend реализует административный HTTP-обработчик
// продления подписки. Допустимый диапазон продления — от 1 до 365 дней.
package membershipextend

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

// Handler управляет HTTP-запросами на продление подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики продления подписки.
type Service interface {
	Extend(ctx context.Context, userMembershipID, days int) error
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
// @Summary Продлить подписку
// @Description Прибавляет дни к дате окончания подписки и возвращает ей статус ACTIVE.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyExtend true "Подписка и количество дней"
// @Success 200 {object} map[string]any "Подписка продлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или диапазон дней"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/memberships/extend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.membershipextend"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyExtend
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

	if err := h.service.Extend(r.Context(), req.UserMembershipID, req.Days); err != nil {
		log.Error("failed to extend membership", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not extend membership"))
		return
	}

	log.Info("membership extended", slog.Int("user_membership_id", req.UserMembershipID),
		slog.Int("days", req.Days))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_membership_id": req.UserMembershipID,
		"message":            "membership extended",
	}))
}
