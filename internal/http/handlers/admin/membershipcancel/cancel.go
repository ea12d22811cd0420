// Package membershipcancel реализует административный HTTP-обработчик
// немедленной отмены подписки.
package membershipcancel

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

// Handler управляет HTTP-запросами на отмену подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики отмены подписки.
type Service interface {
	Cancel(ctx context.Context, userMembershipID int) error
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
// @Summary Отменить подписку
// @Description Немедленно отменяет подписку: статус становится CANCELLED, квоты перестают действовать.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyCancel true "Идентификатор подписки"
// @Success 200 {object} map[string]any "Подписка отменена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/memberships/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.membershipcancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCancel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	if err := h.service.Cancel(r.Context(), req.UserMembershipID); err != nil {
		log.Error("failed to cancel membership", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not cancel membership"))
		return
	}

	log.Info("membership cancelled", slog.Int("user_membership_id", req.UserMembershipID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_membership_id": req.UserMembershipID,
		"message":            "membership cancelled",
	}))
}
