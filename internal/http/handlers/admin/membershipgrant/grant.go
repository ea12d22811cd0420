// Package membershipgrant реализует административный HTTP-обработчик
// выдачи подписки пользователю.
package membershipgrant

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

// Handler управляет HTTP-запросами на выдачу подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выдачи подписки.
type Service interface {
	Grant(ctx context.Context, userUID string, membershipID int) (int, error)
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
// @Summary Выдать подписку
// @Description Выдает пользователю подписку на тариф. Повторная выдача действующего тарифа отклоняется.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyGrant true "Пользователь и тариф"
// @Success 200 {object} map[string]any "Подписка выдана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или конфликт"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь или тариф не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/memberships/grant [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.membershipgrant"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyGrant
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

	id, err := h.service.Grant(r.Context(), req.UserUID, req.MembershipID)
	if err != nil {
		log.Error("failed to grant membership", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not grant membership"))
		return
	}

	log.Info("membership granted", slog.Int("user_membership_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_membership_id": id,
	}))
}
