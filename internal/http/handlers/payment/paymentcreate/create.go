// Package paymentcreate реализует HTTP-обработчик создания платежа.
//
// Handler принимает JSON-запрос с тарифом и способом оплаты, создаёт
// PENDING-платёж и возвращает адрес перенаправления на платёжную страницу.
package paymentcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/visahelper/visa-helper/internal/http/middlewarectx"
	"github.com/visahelper/visa-helper/internal/http/response"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
	"github.com/visahelper/visa-helper/internal/services/payment"
)

// Handler управляет HTTP-запросами на создание платежей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyPayment) (*payment.CheckoutResult, error)
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
// @Summary Создать платеж
// @Description Создает платеж за тариф и возвращает адрес перенаправления на оплату.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPayment true "Данные платежа"
// @Success 200 {object} map[string]any "Платеж создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или недоступный тариф"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPayment
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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create payment", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not create payment"))
		return
	}

	log.Info("payment created", slog.String("transaction_id", res.TransactionID))
	render.JSON(w, r, response.StatusOKWithData(res))
}
