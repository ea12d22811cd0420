// Package paymentwebhook реализует HTTP-обработчик подтверждения платежа
// платёжным провайдером. Успешное подтверждение выдаёт покупателю подписку.
package paymentwebhook

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

// Handler управляет HTTP-запросами подтверждения платежей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подтверждения платежа.
type Service interface {
	Confirm(ctx context.Context, req models.DummyPaymentConfirm) error
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
// @Summary Подтверждение платежа
// @Description Принимает результат оплаты от платежного провайдера.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPaymentConfirm true "Результат оплаты"
// @Success 200 {object} map[string]any "Платеж обработан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или повторное подтверждение"
// @Failure 404 {object} response.ErrorResponse "Платеж не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPaymentConfirm
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

	if err := h.service.Confirm(r.Context(), req); err != nil {
		log.Error("failed to confirm payment", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not confirm payment"))
		return
	}

	log.Info("payment confirmed", slog.String("transaction_id", req.TransactionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transaction_id": req.TransactionID,
		"message":        "payment processed",
	}))
}
