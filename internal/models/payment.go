package models

import "time"

// Статусы платежа.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// Payment — аудиторская запись попытки покупки тарифа.
// Создаётся до перенаправления на платёжного провайдера
// и никогда не изменяется движком квот.
type Payment struct {
	ID            int       // Идентификатор платежа
	UserUID       string    // Покупатель
	MembershipID  int       // Покупаемый тариф
	Amount        int       // Сумма платежа
	Method        string    // Способ оплаты
	Status        string    // PENDING, COMPLETED или FAILED
	TransactionID string    // Уникальный идентификатор транзакции
	CreatedAt     time.Time // Дата создания
}

// DummyPayment используется для приёма запроса на создание платежа.
type DummyPayment struct {
	MembershipID int    `json:"membership_id" validate:"required,gt=0"`
	Method       string `json:"method" validate:"required"`
}

// DummyPaymentConfirm используется для приёма подтверждения платежа
// от платёжного провайдера (симулируется).
type DummyPaymentConfirm struct {
	TransactionID string `json:"transaction_id" validate:"required,uuid"`
	Status        string `json:"status" validate:"required"`
}
