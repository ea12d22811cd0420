package models

import "time"

// Статусы подписки пользователя.
const (
	MembershipStatusActive    = "ACTIVE"
	MembershipStatusCancelled = "CANCELLED"
)

// Membership описывает тарифный план — справочные данные,
// управляемые администратором. Название вводится свободным текстом,
// поэтому движок квот сопоставляет его с уровнем по ключевым словам.
type Membership struct {
	ID           int       // Идентификатор тарифа
	Name         string    // Название тарифа
	Price        int       // Цена тарифа
	DurationDays int       // Длительность подписки в днях
	Features     string    // Список возможностей тарифа (текст)
	IsActive     bool      // Доступен ли тариф для покупки
	DisplayOrder int       // Порядок отображения
	CreatedAt    time.Time // Дата создания
}

// UserMembership — экземпляр подписки, связывающий пользователя с тарифом.
//
// У пользователя может быть несколько записей (история); текущей для квот
// считается ACTIVE-запись с наибольшей EndDate в будущем.
type UserMembership struct {
	ID           int       // Идентификатор подписки
	UserUID      string    // Идентификатор пользователя
	MembershipID int       // Идентификатор тарифа
	StartDate    time.Time // Дата начала подписки
	EndDate      time.Time // Дата окончания подписки
	Status       string    // ACTIVE или CANCELLED
	CreatedAt    time.Time // Дата создания записи
}

// DummyMembership используется для приёма данных тарифа из JSON-запроса.
type DummyMembership struct {
	Name         string `json:"name" validate:"required"`
	Price        int    `json:"price" validate:"gte=0"`
	DurationDays int    `json:"duration_days" validate:"required,gt=0"`
	Features     string `json:"features,omitempty"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

// DummyGrant используется для приёма запроса на выдачу подписки.
type DummyGrant struct {
	UserUID      string `json:"user_uid" validate:"required,uuid"`
	MembershipID int    `json:"membership_id" validate:"required,gt=0"`
}

// DummyExtend используется для приёма запроса на продление подписки.
// Диапазон дней проверяется бизнес-логикой, границы [1, 365] —
// выход за диапазон, включая 0, отдаётся одним статусом 400.
type DummyExtend struct {
	UserMembershipID int `json:"user_membership_id" validate:"required,gt=0"`
	Days             int `json:"days"`
}

// DummyCancel используется для приёма запроса на отмену подписки.
type DummyCancel struct {
	UserMembershipID int `json:"user_membership_id" validate:"required,gt=0"`
}

// UsageInfo — результат проверки квоты AI-подсказок пользователя.
type UsageInfo struct {
	Used           int    `json:"used"`            // Использовано за текущий период
	Limit          int    `json:"limit"`           // Квота текущего тарифа
	Remaining      int    `json:"remaining"`       // Остаток квоты, не меньше нуля
	CanUse         bool   `json:"can_use"`         // Доступна ли ещё одна генерация
	MembershipType string `json:"membership_type"` // Название активного тарифа, пустое без подписки
}
