package models

import "time"

// Статусы вопроса пользователя. Вопрос создаётся в статусе PENDING,
// переходы допустимы только PENDING -> APPROVED и PENDING -> REJECTED.
const (
	QuestionStatusPending  = "PENDING"
	QuestionStatusApproved = "APPROVED"
	QuestionStatusRejected = "REJECTED"
)

// Question — вопрос, заданный пользователем на доске вопросов.
// Публично видны только вопросы в статусе APPROVED.
type Question struct {
	ID          int       // Идентификатор вопроса
	UserUID     string    // Автор вопроса
	Title       string    // Заголовок вопроса
	Content     string    // Текст вопроса
	Status      string    // PENDING, APPROVED или REJECTED
	RejectNote  string    // Примечание администратора при отклонении
	CreatedAt   time.Time // Дата создания
	ModeratedAt *time.Time
}

// Comment — комментарий пользователя. Принадлежит ровно одному из
// двух родителей: вопросу или видео.
type Comment struct {
	ID         int       // Идентификатор комментария
	UserUID    string    // Автор комментария
	QuestionID *int      // Вопрос-родитель, nil если комментарий к видео
	VideoID    *int      // Видео-родитель, nil если комментарий к вопросу
	Content    string    // Текст комментария
	CreatedAt  time.Time // Дата создания
}

// DummyQuestion используется для приёма нового вопроса из JSON-запроса.
type DummyQuestion struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// DummyReject используется для приёма запроса на отклонение вопроса.
type DummyReject struct {
	Reason string `json:"reason,omitempty"`
}

// DummyComment используется для приёма нового комментария из JSON-запроса.
type DummyComment struct {
	Content string `json:"content" validate:"required"`
}
