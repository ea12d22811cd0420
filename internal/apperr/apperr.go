// Package apperr определяет сигнальные ошибки бизнес-уровня.
//
// Обработчики HTTP сопоставляют их со статусами через errors.Is:
// ErrNotFound — 404, ErrInvalidArgument — 400, ErrConflict — 400
// с описательным сообщением.
package apperr

import "errors"

var (
	// ErrNotFound — запрошенная сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — входные данные вне допустимого диапазона.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict — операция нарушает текущее состояние записи.
	ErrConflict = errors.New("conflict")
)
