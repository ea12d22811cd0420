// Package sl содержит вспомогательные функции для структурированного
// логирования через slog в обработчиках и сервисах приложения.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Используется для единообразного вывода ошибок во всех слоях:
//
//	log.Error("failed to grant membership", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
