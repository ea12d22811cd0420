package models

import "time"

// Blog — запись блога. Публично видны только опубликованные записи,
// сортировка по DisplayOrder.
type Blog struct {
	ID           int       // Идентификатор записи
	Title        string    // Заголовок
	Content      string    // Текст записи
	Published    bool      // Опубликована ли запись
	DisplayOrder int       // Порядок отображения
	CreatedAt    time.Time // Дата создания
}

// VisaInfo — справочная страница по визовым вопросам.
type VisaInfo struct {
	ID           int
	Title        string
	Content      string
	Published    bool
	DisplayOrder int
	CreatedAt    time.Time
}

// Video — видеоматериал с внешней ссылкой.
type Video struct {
	ID           int
	Title        string
	URL          string // Ссылка на видео
	Published    bool
	DisplayOrder int
	CreatedAt    time.Time
}

// File — файл для скачивания. Хранение самих файлов внешнее,
// запись содержит только ссылку.
type File struct {
	ID           int
	Title        string
	URL          string // Ссылка на файл
	Published    bool
	DisplayOrder int
	CreatedAt    time.Time
}

// FVisaQuestion — часто задаваемый вопрос по визам категории F.
type FVisaQuestion struct {
	ID           int
	Question     string
	Answer       string
	Published    bool
	DisplayOrder int
	CreatedAt    time.Time
}

// BVisaQuestion — часто задаваемый вопрос по визам категории B.
type BVisaQuestion struct {
	ID           int
	Question     string
	Answer       string
	Published    bool
	DisplayOrder int
	CreatedAt    time.Time
}

// DummyBlog используется для приёма данных записи блога из JSON-запроса.
type DummyBlog struct {
	Title        string `json:"title" validate:"required"`
	Content      string `json:"content" validate:"required"`
	Published    bool   `json:"published"`
	DisplayOrder int    `json:"display_order"`
}
