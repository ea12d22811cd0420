// Package sectionlist реализует HTTP-обработчик публичных списков разделов
// контента: справочные страницы, видео, файлы и визовые FAQ.
//
// Один Handler монтируется на несколько маршрутов — раздел задаётся при
// создании, что избавляет от пяти почти одинаковых обработчиков.
package sectionlist

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/visahelper/visa-helper/internal/http/response"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/models"
)

// Разделы контента, обслуживаемые обработчиком.
const (
	SectionVisaInfo = "visainfo"
	SectionVideos   = "videos"
	SectionFiles    = "files"
	SectionFVisa    = "fvisa"
	SectionBVisa    = "bvisa"
)

// Handler обрабатывает запросы на публичный список раздела контента.
type Handler struct {
	log     *slog.Logger
	service Service
	section string
}

// Service описывает интерфейс бизнес-логики списков контента.
type Service interface {
	ListVisaInfo(ctx context.Context) ([]*models.VisaInfo, error)
	ListVideos(ctx context.Context) ([]*models.Video, error)
	ListFiles(ctx context.Context) ([]*models.File, error)
	ListFVisaQuestions(ctx context.Context) ([]*models.FVisaQuestion, error)
	ListBVisaQuestions(ctx context.Context) ([]*models.BVisaQuestion, error)
}

// New создает новый Handler для заданного раздела контента.
func New(log *slog.Logger, service Service, section string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		section: section,
	}
}

// ServeHTTP godoc
// @Summary Список раздела контента
// @Description Возвращает опубликованные элементы раздела в порядке отображения.
// @Tags Content
// @Produce  json
// @Success 200 {object} map[string]any "Список элементов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /visa-info [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.sectionlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("section", h.section),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.list(r.Context())
	if err != nil {
		log.Error("failed to list section", sl.Err(err))
		w.WriteHeader(response.CodeForError(err))
		render.JSON(w, r, response.Error("could not list content"))
		return
	}

	log.Info("section listed")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"section": h.section,
		"items":   items,
	}))
}

func (h *Handler) list(ctx context.Context) (any, error) {
	switch h.section {
	case SectionVisaInfo:
		return h.service.ListVisaInfo(ctx)
	case SectionVideos:
		return h.service.ListVideos(ctx)
	case SectionFiles:
		return h.service.ListFiles(ctx)
	case SectionFVisa:
		return h.service.ListFVisaQuestions(ctx)
	case SectionBVisa:
		return h.service.ListBVisaQuestions(ctx)
	default:
		return nil, fmt.Errorf("unknown content section: %s", h.section)
	}
}
