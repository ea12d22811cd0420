// Package visahelper предоставляет маршруты для основного приложения.
package visahelper

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/visahelper/visa-helper/internal/http/handlers/admin/membershipcancel"
	"github.com/visahelper/visa-helper/internal/http/handlers/admin/membershipextend"
	"github.com/visahelper/visa-helper/internal/http/handlers/admin/membershipgrant"
	"github.com/visahelper/visa-helper/internal/http/handlers/admin/plancreate"
	"github.com/visahelper/visa-helper/internal/http/handlers/admin/questionapprove"
	"github.com/visahelper/visa-helper/internal/http/handlers/admin/questionlist"
	"github.com/visahelper/visa-helper/internal/http/handlers/admin/questionreject"
	"github.com/visahelper/visa-helper/internal/http/handlers/auth/login"
	"github.com/visahelper/visa-helper/internal/http/handlers/auth/register"
	"github.com/visahelper/visa-helper/internal/http/handlers/comment/commentcreate"
	"github.com/visahelper/visa-helper/internal/http/handlers/comment/commentlist"
	"github.com/visahelper/visa-helper/internal/http/handlers/comment/videocommentcreate"
	"github.com/visahelper/visa-helper/internal/http/handlers/content/blogcreate"
	"github.com/visahelper/visa-helper/internal/http/handlers/content/blogdelete"
	"github.com/visahelper/visa-helper/internal/http/handlers/content/bloglist"
	"github.com/visahelper/visa-helper/internal/http/handlers/content/blogread"
	"github.com/visahelper/visa-helper/internal/http/handlers/content/blogupdate"
	"github.com/visahelper/visa-helper/internal/http/handlers/content/sectionlist"
	"github.com/visahelper/visa-helper/internal/http/handlers/health"
	"github.com/visahelper/visa-helper/internal/http/handlers/membership/planlist"
	"github.com/visahelper/visa-helper/internal/http/handlers/payment/paymentcreate"
	"github.com/visahelper/visa-helper/internal/http/handlers/payment/paymentlist"
	"github.com/visahelper/visa-helper/internal/http/handlers/payment/paymentwebhook"
	"github.com/visahelper/visa-helper/internal/http/handlers/question/create"
	"github.com/visahelper/visa-helper/internal/http/handlers/question/list"
	"github.com/visahelper/visa-helper/internal/http/handlers/question/read"
	"github.com/visahelper/visa-helper/internal/http/handlers/suggestion/suggest"
	"github.com/visahelper/visa-helper/internal/http/handlers/usage/check"
	"github.com/visahelper/visa-helper/internal/http/middlewarectx"
	"github.com/visahelper/visa-helper/internal/models"
	authservice "github.com/visahelper/visa-helper/internal/services/auth"
	contentservice "github.com/visahelper/visa-helper/internal/services/content"
	membershipservice "github.com/visahelper/visa-helper/internal/services/membership"
	moderationservice "github.com/visahelper/visa-helper/internal/services/moderation"
	paymentservice "github.com/visahelper/visa-helper/internal/services/payment"
	suggestionservice "github.com/visahelper/visa-helper/internal/services/suggestion"
	usageservice "github.com/visahelper/visa-helper/internal/services/usage"
)

// Services объединяет бизнес-сервисы, нужные маршрутам.
type Services struct {
	Auth       *authservice.Service
	Usage      *usageservice.Service
	Membership *membershipservice.Service
	Moderation *moderationservice.Service
	Content    *contentservice.Service
	Payment    *paymentservice.Service
	Suggestion *suggestionservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

		// Публичный контент
		r.Get("/blogs", bloglist.New(logger, s.Content).ServeHTTP)
		r.Get("/blogs/{id}", blogread.New(logger, s.Content).ServeHTTP)
		r.Get("/visa-info", sectionlist.New(logger, s.Content, sectionlist.SectionVisaInfo).ServeHTTP)
		r.Get("/videos", sectionlist.New(logger, s.Content, sectionlist.SectionVideos).ServeHTTP)
		r.Get("/files", sectionlist.New(logger, s.Content, sectionlist.SectionFiles).ServeHTTP)
		r.Get("/fvisa-questions", sectionlist.New(logger, s.Content, sectionlist.SectionFVisa).ServeHTTP)
		r.Get("/bvisa-questions", sectionlist.New(logger, s.Content, sectionlist.SectionBVisa).ServeHTTP)
		r.Get("/memberships", planlist.New(logger, s.Membership).ServeHTTP)

		// Публичная доска вопросов (только одобренные)
		r.Get("/questions", list.New(logger, s.Moderation).ServeHTTP)
		r.Get("/questions/{id}", read.New(logger, s.Moderation).ServeHTTP)
		r.Get("/questions/{id}/comments", commentlist.New(logger, s.Moderation).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/questions", create.New(logger, s.Moderation).ServeHTTP)
			r.Post("/questions/{id}/comments", commentcreate.New(logger, s.Moderation).ServeHTTP)
			r.Post("/videos/{id}/comments", videocommentcreate.New(logger, s.Moderation).ServeHTTP)
			r.Get("/usage", check.New(logger, s.Usage).ServeHTTP)
			r.Get("/suggestions", suggest.New(logger, s.Suggestion).ServeHTTP)
			r.Post("/payments", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, s.Payment).ServeHTTP)

			// Административная группа
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))
				r.Post("/memberships", plancreate.New(logger, s.Membership).ServeHTTP)
				r.Post("/memberships/grant", membershipgrant.New(logger, s.Membership).ServeHTTP)
				r.Post("/memberships/extend", membershipextend.New(logger, s.Membership).ServeHTTP)
				r.Post("/memberships/cancel", membershipcancel.New(logger, s.Membership).ServeHTTP)
				r.Get("/questions", questionlist.New(logger, s.Moderation, models.QuestionStatusApproved).ServeHTTP)
				r.Get("/questions/queue", questionlist.New(logger, s.Moderation, models.QuestionStatusPending).ServeHTTP)
				r.Post("/questions/{id}/approve", questionapprove.New(logger, s.Moderation).ServeHTTP)
				r.Post("/questions/{id}/reject", questionreject.New(logger, s.Moderation).ServeHTTP)
				r.Post("/blogs", blogcreate.New(logger, s.Content).ServeHTTP)
				r.Put("/blogs/{id}", blogupdate.New(logger, s.Content).ServeHTTP)
				r.Delete("/blogs/{id}", blogdelete.New(logger, s.Content).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/payments/webhook", paymentwebhook.New(logger, s.Payment).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
