// Package visahelper собирает приложение: хранилище, кеш, брокер событий,
// AI-провайдер, бизнес-сервисы и HTTP-сервер.
package visahelper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/visahelper/visa-helper/internal/cache"
	"github.com/visahelper/visa-helper/internal/config"
	"github.com/visahelper/visa-helper/internal/lib/jwt"
	"github.com/visahelper/visa-helper/internal/lib/sl"
	"github.com/visahelper/visa-helper/internal/migrations"
	"github.com/visahelper/visa-helper/internal/rabbitmq"
	authservice "github.com/visahelper/visa-helper/internal/services/auth"
	contentservice "github.com/visahelper/visa-helper/internal/services/content"
	membershipservice "github.com/visahelper/visa-helper/internal/services/membership"
	moderationservice "github.com/visahelper/visa-helper/internal/services/moderation"
	paymentservice "github.com/visahelper/visa-helper/internal/services/payment"
	suggestionservice "github.com/visahelper/visa-helper/internal/services/suggestion"
	usageservice "github.com/visahelper/visa-helper/internal/services/usage"
	"github.com/visahelper/visa-helper/internal/storage/repository"
	"github.com/visahelper/visa-helper/internal/suggestionprovider"
)

// App инкапсулирует HTTP-сервер и ресурсы, требующие закрытия.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	provider *suggestionprovider.Client
}

// New создаёт приложение: подключает зависимости, прогоняет миграции,
// собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер событий необязателен: без него события просто не публикуются.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQConnection != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 3*time.Second)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupChannel(conn)
			if err != nil {
				logger.Warn("rabbitmq channel setup failed, events disabled", sl.Err(err))
			} else {
				publisher = rabbitmq.NewPublisher(ch)
			}
		}
	}

	var provider *suggestionprovider.Client
	if cfg.GeminiAPIKey != "" {
		provider, err = suggestionprovider.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("suggestion provider unavailable, fallback list will be used", sl.Err(err))
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authSvc := authservice.New(db, jwtMaker)
	usageSvc := usageservice.New(db, db, logger)
	membershipSvc := membershipservice.New(db, eventsOrNil(publisher), logger)
	moderationSvc := moderationservice.New(db, eventsOrNil(publisher), logger)
	contentSvc := contentservice.New(db, cacheRedis, logger)
	paymentSvc := paymentservice.New(db, membershipSvc, logger)
	suggestionSvc := suggestionservice.New(generatorOrNil(provider), usageSvc, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:       authSvc,
		Usage:      usageSvc,
		Membership: membershipSvc,
		Moderation: moderationSvc,
		Content:    contentSvc,
		Payment:    paymentSvc,
		Suggestion: suggestionSvc,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		provider: provider,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.provider != nil {
			_ = a.provider.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}

// eventsOrNil превращает nil-указатель в nil-интерфейс, чтобы проверки
// вида s.events == nil в сервисах работали корректно.
func eventsOrNil(p *rabbitmq.Publisher) membershipservice.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

func generatorOrNil(c *suggestionprovider.Client) suggestionservice.Generator {
	if c == nil {
		return nil
	}
	return c
}
