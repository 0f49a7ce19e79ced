// Package portfoliotracker собирает и запускает основное HTTP-приложение.
package portfoliotracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/portfolio-tracker/internal/cache"
	"github.com/magabrotheeeer/portfolio-tracker/internal/config"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/portfolio-tracker/internal/marketdata"
	"github.com/magabrotheeeer/portfolio-tracker/internal/migrations"
	"github.com/magabrotheeeer/portfolio-tracker/internal/news"
	"github.com/magabrotheeeer/portfolio-tracker/internal/ratelimit"
	authservice "github.com/magabrotheeeer/portfolio-tracker/internal/services/auth"
	emailservice "github.com/magabrotheeeer/portfolio-tracker/internal/services/email"
	portfolioservice "github.com/magabrotheeeer/portfolio-tracker/internal/services/portfolio"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage/memory"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage/postgres"
)

// summaryQueueSize вместимость очереди фоновой отправки сводок.
const summaryQueueSize = 64

// Storage объединяет репозитории, которые использует приложение.
type Storage interface {
	storage.UserRepository
	storage.PortfolioRepository
	storage.PreferenceRepository
}

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *postgres.Storage
	dispatcher *emailservice.Dispatcher
	sensitive  *ratelimit.FixedWindow
}

// New собирает приложение: хранилище, кеш, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var db Storage
	var pg *postgres.Storage
	switch cfg.Storage.Driver {
	case "postgres":
		var err error
		pg, err = postgres.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(pg.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		db = pg
	case "", "memory":
		db = memory.New()
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	var newsCache cache.Cache
	switch cfg.NewsCache.Backend {
	case "redis":
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		newsCache = redisCache
	case "", "memory":
		newsCache = cache.NewMemory(cfg.NewsCache.Capacity)
	default:
		return nil, fmt.Errorf("unknown news cache backend: %s", cfg.NewsCache.Backend)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	marketProvider := marketdata.NewMockProvider(logger)
	newsService := news.NewService(news.NewMockProvider(logger), newsCache, cfg.NewsCache.TTL, logger)

	authService := authservice.New(db, jwtMaker, logger)
	portfolioService := portfolioservice.New(db, marketProvider, newsService, logger)

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := emailservice.NewSenderService(transport, newsService, logger)
	dispatcher := emailservice.NewDispatcher(senderService, summaryQueueSize, logger)

	defaultLimiter := ratelimit.NewMovingWindow(cfg.RateLimit.DefaultLimit, cfg.RateLimit.DefaultWindow)
	sensitiveLimiter := ratelimit.NewFixedWindow(cfg.RateLimit.SensitiveLimit, cfg.RateLimit.SensitiveWindow)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, RouteDeps{
		JWTMaker:         jwtMaker,
		AuthService:      authService,
		PortfolioService: portfolioService,
		Storage:          db,
		Dispatcher:       dispatcher,
		DefaultLimiter:   defaultLimiter,
		SensitiveLimiter: sensitiveLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         pg,
		dispatcher: dispatcher,
		sensitive:  sensitiveLimiter,
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
		a.dispatcher.Stop()
		a.sensitive.Close()
		if a.db != nil {
			if closeErr := a.db.Close(); closeErr != nil {
				a.logger.Error("failed to close storage", slog.Any("err", closeErr))
			}
		}
		return err
	}
}
