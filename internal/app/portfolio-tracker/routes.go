// Package portfoliotracker предоставляет маршруты для основного приложения.
package portfoliotracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/auth/emailonly"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/auth/login"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/auth/register"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/auth/upgrade"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/email/preferences"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/email/sendsummary"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/health"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/portfolio/add"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/portfolio/analysis"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/portfolio/list"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/handlers/portfolio/remove"
	"github.com/magabrotheeeer/portfolio-tracker/internal/http-server/mware"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/portfolio-tracker/internal/ratelimit"
	authservice "github.com/magabrotheeeer/portfolio-tracker/internal/services/auth"
	emailservice "github.com/magabrotheeeer/portfolio-tracker/internal/services/email"
	portfolioservice "github.com/magabrotheeeer/portfolio-tracker/internal/services/portfolio"
)

// RouteDeps зависимости, необходимые для регистрации маршрутов.
type RouteDeps struct {
	JWTMaker         jwt.Maker
	AuthService      *authservice.Service
	PortfolioService *portfolioservice.Service
	Storage          Storage
	Dispatcher       *emailservice.Dispatcher
	DefaultLimiter   ratelimit.Limiter
	SensitiveLimiter ratelimit.Limiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps RouteDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		mware.RequestIDHeader,
		mware.RateLimitMiddleware(deps.DefaultLimiter, ratelimit.KeyByAddress, logger),
	)

	// Открытые конечные точки
	r.Post("/auth/register", register.New(logger, deps.AuthService).ServeHTTP)
	r.Post("/auth/login", login.New(logger, deps.AuthService).ServeHTTP)
	r.Post("/auth/email-only", emailonly.New(logger, deps.AuthService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(mware.JWTMiddleware(deps.JWTMaker, logger))
		r.Post("/auth/upgrade-premium", upgrade.New(logger, deps.AuthService).ServeHTTP)
		r.Post("/portfolio/holdings", add.New(logger, deps.PortfolioService).ServeHTTP)
		r.Get("/portfolio/holdings", list.New(logger, deps.PortfolioService).ServeHTTP)
		r.Delete("/portfolio/holdings/{id}", remove.New(logger, deps.PortfolioService).ServeHTTP)
		r.With(mware.RateLimitMiddleware(deps.SensitiveLimiter, ratelimit.KeyByAddressPath, logger)).
			Get("/portfolio/analysis", analysis.New(logger, deps.PortfolioService).ServeHTTP)
		r.Post("/email/preferences", preferences.New(logger, deps.Storage).ServeHTTP)
		r.Post("/email/send-summary", sendsummary.New(logger, deps.Storage, deps.Storage, deps.Dispatcher).ServeHTTP)
	})

	r.With(mware.RateLimitMiddleware(deps.SensitiveLimiter, ratelimit.KeyByAddressPath, logger)).
		Get("/healthz", health.New(logger, map[string]health.Checker{
			"storage": func() string { return "ok" },
		}).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
