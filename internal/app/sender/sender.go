// Package sender собирает приложение отправки сводок из очереди.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/portfolio-tracker/internal/cache"
	"github.com/magabrotheeeer/portfolio-tracker/internal/config"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/portfolio-tracker/internal/news"
	emailservice "github.com/magabrotheeeer/portfolio-tracker/internal/services/email"
)

// App представляет приложение отправки сводок.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *emailservice.SenderService
	logger        *slog.Logger
}

// New создает новый экземпляр приложения отправки сводок.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetSummaryQueues())
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		return nil, err
	}

	newsCache := cache.NewMemory(cfg.NewsCache.Capacity)
	newsService := news.NewService(news.NewMockProvider(logger), newsCache, cfg.NewsCache.TTL, logger)

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := emailservice.NewSenderService(transport, newsService, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	handler := func(body []byte) error {
		return a.senderService.SendSummaryFromMessage(ctx, body)
	}
	if err := rabbitmq.ConsumeMessages(ctx, a.ch, "summary.daily", handler); err != nil {
		a.logger.Error("failed to start summary.daily consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
