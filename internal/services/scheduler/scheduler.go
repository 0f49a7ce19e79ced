// Package scheduler периодически собирает портфели пользователей с
// ежедневной рассылкой и публикует задания на отправку сводок в очередь.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
	"github.com/magabrotheeeer/portfolio-tracker/internal/storage"
)

// Publisher публикует задание в очередь. Выделен для подмены в тестах.
type Publisher func(ch *amqp.Channel, exchange, routingKey string, message any) error

// Service находит пользователей с ежедневной рассылкой и формирует
// для них задания SummaryJob.
type Service struct {
	prefs      storage.PreferenceRepository
	users      storage.UserRepository
	portfolios storage.PortfolioRepository
	publish    Publisher
	log        *slog.Logger
}

// New создает новый экземпляр Service.
func New(prefs storage.PreferenceRepository, users storage.UserRepository, portfolios storage.PortfolioRepository, log *slog.Logger) *Service {
	return &Service{
		prefs:      prefs,
		users:      users,
		portfolios: portfolios,
		publish:    rabbitmq.PublishMessage,
		log:        log,
	}
}

// PublishDailySummaries публикует задания сразу и затем раз в сутки,
// пока контекст не отменен.
func (s *Service) PublishDailySummaries(ctx context.Context, channel *amqp.Channel) {
	s.runPublishDailySummaries(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runPublishDailySummaries(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) runPublishDailySummaries(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting daily summary run")

	prefs, err := s.prefs.ListByFrequency(ctx, models.FrequencyDaily)
	if err != nil {
		s.log.Error("failed to list daily preferences", sl.Err(err))
		return
	}
	if len(prefs) == 0 {
		s.log.Info("no users with daily summaries")
		return
	}
	s.log.Info("found users with daily summaries", "count", len(prefs))

	for _, pref := range prefs {
		job, err := s.buildJob(ctx, pref.UserUID)
		if err != nil {
			s.log.Error("failed to build summary job",
				slog.String("user_uid", pref.UserUID), sl.Err(err))
			continue
		}
		if len(job.Holdings) == 0 {
			s.log.Info("user has empty portfolio, skipping",
				slog.String("user_uid", pref.UserUID))
			continue
		}
		if err := s.publish(channel, rabbitmq.SummariesExchange, "daily", job); err != nil {
			s.log.Error("failed to publish summary job",
				slog.String("user_uid", pref.UserUID), sl.Err(err))
		}
	}
}

func (s *Service) buildJob(ctx context.Context, userUID string) (*models.SummaryJob, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.portfolios.ListHoldings(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return &models.SummaryJob{
		UserUID:  user.UID,
		Email:    user.Email,
		Holdings: holdings,
	}, nil
}
