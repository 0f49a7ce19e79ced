// Package email содержит составление и отправку сводок по портфелю:
// SenderService формирует письмо и отправляет его через SMTP,
// Dispatcher выполняет фоновую отправку внутри API-процесса.
package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

// NewsGetter источник новостей для блока новостей в письме.
type NewsGetter interface {
	Get(ctx context.Context, companyName, ticker string) ([]models.NewsArticle, error)
}

// SenderService отправляет сводки по портфелю на email.
type SenderService struct {
	transport smtp.TransportInterface
	news      NewsGetter
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, news NewsGetter, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		news:      news,
		log:       log,
	}
}

// SendSummaryFromMessage разбирает задание из очереди и отправляет сводку.
func (s *SenderService) SendSummaryFromMessage(ctx context.Context, body []byte) error {
	var job models.SummaryJob
	if err := json.Unmarshal(body, &job); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	return s.SendSummary(ctx, job)
}

// SendSummary составляет и отправляет письмо со сводкой по портфелю.
// Позиции без снимка котировки в письмо не попадают.
func (s *SenderService) SendSummary(ctx context.Context, job models.SummaryJob) error {
	bodyText := s.composeSummary(ctx, job)
	subject := "Your Daily Portfolio Summary"

	if err := s.sendEmail([]string{job.Email}, subject, bodyText); err != nil {
		return err
	}
	s.log.Info("portfolio summary sent",
		slog.String("user_uid", job.UserUID), slog.String("email", job.Email))
	return nil
}

func (s *SenderService) composeSummary(ctx context.Context, job models.SummaryJob) string {
	var b strings.Builder
	b.WriteString("Hello!\n\nHere is your portfolio summary:\n\n")

	for _, holding := range job.Holdings {
		quote := holding.CurrentData
		if quote == nil {
			s.log.Warn("holding has no quote snapshot, skipping",
				slog.String("ticker", holding.Ticker))
			continue
		}

		fmt.Fprintf(&b, "%s (%s)\n", quote.CompanyName, holding.Ticker)
		fmt.Fprintf(&b, "  Current price: $%.2f (previous close $%.2f)\n",
			quote.CurrentPrice, quote.PreviousClose)
		fmt.Fprintf(&b, "  Day range: $%.2f - $%.2f\n", quote.DayLow, quote.DayHigh)
		fmt.Fprintf(&b, "  Position: %.2f shares, $%.2f\n",
			holding.Amount, holding.Amount*quote.CurrentPrice)

		articles, err := s.news.Get(ctx, quote.CompanyName, holding.Ticker)
		if err != nil {
			s.log.Warn("failed to fetch news for summary",
				slog.String("ticker", holding.Ticker), sl.Err(err))
		}
		if len(articles) > 2 {
			articles = articles[:2]
		}
		for _, article := range articles {
			fmt.Fprintf(&b, "  News: %s\n", article.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("Have a great day!\n")
	return b.String()
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}
	return nil
}
