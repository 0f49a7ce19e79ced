package email

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type captureWriter struct {
	buf bytes.Buffer
}

func (w *captureWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *captureWriter) Close() error                { return nil }

type stubNews struct {
	articles []models.NewsArticle
}

func (s *stubNews) Get(_ context.Context, _, _ string) ([]models.NewsArticle, error) {
	return s.articles, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func summaryJob() models.SummaryJob {
	return models.SummaryJob{
		UserUID: "user-1",
		Email:   "user@example.com",
		Holdings: []models.Holding{
			{
				ID:     "h1",
				Ticker: "AAPL",
				Amount: 10,
				CurrentData: &models.Quote{
					CurrentPrice:  150.25,
					PreviousClose: 149.50,
					DayHigh:       151.00,
					DayLow:        148.75,
					CompanyName:   "Apple Inc.",
				},
			},
			{ID: "h2", Ticker: "BRKN", Amount: 1},
		},
	}
}

func TestSendSummary(t *testing.T) {
	writer := &captureWriter{}
	client := new(MockSMTPClient)
	client.On("Mail", "sender@example.com").Return(nil)
	client.On("Rcpt", "user@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	client.On("Close").Return(nil)
	client.On("Quit").Return(nil)

	transport := new(MockTransport)
	transport.On("Connect").Return(client, nil)
	transport.On("GetSMTPUser").Return("sender@example.com")

	news := &stubNews{articles: []models.NewsArticle{
		{Title: "Apple Hits New High"},
		{Title: "Analysts Upbeat On Apple"},
		{Title: "Third Article Never Makes The Cut"},
	}}
	svc := NewSenderService(transport, news, discardLogger())

	err := svc.SendSummary(context.Background(), summaryJob())
	require.NoError(t, err)

	sent := writer.buf.String()
	assert.Contains(t, sent, "Subject: Your Daily Portfolio Summary")
	assert.Contains(t, sent, "Apple Inc. (AAPL)")
	assert.Contains(t, sent, "Current price: $150.25 (previous close $149.50)")
	assert.Contains(t, sent, "Day range: $148.75 - $151.00")
	assert.Contains(t, sent, "Position: 10.00 shares, $1502.50")
	// только две первые новости
	assert.Contains(t, sent, "Apple Hits New High")
	assert.Contains(t, sent, "Analysts Upbeat On Apple")
	assert.NotContains(t, sent, "Third Article Never Makes The Cut")
	// позиция без снимка котировки в письмо не попадает
	assert.NotContains(t, sent, "BRKN")

	client.AssertExpectations(t)
	transport.AssertExpectations(t)
}

func TestSendSummary_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Connect").Return(nil, assert.AnError)
	transport.On("GetSMTPUser").Return("sender@example.com")

	svc := NewSenderService(transport, &stubNews{}, discardLogger())

	err := svc.SendSummary(context.Background(), summaryJob())
	require.Error(t, err)
}

func TestSendSummaryFromMessage_BadPayload(t *testing.T) {
	svc := NewSenderService(new(MockTransport), &stubNews{}, discardLogger())

	err := svc.SendSummaryFromMessage(context.Background(), []byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error unmarshalling message")
}
