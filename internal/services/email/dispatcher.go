package email

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/portfolio-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-tracker/internal/models"
)

// ErrDispatcherStopped диспетчер остановлен и не принимает задания.
var ErrDispatcherStopped = errors.New("dispatcher stopped")

// ErrQueueFull очередь заданий заполнена.
var ErrQueueFull = errors.New("summary queue is full")

// Sender отправляет одну сводку.
type Sender interface {
	SendSummary(ctx context.Context, job models.SummaryJob) error
}

// Result итог обработки одного задания.
type Result struct {
	Job models.SummaryJob
	Err error
}

// Dispatcher выполняет отправку сводок в фоне. Задания принимаются в
// ограниченную очередь и обрабатываются одним воркером, клиент HTTP
// ответа на отправку не ждет.
type Dispatcher struct {
	sender  Sender
	log     *slog.Logger
	jobs    chan models.SummaryJob
	results chan Result

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

// NewDispatcher создает диспетчер с очередью указанной вместимости и
// запускает воркер.
func NewDispatcher(sender Sender, queueSize int, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		log:     log,
		jobs:    make(chan models.SummaryJob, queueSize),
		results: make(chan Result, queueSize),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for job := range d.jobs {
		err := d.sender.SendSummary(context.Background(), job)
		if err != nil {
			d.log.Error("failed to send portfolio summary",
				slog.String("email", job.Email), sl.Err(err))
		}
		select {
		case d.results <- Result{Job: job, Err: err}:
		default:
			// никто не читает результаты, не блокируем воркер
		}
	}
}

// Enqueue ставит задание в очередь. Возвращает ошибку, если очередь
// заполнена либо диспетчер остановлен, повторных попыток нет.
func (d *Dispatcher) Enqueue(job models.SummaryJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrDispatcherStopped
	}
	select {
	case d.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Results возвращает канал итогов обработки заданий.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Stop прекращает прием заданий и дожидается, пока воркер дообработает
// очередь.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobs)
	d.mu.Unlock()
	<-d.done
}
