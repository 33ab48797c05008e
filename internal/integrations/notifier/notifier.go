// Package notifier отправляет уведомления о бронированиях в брокер сообщений.
// Доставка best-effort: ошибка публикации логируется и не влияет на бронирование.
package notifier

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// jsonPublisher публикатор сообщений
type jsonPublisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// Notifier публикует события о бронированиях
type Notifier struct {
	pub     jsonPublisher
	timeout time.Duration
	metrics Metrics
	logger  Logger
	now     func() time.Time
}

// New создает уведомитель поверх публикатора
func New(pub jsonPublisher, timeout time.Duration, metrics Metrics, logger Logger) *Notifier {
	return &Notifier{
		pub:     pub,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Notify публикует событие. Ошибки не возвращаются вызывающему
func (n *Notifier) Notify(ctx context.Context, event string, res *domain.Reservation) {
	if res == nil {
		return
	}

	// Публикация не должна прерываться отменой запроса клиента
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.pub.PublishJSON(pubCtx, event, NewEvent(event, res, n.now())); err != nil {
		n.logger.Warn("Notify: %s for reservation id=%s failed: %v", event, res.ID, err)
		if n.metrics != nil {
			n.metrics.NotificationFailed()
		}
		return
	}

	n.logger.Info("Notify: %s published for reservation id=%s", event, res.ID)
}

// Nop уведомитель для запуска без брокера
type Nop struct{}

// Notify ничего не делает
func (Nop) Notify(context.Context, string, *domain.Reservation) {}
