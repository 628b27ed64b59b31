package jobs

import (
	"context"
	"time"

	"labos/internal/core/domain/model/order"
	"labos/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// UrgentDeadlineJob watches urgent exam items whose turnaround deadline
// passed without a release. The deadline is plain data on the item; this job
// is the collaborator that checks it, once per minute, and emits one alert
// log per overdue item.
type UrgentDeadlineJob struct {
	orders ports.OrderRepository
	cron   *cron.Cron
	logger zerolog.Logger
	now    func() time.Time
}

// NewUrgentDeadlineJob creates the deadline watcher over the given
// repository.
func NewUrgentDeadlineJob(orders ports.OrderRepository, logger zerolog.Logger) *UrgentDeadlineJob {
	return &UrgentDeadlineJob{
		orders: orders,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With().Str("component", "urgent_deadline_job").Logger(),
		now:    time.Now,
	}
}

// Start schedules the watcher to run once per minute.
func (j *UrgentDeadlineJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		if err := j.Scan(context.Background()); err != nil {
			j.logger.Error().Err(err).Msg("urgent deadline scan failed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Msg("urgent deadline job started (running every minute)")
	return nil
}

// Stop stops the watcher.
func (j *UrgentDeadlineJob) Stop() {
	j.cron.Stop()
	j.logger.Info().Msg("urgent deadline job stopped")
}

// Scan performs one pass: every non-terminal order holding an urgent item
// past its deadline yields one alert log per overdue item.
func (j *UrgentDeadlineJob) Scan(ctx context.Context) error {
	now := j.now()

	overdue, err := j.orders.GetAllWithOverdueUrgentItems(ctx, now)
	if err != nil {
		return err
	}

	for _, aggregate := range overdue {
		for _, item := range aggregate.Items() {
			if !j.isOverdue(item, now) {
				continue
			}
			j.logger.Warn().
				Str("tenant_id", aggregate.TenantID().String()).
				Str("order_codigo", aggregate.Codigo()).
				Str("item_id", item.ID().String()).
				Str("item_status", item.Status().String()).
				Time("prazo_maximo", *item.PrazoMaximo()).
				Dur("atraso", now.Sub(*item.PrazoMaximo())).
				Msg("urgent item past deadline")
		}
	}
	return nil
}

func (j *UrgentDeadlineJob) isOverdue(item *order.ExamItem, now time.Time) bool {
	if !item.Urgente() || item.Status() == order.ItemLiberado || item.Status().IsTerminal() {
		return false
	}
	prazo := item.PrazoMaximo()
	return prazo != nil && prazo.Before(now)
}
