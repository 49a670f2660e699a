package jobs

import (
	"context"
	"log/slog"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/pkg/metric"
	"checkout/internal/pkg/sl"
	"checkout/internal/pkg/tracing"

	"github.com/robfig/cron/v3"
)

const cartPurgeJobName = "cart_purge"

type CartPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeAbandonedCartsCommand) (int64, error)
}

// CartPurgeJob removes guest carts that have been idle longer than ttl.
type CartPurgeJob struct {
	handler  CartPurger
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewCartPurgeJob(handler CartPurger, ttl time.Duration, schedule string, logger *slog.Logger) *CartPurgeJob {
	return &CartPurgeJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "cart_purge_job"),
	}
}

func (j *CartPurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Cart purge job started",
		slog.String("schedule", j.schedule), slog.Duration("ttl", j.ttl))
	return nil
}

// Run performs one purge.
func (j *CartPurgeJob) Run(ctx context.Context) {
	ctx, span := tracing.Tracer().Start(ctx, "job."+cartPurgeJobName)
	defer span.End()

	cmd, err := commands.NewPurgeAbandonedCartsCommand(j.ttl)
	var purged int64
	if err == nil {
		purged, err = j.handler.Handle(ctx, cmd)
	}
	metric.JobRunsTotal.WithLabelValues(cartPurgeJobName, metric.Status(err)).Inc()

	if err != nil {
		j.logger.ErrorContext(ctx, "Cart purge job failed", sl.Traced(ctx), sl.Err(err))
		return
	}
	if purged > 0 {
		j.logger.InfoContext(ctx, "Abandoned guest carts purged", sl.Traced(ctx), slog.Int64("count", purged))
	}
}

func (j *CartPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Cart purge job stopped")
}
