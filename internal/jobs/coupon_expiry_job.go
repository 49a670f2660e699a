package jobs

import (
	"context"
	"log/slog"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/pkg/metric"
	"checkout/internal/pkg/sl"
	"checkout/internal/pkg/tracing"

	"github.com/robfig/cron/v3"
)

const couponExpiryJobName = "coupon_expiry"

type CouponExpirer interface {
	Handle(ctx context.Context, cmd commands.DeactivateExpiredCouponsCommand) (int, error)
}

// CouponExpiryJob deactivates coupons whose validity window has closed.
type CouponExpiryJob struct {
	handler  CouponExpirer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewCouponExpiryJob(handler CouponExpirer, schedule string, logger *slog.Logger) *CouponExpiryJob {
	return &CouponExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "coupon_expiry_job"),
	}
}

func (j *CouponExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Coupon expiry job started", slog.String("schedule", j.schedule))
	return nil
}

// Run performs one sweep.
func (j *CouponExpiryJob) Run(ctx context.Context) {
	ctx, span := tracing.Tracer().Start(ctx, "job."+couponExpiryJobName)
	defer span.End()

	cmd, err := commands.NewDeactivateExpiredCouponsCommand()
	var deactivated int
	if err == nil {
		deactivated, err = j.handler.Handle(ctx, cmd)
	}
	metric.JobRunsTotal.WithLabelValues(couponExpiryJobName, metric.Status(err)).Inc()

	if err != nil {
		j.logger.ErrorContext(ctx, "Coupon expiry job failed", sl.Traced(ctx), sl.Err(err))
		return
	}
	if deactivated > 0 {
		j.logger.InfoContext(ctx, "Expired coupons deactivated", sl.Traced(ctx), slog.Int("count", deactivated))
	}
}

// Stop waits for a running sweep to finish.
func (j *CouponExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Coupon expiry job stopped")
}
