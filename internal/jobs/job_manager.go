package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules are six-field cron expressions (with seconds).
type Schedules struct {
	CouponExpiry string
	CartPurge    string
}

// JobManager starts and stops all scheduled jobs together.
type JobManager struct {
	couponExpiryJob *CouponExpiryJob
	cartPurgeJob    *CartPurgeJob
}

func NewJobManager(
	couponExpirer CouponExpirer,
	cartPurger CartPurger,
	cartTTL time.Duration,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		couponExpiryJob: NewCouponExpiryJob(couponExpirer, schedules.CouponExpiry, logger),
		cartPurgeJob:    NewCartPurgeJob(cartPurger, cartTTL, schedules.CartPurge, logger),
	}
}

// StartAll starts every job, stopping the ones already started if a later
// one fails.
func (jm *JobManager) StartAll() error {
	if err := jm.couponExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start coupon expiry job: %w", err)
	}

	if err := jm.cartPurgeJob.Start(); err != nil {
		jm.couponExpiryJob.Stop()
		return fmt.Errorf("failed to start cart purge job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.cartPurgeJob.Stop()
	jm.couponExpiryJob.Stop()
}
