// Package jobs provides scheduled background tasks for the checkout service.
//
// Jobs are cron-driven (github.com/robfig/cron/v3, six-field expressions with
// seconds) and delegate to command handlers:
//
//  1. CouponExpiryJob deactivates coupons whose endAt has passed.
//  2. CartPurgeJob deletes guest carts idle longer than the configured TTL.
//
// Usage:
//
//	jobManager := jobs.NewJobManager(expireHandler, purgeHandler, 72*time.Hour, jobs.Schedules{
//		CouponExpiry: "0 */5 * * * *",
//		CartPurge:    "0 0 * * * *",
//	}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Every run is traced, counted in checkout_jobs_runs_total and logged on
// failure; a failed run never stops the schedule.
package jobs
