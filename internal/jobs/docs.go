// Package jobs provides scheduled background tasks for the order-management
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// UrgentDeadlineJob - Runs every minute to find urgent exam items whose
// turnaround deadline has passed without a release, and emits one alert log
// per overdue item so the operational dashboard can surface them.
//
// # Scheduling
//
// The deadline watcher uses the cron expression "0 * * * * *": once per
// minute, on the minute. Deadlines are minute-grained, so a tighter cadence
// would only repeat the same findings.
//
// # Error Handling
//
// A failed scan is logged and retried on the next tick; the job never stops
// itself on error.
package jobs
