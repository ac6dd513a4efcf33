// Package retention enforces a retention window on stored validation
// records, either on demand or on a cron schedule.
package retention
