package services

import (
	"time"

	"github.com/sirupsen/logrus"
)

// MonthRollScheduler keeps the current-month row present across month
// rollovers so the dashboard's get-or-create is a no-op in steady state.
// Get-or-create is idempotent, so running alongside request handlers is safe.
type MonthRollScheduler struct {
	fees *FeesService
}

func NewMonthRollScheduler() *MonthRollScheduler {
	return &MonthRollScheduler{
		fees: NewFeesService(),
	}
}

// StartScheduler ensures the current month exists now and then re-checks
// hourly, which covers the rollover at midnight on the first of each month.
func (ms *MonthRollScheduler) StartScheduler() {
	ms.EnsureCurrentMonth()

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	logrus.Info("Month roll scheduler started")

	for range ticker.C {
		ms.EnsureCurrentMonth()
	}
}

// EnsureCurrentMonth creates the Month row for the current billing period if missing.
func (ms *MonthRollScheduler) EnsureCurrentMonth() {
	key := MonthKey(time.Now())
	if _, err := ms.fees.GetOrCreateMonth(key); err != nil {
		logrus.WithError(err).WithField("month", key).Error("Failed to ensure current month")
	}
}
