package service

import (
	"bitwise74/medflow-api/internal/metrics"
	"bitwise74/medflow-api/internal/store"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const tokenCleanupJob = "token_cleanup"

// TokenCleanup clears verification tokens that expired. The users stay
// unverified and can ask for a new approval link.
func TokenCleanup(ctx context.Context, users store.Users, now time.Time) (int64, error) {
	metrics.JobRuns.WithLabelValues(tokenCleanupJob).Inc()

	n, err := users.ClearExpiredTokens(ctx, now.UTC())
	if err != nil {
		metrics.JobErrors.WithLabelValues(tokenCleanupJob).Inc()
		return 0, err
	}

	return n, nil
}

// ScheduleTokenCleanup attaches the cleanup to c using a standard cron
// expression. The caller owns starting and stopping c.
func ScheduleTokenCleanup(c *cron.Cron, schedule string, users store.Users) error {
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := TokenCleanup(ctx, users, time.Now())
		if err != nil {
			zap.L().Error("Failed to clean up expired verification tokens", zap.Error(err))
			return
		}

		if n > 0 {
			zap.L().Debug("Cleared expired verification tokens", zap.Int64("count", n))
		}
	})
	if err != nil {
		return err
	}

	zap.L().Debug("Token cleanup attached", zap.String("schedule", schedule))
	return nil
}
