package worker

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/event-staffing-service/internal/config"
	"github.com/spec-kit/event-staffing-service/internal/service"
)

// StartSweeperWorker schedules the two lifecycle sweeps. Returns the cron
// runner so the entry point can stop it on shutdown; nil when the
// scheduler is disabled.
func StartSweeperWorker(cfg config.SchedulerConfig, sweeper *service.SweeperService, logger *zap.Logger) *cron.Cron {
	if !cfg.Enabled {
		logger.Info("sweeper scheduler disabled")
		return nil
	}

	c := cron.New()

	if _, err := c.AddFunc(cfg.UnconfirmedSpec, func() {
		if _, err := sweeper.SweepUnconfirmed(context.Background()); err != nil {
			logger.Error("unconfirmed assignment sweep failed", zap.Error(err))
		}
	}); err != nil {
		logger.Error("failed to schedule unconfirmed sweep", zap.String("spec", cfg.UnconfirmedSpec), zap.Error(err))
	}

	if _, err := c.AddFunc(cfg.LeaveSpec, func() {
		if _, err := sweeper.SweepExpiredLeaves(context.Background()); err != nil {
			logger.Error("expired leave sweep failed", zap.Error(err))
		}
	}); err != nil {
		logger.Error("failed to schedule leave sweep", zap.String("spec", cfg.LeaveSpec), zap.Error(err))
	}

	c.Start()
	logger.Info("sweeper scheduler started",
		zap.String("unconfirmed_spec", cfg.UnconfirmedSpec),
		zap.String("leave_spec", cfg.LeaveSpec))
	return c
}

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
