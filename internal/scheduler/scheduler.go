package scheduler

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pagarwal884/Aapni-Dairy/internal/config"
)

// KeepAlive periodically pings the service's own health endpoint so
// free-tier hosts do not idle it out between collections.
type KeepAlive struct {
	cron   *cron.Cron
	client *resty.Client
	cfg    config.KeepAliveConfig
	logger *zap.Logger
}

// NewKeepAlive creates a new keep-alive scheduler instance.
func NewKeepAlive(cfg config.KeepAliveConfig, logger *zap.Logger) *KeepAlive {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().SetTimeout(10 * time.Second)

	return &KeepAlive{
		cron:   cron.New(),
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Start schedules the self-ping. A missing base URL disables it, which is
// the normal case outside hosted deployments.
func (k *KeepAlive) Start() {
	if k.cfg.BaseURL == "" {
		k.logger.Info("keep-alive disabled, no base url configured")
		return
	}

	if _, err := k.cron.AddFunc(k.cfg.CronSchedule, k.ping); err != nil {
		k.logger.Error("failed to schedule keep-alive ping", zap.Error(err))
		return
	}

	k.logger.Info("keep-alive scheduled",
		zap.String("schedule", k.cfg.CronSchedule),
		zap.String("base_url", k.cfg.BaseURL))
	k.cron.Start()
}

// Stop stops the scheduler.
func (k *KeepAlive) Stop() {
	k.cron.Stop()
}

func (k *KeepAlive) ping() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := k.client.R().SetContext(ctx).Get(k.cfg.BaseURL + "/healthz")
	if err != nil {
		k.logger.Warn("keep-alive ping failed", zap.Error(err))
		return
	}

	k.logger.Debug("keep-alive ping sent", zap.Int("status", resp.StatusCode()))
}
