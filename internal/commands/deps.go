package commands

import (
	"time"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/core/interop/local"
	"github.com/colonyops/workbench/internal/core/logging"
	"github.com/colonyops/workbench/internal/core/notify"
	"github.com/colonyops/workbench/internal/core/readiness"
)

func newAgent(cfg *config.Config) *local.Agent {
	return local.New(cfg.Agent, logging.Component("agent"))
}

// newDetector probes agent with timeout, falling back to the configured
// readiness timeout when timeout is zero.
func newDetector(cfg *config.Config, agent readiness.Prober, timeout time.Duration) *readiness.Detector {
	if timeout <= 0 {
		timeout = cfg.Readiness.Timeout
	}
	return readiness.NewDetector(agent, timeout, logging.Component("readiness"))
}

func newCoordinator(cfg *config.Config) *notify.Coordinator {
	return notify.New(notify.Options{
		GraceDelay:  cfg.Notifications.GraceDelay,
		HistorySize: cfg.Notifications.HistorySize,
		Logger:      logging.Component("notify"),
	})
}
