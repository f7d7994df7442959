package status

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alpenworks.io/resort-services/internal/common"
	"alpenworks.io/resort-services/internal/log"
)

func Run(cfg Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.InitProductionLogger()

	var metrics *common.Metrics
	if cfg.TelemetryAddress != "" {
		telemetry := common.NewTelemetryServer(cfg.TelemetryAddress)
		if err := telemetry.Start(); err != nil {
			log.Logger.Error("telemetry start", zap.Error(err))
			return 1
		}
		defer telemetry.Stop()
		metrics = common.NewMetrics(telemetry.GetRegistry())
	}

	watcher, err := NewStatusWatcher(ctx, cfg.Urls, cfg.DatabaseConnection, cfg.IntervalSec, metrics)
	if err != nil {
		log.Logger.Error("watcher setup", zap.Error(err))
		return 1
	}
	defer watcher.Close()

	log.Logger.Info("watching queue feeds",
		zap.Strings("urls", cfg.Urls),
		zap.Float64("interval_sec", cfg.IntervalSec))

	if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Logger.Error("watch", zap.Error(err))
		return 1
	}
	return 0
}
