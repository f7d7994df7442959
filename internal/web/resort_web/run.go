package resort_web

import (
	"context"
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

	server, err := NewResortWebServer(ctx, cfg, metrics)
	if err != nil {
		log.Logger.Error("server setup", zap.Error(err))
		return 1
	}

	server.Serve(ctx)
	return 0
}
