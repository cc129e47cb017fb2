package observability

import (
	"go.uber.org/fx"

	"github.com/tachyon322/yookassa-go/internal/config"
	"github.com/tachyon322/yookassa-go/internal/observability/logger"
	"github.com/tachyon322/yookassa-go/internal/observability/metrics"
	"github.com/tachyon322/yookassa-go/internal/observability/tracing"
)

var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(func(cfg config.Config) tracing.Config {
		return tracing.Config{
			Enabled:          cfg.TracingEnabled,
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.OTLPEndpoint,
			ExporterProtocol: cfg.OTLPProtocol,
			SamplingRatio:    cfg.SamplingRatio,
		}
	}),
	fx.Invoke(tracing.NewProvider),
	fx.Provide(func(cfg config.Config) metrics.Config {
		return metrics.Config{Environment: cfg.Environment}
	}),
	fx.Provide(metrics.NewHTTPMetrics),
	fx.Provide(metrics.Webhook),
)
