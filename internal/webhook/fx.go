package webhook

import (
	"net/http"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/tachyon322/yookassa-go/internal/config"
	"github.com/tachyon322/yookassa-go/internal/observability/tracing"
	"github.com/tachyon322/yookassa-go/internal/webhook/domain"
	"github.com/tachyon322/yookassa-go/internal/webhook/repository"
	"github.com/tachyon322/yookassa-go/internal/webhook/service"
	"github.com/tachyon322/yookassa-go/pkg/yookassa"
)

var Module = fx.Module("webhook",
	fx.Provide(func(cfg config.Config) *yookassa.Client {
		clientCfg := cfg.ClientConfig()
		clientCfg.HTTPClient = tracing.WrapHTTPClient(&http.Client{})
		return yookassa.NewClient(clientCfg)
	}),
	fx.Provide(NewStatusFetcher),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Invoke(func(db *gorm.DB) error {
		return db.AutoMigrate(&domain.Delivery{})
	}),
)
