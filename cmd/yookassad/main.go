package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/tachyon322/yookassa-go/internal/clock"
	"github.com/tachyon322/yookassa-go/internal/config"
	"github.com/tachyon322/yookassa-go/internal/observability"
	"github.com/tachyon322/yookassa-go/internal/server"
	"github.com/tachyon322/yookassa-go/internal/webhook"
	"github.com/tachyon322/yookassa-go/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(func() (*snowflake.Node, error) {
			return snowflake.NewNode(1)
		}),
		db.Module,
		clock.Module,
		webhook.Module,
		server.Module,
	)
	app.Run()
}
