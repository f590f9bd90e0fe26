package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/wekip/internal/logging"
	"github.com/dmitrijs2005/wekip/internal/server"
	"github.com/dmitrijs2005/wekip/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	app, err := server.NewApp(ctx, cfg, logging.NewServerLogger(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
