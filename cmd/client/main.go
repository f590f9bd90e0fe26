package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/wekip/internal/client/cli"
	"github.com/dmitrijs2005/wekip/internal/client/config"
	"github.com/dmitrijs2005/wekip/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logging.NewCommandLogger(cfg.LogLevel), os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
