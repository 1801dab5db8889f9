package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tab1k/PandaShopBot/internal/app"
	"github.com/tab1k/PandaShopBot/internal/logger"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := app.Run(ctx, configPath)
	_ = logger.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pandashop:", err)
		os.Exit(1)
	}
}
