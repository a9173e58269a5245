package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"manifiesto_bot/internal/app"
	"manifiesto_bot/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := app.RunWorker(ctx, cfg); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
