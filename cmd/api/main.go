package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "manifiesto_bot/docs"
	"manifiesto_bot/internal/adapter/http/routes"
	"manifiesto_bot/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Manifiesto Bot API
// @version         1.0
// @description     Conversational intake, payment confirmation and PDF generation for cargo manifiestos.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := routes.Run(ctx, cfg); err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}
}
