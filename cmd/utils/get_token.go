package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"flight-history-service/internal/infrastructure/config"
	"flight-history-service/internal/infrastructure/oauth"
	"flight-history-service/pkg/logger"
)

// Prints the subscription key for ad-hoc calls to the history API.
func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fr24OAuth := oauth.NewFR24OAuth(cfg.LoginURL, cfg.SiteURL, cfg.Mail, cfg.Password, &http.Client{Timeout: cfg.HTTPTimeout}, log)
	token, err := fr24OAuth.Login(ctx)
	if err != nil {
		log.Error("Login failed", "error", err)
		log.Sync()
		os.Exit(1)
	}

	fmt.Printf("\nSubscription Key: %s\n\n", token.AccessToken)
}
