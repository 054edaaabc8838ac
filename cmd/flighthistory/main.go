package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight-history-service/internal/domain/entity"
	"flight-history-service/internal/infrastructure/config"
	"flight-history-service/internal/infrastructure/oauth"
	"flight-history-service/internal/infrastructure/router"
	historyRepo "flight-history-service/internal/interface/repository"
	flightUsecase "flight-history-service/internal/usecase"
	"flight-history-service/pkg/logger"
	"flight-history-service/pkg/metrics"
	"flight-history-service/templates"
)

type pipelineResult struct {
	result  entity.ConsolidatedResult
	defects []entity.RecordDefect
	err     error
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(os.Args[1:])
	if err == nil {
		err = cfg.RequireFlightNumber()
	}
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting flight history summary", "version", cfg.AppVersion, "flightNumber", cfg.FlightNumber)

	// Output format is checked before any network call
	formatRouter := router.NewFormatRouter(log)
	formatRouter.Register(templates.NewJSONSummaryRenderer(false))
	formatRouter.Register(templates.NewJSONSummaryRenderer(true))
	formatRouter.Register(templates.NewTextSummaryRenderer())
	renderer, err := formatRouter.GetRenderer(cfg.OutputFormat)
	if err != nil {
		log.Fatal("Invalid output format", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("flight_history")
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	fr24OAuth := oauth.NewFR24OAuth(cfg.LoginURL, cfg.SiteURL, cfg.Mail, cfg.Password, httpClient, log)
	tokenSource := fr24OAuth.GetTokenSource(ctx)

	repo := historyRepo.NewFR24HistoryRepository(cfg.APIURL, cfg.SiteURL, cfg.PageSize, cfg.MaxPages, httpClient, log)
	consolidator := flightUsecase.NewScheduleConsolidator(log, m)
	service := flightUsecase.NewFlightHistoryService(tokenSource, repo, consolidator, m, log)

	// Wait for a termination signal in parallel with the pipeline; whichever
	// finishes first decides the outcome and the other is not waited on.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	done := make(chan pipelineResult, 1)
	go func() {
		result, defects, err := service.Summarize(ctx, cfg.FlightNumber)
		done <- pipelineResult{result: result, defects: defects, err: err}
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal", "signal", sig)
		log.Info("Terminating")
		return

	case res := <-done:
		if res.err != nil {
			var fetchErr *flightUsecase.FetchError
			if errors.As(res.err, &fetchErr) {
				log.Error("Data fetching unsuccessful", "stage", fetchErr.Stage, "error", fetchErr.Err)
			} else {
				log.Error("Data fetching unsuccessful", "error", res.err)
			}
			pushMetrics(cfg, m, log)
			log.Sync()
			os.Exit(1)
		}

		for _, defect := range res.defects {
			log.Debug("Skipped record", "defect", defect.Error())
		}

		var buf bytes.Buffer
		if err := renderer.Render(&buf, res.result); err != nil {
			log.Error("Failed to render summary", "error", err)
			log.Sync()
			os.Exit(1)
		}
		os.Stdout.Write(buf.Bytes())

		pushMetrics(cfg, m, log)
	}
}

func pushMetrics(cfg *config.Config, m *metrics.Metrics, log logger.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.Push(ctx, cfg.PushgatewayURL, cfg.MetricsJob); err != nil {
		log.Warn("Failed to push metrics", "error", err)
	}
}
