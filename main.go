package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/angas/weatherbot-go/config"
	"github.com/angas/weatherbot-go/database"
	"github.com/angas/weatherbot-go/discord"
	"github.com/angas/weatherbot-go/geocode"
	"github.com/angas/weatherbot-go/httpx"
	"github.com/angas/weatherbot-go/logging"
	"github.com/angas/weatherbot-go/openmeteo"
	"github.com/angas/weatherbot-go/task"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	once := flag.Bool("once", false, "send a single report and exit")
	flag.Parse()

	// Secrets may live in a .env file next to the binary; missing is fine.
	godotenv.Load()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	if err := cnfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("weatherbot is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.GetPath())
	if err != nil {
		panic(fmt.Sprintf("failed to open database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)
	db.SetLogger(logger.With("module", "database"))

	if err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
		logger.Warn("failed to purge old log entries", slog.Any("error", err))
	}

	httpClient := httpx.New(logger.With("module", "httpx"))
	geocoder := geocode.New(cnfg.Geocoding.GetBaseUrl(), cnfg.Geocoding.ApiKey, httpClient, logger.With("module", "geocode"))
	fetcher := openmeteo.New(cnfg.Forecast.GetBaseUrl(), cnfg.Forecast.GetTimezone(), httpClient, logger.With("module", "openmeteo"))
	notifier := discord.NewNotifier(cnfg.Discord.BotToken, logger.With("module", "discord"))

	report, err := task.NewDailyReport(logger.With("module", "report"), geocoder, fetcher, notifier, cnfg)
	if err != nil {
		panic(fmt.Sprintf("failed to set up daily report: %v", err))
	}

	if *once {
		if err := report.Run(ctx); err != nil {
			exitWithError(logger, err)
		}
		logger.Info("report sent, exiting")
		return
	}

	tasks := task.NewTasks(report, cnfg)
	tasks.Run()
	defer tasks.Stop()

	logger.Info("weatherbot is running",
		slog.String("version", Version),
		slog.String("schedule", cnfg.Report.GetRunAt()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down...", slog.Any("signal", sig))
	case <-ctx.Done():
	}
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	os.Exit(1)
}
