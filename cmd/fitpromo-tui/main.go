// Command fitpromo-tui runs the studio in a terminal.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fitpromo/internal/api"
	"fitpromo/internal/config"
	"fitpromo/internal/database"
	"fitpromo/internal/logger"
	"fitpromo/internal/services"
	"fitpromo/internal/tui"
)

const defaultLogFile = "fitpromo-tui.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// the screen belongs to the UI, so logs always go to a file
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	log, err := logger.New(logger.Options{Mode: cfg.Env, OutputPath: logFile})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	client, err := api.New(api.Options{BaseURL: cfg.APIURL, Timeout: cfg.HTTPTimeout})
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	opts := services.StudioOptions{
		PollInterval:    cfg.PollInterval,
		MessageInterval: cfg.MessageInterval,
		Logger:          log,
	}
	if db, err := database.Init(database.Config{Path: cfg.DBPath, Logger: log}); err != nil {
		log.Warn("history disabled", "error", err)
	} else {
		dbServices := services.NewDbServices(db)
		opts.Records = dbServices.Records
		opts.Settings = dbServices.Settings
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	studio := services.NewStudioService(client, opts)
	defer studio.Shutdown()

	log.Info("starting terminal studio", "api", cfg.APIURL)
	if _, err := tea.NewProgram(tui.New(studio), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
