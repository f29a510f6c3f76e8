package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"

	"fitpromo/internal/api"
	"fitpromo/internal/config"
	"fitpromo/internal/database"
	"fitpromo/internal/events"
	"fitpromo/internal/logger"
	"fitpromo/internal/proxy"
	"fitpromo/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Mode: cfg.Env, OutputPath: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating logger:", err)
		log = logger.Nop()
	}
	defer log.Sync()

	db, err := database.Init(database.Config{Path: cfg.DBPath, Logger: log})
	if err != nil {
		log.Error("opening database failed", "error", err)
		return
	}

	client, err := api.New(api.Options{BaseURL: cfg.APIURL, Timeout: cfg.HTTPTimeout})
	if err != nil {
		log.Error("creating api client failed", "error", err)
		return
	}

	var origins []string
	if cfg.IsDev() {
		origins = cfg.AllowedDevOrigins
	}
	assetHandler, err := proxy.New(proxy.Options{APIURL: cfg.APIURL, AllowedOrigins: origins, Logger: log})
	if err != nil {
		log.Error("creating asset proxy failed", "error", err)
		return
	}

	//Create each service
	dbServices := services.NewDbServices(db)
	studio := services.NewStudioService(proxiedAssets{client}, services.StudioOptions{
		PollInterval:    cfg.PollInterval,
		MessageInterval: cfg.MessageInterval,
		Logger:          log,
		Records:         dbServices.Records,
		Settings:        dbServices.Settings,
	})
	targets := services.NewTargetService(studio.Targets())
	products := services.NewProductService(studio.Products())
	preview := services.NewPreviewService()

	app := NewApp(studio, log)
	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	log.Info("starting", "api", cfg.APIURL, "env", cfg.Env)

	err = wails.Run(&options.App{
		Title:  "FitPromo Studio",
		Width:  1280,
		Height: 860,
		AssetServer: &assetserver.Options{
			Assets:  assets,
			Handler: assetHandler,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "FitPromo Studio",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			events.EnableRuntimeEmitter()
			app.startup(ctx)
			studio.Startup(ctx)
			targets.Startup(ctx)
			products.Startup(ctx)
			dbServices.History.Startup(ctx)
			dbServices.AppSettings.Startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			studio,
			targets,
			products,
			preview,
			dbServices.History,
			dbServices.AppSettings,
		},
	})

	if err != nil {
		log.Error("wails run failed", "error", err)
	}
}
