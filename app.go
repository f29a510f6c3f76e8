package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"fitpromo/internal/api"
	"fitpromo/internal/logger"
	"fitpromo/internal/models"
	"fitpromo/internal/services"
)

// App struct
type App struct {
	ctx     context.Context
	studio  *services.StudioService
	log     *logger.Logger
	dbClose func() error
}

// NewApp creates a new App application struct
func NewApp(studio *services.StudioService, log *logger.Logger) *App {
	return &App{studio: studio, log: log}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	a.studio.Shutdown()

	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// SelectImage opens a native file picker and uploads the chosen image as
// the reference image. An empty selection returns nil.
func (a *App) SelectImage() (*models.ImageFile, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select reference image",
		Filters: []runtime.FileFilter{
			{DisplayName: "Images (*.png;*.jpg;*.jpeg;*.webp;*.gif)", Pattern: "*.png;*.jpg;*.jpeg;*.webp;*.gif"},
		},
	})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	img, err := a.studio.UploadFile(path)
	if err != nil {
		a.log.Error("image upload failed", "path", path, "error", err)
		return nil, err
	}
	return img, nil
}

// proxiedAssets points result images at the asset proxy so the web view
// loads them from its own origin.
type proxiedAssets struct {
	*api.Client
}

func (proxiedAssets) ImageURL(storedPath string) string {
	return "/files/" + strings.TrimLeft(storedPath, "/")
}
