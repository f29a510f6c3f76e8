package services

import (
	"context"
	"errors"
	"time"

	"fitpromo/internal/models"
	"fitpromo/internal/repositories"
)

type AppSettingsService interface {
	Get() (*models.AppSettings, error)
	Update(theme, locale, designStyle string) (*models.AppSettings, error)
	Startup(ctx context.Context)
}

type appSettingsService struct {
	appSettings repositories.AppSettingsRepository
	context     context.Context
}

func (s *appSettingsService) Startup(ctx context.Context) {
	s.context = ctx
}

func NewAppSettingsService(appSettings repositories.AppSettingsRepository) AppSettingsService {
	return &appSettingsService{appSettings: appSettings, context: context.Background()}
}

func (s *appSettingsService) Get() (*models.AppSettings, error) {
	return s.appSettings.Get(s.context)
}

// Update saves the settings. An empty designStyle keeps the current one.
func (s *appSettingsService) Update(theme, locale, designStyle string) (*models.AppSettings, error) {
	if theme == "" {
		return nil, errors.New("theme is required")
	}
	if locale == "" {
		return nil, errors.New("locale is required")
	}
	if theme != "light" && theme != "dark" && theme != "system" {
		return nil, errors.New("theme must be 'light', 'dark', or 'system'")
	}
	if designStyle != "" && !models.DesignStyle(designStyle).Valid() {
		return nil, errors.New("unknown design style: " + designStyle)
	}

	current, err := s.appSettings.Get(s.context)
	if err != nil {
		return nil, err
	}

	current.Theme = theme
	current.Locale = locale
	if designStyle != "" {
		current.DefaultDesignStyle = designStyle
	}
	current.UpdatedAt = time.Now()

	if err := s.appSettings.Update(s.context, current); err != nil {
		return nil, err
	}
	return current, nil
}
