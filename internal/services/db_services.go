package services

import (
	"gorm.io/gorm"

	"fitpromo/internal/repositories"
)

// DbServices aggregates the services backed by the local database.
type DbServices struct {
	Records     repositories.GenerationRecordRepository
	Settings    repositories.AppSettingsRepository
	History     HistoryService
	AppSettings AppSettingsService
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB) *DbServices {
	records := repositories.NewGenerationRecordRepository(db)
	settings := repositories.NewAppSettingsRepository(db)

	return &DbServices{
		Records:     records,
		Settings:    settings,
		History:     NewHistoryService(records),
		AppSettings: NewAppSettingsService(settings),
	}
}
