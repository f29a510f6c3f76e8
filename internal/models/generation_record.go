package models

import "time"

// GenerationRecord is the local history entry for a submitted generation.
type GenerationRecord struct {
	ID             uint   `gorm:"primaryKey"`
	RemoteID       int64  `gorm:"not null;uniqueIndex"`
	PromptSummary  string `gorm:"size:512"`
	DesignStyle    string `gorm:"size:64"`
	Status         string `gorm:"size:32;not null"`
	TargetCount    int
	CompletedCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
