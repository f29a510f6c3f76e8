package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitpromo/internal/models"
)

type GenerationRecordRepository interface {
	List(ctx context.Context, limit int) ([]models.GenerationRecord, error)
	GetByRemoteID(ctx context.Context, remoteID int64) (*models.GenerationRecord, error)
	Upsert(ctx context.Context, rec *models.GenerationRecord) error
	Delete(ctx context.Context, remoteID int64) error
}

type generationRecordRepository struct {
	db *gorm.DB
}

func NewGenerationRecordRepository(db *gorm.DB) GenerationRecordRepository {
	return &generationRecordRepository{db: db}
}

// List returns the most recently updated records first. A limit of zero or
// less returns all of them.
func (r *generationRecordRepository) List(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	var recs []models.GenerationRecord
	q := r.db.WithContext(ctx).Order("updated_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *generationRecordRepository) GetByRemoteID(ctx context.Context, remoteID int64) (*models.GenerationRecord, error) {
	var rec models.GenerationRecord
	res := r.db.WithContext(ctx).Where("remote_id = ?", remoteID).Take(&rec)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &rec, nil
}

// Upsert inserts rec or refreshes the progress columns of the record with the
// same remote id. The prompt summary and style are kept from the first write.
func (r *generationRecordRepository) Upsert(ctx context.Context, rec *models.GenerationRecord) error {
	if rec.RemoteID <= 0 {
		return fmt.Errorf("remote id is required")
	}
	if rec.Status == "" {
		return fmt.Errorf("status is required")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "remote_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "target_count", "completed_count", "updated_at"}),
	}).Create(rec).Error
}

func (r *generationRecordRepository) Delete(ctx context.Context, remoteID int64) error {
	return r.db.WithContext(ctx).Where("remote_id = ?", remoteID).Delete(&models.GenerationRecord{}).Error
}
