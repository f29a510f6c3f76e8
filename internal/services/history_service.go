package services

import (
	"context"
	"fmt"

	"fitpromo/internal/models"
	"fitpromo/internal/repositories"
)

// DefaultHistoryLimit caps the list shown in the history drawer.
const DefaultHistoryLimit = 50

type HistoryService interface {
	List(limit int) ([]models.GenerationRecord, error)
	Delete(remoteID int64) error
	Startup(ctx context.Context)
}

type historyService struct {
	repo repositories.GenerationRecordRepository
	ctx  context.Context
}

func NewHistoryService(repo repositories.GenerationRecordRepository) HistoryService {
	return &historyService{repo: repo, ctx: context.Background()}
}

func (s *historyService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *historyService) List(limit int) ([]models.GenerationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	recs, err := s.repo.List(s.ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: list history: %w", err)
	}
	return recs, nil
}

func (s *historyService) Delete(remoteID int64) error {
	if err := s.repo.Delete(s.ctx, remoteID); err != nil {
		return fmt.Errorf("service: delete history %d: %w", remoteID, err)
	}
	return nil
}
