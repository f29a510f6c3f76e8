package services

import (
	"context"
	"fmt"

	"fitpromo/internal/catalog"
	"fitpromo/internal/models"
)

// TargetService exposes target CRUD to the web view. List updates are
// broadcast by the studio after every reload.
type TargetService struct {
	targets *catalog.Targets
	ctx     context.Context
}

func NewTargetService(targets *catalog.Targets) *TargetService {
	return &TargetService{targets: targets, ctx: context.Background()}
}

func (s *TargetService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *TargetService) List() []models.Target {
	return s.targets.List()
}

func (s *TargetService) Reload() ([]models.Target, error) {
	if err := s.targets.Load(s.ctx); err != nil {
		return s.targets.List(), fmt.Errorf("service: %w", err)
	}
	return s.targets.List(), nil
}

// Draft pre-fills the editor for target id.
func (s *TargetService) Draft(id int64) (catalog.TargetDraft, error) {
	t, ok := s.targets.Find(id)
	if !ok {
		return catalog.TargetDraft{}, fmt.Errorf("service: target %d not found", id)
	}
	return catalog.DraftFromTarget(t), nil
}

func (s *TargetService) Create(d catalog.TargetDraft) (*models.Target, error) {
	t, err := s.targets.Create(s.ctx, d)
	if err != nil {
		return nil, fmt.Errorf("service: create target: %w", err)
	}
	return t, nil
}

func (s *TargetService) Update(id int64, d catalog.TargetDraft) (*models.Target, error) {
	t, err := s.targets.Update(s.ctx, id, d)
	if err != nil {
		return nil, fmt.Errorf("service: update target %d: %w", id, err)
	}
	return t, nil
}

func (s *TargetService) Delete(id int64) error {
	if err := s.targets.Delete(s.ctx, id); err != nil {
		return fmt.Errorf("service: delete target %d: %w", id, err)
	}
	return nil
}
