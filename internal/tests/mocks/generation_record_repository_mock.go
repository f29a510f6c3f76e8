package mocks

import (
	"context"
	"sync"

	"fitpromo/internal/models"
)

// GenerationRecordRepositoryMock keeps upserted records in memory unless a
// Func field overrides the call.
type GenerationRecordRepositoryMock struct {
	ListFunc          func(ctx context.Context, limit int) ([]models.GenerationRecord, error)
	GetByRemoteIDFunc func(ctx context.Context, remoteID int64) (*models.GenerationRecord, error)
	UpsertFunc        func(ctx context.Context, rec *models.GenerationRecord) error
	DeleteFunc        func(ctx context.Context, remoteID int64) error

	mu      sync.Mutex
	records map[int64]models.GenerationRecord
}

func (m *GenerationRecordRepositoryMock) List(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.GenerationRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *GenerationRecordRepositoryMock) GetByRemoteID(ctx context.Context, remoteID int64) (*models.GenerationRecord, error) {
	if m.GetByRemoteIDFunc != nil {
		return m.GetByRemoteIDFunc(ctx, remoteID)
	}
	r, ok := m.Stored(remoteID)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *GenerationRecordRepositoryMock) Upsert(ctx context.Context, rec *models.GenerationRecord) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records == nil {
		m.records = map[int64]models.GenerationRecord{}
	}
	m.records[rec.RemoteID] = *rec
	return nil
}

func (m *GenerationRecordRepositoryMock) Delete(ctx context.Context, remoteID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, remoteID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, remoteID)
	return nil
}

// Stored returns the record kept for remoteID by the default Upsert.
func (m *GenerationRecordRepositoryMock) Stored(remoteID int64) (models.GenerationRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[remoteID]
	return r, ok
}
