package mocks

import (
	"context"
	"io"

	"fitpromo/internal/models"
)

// BackendAPIMock satisfies every consumer interface over api.Client.
type BackendAPIMock struct {
	UploadImageFunc      func(ctx context.Context, filename string, r io.Reader) (*models.ImageFile, error)
	ListTargetsFunc      func(ctx context.Context) ([]models.Target, error)
	CreateTargetFunc     func(ctx context.Context, in models.TargetCreate) (*models.Target, error)
	UpdateTargetFunc     func(ctx context.Context, id int64, in models.TargetUpdate) (*models.Target, error)
	DeleteTargetFunc     func(ctx context.Context, id int64) error
	ListProductsFunc     func(ctx context.Context) ([]models.Product, error)
	CreateProductFunc    func(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProductFunc    func(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error)
	DeleteProductFunc    func(ctx context.Context, id int64) error
	CreateGenerationFunc func(ctx context.Context, in models.GenerationCreate) (*models.Generation, error)
	GetGenerationFunc    func(ctx context.Context, id int64) (*models.Generation, error)
	ImageURLFunc         func(storedPath string) string
}

func (m *BackendAPIMock) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.ImageFile, error) {
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, filename, r)
	}
	return &models.ImageFile{ID: 1, Filename: filename}, nil
}

func (m *BackendAPIMock) ListTargets(ctx context.Context) ([]models.Target, error) {
	if m.ListTargetsFunc != nil {
		return m.ListTargetsFunc(ctx)
	}
	return []models.Target{}, nil
}

func (m *BackendAPIMock) CreateTarget(ctx context.Context, in models.TargetCreate) (*models.Target, error) {
	if m.CreateTargetFunc != nil {
		return m.CreateTargetFunc(ctx, in)
	}
	return &models.Target{Key: in.Key, Name: in.Name}, nil
}

func (m *BackendAPIMock) UpdateTarget(ctx context.Context, id int64, in models.TargetUpdate) (*models.Target, error) {
	if m.UpdateTargetFunc != nil {
		return m.UpdateTargetFunc(ctx, id, in)
	}
	return &models.Target{ID: id}, nil
}

func (m *BackendAPIMock) DeleteTarget(ctx context.Context, id int64) error {
	if m.DeleteTargetFunc != nil {
		return m.DeleteTargetFunc(ctx, id)
	}
	return nil
}

func (m *BackendAPIMock) ListProducts(ctx context.Context) ([]models.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx)
	}
	return []models.Product{}, nil
}

func (m *BackendAPIMock) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, in)
	}
	return &models.Product{Name: in.Name}, nil
}

func (m *BackendAPIMock) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, id, in)
	}
	return &models.Product{ID: id, Name: in.Name}, nil
}

func (m *BackendAPIMock) DeleteProduct(ctx context.Context, id int64) error {
	if m.DeleteProductFunc != nil {
		return m.DeleteProductFunc(ctx, id)
	}
	return nil
}

func (m *BackendAPIMock) CreateGeneration(ctx context.Context, in models.GenerationCreate) (*models.Generation, error) {
	if m.CreateGenerationFunc != nil {
		return m.CreateGenerationFunc(ctx, in)
	}
	return &models.Generation{ID: 1, Status: models.GenerationPending, Results: []models.GenerationResult{}}, nil
}

func (m *BackendAPIMock) GetGeneration(ctx context.Context, id int64) (*models.Generation, error) {
	if m.GetGenerationFunc != nil {
		return m.GetGenerationFunc(ctx, id)
	}
	return &models.Generation{ID: id, Status: models.GenerationCompleted, Results: []models.GenerationResult{}}, nil
}

func (m *BackendAPIMock) ImageURL(storedPath string) string {
	if m.ImageURLFunc != nil {
		return m.ImageURLFunc(storedPath)
	}
	return "http://api.test/files/" + storedPath
}
