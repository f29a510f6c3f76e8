package services

import (
	"context"
	"fmt"

	"fitpromo/internal/catalog"
	"fitpromo/internal/models"
	"fitpromo/internal/widgets"
)

// ProductListItem is a catalog row with its display subtitle.
type ProductListItem struct {
	models.Product
	Subtitle string `json:"subtitle"`
}

type ProductService struct {
	products *catalog.Products
	ctx      context.Context
}

func NewProductService(products *catalog.Products) *ProductService {
	return &ProductService{products: products, ctx: context.Background()}
}

func (s *ProductService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *ProductService) List() []ProductListItem {
	list := s.products.List()
	out := make([]ProductListItem, 0, len(list))
	for _, p := range list {
		out = append(out, ProductListItem{Product: p, Subtitle: widgets.ProductSubtitle(p)})
	}
	return out
}

func (s *ProductService) Reload() ([]ProductListItem, error) {
	if err := s.products.Load(s.ctx); err != nil {
		return s.List(), fmt.Errorf("service: %w", err)
	}
	return s.List(), nil
}

func (s *ProductService) Draft(id int64) (catalog.ProductDraft, error) {
	p, ok := s.products.Find(id)
	if !ok {
		return catalog.ProductDraft{}, fmt.Errorf("service: product %d not found", id)
	}
	return catalog.DraftFromProduct(p), nil
}

func (s *ProductService) Create(d catalog.ProductDraft) (*models.Product, error) {
	p, err := s.products.Create(s.ctx, d)
	if err != nil {
		return nil, fmt.Errorf("service: create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Update(id int64, d catalog.ProductDraft) (*models.Product, error) {
	p, err := s.products.Update(s.ctx, id, d)
	if err != nil {
		return nil, fmt.Errorf("service: update product %d: %w", id, err)
	}
	return p, nil
}

func (s *ProductService) Delete(id int64) error {
	if err := s.products.Delete(s.ctx, id); err != nil {
		return fmt.Errorf("service: delete product %d: %w", id, err)
	}
	return nil
}
