package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fitpromo/internal/logger"
	"fitpromo/internal/models"
	"fitpromo/internal/utils"
)

type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductSelection is the form side of product handling. Selected products
// are held by value, so updates are patched into it directly.
type ProductSelection interface {
	SelectProduct(p models.Product)
	PatchProduct(p models.Product)
	RemoveProduct(id int64)
}

// ProductDraft is what the product editor collects. Features is comma
// separated.
type ProductDraft struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Features    string `json:"features"`
	ImageURL    string `json:"imageUrl"`
}

func DraftFromProduct(p models.Product) ProductDraft {
	return ProductDraft{
		Name:        p.Name,
		Brand:       deref(p.Brand),
		Category:    deref(p.Category),
		Description: deref(p.Description),
		Features:    strings.Join(p.Features(), ", "),
		ImageURL:    deref(p.ImageURL),
	}
}

func (d ProductDraft) input() (models.ProductInput, error) {
	in := models.ProductInput{
		Name:        strings.TrimSpace(d.Name),
		Brand:       optional(d.Brand),
		Category:    optional(d.Category),
		Description: optional(d.Description),
		KeyFeatures: utils.SplitCSV(d.Features),
		ImageURL:    optional(d.ImageURL),
	}
	if in.Name == "" {
		return in, ErrProductNameRequired
	}
	return in, nil
}

type Products struct {
	mu      sync.Mutex
	api     ProductAPI
	sel     ProductSelection
	log     *logger.Logger
	items   []models.Product
	loading bool

	onChange func([]models.Product)
}

func NewProducts(api ProductAPI, sel ProductSelection, log *logger.Logger, onChange func([]models.Product)) *Products {
	if log == nil {
		log = logger.Nop()
	}
	return &Products{api: api, sel: sel, log: log.With("component", "products"), items: []models.Product{}, onChange: onChange}
}

func (p *Products) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	items, err := p.api.ListProducts(ctx)

	p.mu.Lock()
	p.loading = false
	if err != nil {
		p.mu.Unlock()
		p.log.Error("loading products failed", "error", err)
		return fmt.Errorf("loading products: %w", err)
	}
	if items == nil {
		items = []models.Product{}
	}
	p.items = items
	cb := p.onChange
	snapshot := p.listLocked()
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return nil
}

// Create saves a new product and selects it.
func (p *Products) Create(ctx context.Context, d ProductDraft) (*models.Product, error) {
	in, err := d.input()
	if err != nil {
		return nil, err
	}
	created, err := p.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("creating product %q: %w", in.Name, err)
	}
	if p.sel != nil {
		p.sel.SelectProduct(*created)
	}
	return created, p.Load(ctx)
}

// Update saves changes and patches the selected copy, if any, right away.
func (p *Products) Update(ctx context.Context, id int64, d ProductDraft) (*models.Product, error) {
	in, err := d.input()
	if err != nil {
		return nil, err
	}
	updated, err := p.api.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("updating product %d: %w", id, err)
	}
	if p.sel != nil {
		p.sel.PatchProduct(*updated)
	}
	return updated, p.Load(ctx)
}

// Delete removes the product and drops it from the selection.
func (p *Products) Delete(ctx context.Context, id int64) error {
	if err := p.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if p.sel != nil {
		p.sel.RemoveProduct(id)
	}
	return p.Load(ctx)
}

func (p *Products) List() []models.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listLocked()
}

func (p *Products) listLocked() []models.Product {
	out := make([]models.Product, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Products) Find(id int64) (models.Product, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range p.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Product{}, false
}

func (p *Products) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
