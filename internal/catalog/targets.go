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

type TargetAPI interface {
	ListTargets(ctx context.Context) ([]models.Target, error)
	CreateTarget(ctx context.Context, in models.TargetCreate) (*models.Target, error)
	UpdateTarget(ctx context.Context, id int64, in models.TargetUpdate) (*models.Target, error)
	DeleteTarget(ctx context.Context, id int64) error
}

// TargetSelection is the form side of target handling.
type TargetSelection interface {
	RemoveTarget(id int64)
}

// TargetDraft is what the inline editor collects. Keywords is comma separated.
type TargetDraft struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	TargetAge      string `json:"targetAge"`
	Keywords       string `json:"keywords"`
	PromptTemplate string `json:"promptTemplate"`
}

// DraftFromTarget pre-fills the editor from an existing target.
func DraftFromTarget(t models.Target) TargetDraft {
	return TargetDraft{
		Key:            t.Key,
		Name:           t.Name,
		TargetAge:      t.TargetAge,
		Keywords:       strings.Join(t.Keywords(), ", "),
		PromptTemplate: t.PromptTemplate,
	}
}

type Targets struct {
	mu      sync.Mutex
	api     TargetAPI
	sel     TargetSelection
	log     *logger.Logger
	items   []models.Target
	loading bool
	loaded  bool

	onChange func([]models.Target)
}

func NewTargets(api TargetAPI, sel TargetSelection, log *logger.Logger, onChange func([]models.Target)) *Targets {
	if log == nil {
		log = logger.Nop()
	}
	return &Targets{api: api, sel: sel, log: log.With("component", "targets"), items: []models.Target{}, onChange: onChange}
}

// Load replaces the list with the backend's. On failure the previous list is
// kept.
func (t *Targets) Load(ctx context.Context) error {
	t.mu.Lock()
	t.loading = true
	t.mu.Unlock()

	items, err := t.api.ListTargets(ctx)

	t.mu.Lock()
	t.loading = false
	if err != nil {
		t.mu.Unlock()
		t.log.Error("loading targets failed", "error", err)
		return fmt.Errorf("loading targets: %w", err)
	}
	if items == nil {
		items = []models.Target{}
	}
	t.items = items
	t.loaded = true
	cb := t.onChange
	snapshot := t.listLocked()
	t.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return nil
}

func (t *Targets) Create(ctx context.Context, d TargetDraft) (*models.Target, error) {
	in := models.TargetCreate{
		Key:            strings.TrimSpace(d.Key),
		Name:           strings.TrimSpace(d.Name),
		TargetAge:      strings.TrimSpace(d.TargetAge),
		StyleKeywords:  utils.SplitCSV(d.Keywords),
		PromptTemplate: strings.TrimSpace(d.PromptTemplate),
	}
	if in.Key == "" || in.Name == "" || in.PromptTemplate == "" {
		return nil, ErrTargetFieldsRequired
	}
	created, err := t.api.CreateTarget(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("creating target %q: %w", in.Key, err)
	}
	return created, t.Load(ctx)
}

// Update sends only the fields that were filled in; keywords are always sent.
func (t *Targets) Update(ctx context.Context, id int64, d TargetDraft) (*models.Target, error) {
	in := models.TargetUpdate{
		Name:           optional(d.Name),
		TargetAge:      optional(d.TargetAge),
		StyleKeywords:  utils.SplitCSV(d.Keywords),
		PromptTemplate: optional(d.PromptTemplate),
	}
	updated, err := t.api.UpdateTarget(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("updating target %d: %w", id, err)
	}
	return updated, t.Load(ctx)
}

// Delete removes the target and drops it from the form selection.
func (t *Targets) Delete(ctx context.Context, id int64) error {
	if err := t.api.DeleteTarget(ctx, id); err != nil {
		return fmt.Errorf("deleting target %d: %w", id, err)
	}
	if t.sel != nil {
		t.sel.RemoveTarget(id)
	}
	return t.Load(ctx)
}

func (t *Targets) List() []models.Target {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.listLocked()
}

func (t *Targets) listLocked() []models.Target {
	out := make([]models.Target, len(t.items))
	copy(out, t.items)
	return out
}

// Find returns the target with id, if listed.
func (t *Targets) Find(id int64) (models.Target, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, item := range t.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Target{}, false
}

func (t *Targets) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Loaded reports whether at least one Load succeeded.
func (t *Targets) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
