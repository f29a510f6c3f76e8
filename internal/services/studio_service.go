package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fitpromo/internal/api"
	"fitpromo/internal/catalog"
	"fitpromo/internal/events"
	"fitpromo/internal/form"
	"fitpromo/internal/lifecycle"
	"fitpromo/internal/logger"
	"fitpromo/internal/models"
	"fitpromo/internal/repositories"
)

var (
	ErrUnknownProduct = errors.New("product is not in the catalog")
	ErrInvalidStyle   = errors.New("unknown design style")
)

// BackendAPI is everything the studio needs from the backend client.
type BackendAPI interface {
	lifecycle.API
	catalog.TargetAPI
	catalog.ProductAPI
}

type StudioOptions struct {
	PollInterval    time.Duration
	MessageInterval time.Duration
	Logger          *logger.Logger
	// Records and Settings are optional; without them history is not kept
	// and the form starts with the built-in default style.
	Records  repositories.GenerationRecordRepository
	Settings repositories.AppSettingsRepository
}

// BootstrapData is what the web view needs to draw its first frame.
type BootstrapData struct {
	Targets      []models.Target            `json:"targets"`
	Products     []models.Product           `json:"products"`
	DesignStyles []models.DesignStyleOption `json:"designStyles"`
	View         lifecycle.ViewState        `json:"view"`
}

// StudioService binds the generation screen to the web view. It owns the
// lifecycle controller and the two catalog managers that edit its form.
type StudioService struct {
	mu      sync.RWMutex
	context context.Context

	log      *logger.Logger
	records  repositories.GenerationRecordRepository
	settings repositories.AppSettingsRepository

	// lifetime of the controller's timers, independent of the web view
	base   context.Context
	cancel context.CancelFunc

	history  *navigationHistory
	ctrl     *lifecycle.Controller
	targets  *catalog.Targets
	products *catalog.Products
}

func NewStudioService(backend BackendAPI, opts StudioOptions) *StudioService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	s := &StudioService{
		log:      opts.Logger.With("service", "studio"),
		records:  opts.Records,
		settings: opts.Settings,
	}
	s.base, s.cancel = context.WithCancel(context.Background())
	s.history = newNavigationHistory(s.ctx)
	s.ctrl = lifecycle.New(s.base, backend, lifecycle.Options{
		PollInterval:    opts.PollInterval,
		MessageInterval: opts.MessageInterval,
		History:         s.history,
		Logger:          opts.Logger,
		OnChange:        s.emitView,
		OnNotice:        s.emitNotice,
		OnSnapshot:      s.recordSnapshot,
	})
	s.targets = catalog.NewTargets(backend, s.ctrl, opts.Logger, func(list []models.Target) {
		s.emit(events.CatalogTargets, list)
	})
	s.products = catalog.NewProducts(backend, s.ctrl, opts.Logger, func(list []models.Product) {
		s.emit(events.CatalogProduct, list)
	})
	return s
}

func (s *StudioService) Startup(ctx context.Context) {
	s.mu.Lock()
	s.context = ctx
	s.mu.Unlock()
}

// Shutdown stops polling and message rotation.
func (s *StudioService) Shutdown() {
	s.ctrl.Close()
	s.cancel()
}

func (s *StudioService) ctx() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

func (s *StudioService) emit(name string, payload any) {
	if ctx := s.ctx(); ctx != nil {
		events.Emit(ctx, name, payload)
	}
}

func (s *StudioService) emitView(vs lifecycle.ViewState) {
	s.emit(events.StudioView, vs)
}

func (s *StudioService) emitNotice(n lifecycle.Notice) {
	var evt events.NoticeEvent
	switch n.Level {
	case lifecycle.NoticeError:
		evt = events.NewError(n.Message)
	case lifecycle.NoticeSuccess:
		evt = events.NewSuccess(n.Message)
	default:
		evt = events.NewInfo(n.Message)
	}
	s.emit(events.StudioNotice, evt)
}

func (s *StudioService) recordSnapshot(gen *models.Generation, summary string) {
	if s.records == nil || gen == nil {
		return
	}
	rec := &models.GenerationRecord{
		RemoteID:       gen.ID,
		PromptSummary:  summary,
		Status:         string(gen.Status),
		TargetCount:    len(gen.Results),
		CompletedCount: gen.CompletedCount(),
	}
	if gen.DesignStyle != nil {
		rec.DesignStyle = *gen.DesignStyle
	}
	if err := s.records.Upsert(s.base, rec); err != nil {
		s.log.Warn("recording generation failed", "generation", gen.ID, "error", err)
		return
	}
	s.emit(events.HistoryUpdated, gen.ID)
}

// Controller exposes the view model for the terminal front end.
func (s *StudioService) Controller() *lifecycle.Controller { return s.ctrl }

func (s *StudioService) Targets() *catalog.Targets { return s.targets }

func (s *StudioService) Products() *catalog.Products { return s.products }

// Bootstrap loads targets and products concurrently and applies the saved
// default design style. A failing list is reported but does not stop the
// other from loading.
func (s *StudioService) Bootstrap() (*BootstrapData, error) {
	var g errgroup.Group
	var targetsErr, productsErr error
	g.Go(func() error {
		targetsErr = s.targets.Load(s.base)
		return nil
	})
	g.Go(func() error {
		productsErr = s.products.Load(s.base)
		return nil
	})
	_ = g.Wait()

	if s.settings != nil {
		if settings, err := s.settings.Get(s.base); err != nil {
			s.log.Warn("loading settings failed", "error", err)
		} else if style := models.DesignStyle(settings.DefaultDesignStyle); style.Valid() {
			s.ctrl.Edit(func(f *form.Form) {
				if !f.HasInput() {
					f.SetDesignStyle(style)
				}
			})
		}
	}

	data := &BootstrapData{
		Targets:      s.targets.List(),
		Products:     s.products.List(),
		DesignStyles: models.DesignStyleOptions(),
		View:         s.ctrl.View(),
	}
	return data, errors.Join(targetsErr, productsErr)
}

func (s *StudioService) View() lifecycle.ViewState {
	return s.ctrl.View()
}

func (s *StudioService) SetPrompt(prompt string) lifecycle.ViewState {
	s.ctrl.SetPrompt(prompt)
	return s.ctrl.View()
}

func (s *StudioService) SetDesignStyle(style string) (lifecycle.ViewState, error) {
	ds := models.DesignStyle(style)
	if !ds.Valid() {
		return s.ctrl.View(), fmt.Errorf("%w: %q", ErrInvalidStyle, style)
	}
	s.ctrl.SetDesignStyle(ds)
	return s.ctrl.View(), nil
}

func (s *StudioService) ToggleTarget(id int64) lifecycle.ViewState {
	s.ctrl.ToggleTarget(id)
	return s.ctrl.View()
}

// ToggleProduct selects or deselects a catalog product by id.
func (s *StudioService) ToggleProduct(id int64) (lifecycle.ViewState, error) {
	p, ok := s.products.Find(id)
	if !ok {
		return s.ctrl.View(), fmt.Errorf("%w: %d", ErrUnknownProduct, id)
	}
	s.ctrl.ToggleProduct(p)
	return s.ctrl.View(), nil
}

func (s *StudioService) RemoveProduct(id int64) lifecycle.ViewState {
	s.ctrl.RemoveProduct(id)
	return s.ctrl.View()
}

func (s *StudioService) ClearProducts() lifecycle.ViewState {
	s.ctrl.ClearProducts()
	return s.ctrl.View()
}

func (s *StudioService) ClearImage() lifecycle.ViewState {
	s.ctrl.ClearImage()
	return s.ctrl.View()
}

// UploadImage takes the bytes of a dropped file from the web view.
func (s *StudioService) UploadImage(filename string, data []byte) (*models.ImageFile, error) {
	if len(data) == 0 {
		return nil, api.ErrEmptyFile
	}
	return s.ctrl.UploadImage(s.base, filename, bytes.NewReader(data))
}

// UploadFile uploads an image picked through the native file dialog.
func (s *StudioService) UploadFile(path string) (*models.ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("service: open %s: %w", path, err)
	}
	defer f.Close()
	return s.ctrl.UploadImage(s.base, filepath.Base(path), f)
}

// Submit creates a generation from the form and switches to the result
// view. It returns once the backend has accepted or refused the request.
func (s *StudioService) Submit() (lifecycle.ViewState, error) {
	err := s.ctrl.Submit(s.base)
	if errors.Is(err, lifecycle.ErrSuperseded) {
		// the user moved on while the request was in flight
		err = nil
	}
	return s.ctrl.View(), err
}

func (s *StudioService) Back() lifecycle.ViewState {
	s.ctrl.Back()
	return s.ctrl.View()
}

// PopState is called by the web view after the platform went back one entry.
func (s *StudioService) PopState() lifecycle.ViewState {
	s.ctrl.HandlePopState()
	return s.ctrl.View()
}

func (s *StudioService) StartOver() lifecycle.ViewState {
	s.ctrl.StartOver()
	return s.ctrl.View()
}

func (s *StudioService) SelectTab(index int) lifecycle.ViewState {
	s.ctrl.SelectTab(index)
	return s.ctrl.View()
}

// Resume reopens a generation from the local history.
func (s *StudioService) Resume(id int64) (lifecycle.ViewState, error) {
	err := s.ctrl.Resume(s.base, id)
	return s.ctrl.View(), err
}
