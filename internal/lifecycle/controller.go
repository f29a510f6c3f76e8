// Package lifecycle is the view model of a generation: it switches between
// the form and the result screen, submits the request, polls the backend
// for snapshots and derives what the result screen shows.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"fitpromo/internal/form"
	"fitpromo/internal/logger"
	"fitpromo/internal/models"
	"fitpromo/internal/polling"
)

var (
	ErrNotReady      = errors.New("request is not ready to submit")
	ErrSuperseded    = errors.New("submission was superseded")
	ErrNoGeneration  = errors.New("no generation held")
	ErrSubmitPending = errors.New("a submission is already in flight")
)

type View string

const (
	ViewForm   View = "form"
	ViewResult View = "result"
)

// API is the part of the backend client the lifecycle needs.
type API interface {
	CreateGeneration(ctx context.Context, in models.GenerationCreate) (*models.Generation, error)
	GetGeneration(ctx context.Context, id int64) (*models.Generation, error)
	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.ImageFile, error)
	ImageURL(storedPath string) string
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a transient message for the user.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// ViewState is the full published state of the studio screen.
type ViewState struct {
	View          View          `json:"view"`
	Form          form.Snapshot `json:"form"`
	CanSubmit     bool          `json:"canSubmit"`
	Submitting    bool          `json:"submitting"`
	Active        bool          `json:"active"`
	Polling       bool          `json:"polling"`
	PromptSummary string        `json:"promptSummary"`
	ShowStartOver bool          `json:"showStartOver"`
	Outcome       OutcomeKind   `json:"outcome"`
	PollError     string        `json:"pollError,omitempty"`
	GenerationID  int64         `json:"generationId,omitempty"`
	Result        *ResultView   `json:"result,omitempty"`
}

type Options struct {
	PollInterval    time.Duration
	MessageInterval time.Duration
	History         History
	Logger          *logger.Logger
	Now             func() time.Time

	// OnChange receives every state change. It runs with the controller's
	// publish lock held and must not call back into the controller.
	OnChange func(ViewState)
	OnNotice func(Notice)
	// OnSnapshot is called for every Generation the controller adopts.
	OnSnapshot func(gen *models.Generation, summary string)
}

// Controller owns the form, the held Generation and the two timers of the
// result screen. All methods are safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	pubMu sync.Mutex

	ctx  context.Context
	api  API
	opts Options
	log  *logger.Logger

	form        *form.Form
	view        View
	outcome     SubmitOutcome
	generation  *models.Generation
	submitting  bool
	epoch       uint64
	selectedTab int
	enteredAt   time.Time
	pollErr     string

	history History
	poller  *polling.Poller[*models.Generation]
	rotator *Rotator
}

func New(ctx context.Context, api API, opts Options) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	if opts.MessageInterval <= 0 {
		opts.MessageInterval = 3 * time.Second
	}
	if opts.History == nil {
		opts.History = NewMemoryHistory()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		ctx:     ctx,
		api:     api,
		opts:    opts,
		log:     opts.Logger.With("component", "lifecycle"),
		form:    form.New(),
		view:    ViewForm,
		history: opts.History,
	}
	c.poller = polling.New(ctx, c.fetchHeld, opts.PollInterval,
		polling.WithOnUpdate(c.onPoll))
	c.rotator = NewRotator(opts.MessageInterval, c.publish)
	return c
}

// Close stops both timers. Responses still in flight are dropped.
func (c *Controller) Close() {
	c.poller.Close()
	c.rotator.Stop()
}

// fetchHeld polls whatever Generation is held when the tick fires.
func (c *Controller) fetchHeld(ctx context.Context) (*models.Generation, error) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()
	if gen == nil {
		return nil, ErrNoGeneration
	}
	return c.api.GetGeneration(ctx, gen.ID)
}

func (c *Controller) onPoll(st polling.State[*models.Generation]) {
	c.mu.Lock()
	if st.Err != nil {
		if errors.Is(st.Err, ErrNoGeneration) {
			c.mu.Unlock()
			return
		}
		c.pollErr = st.Err.Error()
		c.log.Warn("poll failed", "error", st.Err)
		c.unlockAndPublish()
		return
	}
	c.pollErr = ""
	adopted := c.adoptLocked(st.Data)
	summary := c.form.PromptSummary()
	c.unlockAndPublish()

	if adopted != nil && c.opts.OnSnapshot != nil {
		c.opts.OnSnapshot(adopted, summary)
	}
}

// adoptLocked replaces the held Generation wholesale with gen when it is a
// snapshot of the same generation. It returns the adopted snapshot, or nil
// when gen was ignored.
func (c *Controller) adoptLocked(gen *models.Generation) *models.Generation {
	if gen == nil || c.generation == nil || gen.ID != c.generation.ID {
		return nil
	}
	c.setGenerationLocked(gen)
	return gen
}

func (c *Controller) setGenerationLocked(gen *models.Generation) {
	c.generation = gen
	if gen != nil && c.selectedTab >= len(gen.Results) {
		c.selectedTab = clampIndex(c.selectedTab, len(gen.Results))
	}
	c.rotator.SetMessages(MessageSetFor(gen))
	c.poller.SetEnabled(gen != nil && !gen.Status.IsTerminal())
}

func (c *Controller) clearGenerationLocked() {
	c.generation = nil
	c.selectedTab = 0
	c.pollErr = ""
	c.poller.SetEnabled(false)
	c.rotator.SetMessages(MessagesInit)
}

// enterResultLocked shows the result view and restarts the elapsed clock and
// message rotation. A history entry is pushed only when coming from the form.
func (c *Controller) enterResultLocked() {
	if c.view != ViewResult {
		c.history.Push(EntryResult)
	}
	c.view = ViewResult
	c.enteredAt = c.opts.Now()
	c.rotator.Stop()
	c.rotator.Start(c.ctx, MessageSetFor(c.generation))
}

// popResultEntryLocked removes the entry pushed on entering the result view,
// if it is still on top.
func (c *Controller) popResultEntryLocked() {
	if top, ok := c.history.Top(); ok && top == EntryResult {
		c.history.Pop()
	}
}

// dropPoppedEntryLocked is popResultEntryLocked for a pop the platform has
// already performed.
func (c *Controller) dropPoppedEntryLocked() {
	top, ok := c.history.Top()
	if !ok || top != EntryResult {
		return
	}
	if ph, ok := c.history.(PlatformHistory); ok {
		ph.PopMirrored()
		return
	}
	c.history.Pop()
}

func (c *Controller) leaveResultLocked() {
	c.view = ViewForm
	c.rotator.Stop()
}

func (c *Controller) activeLocked() bool {
	return c.generation != nil && !c.generation.Status.IsTerminal()
}

// Submit sends the composed request. Any held Generation, finished or not,
// is replaced. The result view is shown before the backend answers; if the
// call fails the view returns to the form and an error notice is raised.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.submitting:
		c.mu.Unlock()
		return ErrSubmitPending
	case !c.form.CanGenerate():
		c.mu.Unlock()
		return ErrNotReady
	}
	req := c.form.Request()
	c.submitting = true
	c.outcome = Pending()
	c.epoch++
	epoch := c.epoch
	c.clearGenerationLocked()
	c.enterResultLocked()
	c.unlockAndPublish()

	gen, err := c.api.CreateGeneration(ctx, req)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		c.log.Debug("discarding late submit response", "epoch", epoch)
		return ErrSuperseded
	}
	c.submitting = false
	if err != nil {
		c.outcome = Failed(err)
		c.popResultEntryLocked()
		c.leaveResultLocked()
		c.unlockAndPublish()
		c.log.Error("create generation failed", "error", err)
		c.notify(NoticeError, "Generation failed")
		return fmt.Errorf("creating generation: %w", err)
	}

	c.outcome = OK(gen)
	c.setGenerationLocked(gen)
	summary := c.form.PromptSummary()
	c.unlockAndPublish()

	c.log.Info("generation created", "generation_id", gen.ID, "status", gen.Status, "targets", len(req.TargetIDs))
	if c.opts.OnSnapshot != nil {
		c.opts.OnSnapshot(gen, summary)
	}
	return nil
}

// Back leaves the result view. If entering it pushed a history entry that is
// still on top, that entry is popped as a platform back would.
func (c *Controller) Back() {
	c.mu.Lock()
	c.popResultEntryLocked()
	c.leaveResultLocked()
	c.unlockAndPublish()
}

// HandlePopState reacts to a platform back gesture. The platform has
// already left the entry, so it is not popped there again.
func (c *Controller) HandlePopState() {
	c.mu.Lock()
	if c.view != ViewResult {
		c.mu.Unlock()
		return
	}
	c.dropPoppedEntryLocked()
	c.leaveResultLocked()
	c.unlockAndPublish()
}

// StartOver clears the form and the held Generation and returns to the
// form. A submit still in flight will have its response discarded.
func (c *Controller) StartOver() {
	c.mu.Lock()
	c.epoch++
	c.form.Reset()
	c.clearGenerationLocked()
	c.outcome = SubmitOutcome{}
	c.submitting = false
	c.leaveResultLocked()
	c.unlockAndPublish()
}

// SelectTab selects a result tab by index. The selection survives snapshot
// refreshes.
func (c *Controller) SelectTab(i int) {
	c.mu.Lock()
	n := 0
	if c.generation != nil {
		n = len(c.generation.Results)
	}
	c.selectedTab = clampIndex(i, n)
	c.unlockAndPublish()
}

// Resume loads a past generation and shows it in the result view.
func (c *Controller) Resume(ctx context.Context, id int64) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitPending
	}
	c.mu.Unlock()

	gen, err := c.api.GetGeneration(ctx, id)
	if err != nil {
		c.notify(NoticeError, "Could not load generation")
		return fmt.Errorf("loading generation %d: %w", id, err)
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitPending
	}
	c.epoch++
	c.outcome = OK(gen)
	c.clearGenerationLocked()
	c.setGenerationLocked(gen)
	c.enterResultLocked()
	summary := c.form.PromptSummary()
	c.unlockAndPublish()

	if c.opts.OnSnapshot != nil {
		c.opts.OnSnapshot(gen, summary)
	}
	return nil
}

// UploadImage uploads a reference image and attaches it to the form. A new
// image starts a new composition: the held Generation and the target
// selection are dropped.
func (c *Controller) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.ImageFile, error) {
	img, err := c.api.UploadImage(ctx, filename, r)
	if err != nil {
		c.log.Error("upload failed", "file", filename, "error", err)
		c.notify(NoticeError, "Image upload failed")
		return nil, fmt.Errorf("uploading %s: %w", filename, err)
	}
	c.AttachImage(*img)
	c.notify(NoticeSuccess, "Image uploaded")
	return img, nil
}

func (c *Controller) AttachImage(img models.ImageFile) {
	c.mu.Lock()
	c.epoch++
	c.form.AttachImage(img)
	c.clearGenerationLocked()
	c.outcome = SubmitOutcome{}
	c.submitting = false
	if c.view == ViewResult {
		c.popResultEntryLocked()
		c.leaveResultLocked()
	}
	c.unlockAndPublish()
}

// Edit applies fn to the form and publishes the result.
func (c *Controller) Edit(fn func(f *form.Form)) {
	c.mu.Lock()
	fn(c.form)
	c.unlockAndPublish()
}

func (c *Controller) SetPrompt(prompt string) {
	c.Edit(func(f *form.Form) { f.SetPrompt(prompt) })
}

func (c *Controller) SetDesignStyle(style models.DesignStyle) {
	c.Edit(func(f *form.Form) { f.SetDesignStyle(style) })
}

func (c *Controller) ToggleTarget(id int64) {
	c.Edit(func(f *form.Form) { f.ToggleTarget(id) })
}

func (c *Controller) ToggleProduct(p models.Product) {
	c.Edit(func(f *form.Form) { f.ToggleProduct(p) })
}

func (c *Controller) RemoveTarget(id int64) {
	c.Edit(func(f *form.Form) { f.RemoveTarget(id) })
}

func (c *Controller) SelectProduct(p models.Product) {
	c.Edit(func(f *form.Form) { f.SelectProduct(p) })
}

func (c *Controller) PatchProduct(p models.Product) {
	c.Edit(func(f *form.Form) { f.PatchProduct(p) })
}

func (c *Controller) RemoveProduct(id int64) {
	c.Edit(func(f *form.Form) { f.RemoveProduct(id) })
}

func (c *Controller) ClearImage() {
	c.Edit(func(f *form.Form) { f.ClearImage() })
}

func (c *Controller) ClearProducts() {
	c.Edit(func(f *form.Form) { f.ClearProducts() })
}

// FormSnapshot returns a copy of the form fields.
func (c *Controller) FormSnapshot() form.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Snapshot()
}

// Generation returns the held snapshot, or nil.
func (c *Controller) Generation() *models.Generation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Controller) Outcome() SubmitOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

func (c *Controller) Polling() bool {
	return c.poller.Enabled()
}

func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() ViewState {
	active := c.activeLocked()
	vs := ViewState{
		View:          c.view,
		Form:          c.form.Snapshot(),
		CanSubmit:     c.form.CanGenerate() && !c.submitting,
		Submitting:    c.submitting,
		Active:        active,
		Polling:       c.poller.Enabled(),
		PromptSummary: c.form.PromptSummary(),
		ShowStartOver: c.generation != nil || c.form.HasInput(),
		Outcome:       c.outcome.Kind,
		PollError:     c.pollErr,
	}
	if c.generation != nil {
		vs.GenerationID = c.generation.ID
	}
	if c.view == ViewResult {
		_, idx := c.rotator.Current()
		rv := Derive(DeriveInput{
			Generation:   c.generation,
			SourceImage:  c.form.Image(),
			SelectedTab:  c.selectedTab,
			MessageIndex: idx,
			Elapsed:      c.opts.Now().Sub(c.enteredAt),
			ImageURL:     c.api.ImageURL,
		})
		vs.Result = &rv
	}
	return vs
}

func (c *Controller) publish() {
	c.mu.Lock()
	c.unlockAndPublish()
}

// unlockAndPublish snapshots the view state, releases mu and hands the
// snapshot to OnChange. pubMu is taken before mu is released so listeners
// see states in the order they were produced.
func (c *Controller) unlockAndPublish() {
	if c.opts.OnChange == nil {
		c.mu.Unlock()
		return
	}
	vs := c.viewLocked()
	c.pubMu.Lock()
	c.mu.Unlock()
	defer c.pubMu.Unlock()
	c.opts.OnChange(vs)
}

func (c *Controller) notify(level NoticeLevel, msg string) {
	if c.opts.OnNotice != nil {
		c.opts.OnNotice(Notice{Level: level, Message: msg})
	}
}
