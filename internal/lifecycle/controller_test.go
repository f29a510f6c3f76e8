package lifecycle_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitpromo/internal/lifecycle"
	"fitpromo/internal/models"
	"fitpromo/internal/tests/mocks"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func strp(s string) *string { return &s }

// scriptedBackend serves whatever snapshot the test last set and counts
// GET /generations/{id} calls.
type scriptedBackend struct {
	mu       sync.Mutex
	snapshot *models.Generation
	getErr   error
	gets     atomic.Int32
}

func (b *scriptedBackend) set(gen *models.Generation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = gen
}

func (b *scriptedBackend) fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getErr = err
}

func (b *scriptedBackend) get(_ context.Context, _ int64) (*models.Generation, error) {
	b.gets.Add(1)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.getErr != nil {
		return nil, b.getErr
	}
	return b.snapshot, nil
}

type recorder struct {
	mu        sync.Mutex
	notices   []lifecycle.Notice
	snapshots []*models.Generation
	states    []lifecycle.ViewState
}

func (r *recorder) options() lifecycle.Options {
	return lifecycle.Options{
		PollInterval:    10 * time.Millisecond,
		MessageInterval: time.Hour,
		OnNotice: func(n lifecycle.Notice) {
			r.mu.Lock()
			r.notices = append(r.notices, n)
			r.mu.Unlock()
		},
		OnSnapshot: func(gen *models.Generation, _ string) {
			r.mu.Lock()
			r.snapshots = append(r.snapshots, gen)
			r.mu.Unlock()
		},
		OnChange: func(vs lifecycle.ViewState) {
			r.mu.Lock()
			r.states = append(r.states, vs)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) lastNotice() lifecycle.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return lifecycle.Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func pending(id int64) *models.Generation {
	return &models.Generation{ID: id, Status: models.GenerationPending, Results: []models.GenerationResult{}}
}

func TestSpringLaunchScenario(t *testing.T) {
	backend := &scriptedBackend{}
	release := make(chan struct{})
	var sent models.GenerationCreate
	api := &mocks.BackendAPIMock{
		CreateGenerationFunc: func(ctx context.Context, in models.GenerationCreate) (*models.Generation, error) {
			sent = in
			<-release
			return pending(1), nil
		},
		GetGenerationFunc: backend.get,
	}
	rec := &recorder{}
	history := lifecycle.NewMemoryHistory()
	opts := rec.options()
	opts.History = history
	c := lifecycle.New(context.Background(), api, opts)
	defer c.Close()

	c.ToggleTarget(5)
	c.SetPrompt("spring launch")
	require.True(t, c.View().CanSubmit)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()

	// Optimistic switch before the backend answers.
	require.Eventually(t, func() bool {
		vs := c.View()
		return vs.View == lifecycle.ViewResult && vs.Submitting
	}, waitFor, tick)
	vs := c.View()
	require.NotNil(t, vs.Result)
	assert.Equal(t, lifecycle.PanelPreparing, vs.Result.Panel)
	assert.False(t, vs.CanSubmit)
	assert.Equal(t, 1, history.Len())

	backend.set(pending(1))
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []int64{5}, sent.TargetIDs)
	assert.Equal(t, "spring launch", *sent.PromotionPrompt)

	vs = c.View()
	assert.Equal(t, lifecycle.PanelPhase, vs.Result.Panel)
	assert.Equal(t, lifecycle.MessagesPreparation, vs.Result.Loading.MessageSet)
	assert.True(t, vs.Polling)
	assert.Equal(t, lifecycle.OutcomeOK, vs.Outcome)

	backend.set(&models.Generation{ID: 1, Status: models.GenerationGenerating, Results: []models.GenerationResult{
		{ID: 10, GenerationID: 1, TargetID: 5, Status: models.ResultGenerating},
	}})
	require.Eventually(t, func() bool { return c.View().Result.Panel == lifecycle.PanelTabs }, waitFor, tick)
	vs = c.View()
	require.Len(t, vs.Result.Tabs, 1)
	assert.Equal(t, lifecycle.DotActive, vs.Result.Tabs[0].Dot)
	assert.Equal(t, lifecycle.TabLoading, vs.Result.Active.Kind)
	assert.False(t, vs.Result.Finished)

	backend.set(&models.Generation{ID: 1, Status: models.GenerationCompleted, Results: []models.GenerationResult{
		{ID: 10, GenerationID: 1, TargetID: 5, Status: models.ResultCompleted, StoredPath: strp("out/1.png")},
	}})
	require.Eventually(t, func() bool { return c.View().Result.Finished }, waitFor, tick)
	vs = c.View()
	assert.False(t, vs.Polling)
	assert.False(t, vs.Active)
	assert.Equal(t, lifecycle.TabCompare, vs.Result.Active.Kind)
	assert.Equal(t, "http://api.test/files/out/1.png", vs.Result.Active.GeneratedURL)
	assert.True(t, vs.Result.Tabs[0].Checkmark)

	// Polling stops within one tick of the terminal snapshot.
	calls := backend.gets.Load()
	time.Sleep(60 * time.Millisecond)
	assert.LessOrEqual(t, backend.gets.Load(), calls+1)

	rec.mu.Lock()
	assert.NotEmpty(t, rec.snapshots)
	assert.Equal(t, models.GenerationCompleted, rec.snapshots[len(rec.snapshots)-1].Status)
	rec.mu.Unlock()
}

func TestSubmitNotReady(t *testing.T) {
	api := &mocks.BackendAPIMock{
		CreateGenerationFunc: func(context.Context, models.GenerationCreate) (*models.Generation, error) {
			t.Fatal("must not be called")
			return nil, nil
		},
	}
	c := lifecycle.New(context.Background(), api, lifecycle.Options{})
	defer c.Close()

	assert.ErrorIs(t, c.Submit(context.Background()), lifecycle.ErrNotReady)
	c.ToggleTarget(1)
	assert.ErrorIs(t, c.Submit(context.Background()), lifecycle.ErrNotReady)
	assert.Equal(t, lifecycle.ViewForm, c.View().View)
}

func TestSubmitFailureRollsBack(t *testing.T) {
	boom := errors.New("API error 500: boom")
	api := &mocks.BackendAPIMock{
		CreateGenerationFunc: func(context.Context, models.GenerationCreate) (*models.Generation, error) {
			return nil, boom
		},
	}
	rec := &recorder{}
	history := lifecycle.NewMemoryHistory()
	opts := rec.options()
	opts.History = history
	c := lifecycle.New(context.Background(), api, opts)
	defer c.Close()

	c.ToggleTarget(1)
	c.SetPrompt("x")
	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, boom)

	vs := c.View()
	assert.Equal(t, lifecycle.ViewForm, vs.View)
	assert.Equal(t, lifecycle.OutcomeErr, vs.Outcome)
	assert.False(t, vs.Submitting)
	assert.True(t, vs.CanSubmit, "form is kept for retry")
	assert.Equal(t, 0, history.Len())
	assert.Equal(t, lifecycle.NoticeError, rec.lastNotice().Level)

	rec.mu.Lock()
	var sawResult bool
	for _, s := range rec.states {
		if s.View == lifecycle.ViewResult {
			sawResult = true
		}
	}
	rec.mu.Unlock()
	assert.True(t, sawResult, "result view was shown optimistically")
}

func TestBackAndPopState(t *testing.T) {
	backend := &scriptedBackend{}
	backend.set(pending(1))
	api := &mocks.BackendAPIMock{GetGenerationFunc: backend.get}
	history := lifecycle.NewMemoryHistory()
	c := lifecycle.New(context.Background(), api, lifecycle.Options{PollInterval: time.Hour, History: history})
	defer c.Close()

	c.ToggleTarget(1)
	c.SetPrompt("x")
	require.NoError(t, c.Submit(context.Background()))
	require.Equal(t, 1, history.Len())

	c.Back()
	vs := c.View()
	assert.Equal(t, lifecycle.ViewForm, vs.View)
	assert.Equal(t, 0, history.Len())
	assert.Equal(t, int64(1), vs.GenerationID, "back keeps the generation")
	assert.True(t, vs.Active)
	assert.True(t, vs.CanSubmit, "a running generation does not block a new one")

	// Back from the form without a history entry just stays on the form.
	c.Back()
	assert.Equal(t, lifecycle.ViewForm, c.View().View)

	c.HandlePopState()
	assert.Equal(t, lifecycle.ViewForm, c.View().View)
}

func TestPopStateFromResult(t *testing.T) {
	history := lifecycle.NewMemoryHistory()
	c := lifecycle.New(context.Background(), &mocks.BackendAPIMock{}, lifecycle.Options{PollInterval: time.Hour, History: history})
	defer c.Close()

	c.ToggleTarget(1)
	c.SetPrompt("x")
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, lifecycle.ViewResult, c.View().View)

	c.HandlePopState()
	assert.Equal(t, lifecycle.ViewForm, c.View().View)
	assert.Equal(t, 0, history.Len())
}

func TestStartOverDiscardsLateSubmit(t *testing.T) {
	release := make(chan struct{})
	api := &mocks.BackendAPIMock{
		CreateGenerationFunc: func(context.Context, models.GenerationCreate) (*models.Generation, error) {
			<-release
			return pending(7), nil
		},
	}
	c := lifecycle.New(context.Background(), api, lifecycle.Options{PollInterval: time.Hour})
	defer c.Close()

	c.ToggleTarget(1)
	c.SetPrompt("x")
	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	require.Eventually(t, func() bool { return c.View().Submitting }, waitFor, tick)

	c.StartOver()
	close(release)
	assert.ErrorIs(t, <-done, lifecycle.ErrSuperseded)

	vs := c.View()
	assert.Equal(t, lifecycle.ViewForm, vs.View)
	assert.Nil(t, c.Generation())
	assert.False(t, vs.Polling)
	assert.Empty(t, vs.Form.Prompt)
	assert.Empty(t, vs.Form.TargetIDs)
	assert.Equal(t, models.DefaultDesignStyle, vs.Form.DesignStyle)
	assert.False(t, vs.ShowStartOver)
}

func TestTabSelectionSurvivesRefreshAndClamps(t *testing.T) {
	results := func(n int, status models.ResultStatus) []models.GenerationResult {
		out := make([]models.GenerationResult, n)
		for i := range out {
			out[i] = models.GenerationResult{ID: int64(10 + i), TargetID: int64(i + 1), Status: status}
		}
		return out
	}
	backend := &scriptedBackend{}
	backend.set(&models.Generation{ID: 3, Status: models.GenerationGenerating, Results: results(3, models.ResultPending)})
	api := &mocks.BackendAPIMock{GetGenerationFunc: backend.get}
	c := lifecycle.New(context.Background(), api, lifecycle.Options{PollInterval: 10 * time.Millisecond})
	defer c.Close()

	require.NoError(t, c.Resume(context.Background(), 3))
	c.SelectTab(2)
	assert.Equal(t, 2, c.View().Result.SelectedTab)

	backend.set(&models.Generation{ID: 3, Status: models.GenerationGenerating, Results: results(3, models.ResultGenerating)})
	require.Eventually(t, func() bool {
		return c.View().Result.Tabs[0].Dot == lifecycle.DotActive && c.Generation().Results[0].Status == models.ResultGenerating
	}, waitFor, tick)
	assert.Equal(t, 2, c.View().Result.SelectedTab)

	backend.set(&models.Generation{ID: 3, Status: models.GenerationGenerating, Results: results(1, models.ResultGenerating)})
	require.Eventually(t, func() bool { return len(c.View().Result.Tabs) == 1 }, waitFor, tick)
	assert.Equal(t, 0, c.View().Result.SelectedTab)

	c.SelectTab(9)
	assert.Equal(t, 0, c.View().Result.SelectedTab)
}

func TestMonotonicProgress(t *testing.T) {
	statuses := [][]models.ResultStatus{
		{models.ResultPending, models.ResultPending, models.ResultPending},
		{models.ResultGenerating, models.ResultPending, models.ResultPending},
		{models.ResultCompleted, models.ResultGenerating, models.ResultPending},
		{models.ResultCompleted, models.ResultFailed, models.ResultGenerating},
		{models.ResultCompleted, models.ResultFailed, models.ResultCompleted},
	}
	var n atomic.Int32
	api := &mocks.BackendAPIMock{
		GetGenerationFunc: func(context.Context, int64) (*models.Generation, error) {
			i := int(n.Add(1)) - 1
			if i >= len(statuses) {
				i = len(statuses) - 1
			}
			gen := &models.Generation{ID: 1, Status: models.GenerationGenerating}
			if i == len(statuses)-1 {
				gen.Status = models.GenerationCompleted
			}
			for j, s := range statuses[i] {
				gen.Results = append(gen.Results, models.GenerationResult{ID: int64(j), TargetID: int64(j), Status: s})
			}
			return gen, nil
		},
	}
	var mu sync.Mutex
	var settled []int
	c := lifecycle.New(context.Background(), api, lifecycle.Options{
		PollInterval: 20 * time.Millisecond,
		OnSnapshot: func(gen *models.Generation, _ string) {
			mu.Lock()
			settled = append(settled, gen.SettledCount())
			mu.Unlock()
		},
	})
	defer c.Close()

	require.NoError(t, c.Resume(context.Background(), 1))
	require.Eventually(t, func() bool { return c.View().Result != nil && c.View().Result.Finished }, waitFor, tick)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, settled)
	for i := 1; i < len(settled); i++ {
		assert.GreaterOrEqual(t, settled[i], settled[i-1], "settled counts %v", settled)
	}
	assert.Equal(t, 3, settled[len(settled)-1])
}

func TestPollErrorKeepsSnapshotAndContinues(t *testing.T) {
	backend := &scriptedBackend{}
	backend.set(pending(1))
	api := &mocks.BackendAPIMock{GetGenerationFunc: backend.get}
	c := lifecycle.New(context.Background(), api, lifecycle.Options{PollInterval: 10 * time.Millisecond})
	defer c.Close()

	require.NoError(t, c.Resume(context.Background(), 1))
	backend.fail(errors.New("connection refused"))
	require.Eventually(t, func() bool { return c.View().PollError != "" }, waitFor, tick)
	assert.Equal(t, int64(1), c.Generation().ID)
	assert.True(t, c.View().Polling)

	calls := backend.gets.Load()
	backend.fail(nil)
	backend.set(&models.Generation{ID: 1, Status: models.GenerationAnalyzing})
	require.Eventually(t, func() bool {
		return backend.gets.Load() > calls && c.Generation().Status == models.GenerationAnalyzing
	}, waitFor, tick)
	assert.Empty(t, c.View().PollError)
	assert.Equal(t, lifecycle.MessagesAnalysis, c.View().Result.Loading.MessageSet)
}

func TestSnapshotForOtherGenerationIgnored(t *testing.T) {
	backend := &scriptedBackend{}
	backend.set(pending(1))
	api := &mocks.BackendAPIMock{GetGenerationFunc: backend.get}
	c := lifecycle.New(context.Background(), api, lifecycle.Options{PollInterval: 10 * time.Millisecond})
	defer c.Close()

	require.NoError(t, c.Resume(context.Background(), 1))
	backend.set(&models.Generation{ID: 2, Status: models.GenerationCompleted})
	calls := backend.gets.Load()
	require.Eventually(t, func() bool { return backend.gets.Load() > calls+2 }, waitFor, tick)

	assert.Equal(t, int64(1), c.Generation().ID)
	assert.Equal(t, models.GenerationPending, c.Generation().Status)
	assert.True(t, c.View().Polling)
}

func TestResumeFailureNotifies(t *testing.T) {
	api := &mocks.BackendAPIMock{
		GetGenerationFunc: func(context.Context, int64) (*models.Generation, error) {
			return nil, errors.New("API error 404: not found")
		},
	}
	rec := &recorder{}
	c := lifecycle.New(context.Background(), api, rec.options())
	defer c.Close()

	assert.Error(t, c.Resume(context.Background(), 99))
	assert.Equal(t, lifecycle.ViewForm, c.View().View)
	assert.Equal(t, lifecycle.NoticeError, rec.lastNotice().Level)
}

func TestUploadReplacesGenerationAndTargets(t *testing.T) {
	api := &mocks.BackendAPIMock{
		GetGenerationFunc: func(context.Context, int64) (*models.Generation, error) {
			return &models.Generation{ID: 1, Status: models.GenerationCompleted}, nil
		},
		UploadImageFunc: func(_ context.Context, filename string, r io.Reader) (*models.ImageFile, error) {
			data, _ := io.ReadAll(r)
			return &models.ImageFile{ID: 4, Filename: filename, SizeBytes: int64(len(data))}, nil
		},
	}
	rec := &recorder{}
	c := lifecycle.New(context.Background(), api, rec.options())
	defer c.Close()

	require.NoError(t, c.Resume(context.Background(), 1))
	c.Back()
	c.ToggleTarget(2)

	img, err := c.UploadImage(context.Background(), "hero.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), img.ID)

	vs := c.View()
	assert.Nil(t, c.Generation())
	assert.Empty(t, vs.Form.TargetIDs)
	require.NotNil(t, vs.Form.Image)
	assert.Equal(t, "Reference image: hero.png", vs.PromptSummary)
	assert.Equal(t, lifecycle.NoticeSuccess, rec.lastNotice().Level)
}

func TestUploadFailureNotifies(t *testing.T) {
	api := &mocks.BackendAPIMock{
		UploadImageFunc: func(context.Context, string, io.Reader) (*models.ImageFile, error) {
			return nil, errors.New("file is not an image")
		},
	}
	rec := &recorder{}
	c := lifecycle.New(context.Background(), api, rec.options())
	defer c.Close()

	c.ToggleTarget(2)
	_, err := c.UploadImage(context.Background(), "notes.txt", strings.NewReader("hi"))
	assert.Error(t, err)
	assert.Equal(t, []int64{2}, c.View().Form.TargetIDs)
	assert.Equal(t, lifecycle.NoticeError, rec.lastNotice().Level)
}

func TestSelectionHooks(t *testing.T) {
	c := lifecycle.New(context.Background(), &mocks.BackendAPIMock{}, lifecycle.Options{})
	defer c.Close()

	c.ToggleTarget(1)
	c.ToggleTarget(2)
	c.RemoveTarget(1)
	c.SelectProduct(models.Product{ID: 3, Name: "Serum"})
	c.PatchProduct(models.Product{ID: 3, Name: "Serum Plus"})
	c.SetDesignStyle(models.StyleLifestyle)

	snap := c.FormSnapshot()
	assert.Equal(t, []int64{2}, snap.TargetIDs)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "Serum Plus", snap.Products[0].Name)
	assert.Equal(t, models.StyleLifestyle, snap.DesignStyle)

	c.RemoveProduct(3)
	assert.Empty(t, c.FormSnapshot().Products)
}

func TestSubmitAfterBackReplacesRunningGeneration(t *testing.T) {
	var next atomic.Int64
	var sent []models.GenerationCreate
	var mu sync.Mutex
	api := &mocks.BackendAPIMock{
		CreateGenerationFunc: func(_ context.Context, in models.GenerationCreate) (*models.Generation, error) {
			mu.Lock()
			sent = append(sent, in)
			mu.Unlock()
			return pending(next.Add(1)), nil
		},
		GetGenerationFunc: func(_ context.Context, id int64) (*models.Generation, error) {
			return pending(id), nil
		},
	}
	history := lifecycle.NewMemoryHistory()
	c := lifecycle.New(context.Background(), api, lifecycle.Options{PollInterval: time.Hour, History: history})
	defer c.Close()

	c.ToggleTarget(1)
	c.SetPrompt("spring launch")
	require.NoError(t, c.Submit(context.Background()))
	require.True(t, c.View().Active)

	c.Back()
	c.SetPrompt("summer sale")
	vs := c.View()
	require.True(t, vs.Form.CanGenerate)
	require.True(t, vs.CanSubmit)

	require.NoError(t, c.Submit(context.Background()))
	vs = c.View()
	assert.Equal(t, lifecycle.ViewResult, vs.View)
	assert.Equal(t, int64(2), vs.GenerationID)
	assert.Equal(t, 1, history.Len())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sent, 2)
	assert.Equal(t, "summer sale", *sent[1].PromotionPrompt)
}

func TestOverlappingPollsKeepControllerResponsive(t *testing.T) {
	var gets atomic.Int32
	var release sync.Mutex
	gate := make(chan struct{})
	api := &mocks.BackendAPIMock{
		GetGenerationFunc: func(ctx context.Context, id int64) (*models.Generation, error) {
			gets.Add(1)
			release.Lock()
			g := gate
			release.Unlock()
			select {
			case <-g:
			case <-ctx.Done():
			}
			return &models.Generation{ID: id, Status: models.GenerationGenerating, Results: []models.GenerationResult{
				{ID: 10, GenerationID: id, TargetID: 1, Status: models.ResultGenerating},
			}}, nil
		},
	}
	var changes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := lifecycle.New(ctx, api, lifecycle.Options{
		PollInterval:    100 * time.Microsecond,
		MessageInterval: time.Hour,
		OnChange:        func(lifecycle.ViewState) { changes.Add(1) },
	})
	defer c.Close()

	c.ToggleTarget(1)
	c.SetPrompt("x")
	require.NoError(t, c.Submit(context.Background()))

	// Open the gate in batches so many fetches complete together.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			case <-time.After(2 * time.Millisecond):
			}
			release.Lock()
			close(gate)
			gate = make(chan struct{})
			release.Unlock()
		}
	}()
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = c.View()
				}
			}
		}()
	}

	time.Sleep(100 * time.Millisecond)
	close(stop)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		_ = c.View()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("controller stopped responding while polls overlapped")
	}
	assert.Greater(t, gets.Load(), int32(10))
	assert.Greater(t, changes.Load(), int32(1))
	assert.True(t, c.View().Polling)
}

// mirroredHistory records how entries leave the stack.
type mirroredHistory struct {
	*lifecycle.MemoryHistory
	mu     sync.Mutex
	popped []string
}

func (h *mirroredHistory) Pop() (lifecycle.HistoryEntry, bool) {
	h.mu.Lock()
	h.popped = append(h.popped, "pop")
	h.mu.Unlock()
	return h.MemoryHistory.Pop()
}

func (h *mirroredHistory) PopMirrored() (lifecycle.HistoryEntry, bool) {
	h.mu.Lock()
	h.popped = append(h.popped, "mirrored")
	h.mu.Unlock()
	return h.MemoryHistory.Pop()
}

func TestPopStateUsesMirroredPopOnly(t *testing.T) {
	history := &mirroredHistory{MemoryHistory: lifecycle.NewMemoryHistory()}
	c := lifecycle.New(context.Background(), &mocks.BackendAPIMock{}, lifecycle.Options{PollInterval: time.Hour, History: history})
	defer c.Close()

	c.ToggleTarget(1)
	c.SetPrompt("x")
	require.NoError(t, c.Submit(context.Background()))
	c.HandlePopState()
	assert.Equal(t, lifecycle.ViewForm, c.View().View)

	require.NoError(t, c.Submit(context.Background()))
	c.Back()
	assert.Equal(t, 0, history.Len())

	history.mu.Lock()
	defer history.mu.Unlock()
	assert.Equal(t, []string{"mirrored", "pop"}, history.popped)
}
