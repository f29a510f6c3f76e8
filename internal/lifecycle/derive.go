package lifecycle

import (
	"time"

	"fitpromo/internal/models"
	"fitpromo/internal/widgets"
)

type Panel string

const (
	// PanelPreparing: submitted, no snapshot yet.
	PanelPreparing Panel = "preparing"
	// PanelPhase: snapshot present, not finished, no results yet.
	PanelPhase Panel = "phase"
	PanelTabs  Panel = "tabs"
	// PanelEmpty: finished without any results.
	PanelEmpty Panel = "empty"
)

type DotState string

const (
	DotActive    DotState = "active"
	DotCompleted DotState = "completed"
	DotFailed    DotState = "failed"
)

type TabPanelKind string

const (
	TabCompare TabPanelKind = "compare"
	TabError   TabPanelKind = "error"
	TabLoading TabPanelKind = "loading"
)

const (
	ResultErrorTitle   = "Generation failed"
	DefaultResultError = "An unknown error occurred."
)

type LoadingView struct {
	MessageSet  MessageSet `json:"messageSet"`
	Message     string     `json:"message"`
	Elapsed     string     `json:"elapsed"`
	ShowCounter bool       `json:"showCounter"`
	Completed   int        `json:"completed"`
	Total       int        `json:"total"`
}

type TabView struct {
	Index     int      `json:"index"`
	ResultID  int64    `json:"resultId"`
	TargetID  int64    `json:"targetId"`
	Label     string   `json:"label"`
	Dot       DotState `json:"dot"`
	Checkmark bool     `json:"checkmark"`
	Selected  bool     `json:"selected"`
}

type TabPanel struct {
	Kind TabPanelKind `json:"kind"`

	GeneratedURL   string  `json:"generatedUrl,omitempty"`
	OriginalURL    string  `json:"originalUrl,omitempty"`
	ShowSlider     bool    `json:"showSlider"`
	SliderPosition float64 `json:"sliderPosition"`
	Rationale      string  `json:"rationale,omitempty"`
	AdaptedText    string  `json:"adaptedText,omitempty"`

	ErrorTitle   string `json:"errorTitle,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`

	Loading *LoadingView `json:"loading,omitempty"`
}

// ResultView is everything the result screen renders, derived from a single
// snapshot.
type ResultView struct {
	Panel       Panel        `json:"panel"`
	Loading     *LoadingView `json:"loading,omitempty"`
	Tabs        []TabView    `json:"tabs"`
	SelectedTab int          `json:"selectedTab"`
	Active      *TabPanel    `json:"active,omitempty"`
	Status      string       `json:"status"`
	Finished    bool         `json:"finished"`
	Error       string       `json:"error,omitempty"`
}

type DeriveInput struct {
	Generation   *models.Generation
	SourceImage  *models.ImageFile
	SelectedTab  int
	MessageIndex int
	Elapsed      time.Duration
	ImageURL     func(storedPath string) string
}

// Derive maps a snapshot to presentation state. It has no side effects.
func Derive(in DeriveInput) ResultView {
	gen := in.Generation
	if gen == nil {
		return ResultView{
			Panel:   PanelPreparing,
			Loading: loadingView(MessagesInit, in, 0, 0),
			Tabs:    []TabView{},
		}
	}

	rv := ResultView{
		Status:   string(gen.Status),
		Finished: gen.IsFinished(),
		Tabs:     []TabView{},
	}
	if gen.Error != nil {
		rv.Error = *gen.Error
	}

	if len(gen.Results) == 0 {
		if rv.Finished {
			rv.Panel = PanelEmpty
			return rv
		}
		rv.Panel = PanelPhase
		rv.Loading = loadingView(PhaseSet(gen.Status), in, 0, 0)
		return rv
	}

	rv.Panel = PanelTabs
	rv.SelectedTab = clampIndex(in.SelectedTab, len(gen.Results))
	for i, r := range gen.Results {
		rv.Tabs = append(rv.Tabs, TabView{
			Index:     i,
			ResultID:  r.ID,
			TargetID:  r.TargetID,
			Label:     widgets.TargetLabel(r.Target, r.TargetID),
			Dot:       dotState(r.Status),
			Checkmark: r.Status == models.ResultCompleted,
			Selected:  i == rv.SelectedTab,
		})
	}
	panel := tabPanel(gen, gen.Results[rv.SelectedTab], in)
	rv.Active = &panel
	return rv
}

func tabPanel(gen *models.Generation, r models.GenerationResult, in DeriveInput) TabPanel {
	switch {
	case r.Status == models.ResultCompleted && deref(r.StoredPath) != "":
		p := TabPanel{
			Kind:           TabCompare,
			GeneratedURL:   resolve(in.ImageURL, *r.StoredPath),
			SliderPosition: widgets.DefaultComparePosition,
			Rationale:      deref(r.Rationale),
			AdaptedText:    deref(r.AdaptedText),
		}
		if src := sourceImage(gen, in.SourceImage); src != nil && src.StoredPath != "" {
			p.OriginalURL = resolve(in.ImageURL, src.StoredPath)
		}
		p.ShowSlider = widgets.ShowSlider(p.OriginalURL)
		return p
	case r.Status == models.ResultFailed:
		msg := deref(r.Error)
		if msg == "" {
			msg = DefaultResultError
		}
		return TabPanel{Kind: TabError, ErrorTitle: ResultErrorTitle, ErrorMessage: msg}
	default:
		return TabPanel{
			Kind:    TabLoading,
			Loading: loadingView(PhaseSet(gen.Status), in, gen.SettledCount(), len(gen.Results)),
		}
	}
}

func loadingView(set MessageSet, in DeriveInput, completed, total int) *LoadingView {
	msgs := Messages(set)
	idx := 0
	if len(msgs) > 0 && in.MessageIndex > 0 {
		idx = in.MessageIndex % len(msgs)
	}
	lv := &LoadingView{
		MessageSet:  set,
		Elapsed:     widgets.FormatElapsed(in.Elapsed),
		ShowCounter: total > 1,
		Completed:   completed,
		Total:       total,
	}
	if len(msgs) > 0 {
		lv.Message = msgs[idx]
	}
	return lv
}

func dotState(s models.ResultStatus) DotState {
	switch s {
	case models.ResultCompleted:
		return DotCompleted
	case models.ResultFailed:
		return DotFailed
	default:
		return DotActive
	}
}

// sourceImage prefers the image attached in the form and falls back to the
// one the backend recorded, which is all a resumed generation has.
func sourceImage(gen *models.Generation, attached *models.ImageFile) *models.ImageFile {
	if attached != nil {
		return attached
	}
	return gen.SourceImage
}

func clampIndex(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func resolve(imageURL func(string) string, path string) string {
	if imageURL == nil {
		return path
	}
	return imageURL(path)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
