package models

import "fitpromo/internal/utils"

// GenerationStatus is the aggregate state reported by the backend.
type GenerationStatus string

const (
	GenerationPending    GenerationStatus = "pending"
	GenerationAnalyzing  GenerationStatus = "analyzing"
	GenerationGenerating GenerationStatus = "generating"
	GenerationCompleted  GenerationStatus = "completed"
	GenerationFailed     GenerationStatus = "failed"
)

// IsTerminal reports whether no further progress is expected.
func (s GenerationStatus) IsTerminal() bool {
	return s == GenerationCompleted || s == GenerationFailed
}

// ResultStatus is the per-target state of a GenerationResult.
type ResultStatus string

const (
	ResultPending    ResultStatus = "pending"
	ResultGenerating ResultStatus = "generating"
	ResultCompleted  ResultStatus = "completed"
	ResultFailed     ResultStatus = "failed"
)

// IsSettled reports whether the result reached completed or failed.
func (s ResultStatus) IsSettled() bool {
	return s == ResultCompleted || s == ResultFailed
}

const DefaultGenerationMode = "derive"

type Generation struct {
	ID              int64              `json:"id"`
	SourceImageID   *int64             `json:"source_image_id"`
	ProductID       *int64             `json:"product_id"`
	ProductIDs      *string            `json:"product_ids"`
	PromotionPrompt *string            `json:"promotion_prompt"`
	DesignStyle     *string            `json:"design_style"`
	Mode            string             `json:"mode"`
	Status          GenerationStatus   `json:"status"`
	Model           string             `json:"model"`
	AnalysisResult  *string            `json:"analysis_result"`
	Error           *string            `json:"error"`
	CreatedAt       Timestamp          `json:"created_at"`
	CompletedAt     *Timestamp         `json:"completed_at"`
	Results         []GenerationResult `json:"results"`
	SourceImage     *ImageFile         `json:"source_image"`
	Product         *Product           `json:"product"`
}

// IsFinished reports whether the aggregate status is terminal.
func (g *Generation) IsFinished() bool {
	return g != nil && g.Status.IsTerminal()
}

// ProductIDList decodes the JSON-encoded product id list. Malformed input
// yields an empty list.
func (g *Generation) ProductIDList() []int64 {
	if g == nil || g.ProductIDs == nil {
		return []int64{}
	}
	return utils.ParseIntList(*g.ProductIDs)
}

// SettledCount is the number of results that are completed or failed.
func (g *Generation) SettledCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, r := range g.Results {
		if r.Status.IsSettled() {
			n++
		}
	}
	return n
}

// CompletedCount is the number of completed results.
func (g *Generation) CompletedCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, r := range g.Results {
		if r.Status == ResultCompleted {
			n++
		}
	}
	return n
}

type GenerationResult struct {
	ID           int64        `json:"id"`
	GenerationID int64        `json:"generation_id"`
	TargetID     int64        `json:"target_id"`
	Status       ResultStatus `json:"status"`
	StoredPath   *string      `json:"stored_path"`
	PromptUsed   *string      `json:"prompt_used"`
	Rationale    *string      `json:"rationale"`
	AdaptedText  *string      `json:"adapted_text"`
	Error        *string      `json:"error"`
	CreatedAt    Timestamp    `json:"created_at"`
	Target       *Target      `json:"target"`
}

// GenerationCreate is the POST /generations payload.
type GenerationCreate struct {
	SourceImageID   *int64  `json:"source_image_id,omitempty"`
	TargetIDs       []int64 `json:"target_ids"`
	ProductIDs      []int64 `json:"product_ids,omitempty"`
	PromotionPrompt *string `json:"promotion_prompt,omitempty"`
	DesignStyle     string  `json:"design_style,omitempty"`
}
