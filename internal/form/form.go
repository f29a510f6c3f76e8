// Package form holds the composition inputs of a generation request and
// decides when they are ready to submit.
package form

import (
	"slices"
	"strings"

	"fitpromo/internal/models"
)

// Form is the mutable composition state. It is not safe for concurrent use;
// the lifecycle controller serializes access to it.
type Form struct {
	prompt    string
	image     *models.ImageFile
	targetIDs []int64
	products  []models.Product
	style     models.DesignStyle
}

// Snapshot is a copy of the form fields safe to hand to a view.
type Snapshot struct {
	Prompt      string             `json:"prompt"`
	Image       *models.ImageFile  `json:"image"`
	TargetIDs   []int64            `json:"targetIds"`
	Products    []models.Product   `json:"products"`
	DesignStyle models.DesignStyle `json:"designStyle"`
	CanGenerate bool               `json:"canGenerate"`
}

func New() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Reset restores every field to its default.
func (f *Form) Reset() {
	f.prompt = ""
	f.image = nil
	f.targetIDs = []int64{}
	f.products = []models.Product{}
	f.style = models.DefaultDesignStyle
}

func (f *Form) SetPrompt(prompt string) { f.prompt = prompt }

func (f *Form) Prompt() string { return f.prompt }

// AttachImage records an uploaded reference image. A new image starts a new
// composition, so the target selection is cleared.
func (f *Form) AttachImage(img models.ImageFile) {
	f.image = &img
	f.targetIDs = []int64{}
}

// ClearImage removes the reference image and leaves everything else.
func (f *Form) ClearImage() { f.image = nil }

func (f *Form) Image() *models.ImageFile { return f.image }

// ToggleTarget adds id to the selection, or removes it when already selected.
// Selection order is preserved.
func (f *Form) ToggleTarget(id int64) {
	if i := slices.Index(f.targetIDs, id); i >= 0 {
		f.targetIDs = slices.Delete(f.targetIDs, i, i+1)
		return
	}
	f.targetIDs = append(f.targetIDs, id)
}

func (f *Form) RemoveTarget(id int64) {
	f.targetIDs = slices.DeleteFunc(f.targetIDs, func(v int64) bool { return v == id })
}

func (f *Form) TargetIDs() []int64 { return slices.Clone(f.targetIDs) }

func (f *Form) IsTargetSelected(id int64) bool { return slices.Contains(f.targetIDs, id) }

// ToggleProduct selects p, or deselects a product with the same id.
func (f *Form) ToggleProduct(p models.Product) {
	if i := f.productIndex(p.ID); i >= 0 {
		f.products = slices.Delete(f.products, i, i+1)
		return
	}
	f.products = append(f.products, p)
}

// SelectProduct adds p unless a product with its id is already selected.
func (f *Form) SelectProduct(p models.Product) {
	if f.productIndex(p.ID) < 0 {
		f.products = append(f.products, p)
	}
}

// PatchProduct replaces a selected product with its updated version so the
// summary is not stale until the next list reload. Unselected products are
// ignored.
func (f *Form) PatchProduct(p models.Product) {
	if i := f.productIndex(p.ID); i >= 0 {
		f.products[i] = p
	}
}

func (f *Form) RemoveProduct(id int64) {
	f.products = slices.DeleteFunc(f.products, func(p models.Product) bool { return p.ID == id })
}

func (f *Form) ClearProducts() { f.products = []models.Product{} }

func (f *Form) Products() []models.Product { return slices.Clone(f.products) }

func (f *Form) productIndex(id int64) int {
	return slices.IndexFunc(f.products, func(p models.Product) bool { return p.ID == id })
}

// SetDesignStyle ignores unknown values.
func (f *Form) SetDesignStyle(style models.DesignStyle) {
	if style.Valid() {
		f.style = style
	}
}

func (f *Form) DesignStyle() models.DesignStyle { return f.style }

// CanGenerate reports whether there is something to generate from (a prompt
// or a reference image) and at least one target to generate for.
func (f *Form) CanGenerate() bool {
	hasInput := strings.TrimSpace(f.prompt) != "" || f.image != nil
	return hasInput && len(f.targetIDs) > 0
}

// HasInput reports whether anything was entered that a "start over" would
// discard.
func (f *Form) HasInput() bool {
	return f.image != nil || strings.TrimSpace(f.prompt) != ""
}

// Request builds the POST /generations payload.
func (f *Form) Request() models.GenerationCreate {
	req := models.GenerationCreate{
		TargetIDs:   slices.Clone(f.targetIDs),
		DesignStyle: string(f.style),
	}
	if f.image != nil {
		id := f.image.ID
		req.SourceImageID = &id
	}
	if len(f.products) > 0 {
		req.ProductIDs = make([]int64, 0, len(f.products))
		for _, p := range f.products {
			req.ProductIDs = append(req.ProductIDs, p.ID)
		}
	}
	if prompt := strings.TrimSpace(f.prompt); prompt != "" {
		req.PromotionPrompt = &prompt
	}
	return req
}

// PromptSummary is the one-line title of the result view.
func (f *Form) PromptSummary() string {
	if prompt := strings.TrimSpace(f.prompt); prompt != "" {
		return prompt
	}
	if f.image != nil {
		return "Reference image: " + f.image.Filename
	}
	return "Image generation"
}

func (f *Form) Snapshot() Snapshot {
	var img *models.ImageFile
	if f.image != nil {
		c := *f.image
		img = &c
	}
	return Snapshot{
		Prompt:      f.prompt,
		Image:       img,
		TargetIDs:   f.TargetIDs(),
		Products:    f.Products(),
		DesignStyle: f.style,
		CanGenerate: f.CanGenerate(),
	}
}
