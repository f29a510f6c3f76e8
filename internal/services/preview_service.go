package services

import (
	"fmt"

	"fitpromo/internal/markdown"
	"fitpromo/internal/widgets"
)

const defaultPreviewPlaceholder = "Nothing to preview yet."

// PreviewService renders the small read-only widgets of the web view so
// their rules live in Go.
type PreviewService struct{}

func NewPreviewService() *PreviewService {
	return &PreviewService{}
}

// Markdown renders a prompt template or generated copy to HTML.
func (s *PreviewService) Markdown(content, placeholder string) (string, error) {
	if placeholder == "" {
		placeholder = defaultPreviewPlaceholder
	}
	out, err := markdown.Preview(content, placeholder)
	if err != nil {
		return "", fmt.Errorf("service: render preview: %w", err)
	}
	return out, nil
}

// KeywordChips decodes a stored keyword list for display.
func (s *PreviewService) KeywordChips(raw string) widgets.Chips {
	return widgets.KeywordChips(raw)
}

// ComparePosition converts a pointer x coordinate over the compare slider
// into a clamped percentage.
func (s *PreviewService) ComparePosition(x, left, width float64) float64 {
	return widgets.PositionFromPointer(x, left, width)
}
