// Package widgets holds the display rules of the small presentational
// components: keyword chips, the compare slider and summary labels.
package widgets

import (
	"fmt"

	"fitpromo/internal/utils"
)

const MaxVisibleChips = 3

type Chips struct {
	Visible  []string `json:"visible"`
	Overflow int      `json:"overflow"`
}

// OverflowLabel is "+N", or empty when nothing is hidden.
func (c Chips) OverflowLabel() string {
	if c.Overflow <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", c.Overflow)
}

// ChipsFromList shows at most MaxVisibleChips items and counts the rest.
func ChipsFromList(items []string) Chips {
	if len(items) <= MaxVisibleChips {
		return Chips{Visible: append([]string{}, items...)}
	}
	return Chips{
		Visible:  append([]string{}, items[:MaxVisibleChips]...),
		Overflow: len(items) - MaxVisibleChips,
	}
}

// KeywordChips decodes a JSON-encoded keyword list. Malformed JSON gives no
// chips.
func KeywordChips(raw string) Chips {
	return ChipsFromList(utils.ParseStringList(raw))
}
