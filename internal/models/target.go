package models

import "fitpromo/internal/utils"

// Target is an audience persona the backend renders one result for.
type Target struct {
	ID             int64  `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	TargetAge      string `json:"target_age"`
	StyleKeywords  string `json:"style_keywords"`
	PromptTemplate string `json:"prompt_template"`
	IsBuiltin      bool   `json:"is_builtin"`
}

// Keywords decodes the JSON-encoded style keyword list. Malformed input
// yields an empty list.
func (t Target) Keywords() []string {
	return utils.ParseStringList(t.StyleKeywords)
}

// TargetCreate is the POST /targets payload.
type TargetCreate struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	TargetAge      string   `json:"target_age"`
	StyleKeywords  []string `json:"style_keywords"`
	PromptTemplate string   `json:"prompt_template"`
}

// TargetUpdate is the PUT /targets/{id} payload; nil fields are left as is.
type TargetUpdate struct {
	Name           *string  `json:"name,omitempty"`
	TargetAge      *string  `json:"target_age,omitempty"`
	StyleKeywords  []string `json:"style_keywords"`
	PromptTemplate *string  `json:"prompt_template,omitempty"`
}
