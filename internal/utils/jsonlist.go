package utils

import (
	"encoding/json"
	"strings"
)

// ParseStringList decodes a JSON array of strings embedded in a text field.
// Anything that is not such an array decodes to an empty list.
func ParseStringList(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// ParseIntList is ParseStringList for numeric id arrays.
func ParseIntList(raw string) []int64 {
	var out []int64
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []int64{}
	}
	return out
}

// SplitCSV splits comma separated user input, trimming entries and dropping
// empty ones.
func SplitCSV(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
