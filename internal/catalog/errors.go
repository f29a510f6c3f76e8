// Package catalog manages the target and product reference lists. Every
// mutation is followed by a full reload of the list; the form's selection is
// kept in step through a small selection interface.
package catalog

import "errors"

var (
	ErrTargetFieldsRequired = errors.New("key, name and prompt template are required")
	ErrProductNameRequired  = errors.New("product name is required")
)
