package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotImage  = errors.New("file is not an image")
	ErrEmptyFile = errors.New("file is empty")
	ErrTooLarge  = errors.New("file exceeds upload limit")

	ErrResponseTooLarge = errors.New("response too large")
)

// HTTPError is returned for every non-2xx response. Body holds the raw
// response text so the user sees what the backend said.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "API error"
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, body)
}

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	var herr *HTTPError
	return errors.As(err, &herr) && herr.StatusCode == http.StatusNotFound
}
