// Package utils provides common utility functions.
package utils

import (
	"net/http"

	"github.com/asaskevich/govalidator"
)

// UserAgent identifies the contacts tools to remote services.
const UserAgent = "contacts/1.0"

// HTTPHelper provides HTTP utility functions.
type HTTPHelper struct{}

// NewHTTPHelper creates a new HTTP helper.
func NewHTTPHelper() *HTTPHelper {
	return &HTTPHelper{}
}

// IsValidURL checks if a URL is an absolute request URL.
func (h *HTTPHelper) IsValidURL(url string) bool {
	return govalidator.IsRequestURL(url)
}

// BuildHeaders creates HTTP headers with defaults. Custom headers replace
// defaults of the same name.
func (h *HTTPHelper) BuildHeaders(customHeaders map[string]string) http.Header {
	headers := http.Header{}

	headers.Set("User-Agent", UserAgent)
	headers.Set("Accept", "application/json")

	for key, value := range customHeaders {
		headers.Set(key, value)
	}

	return headers
}
