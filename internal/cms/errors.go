package cms

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the CMS.
type APIError struct {
	Name       string
	Message    string
	Body       []byte
	StatusCode int
}

// errorEnvelope is the error body the CMS sends alongside "data": null.
type errorEnvelope struct {
	Error *struct {
		Name    string `json:"name"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		apiErr.Name = env.Error.Name
		apiErr.Message = env.Error.Message
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %d %s: %s", ErrUnexpectedStatusCode, e.StatusCode, e.Name, e.Message)
	}

	return fmt.Sprintf("%s: %d: %s", ErrUnexpectedStatusCode, e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrUnexpectedStatusCode, and ErrNotFound for 404.
func (e *APIError) Unwrap() []error {
	if e.StatusCode == http.StatusNotFound {
		return []error{ErrUnexpectedStatusCode, ErrNotFound}
	}

	return []error{ErrUnexpectedStatusCode}
}
