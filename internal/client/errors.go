package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the normalized form every remote failure takes. Message
// holds the server-supplied message when the body carried one; Errors
// holds field-level validation errors for 4xx validation failures.
type APIError struct {
	Status  int
	Message string
	Errors  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error status: %d", e.Status)
}

func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Message = eb.Message
		apiErr.Errors = eb.Errors
	}
	return apiErr
}

// AsAPIError unwraps err down to the *APIError the client produced,
// if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
