package gatesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the gate service.
type APIError struct {
	StatusCode int
	Message    string
	Missing    []string
}

func (e *APIError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("gate: %d %s (missing %v)", e.StatusCode, e.Message, e.Missing)
	}
	return fmt.Sprintf("gate: %d %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsMisconfigured reports whether err is the service's configuration error.
func IsMisconfigured(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusInternalServerError && len(apiErr.Missing) > 0
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse builds an APIError from a response body. Bodies that
// are not the service's JSON error shape fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		apiErr.Message = er.Error
		apiErr.Missing = er.Missing
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
