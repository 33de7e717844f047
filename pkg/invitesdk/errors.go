package invitesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeConflict          = "conflict"
	ErrorCodeExpired           = "expired"
	ErrorCodeDependencyFailed  = "dependency_failed"
	ErrorCodeServerError       = "server_error"
)

// APIError is a failed API call.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Reasons     []string
}

func (e *APIError) Error() string {
	if len(e.Reasons) > 0 {
		return fmt.Sprintf("%s: %s", e.Code, strings.Join(e.Reasons, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError by Code, so the sentinels below work with
// errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidRequest    = &APIError{Code: ErrorCodeInvalidRequest}
	ErrUnauthorized      = &APIError{Code: ErrorCodeInvalidToken}
	ErrInsufficientScope = &APIError{Code: ErrorCodeInsufficientScope}
	ErrNotFound          = &APIError{Code: ErrorCodeNotFound}
	ErrConflict          = &APIError{Code: ErrorCodeConflict}
	ErrExpired           = &APIError{Code: ErrorCodeExpired}
	ErrDependencyFailed  = &APIError{Code: ErrorCodeDependencyFailed}
	ErrServerError       = &APIError{Code: ErrorCodeServerError}
)

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Reasons:     errResp.Reasons,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
