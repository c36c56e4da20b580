package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies an API failure once, at the call boundary. Callers
// branch on the kind and never re-derive it from error text.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindQuota
	KindAuth
)

func (k ErrorKind) String() string {
	switch k {
	case KindQuota:
		return "quota"
	case KindAuth:
		return "auth"
	default:
		return "other"
	}
}

// APIError is a non-2xx response from the generateContent endpoint.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Kind       ErrorKind
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini API %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini API %d %s", e.StatusCode, e.Status)
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func newAPIError(statusCode int, rawBody []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var body apiErrorBody
	if err := json.Unmarshal(rawBody, &body); err == nil && body.Error.Status != "" {
		apiErr.Status = body.Error.Status
		apiErr.Message = body.Error.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(rawBody))
	}

	switch {
	case statusCode == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
		apiErr.Kind = KindQuota
	case statusCode == http.StatusForbidden || statusCode == http.StatusUnauthorized || apiErr.Status == "PERMISSION_DENIED":
		apiErr.Kind = KindAuth
	default:
		apiErr.Kind = KindOther
	}
	return apiErr
}

// IsQuotaOrAuth reports whether err is a quota-exceeded or
// authorization-denied API failure. Only these conditions trigger the image
// generation fallback chain.
func IsQuotaOrAuth(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindQuota || apiErr.Kind == KindAuth
	}
	return false
}
