package middleware

import "errors"

var (
	ErrEmptyQuery     = errors.New("query must not be empty")
	ErrQueryTooLong   = errors.New("query exceeds the maximum allowed length")
	ErrInvalidProfile = errors.New("profile must be one of the configured profiles")
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}
