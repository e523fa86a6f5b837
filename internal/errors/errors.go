package errors

import "errors"

var (
	// ErrJWTNotConfigured is returned when issuer, audience or secret are absent.
	ErrJWTNotConfigured = errors.New("jwt configuration variables are missing")
	// ErrNoUserID is returned when a token is requested for a user without a
	// store-assigned identifier.
	ErrNoUserID = errors.New("no user ID provided")
)

// ErrorResponse is the JSON error shape returned on every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
