package apperrors

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAccessCode  = errors.New("invalid staff access code")
	ErrUnauthorizedRole   = errors.New("role not authorized for this portal")
	ErrEmailExists        = errors.New("email already exists")
	ErrNoStaffUser        = errors.New("no staff user found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrMissingAPIKey      = errors.New("missing gemini api key")
	ErrUpstream           = errors.New("assistant request failed")
	ErrUpstreamDecode     = errors.New("assistant returned an unreadable reply")
)
