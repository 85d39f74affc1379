package hero

import "errors"

// Common hero errors.
var (
	ErrInvalidOverrides = errors.New("invalid hero content")
	ErrUnknownKey       = errors.New("unknown content key")
	ErrUnknownPattern   = errors.New("unknown background pattern")
	ErrUnknownCTA       = errors.New("unknown call to action")
	ErrNoNavigator      = errors.New("no navigator configured")
)

// ErrInvalidPayload reports an event payload missing a required number.
var ErrInvalidPayload = errors.New("invalid event payload")
