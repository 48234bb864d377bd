package domain

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies why fetching animals failed.
type FetchErrorKind string

const (
	KindConfig     FetchErrorKind = "config"
	KindTimeout    FetchErrorKind = "timeout"
	KindHTTPStatus FetchErrorKind = "http_status"
	KindDecode     FetchErrorKind = "decode"
	KindShape      FetchErrorKind = "shape"
	KindNetwork    FetchErrorKind = "network"
)

// FetchError is the terminal failure of a single fetch attempt.
type FetchError struct {
	Kind    FetchErrorKind
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError creates a FetchError of the given kind.
func NewFetchError(kind FetchErrorKind, message string, cause error) *FetchError {
	return &FetchError{Kind: kind, Message: message, Err: cause}
}

// FetchErrorKindOf returns the kind of the first FetchError in err's chain.
func FetchErrorKindOf(err error) (FetchErrorKind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// UserMessage returns the text shown to end users for a fetch failure.
// Causes are omitted; they may contain URLs or credentials.
func UserMessage(err error) string {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return "unexpected error"
	}
	switch fe.Kind {
	case KindConfig:
		return "Configuration error: " + fe.Message + "."
	case KindTimeout:
		return "Request timed out."
	case KindHTTPStatus:
		return "HTTP error: " + fe.Message
	case KindDecode:
		return "Invalid JSON in response."
	case KindShape:
		return "Unexpected API response format (expected list)."
	case KindNetwork:
		return "Network error: " + fe.Message + "."
	default:
		return "Could not fetch animal data."
	}
}
