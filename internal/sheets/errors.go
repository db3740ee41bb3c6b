package sheets

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a transport failure into the category that drives the
// caller's remediation path: fix configuration, fix credentials, or retry.
type Kind int

const (
	// KindTransport is a generic upstream failure carrying status and body.
	KindTransport Kind = iota
	// KindConfig indicates missing or malformed local configuration.
	KindConfig
	// KindAuth indicates bad credentials or a failed token exchange.
	KindAuth
	// KindPermission indicates the credentials cannot perform the operation.
	KindPermission
	// KindNotFound indicates the spreadsheet or range does not exist.
	KindNotFound
	// KindTransient indicates a failure worth retrying (5xx, 429, network).
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAuth:
		return "auth"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	default:
		return "transport"
	}
}

// Error is a classified Sheets API failure. Callers switch on Kind, never
// on message content.
type Error struct {
	Err        error
	Message    string
	Kind       Kind
	StatusCode int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sheets: %s: %v", e.Message, e.Err)
	}
	return "sheets: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the generic retry policy may re-attempt the
// failed call. Auth and permission failures must surface immediately.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransient
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ErrKind extracts the Kind from err, defaulting to KindTransport for
// unclassified errors.
func ErrKind(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindTransport
}

// IsNotFound returns true if the error indicates a missing spreadsheet or range.
func IsNotFound(err error) bool {
	return ErrKind(err) == KindNotFound
}

// IsPermission returns true if the error indicates insufficient access.
func IsPermission(err error) bool {
	return ErrKind(err) == KindPermission
}

// IsAuth returns true if the error indicates invalid credentials.
func IsAuth(err error) bool {
	return ErrKind(err) == KindAuth
}

// classifyStatus maps a non-2xx response to a classified error. The 403
// message differs by auth mode because the remediation differs: a service
// account needs the sheet shared with it, an API key needs a public sheet.
func classifyStatus(status int, body string, mode AuthMode) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindAuth, StatusCode: status, Message: "credentials rejected"}
	case status == http.StatusForbidden:
		msg := "access denied: share the spreadsheet with the service account email"
		if mode == AuthModeAPIKey {
			msg = "access denied: API keys can only read public spreadsheets"
		}
		return &Error{Kind: KindPermission, StatusCode: status, Message: msg}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: status, Message: "spreadsheet or range not found"}
	case status == http.StatusTooManyRequests || status >= 500:
		return &Error{Kind: KindTransient, StatusCode: status, Message: fmt.Sprintf("upstream failure (HTTP %d): %s", status, body)}
	default:
		return &Error{Kind: KindTransport, StatusCode: status, Message: fmt.Sprintf("unexpected response (HTTP %d): %s", status, body)}
	}
}
