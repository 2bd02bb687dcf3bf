package helpscout

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure.  Callers branch on the kind to decide
// whether a failure sinks the whole run or just one article.
type Kind string

const (
	// KindAuth is a 401/403: the credential was rejected or lacks scope.
	KindAuth Kind = "auth"

	// KindNotFound is a 404: the resource doesn't exist, e.g. a bad
	// collection ID.
	KindNotFound Kind = "not_found"

	// KindTransient is a 5xx or a network-level failure.  The only kind
	// worth retrying.
	KindTransient Kind = "transient"

	// KindMalformed is a 2xx whose body isn't the JSON we expect, or an
	// HTTP status the Docs API isn't documented to return.  Upstream
	// contract drift, not something a retry will fix.
	KindMalformed Kind = "malformed"

	// KindProtocol means pagination handed us the same cursor twice in a
	// row.  Bailing beats looping forever.
	KindProtocol Kind = "protocol"
)

// Error is a classified Help Scout API error.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("helpscout: %s error", e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" if err isn't a classified API error.
// It sees through fmt.Errorf %w wrapping.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// shouldRetry reports whether a failure of the given kind may be retried.
// Auth, not-found and malformed responses won't get better on a second ask.
func shouldRetry(kind Kind) bool {
	return kind == KindTransient
}
