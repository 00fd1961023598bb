package bitwarden

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies failures from the Bitwarden CLI boundary.
type Kind int

const (
	KindUnknown Kind = iota
	// KindAuth means the master password was wrong; recoverable by re-prompting.
	KindAuth
	// KindSessionExpired means the session token is no longer valid;
	// recoverable by unlocking again.
	KindSessionExpired
	// KindUnavailable means the bw binary is missing or not executable.
	KindUnavailable
	// KindParse means the CLI produced output of an unexpected shape.
	KindParse
)

func (it Kind) String() string {
	switch it {
	case KindAuth:
		return "auth"
	case KindSessionExpired:
		return "session-expired"
	case KindUnavailable:
		return "unavailable"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

// Error is a failure from one CLI invocation, with captured stderr
// attached for diagnostics.
type Error struct {
	Op     string
	Kind   Kind
	Stderr string
	Err    error
}

func (it *Error) Error() string {
	detail := it.Stderr
	if len(detail) == 0 && it.Err != nil {
		detail = it.Err.Error()
	}
	if len(detail) == 0 {
		return fmt.Sprintf("bw %s: %s error", it.Op, it.Kind)
	}
	return fmt.Sprintf("bw %s: %s error: %s", it.Op, it.Kind, detail)
}

func (it *Error) Unwrap() error {
	return it.Err
}

// IsKind tells whether err is a CLI boundary error of the given kind.
func IsKind(err error, kind Kind) bool {
	var boundary *Error
	if errors.As(err, &boundary) {
		return boundary.Kind == kind
	}
	return false
}

func failure(op string, kind Kind, stderr []byte, err error) *Error {
	return &Error{
		Op:     op,
		Kind:   kind,
		Stderr: strings.TrimSpace(string(stderr)),
		Err:    err,
	}
}

// classify maps a non-zero exit into an error kind based on what the CLI
// wrote to stderr.
func classify(op string, stderr []byte, err error) *Error {
	text := strings.ToLower(string(stderr))
	switch {
	case strings.Contains(text, "invalid master password"):
		return failure(op, KindAuth, stderr, err)
	case strings.Contains(text, "not logged in"),
		strings.Contains(text, "vault is locked"),
		strings.Contains(text, "session") && strings.Contains(text, "invalid"):
		return failure(op, KindSessionExpired, stderr, err)
	}
	return failure(op, KindUnknown, stderr, err)
}
