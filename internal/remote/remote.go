// Package remote holds plumbing shared by the HTTP collaborators:
// menu source, address source, payment source and order sink.
package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// NetworkError wraps any collaborator transport or server failure so
// callers can tell retryable infrastructure problems apart from
// validation errors.
type NetworkError struct {
	Op  string // e.g. "menu.fetch", "order.submit"
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// CredentialStore supplies the bearer token used against the backend.
type CredentialStore interface {
	Token(ctx context.Context) (string, error)
}

// EnvCredentialStore reads the token from an environment variable. The
// mobile client keeps it in the device keychain; server-side we take it
// from the process environment.
type EnvCredentialStore struct {
	Key string
}

var ErrNoCredentials = errors.New("remote: no bearer token available")

func (s EnvCredentialStore) Token(ctx context.Context) (string, error) {
	if v := os.Getenv(s.Key); v != "" {
		return v, nil
	}
	return "", ErrNoCredentials
}

// StaticCredentials returns a fixed token. Used in tests and local dev.
type StaticCredentials string

func (s StaticCredentials) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrNoCredentials
	}
	return string(s), nil
}
