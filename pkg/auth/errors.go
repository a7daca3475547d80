package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClientSecrets means the credentials.json file could not be
	// found. Nothing can be fetched without it, so callers should bail out
	// before any network activity.
	ErrMissingClientSecrets = errors.New("client secrets file not found")

	// ErrNoToken means the token store holds no credential. This is the
	// normal first-run state, not a fault.
	ErrNoToken = errors.New("no stored token")

	// ErrAuthorization means the consent flow could not produce a usable
	// credential (denied, timed out, or the exchange failed).
	ErrAuthorization = errors.New("could not obtain authorization")

	// ErrConsentTimeout is wrapped into ErrAuthorization when the user
	// never completes the consent page in time.
	ErrConsentTimeout = errors.New("authorization timed out")
)

// StoreError reports a failed read or write of the token file. A store
// that cannot be written would force a fresh consent flow on every run,
// so writes failing this way are fatal rather than ignored.
type StoreError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("token store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
