package domain

import "errors"

var (
	ErrStateNotFound      = errors.New("state not found")
	ErrCorruptState       = errors.New("state file is corrupt")
	ErrSessionNotFound    = errors.New("session not found")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrLoginFailed        = errors.New("login failed")

	// Platform failures. Adapters wrap their wire errors with one of these so
	// the core can branch on Classify instead of on error text.
	ErrTransient         = errors.New("transient platform error")
	ErrLoginRequired     = errors.New("login required")
	ErrChallengeRequired = errors.New("security challenge required")
)

type ErrorKind string

const (
	ErrorKindTransient      ErrorKind = "transient"
	ErrorKindSessionInvalid ErrorKind = "session_invalid"
	ErrorKindChallenge      ErrorKind = "challenge"
	ErrorKindFatalConfig    ErrorKind = "fatal_config"
	ErrorKindUnknown        ErrorKind = "unknown"
)

func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrChallengeRequired):
		return ErrorKindChallenge
	case errors.Is(err, ErrLoginRequired):
		return ErrorKindSessionInvalid
	case errors.Is(err, ErrMissingCredentials):
		return ErrorKindFatalConfig
	case errors.Is(err, ErrTransient):
		return ErrorKindTransient
	default:
		return ErrorKindUnknown
	}
}

// Recoverable reports whether the unit of work that produced err can simply be
// skipped. Session and challenge failures must propagate instead.
func (k ErrorKind) Recoverable() bool {
	return k == ErrorKindTransient || k == ErrorKindUnknown
}
