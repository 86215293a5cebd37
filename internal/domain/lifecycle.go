package domain

type LifecycleState string

const (
	StateInitializing      LifecycleState = "initializing"
	StateLoggingIn         LifecycleState = "logging_in"
	StateConnected         LifecycleState = "connected"
	StateActiveSession     LifecycleState = "active_session"
	StateLoginFailed       LifecycleState = "login_failed"
	StateChallengeRequired LifecycleState = "challenge_required"
	StateError             LifecycleState = "error"
)

func (s LifecycleState) Label() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateLoggingIn:
		return "logging in"
	case StateConnected:
		return "connected"
	case StateActiveSession:
		return "growth session running"
	case StateLoginFailed:
		return "login failed"
	case StateChallengeRequired:
		return "security challenge required"
	case StateError:
		return "error"
	default:
		return string(s)
	}
}

// NeedsOperator reports states the bot cannot leave without a manual reconnect.
func (s LifecycleState) NeedsOperator() bool {
	return s == StateChallengeRequired
}
