package domain

// SessionPhase tracks where the session manager is in its resume/login
// state machine.
type SessionPhase string

const (
	PhaseNoSession         SessionPhase = "no_session"
	PhaseAttemptingResume  SessionPhase = "attempting_resume"
	PhaseResumed           SessionPhase = "resumed"
	PhaseNeedsFreshLogin   SessionPhase = "needs_fresh_login"
	PhaseAuthenticating    SessionPhase = "authenticating"
	PhaseConnected         SessionPhase = "connected"
	PhaseLoginFailed       SessionPhase = "login_failed"
	PhaseChallengeRequired SessionPhase = "challenge_required"
)

func (p SessionPhase) Usable() bool {
	return p == PhaseResumed || p == PhaseConnected
}
