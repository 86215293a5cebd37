package ports

import "github.com/precieux0/instagram-repo2/internal/domain"

type Metrics interface {
	ActionPerformed(kind domain.ActionKind)
	ActionFailed(kind domain.ActionKind, errKind domain.ErrorKind)
	GrowthSessionCompleted(engaged int)
	LoginAttempted(outcome string)
	StateChanged(state domain.LifecycleState)
}

type NopMetrics struct{}

func (NopMetrics) ActionPerformed(domain.ActionKind) {}
func (NopMetrics) ActionFailed(domain.ActionKind, domain.ErrorKind) {}
func (NopMetrics) GrowthSessionCompleted(int) {}
func (NopMetrics) LoginAttempted(string) {}
func (NopMetrics) StateChanged(domain.LifecycleState) {}
