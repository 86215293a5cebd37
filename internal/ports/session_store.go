package ports

import "context"

// SessionStore persists the opaque session blob produced by the platform
// client. Load returns domain.ErrSessionNotFound when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Delete(ctx context.Context) error
}
