package ports

import (
	"context"

	"github.com/precieux0/instagram-repo2/internal/domain"
)

type CountersRepository interface {
	// Load returns domain.ErrStateNotFound when nothing was persisted yet and
	// wraps domain.ErrCorruptState when the stored record cannot be decoded.
	Load(ctx context.Context) (domain.Counters, error)
	Save(ctx context.Context, counters domain.Counters) error
}
