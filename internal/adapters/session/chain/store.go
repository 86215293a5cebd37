package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/precieux0/instagram-repo2/internal/adapters/session/file"
	passstore "github.com/precieux0/instagram-repo2/internal/adapters/session/pass"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

// Store reads and writes the primary backend and falls back to the secondary
// one when the primary fails.
type Store struct {
	primary  ports.SessionStore
	fallback ports.SessionStore
}

var _ ports.SessionStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary session store is nil")
	errNilFallbackStore = errors.New("fallback session store is nil")
)

func NewStore(primary ports.SessionStore, fallback ports.SessionStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot, username string) (*Store, error) {
	primary, err := passstore.NewStore(username)
	if err != nil {
		return nil, err
	}
	fallback, err := filestore.NewStore(fileRoot, username)
	if err != nil {
		return nil, err
	}
	return NewStore(primary, fallback)
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	blob, err := s.primary.Load(ctx)
	if err == nil {
		return blob, nil
	}
	if shouldSkipFallback(err) {
		return nil, err
	}

	fallbackBlob, fallbackErr := s.fallback.Load(ctx)
	if fallbackErr == nil {
		return fallbackBlob, nil
	}

	return nil, fmt.Errorf("primary backend load failed: %w; fallback backend load failed: %w", err, fallbackErr)
}

func (s *Store) Save(ctx context.Context, blob []byte) error {
	err := s.primary.Save(ctx, blob)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Save(ctx, blob)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend save failed: %w; fallback backend save failed: %w", err, fallbackErr)
}

// Delete clears both backends. A stale blob left in either one would be
// resumed again on the next start.
func (s *Store) Delete(ctx context.Context) error {
	err := s.primary.Delete(ctx)
	if shouldSkipFallback(err) {
		return err
	}
	if errors.Is(err, passstore.ErrUnavailable) {
		err = nil
	}

	fallbackErr := s.fallback.Delete(ctx)
	switch {
	case err == nil && fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	case fallbackErr == nil:
		return fmt.Errorf("primary backend delete failed: %w", err)
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
