package jsonstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

const (
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	tempFilePattern = ".state-*.json.tmp"
)

// Repository keeps the counters record in a single JSON file that is
// rewritten wholesale on every save.
type Repository struct {
	path string
	loc  *time.Location
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CountersRepository = (*Repository)(nil)

func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("state file path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve state file path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{path: absPath, loc: time.Local, mu: lockForPath(absPath)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Load(ctx context.Context) (domain.Counters, error) {
	if err := ctx.Err(); err != nil {
		return domain.Counters{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Counters{}, domain.ErrStateNotFound
		}
		return domain.Counters{}, fmt.Errorf("read state file: %w", err)
	}

	var state stateSchema
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.Counters{}, fmt.Errorf("decode state file: %w: %w", domain.ErrCorruptState, err)
	}

	counters, err := fromSchema(state, r.loc)
	if err != nil {
		return domain.Counters{}, fmt.Errorf("decode state file: %w", err)
	}
	return counters, nil
}

func (r *Repository) Save(ctx context.Context, counters domain.Counters) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(toSchema(counters), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.write(data)
}

func (r *Repository) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(r.path), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
