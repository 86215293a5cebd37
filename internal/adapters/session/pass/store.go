package pass

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

const keyPrefix = "growthbot/sessions/"

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps the session blob base64-encoded in a pass entry, since pass
// entries are line-oriented text.
type Store struct {
	key string
	run runFunc
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(username string) (*Store, error) {
	key, err := keyForUsername(username)
	if err != nil {
		return nil, err
	}
	return &Store{key: key, run: runPassCommand}, nil
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stdout, stderr, err := s.run(ctx, "", "show", s.key)
	if err != nil {
		if isMissingEntry(stderr) {
			return nil, fmt.Errorf("pass entry %q: %w", s.key, domain.ErrSessionNotFound)
		}
		return nil, formatError("show", s.key, err, stderr)
	}

	encoded := strings.TrimSpace(stdout)
	if encoded == "" {
		return nil, fmt.Errorf("pass entry %q is empty: %w", s.key, domain.ErrSessionNotFound)
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode pass entry %q: %w", s.key, err)
	}
	return blob, nil
}

func (s *Store) Save(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(blob)
	_, stderr, err := s.run(ctx, encoded+"\n", "insert", "-m", "-f", s.key)
	if err != nil {
		return formatError("insert", s.key, err, stderr)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "-f", s.key)
	if err != nil {
		if isMissingEntry(stderr) {
			return nil
		}
		return formatError("rm", s.key, err, stderr)
	}

	return nil
}

func keyForUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", errors.New("session username is empty")
	}
	if strings.ContainsAny(trimmed, `/\`) || strings.HasPrefix(trimmed, ".") {
		return "", fmt.Errorf("invalid session username %q", username)
	}
	return keyPrefix + trimmed, nil
}

func isMissingEntry(stderr string) bool {
	return strings.Contains(stderr, "is not in the password store")
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, key string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
}
