package pass

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "growthbot/sessions/alice"

func TestStoreSaveEncodesBlob(t *testing.T) {
	t.Parallel()

	blob := []byte("{\"cookies\":{}}\n\x00binary")
	called := false
	store := &Store{
		key: testKey,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", testKey}, args)
			assert.Equal(t, base64.StdEncoding.EncodeToString(blob)+"\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Save(context.Background(), blob))
	assert.True(t, called)
}

func TestStoreLoadDecodesBlob(t *testing.T) {
	t.Parallel()

	blob := []byte(`{"cookies":{"sessionid":"abc"}}`)
	store := &Store{
		key: testKey,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", testKey}, args)
			assert.Empty(t, input)
			return base64.StdEncoding.EncodeToString(blob) + "\n", "", nil
		},
	}

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestStoreLoadMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: testKey,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: growthbot/sessions/alice is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreLoadReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: testKey,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
		},
	}

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorContains(t, err, "pass show")
	assert.ErrorContains(t, err, testKey)
	assert.ErrorContains(t, err, "No secret key")
}

func TestStoreDeleteToleratesMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		key: testKey,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", testKey}, args)
			return "", "Error: growthbot/sessions/alice is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background()))
}

func TestNewStoreScopesKeyByUsername(t *testing.T) {
	t.Parallel()

	store, err := NewStore("alice")
	require.NoError(t, err)
	assert.Equal(t, testKey, store.key)

	_, err = NewStore("../bob")
	require.Error(t, err)
	_, err = NewStore("")
	require.Error(t, err)
}
