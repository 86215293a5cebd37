package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "sessions")
	store, err := NewStore(root, "alice")
	require.NoError(t, err)

	blob := []byte(`{"cookies":{"sessionid":"abc"},"uuids":{"phone_id":"1"}}`)
	require.NoError(t, store.Save(context.Background(), blob))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	info, err := os.Stat(filepath.Join(root, "alice.session"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(sessionFileMode), info.Mode().Perm())

	dirInfo, err := os.Stat(root)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(storeDirMode), dirInfo.Mode().Perm())
}

func TestStoreLoadMissingSession(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir(), "alice")
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir(), "alice")
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), []byte("blob")))
	require.NoError(t, store.Delete(context.Background()))
	require.NoError(t, store.Delete(context.Background()))

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreSessionsAreScopedPerAccount(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	alice, err := NewStore(root, "alice")
	require.NoError(t, err)
	bob, err := NewStore(root, "bob")
	require.NoError(t, err)

	require.NoError(t, alice.Save(context.Background(), []byte("alice-blob")))

	_, err = bob.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestNewStoreRejectsUnsafeUsernames(t *testing.T) {
	t.Parallel()

	for _, username := range []string{"", "  ", "..", "../etc", `a\b`, "nested/name"} {
		_, err := NewStore(t.TempDir(), username)
		assert.Error(t, err, "username %q", username)
	}
}
