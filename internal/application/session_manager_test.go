package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionHarness struct {
	client   *mocks.MockAuthenticator
	store    *mocks.MockSessionStore
	repo     *memCountersRepo
	status   *StatusPublisher
	counters *CountersService
	sleeper  *recordingSleeper
	manager  *SessionManager
}

func newSessionHarness(t *testing.T, creds domain.Credentials) *sessionHarness {
	t.Helper()

	clock := newFakeClock(testNow)
	h := &sessionHarness{
		client:  mocks.NewMockAuthenticator(t),
		store:   mocks.NewMockSessionStore(t),
		repo:    &memCountersRepo{},
		sleeper: &recordingSleeper{},
	}
	h.status = NewStatusPublisher(clock, nil)
	h.counters = NewCountersService(h.repo, clock, h.status, nil)
	h.manager = NewSessionManager(
		h.client,
		h.store,
		h.counters,
		h.status,
		NewRand(3, 4),
		h.sleeper,
		nil,
		DefaultSessionManagerConfig(creds),
		nil,
	)
	return h
}

var testCredentials = domain.Credentials{Username: "alice", Password: "s3cret"}

func TestSessionManagerResumesStoredSession(t *testing.T) {
	h := newSessionHarness(t, testCredentials)

	h.store.EXPECT().Load(mockAnyContext()).Return([]byte("stored"), nil).Once()
	h.client.EXPECT().LoadSession([]byte("stored")).Return(nil).Once()
	h.client.EXPECT().CurrentAccount(mockAnyContext()).Return(domain.UserInfo{ID: "1", Username: "alice"}, nil).Once()

	require.NoError(t, h.manager.EnsureConnected(context.Background()))
	require.NoError(t, h.manager.EnsureConnected(context.Background()))

	assert.Equal(t, domain.PhaseResumed, h.manager.Phase())
	assert.Equal(t, domain.StateConnected, h.status.State())
	assert.Zero(t, h.counters.Snapshot().LoginAttempts)
	assert.Empty(t, h.sleeper.Delays())
}

func TestSessionManagerRejectedResumeDeletesBlobThenLogsInOnce(t *testing.T) {
	h := newSessionHarness(t, testCredentials)
	var order []string

	h.store.EXPECT().Load(mockAnyContext()).Return([]byte("stale"), nil).Once()
	h.client.EXPECT().LoadSession([]byte("stale")).Return(nil).Once()
	h.client.EXPECT().CurrentAccount(mockAnyContext()).
		Return(domain.UserInfo{}, fmt.Errorf("account info: %w", domain.ErrLoginRequired)).Once()
	h.store.EXPECT().Delete(mockAnyContext()).
		Run(func(context.Context) { order = append(order, "delete") }).
		Return(nil).Once()
	h.client.EXPECT().ApplyProfile(mock.Anything).Return().Once()
	h.client.EXPECT().Login(mockAnyContext(), "alice", "s3cret").
		Run(func(context.Context, string, string) { order = append(order, "login") }).
		Return(nil).Once()
	h.client.EXPECT().DumpSession().Return([]byte("fresh"), nil).Once()
	h.store.EXPECT().Save(mockAnyContext(), []byte("fresh")).Return(nil).Once()

	require.NoError(t, h.manager.EnsureConnected(context.Background()))

	assert.Equal(t, []string{"delete", "login"}, order)
	assert.Equal(t, domain.PhaseConnected, h.manager.Phase())
	assert.Equal(t, domain.StateConnected, h.status.State())

	counters := h.counters.Snapshot()
	assert.Equal(t, 1, counters.LoginAttempts)
	require.NotNil(t, counters.LastLogin)
	assert.Equal(t, testNow, *counters.LastLogin)

	delays := h.sleeper.Delays()
	require.Len(t, delays, 1)
	assert.GreaterOrEqual(t, delays[0], 20*time.Second)
	assert.LessOrEqual(t, delays[0], 60*time.Second)
}

func TestSessionManagerChallengeStopsAutomaticLogin(t *testing.T) {
	h := newSessionHarness(t, testCredentials)

	h.store.EXPECT().Load(mockAnyContext()).Return(nil, domain.ErrSessionNotFound).Once()
	h.client.EXPECT().ApplyProfile(mock.Anything).Return()
	h.client.EXPECT().Login(mockAnyContext(), "alice", "s3cret").
		Return(fmt.Errorf("checkpoint_required: %w", domain.ErrChallengeRequired)).Once()

	err := h.manager.EnsureConnected(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindChallenge, domain.Classify(err))
	assert.Equal(t, domain.PhaseChallengeRequired, h.manager.Phase())

	snapshot := h.status.Snapshot()
	assert.Equal(t, domain.StateChallengeRequired, snapshot.LifecycleState)
	assert.Contains(t, snapshot.LastError, "/reconnect")

	for i := 0; i < 3; i++ {
		err = h.manager.EnsureConnected(context.Background())
		require.ErrorIs(t, err, domain.ErrChallengeRequired)
	}
	assert.Equal(t, 1, h.counters.Snapshot().LoginAttempts)
	assert.Equal(t, domain.StateChallengeRequired, h.status.State())

	h.client.EXPECT().Login(mockAnyContext(), "alice", "s3cret").Return(nil).Once()
	h.client.EXPECT().DumpSession().Return([]byte("fresh"), nil).Once()
	h.store.EXPECT().Save(mockAnyContext(), []byte("fresh")).Return(nil).Once()

	require.NoError(t, h.manager.ForceReconnect(context.Background()))
	assert.Equal(t, domain.PhaseConnected, h.manager.Phase())
	assert.Equal(t, domain.StateConnected, h.status.State())
	assert.Empty(t, h.status.Snapshot().LastError)
	assert.Equal(t, 2, h.counters.Snapshot().LoginAttempts)
}

func TestSessionManagerLoginFailureSurfacesRawError(t *testing.T) {
	h := newSessionHarness(t, testCredentials)

	h.store.EXPECT().Load(mockAnyContext()).Return(nil, domain.ErrSessionNotFound).Once()
	h.client.EXPECT().ApplyProfile(mock.Anything).Return().Once()
	h.client.EXPECT().Login(mockAnyContext(), "alice", "s3cret").Return(errors.New("bad_password")).Once()

	err := h.manager.EnsureConnected(context.Background())
	require.ErrorIs(t, err, domain.ErrLoginFailed)
	assert.Equal(t, domain.PhaseLoginFailed, h.manager.Phase())

	snapshot := h.status.Snapshot()
	assert.Equal(t, domain.StateLoginFailed, snapshot.LifecycleState)
	assert.Equal(t, "bad_password", snapshot.LastError)
}

func TestSessionManagerCanceledLoginDelaySkipsLogin(t *testing.T) {
	h := newSessionHarness(t, testCredentials)
	sleeper := mocks.NewMockSleeper(t)
	h.manager.sleeper = sleeper

	h.store.EXPECT().Load(mockAnyContext()).Return(nil, domain.ErrSessionNotFound).Once()
	h.client.EXPECT().ApplyProfile(mock.Anything).Return().Once()
	sleeper.EXPECT().Sleep(mockAnyContext(), mock.MatchedBy(func(d time.Duration) bool {
		return d >= 20*time.Second && d <= 60*time.Second
	})).Return(context.Canceled).Once()

	err := h.manager.EnsureConnected(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.PhaseNoSession, h.manager.Phase())
	assert.Equal(t, 1, h.counters.Snapshot().LoginAttempts)
}

func TestSessionManagerRefusesLoginWithoutCredentials(t *testing.T) {
	h := newSessionHarness(t, domain.Credentials{Username: "alice"})

	err := h.manager.Authenticate(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingCredentials)
	require.ErrorIs(t, err, domain.ErrLoginFailed)
	assert.Equal(t, domain.StateLoginFailed, h.status.State())
	assert.Zero(t, h.counters.Snapshot().LoginAttempts)
}

func TestSessionManagerInvalidateDropsStoredSession(t *testing.T) {
	h := newSessionHarness(t, testCredentials)

	h.store.EXPECT().Load(mockAnyContext()).Return([]byte("stored"), nil).Once()
	h.client.EXPECT().LoadSession([]byte("stored")).Return(nil).Once()
	h.client.EXPECT().CurrentAccount(mockAnyContext()).Return(domain.UserInfo{ID: "1"}, nil).Once()
	h.store.EXPECT().Delete(mockAnyContext()).Return(nil).Once()

	require.NoError(t, h.manager.EnsureConnected(context.Background()))
	h.manager.Invalidate(context.Background(), fmt.Errorf("feed: %w", domain.ErrLoginRequired))

	assert.Equal(t, domain.PhaseNoSession, h.manager.Phase())
	assert.Equal(t, domain.StateLoggingIn, h.status.State())
}

func TestSessionManagerInvalidateKeepsChallengeParked(t *testing.T) {
	h := newSessionHarness(t, testCredentials)

	h.manager.MarkChallenged(fmt.Errorf("feed: %w", domain.ErrChallengeRequired))
	h.manager.Invalidate(context.Background(), fmt.Errorf("feed: %w", domain.ErrLoginRequired))

	assert.Equal(t, domain.PhaseChallengeRequired, h.manager.Phase())
	assert.Equal(t, domain.StateChallengeRequired, h.status.State())
}
