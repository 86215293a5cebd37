package application

import (
	"context"
	"testing"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	*fakePlatform
	*mocks.MockAuthenticator
}

func TestNewBotRequiresCredentials(t *testing.T) {
	deps := BotDeps{Client: fakeClient{fakePlatform: newFakePlatform()}, Rand: NewRand(1, 1)}

	for _, creds := range []domain.Credentials{{}, {Username: "alice"}, {Password: "pw"}} {
		_, err := NewBot(context.Background(), deps, DefaultBotConfig(creds))
		require.ErrorIs(t, err, domain.ErrMissingCredentials)
		assert.Equal(t, domain.ErrorKindFatalConfig, domain.Classify(err))
	}
}

func TestNewBotLoadsCountersAndWiresReconnect(t *testing.T) {
	auth := mocks.NewMockAuthenticator(t)
	store := mocks.NewMockSessionStore(t)
	clock := newFakeClock(testNow)
	repo := &memCountersRepo{saved: &domain.Counters{DailyFollows: 4, LastReset: domain.StartOfDay(testNow), LoginAttempts: 2}}

	bot, err := NewBot(context.Background(), BotDeps{
		Client:   fakeClient{fakePlatform: newFakePlatform(), MockAuthenticator: auth},
		Counters: repo,
		Sessions: store,
		Clock:    clock,
		Sleeper:  &recordingSleeper{},
		Rand:     NewRand(1, 1),
	}, DefaultBotConfig(testCredentials))
	require.NoError(t, err)

	snapshot := bot.Status.Snapshot()
	assert.Equal(t, 4, snapshot.Counters.Follows)
	assert.Equal(t, 2, snapshot.LoginAttempts)

	auth.EXPECT().ApplyProfile(mock.Anything).Return().Once()
	auth.EXPECT().Login(mockAnyContext(), "alice", "s3cret").Return(nil).Once()
	auth.EXPECT().DumpSession().Return([]byte("fresh"), nil).Once()
	store.EXPECT().Save(mockAnyContext(), []byte("fresh")).Return(nil).Once()

	result := bot.Status.ForceReconnect(context.Background())
	assert.True(t, result.Attempted)
	assert.True(t, result.Succeeded)
	assert.Equal(t, domain.StateConnected, result.NewStatus)
	assert.Equal(t, 3, bot.Status.Snapshot().LoginAttempts)
	assert.Equal(t, domain.PhaseConnected, bot.Sessions.Phase())
}
