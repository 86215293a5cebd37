package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusPublisherStartsInitializing(t *testing.T) {
	status := NewStatusPublisher(newFakeClock(testNow), nil)

	snapshot := status.Snapshot()
	assert.Equal(t, domain.StateInitializing, snapshot.LifecycleState)
	assert.Empty(t, snapshot.LastError)
	assert.Nil(t, snapshot.LastLogin)
	assert.Equal(t, testNow, snapshot.Timestamp)
}

func TestStatusPublisherSnapshotIsACopy(t *testing.T) {
	status := NewStatusPublisher(newFakeClock(testNow), nil)
	lastLogin := testNow
	status.PublishCounters(domain.Counters{DailyFollows: 1, LastLogin: &lastLogin})

	snapshot := status.Snapshot()
	*snapshot.LastLogin = snapshot.LastLogin.Add(time.Hour)

	assert.Equal(t, testNow, *status.Snapshot().LastLogin)
}

// Each write pair bumps daily_follows to i and then stamps last_login with
// minute i. A reader may see either half of a pair, never a mix of pairs.
func TestStatusPublisherReadersNeverSeeTornCounters(t *testing.T) {
	clock := newFakeClock(testNow)
	status := NewStatusPublisher(clock, nil)
	counters := NewCountersService(&memCountersRepo{}, clock, status, nil)
	counters.Load(context.Background())

	const writes = 300
	done := make(chan struct{})
	var wg sync.WaitGroup

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}

				snapshot := status.Snapshot()
				follows := snapshot.Counters.Follows
				if follows == 0 {
					assert.Nil(t, snapshot.LastLogin)
					continue
				}

				current := testNow.Add(time.Duration(follows) * time.Minute)
				previous := testNow.Add(time.Duration(follows-1) * time.Minute)
				if snapshot.LastLogin == nil {
					assert.Equal(t, 1, follows)
					continue
				}
				login := *snapshot.LastLogin
				assert.True(t, login.Equal(current) || login.Equal(previous),
					"follows=%d paired with last_login=%s", follows, login)
			}
		}()
	}

	for i := 1; i <= writes; i++ {
		require.NoError(t, counters.Record(context.Background(), domain.ActionFollow))
		clock.Set(testNow.Add(time.Duration(i) * time.Minute))
		require.NoError(t, counters.RecordLogin(context.Background()))
	}
	close(done)
	wg.Wait()

	snapshot := status.Snapshot()
	assert.Equal(t, writes, snapshot.Counters.Follows)
	require.NotNil(t, snapshot.LastLogin)
	assert.Equal(t, testNow.Add(writes*time.Minute), *snapshot.LastLogin)
}

func TestStatusPublisherSetRecoveredClearsLastError(t *testing.T) {
	status := NewStatusPublisher(newFakeClock(testNow), nil)
	status.SetFailure(domain.StateChallengeRequired, challengeMessage)

	status.SetState(domain.StateLoggingIn)
	assert.Equal(t, challengeMessage, status.Snapshot().LastError)

	status.SetRecovered(domain.StateConnected)
	snapshot := status.Snapshot()
	assert.Equal(t, domain.StateConnected, snapshot.LifecycleState)
	assert.Empty(t, snapshot.LastError)
}

func TestStatusPublisherForceReconnect(t *testing.T) {
	status := NewStatusPublisher(newFakeClock(testNow), nil)

	result := status.ForceReconnect(context.Background())
	assert.False(t, result.Attempted)
	assert.Equal(t, domain.StateInitializing, result.NewStatus)

	status.reconnect = func(context.Context) error {
		status.SetState(domain.StateConnected)
		return nil
	}
	result = status.ForceReconnect(context.Background())
	assert.Equal(t, ReconnectResult{Attempted: true, Succeeded: true, NewStatus: domain.StateConnected}, result)

	status.reconnect = func(context.Context) error {
		status.SetFailure(domain.StateLoginFailed, "bad_password")
		return errors.New("login failed: bad_password")
	}
	result = status.ForceReconnect(context.Background())
	assert.True(t, result.Attempted)
	assert.False(t, result.Succeeded)
	assert.Equal(t, domain.StateLoginFailed, result.NewStatus)
	assert.Equal(t, "login failed: bad_password", result.Error)
}
