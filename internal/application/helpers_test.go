package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/ports"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// recordingSleeper returns immediately and remembers every requested delay.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *recordingSleeper) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

type memCountersRepo struct {
	mu      sync.Mutex
	saved   *domain.Counters
	saves   int
	loadErr error
	saveErr error
}

func (r *memCountersRepo) Load(context.Context) (domain.Counters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return domain.Counters{}, r.loadErr
	}
	if r.saved == nil {
		return domain.Counters{}, domain.ErrStateNotFound
	}
	return r.saved.Clone(), nil
}

func (r *memCountersRepo) Save(_ context.Context, c domain.Counters) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	c = c.Clone()
	r.saved = &c
	r.saves++
	return nil
}

func (r *memCountersRepo) Saved() domain.Counters {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved == nil {
		return domain.Counters{}
	}
	return r.saved.Clone()
}

// fixedRand replays IntN and Float64 answers, falling back to the lowest
// value once a script runs out.
type fixedRand struct {
	ints   []int
	floats []float64
}

func (r *fixedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func (r *fixedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type stubSessions struct {
	mu           sync.Mutex
	connectErr   error
	connects     int
	invalidated  []error
	challenged   []error
	phase        domain.SessionPhase
	onInvalidate func()
}

func (s *stubSessions) EnsureConnected(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connects++
	if s.connectErr == nil {
		s.phase = domain.PhaseConnected
	}
	return s.connectErr
}

func (s *stubSessions) Invalidate(_ context.Context, cause error) {
	s.mu.Lock()
	s.invalidated = append(s.invalidated, cause)
	s.phase = domain.PhaseNoSession
	hook := s.onInvalidate
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (s *stubSessions) MarkChallenged(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenged = append(s.challenged, cause)
	s.phase = domain.PhaseChallengeRequired
}

func (s *stubSessions) Phase() domain.SessionPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *stubSessions) setPhase(phase domain.SessionPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}

// fakePlatform is an in-memory social graph.
type fakePlatform struct {
	mu sync.Mutex

	self             domain.UserID
	topicMedia       map[string][]domain.Media
	users            map[domain.UserID]domain.UserInfo
	userMedia        map[domain.UserID][]domain.Media
	following        []domain.UserID
	followers        []domain.UserID
	alreadyFollowing map[domain.UserID]bool

	userInfoErr map[domain.UserID]error
	likeErr     map[domain.MediaID]error
	topicErr    error

	liked      []domain.MediaID
	followed   []domain.UserID
	commented  []domain.MediaID
	unfollowed []domain.UserID
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		self:             "self",
		topicMedia:       map[string][]domain.Media{},
		users:            map[domain.UserID]domain.UserInfo{},
		userMedia:        map[domain.UserID][]domain.Media{},
		alreadyFollowing: map[domain.UserID]bool{},
		userInfoErr:      map[domain.UserID]error{},
		likeErr:          map[domain.MediaID]error{},
	}
}

// seedTopic registers count admissible accounts, each with three posts,
// under every topic.
func (p *fakePlatform) seedTopic(topics []string, count int) {
	for i := 0; i < count; i++ {
		id := domain.UserID(fmt.Sprintf("user-%d", i))
		p.users[id] = domain.UserInfo{ID: id, Username: fmt.Sprintf("account%d", i), FollowerCount: 5000, MediaCount: 50}
		for j := 0; j < 3; j++ {
			p.userMedia[id] = append(p.userMedia[id], domain.Media{ID: domain.MediaID(fmt.Sprintf("%s-post-%d", id, j)), OwnerID: id})
		}
		for _, topic := range topics {
			p.topicMedia[topic] = append(p.topicMedia[topic], domain.Media{ID: domain.MediaID(fmt.Sprintf("%s-tagged", id)), OwnerID: id})
		}
	}
}

func (p *fakePlatform) allUserMedia() map[domain.MediaID]struct{} {
	ids := make(map[domain.MediaID]struct{})
	for _, media := range p.userMedia {
		for _, m := range media {
			ids[m.ID] = struct{}{}
		}
	}
	return ids
}

func (p *fakePlatform) TopicMedia(_ context.Context, topic string, amount int) ([]domain.Media, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.topicErr != nil {
		return nil, p.topicErr
	}
	media := p.topicMedia[topic]
	return append([]domain.Media(nil), media[:min(amount, len(media))]...), nil
}

func (p *fakePlatform) UserInfo(_ context.Context, id domain.UserID) (domain.UserInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.userInfoErr[id]; err != nil {
		return domain.UserInfo{}, err
	}
	info, ok := p.users[id]
	if !ok {
		return domain.UserInfo{}, fmt.Errorf("user %s: %w", id, domain.ErrTransient)
	}
	return info, nil
}

func (p *fakePlatform) UserMedia(_ context.Context, id domain.UserID, amount int) ([]domain.Media, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	media := p.userMedia[id]
	return append([]domain.Media(nil), media[:min(amount, len(media))]...), nil
}

func (p *fakePlatform) UserIDFromUsername(context.Context, string) (domain.UserID, error) {
	return p.self, nil
}

func (p *fakePlatform) Relationship(_ context.Context, id domain.UserID) (domain.Relationship, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.Relationship{Following: p.alreadyFollowing[id]}, nil
}

func (p *fakePlatform) LikeMedia(_ context.Context, id domain.MediaID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.likeErr[id]; err != nil {
		return err
	}
	p.liked = append(p.liked, id)
	return nil
}

func (p *fakePlatform) CommentMedia(_ context.Context, id domain.MediaID, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.commented = append(p.commented, id)
	return nil
}

func (p *fakePlatform) Follow(_ context.Context, id domain.UserID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.followed = append(p.followed, id)
	return nil
}

func (p *fakePlatform) Unfollow(_ context.Context, id domain.UserID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unfollowed = append(p.unfollowed, id)
	return nil
}

func (p *fakePlatform) Followers(context.Context, domain.UserID) ([]domain.UserID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.UserID(nil), p.followers...), nil
}

func (p *fakePlatform) Following(context.Context, domain.UserID) ([]domain.UserID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.UserID(nil), p.following...), nil
}

var testNow = time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC)

type schedulerHarness struct {
	platform  *fakePlatform
	sessions  *stubSessions
	sleeper   *recordingSleeper
	clock     *fakeClock
	repo      *memCountersRepo
	status    *StatusPublisher
	counters  *CountersService
	scheduler *Scheduler
}

func newSchedulerHarness(platform *fakePlatform, rng ports.Rand, cfg SchedulerConfig) *schedulerHarness {
	h := &schedulerHarness{
		platform: platform,
		sessions: &stubSessions{},
		sleeper:  &recordingSleeper{},
		clock:    newFakeClock(testNow),
		repo:     &memCountersRepo{},
	}
	h.status = NewStatusPublisher(h.clock, nil)
	h.counters = NewCountersService(h.repo, h.clock, h.status, nil)
	h.counters.Load(context.Background())
	limiter := NewRateLimiter(h.counters, nil, rng, true, nil)
	h.scheduler = NewScheduler(platform, h.sessions, limiter, h.counters, h.status, rng, h.sleeper, h.clock, nil, cfg, nil)
	return h
}
