package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/logging"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

type SchedulerConfig struct {
	Username string
	Topics   []string
	Comments []string
	Filter   domain.TargetFilter

	TopicMediaAmount   int
	MaxCandidates      int
	EngagementsPerRun  domain.Range
	MediaPerTarget     int
	LikesPerTarget     int
	CommentProbability float64

	UnfollowProbability float64
	UnfollowScan        int
	UnfollowMax         int

	LikeDelay     domain.DelayRange
	TargetDelay   domain.DelayRange
	UnfollowDelay domain.DelayRange

	SessionsPerDay int
	SessionPause   domain.DelayRange
	// DailyStart is the offset from local midnight at which the next day's
	// first session begins.
	DailyStart    time.Duration
	ErrorCooldown time.Duration
}

func DefaultSchedulerConfig(username string) SchedulerConfig {
	return SchedulerConfig{
		Username: username,
		Topics:   []string{"digitalmarketing", "entrepreneur", "success", "motivation", "business"},
		Comments: []string{
			"Super contenu! 👍",
			"Très intéressant!",
			"J'aime ta démarche!",
			"Continue comme ça! 👏",
		},
		Filter: domain.DefaultTargetFilter(),

		TopicMediaAmount:   10,
		MaxCandidates:      8,
		EngagementsPerRun:  domain.Range{Min: 3, Max: 6},
		MediaPerTarget:     3,
		LikesPerTarget:     2,
		CommentProbability: 0.1,

		UnfollowProbability: 0.3,
		UnfollowScan:        15,
		UnfollowMax:         5,

		LikeDelay:     domain.Seconds(8, 20),
		TargetDelay:   domain.Seconds(20, 40),
		UnfollowDelay: domain.Seconds(25, 50),

		SessionsPerDay: 4,
		SessionPause:   domain.Seconds(2*3600, 4*3600),
		DailyStart:     9 * time.Hour,
		ErrorCooldown:  30 * time.Minute,
	}
}

// SessionReport summarizes one growth session.
type SessionReport struct {
	ID         string
	Topic      string
	Candidates int
	Engaged    int
	Likes      int
	Follows    int
	Comments   int
	Unfollows  int
}

type sessionController interface {
	EnsureConnected(ctx context.Context) error
	Invalidate(ctx context.Context, cause error)
	MarkChallenged(cause error)
	Phase() domain.SessionPhase
}

type Scheduler struct {
	platform ports.Platform
	sessions sessionController
	limiter  *RateLimiter
	counters *CountersService
	status   *StatusPublisher
	rng      ports.Rand
	sleeper  ports.Sleeper
	clock    ports.Clock
	metrics  ports.Metrics
	logger   *slog.Logger
	cfg      SchedulerConfig
}

func NewScheduler(
	platform ports.Platform,
	sessions sessionController,
	limiter *RateLimiter,
	counters *CountersService,
	status *StatusPublisher,
	rng ports.Rand,
	sleeper ports.Sleeper,
	clock ports.Clock,
	metrics ports.Metrics,
	cfg SchedulerConfig,
	logger *slog.Logger,
) *Scheduler {
	if sleeper == nil {
		sleeper = ports.SystemSleeper{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &Scheduler{
		platform: platform,
		sessions: sessions,
		limiter:  limiter,
		counters: counters,
		status:   status,
		rng:      rng,
		sleeper:  sleeper,
		clock:    clock,
		metrics:  metrics,
		logger:   logging.OrDiscard(logger),
		cfg:      cfg,
	}
}

// Run drives growth sessions until ctx ends. Failures never stop the loop:
// they are recorded in the status and followed by a cooldown. An expired
// session is retried once in the same slot before it counts as a failure.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		for i := 1; i <= s.cfg.SessionsPerDay; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			s.logger.Info("growth session starting", "run", i, "of", s.cfg.SessionsPerDay)
			err := s.RunOnce(ctx)
			if err != nil && ctx.Err() == nil && domain.Classify(err) == domain.ErrorKindSessionInvalid {
				// One fresh login per slot; a second expiry falls through to the cooldown.
				s.logger.Warn("session expired during growth session, logging in again", "run", i, "error", err)
				err = s.RunOnce(ctx)
			}
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.recordFailure(err)
				if err := s.sleeper.Sleep(ctx, s.cfg.ErrorCooldown); err != nil {
					return err
				}
				continue
			}

			if i < s.cfg.SessionsPerDay {
				pause := drawDelay(s.rng, s.cfg.SessionPause)
				s.logger.Info("pausing between growth sessions", "pause", pause)
				if err := s.sleeper.Sleep(ctx, pause); err != nil {
					return err
				}
			}
		}

		wait := s.untilNextDay()
		s.logger.Info("daily growth sessions done", "resume_in", wait)
		if err := s.sleeper.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// RunOnce connects if needed and runs a single growth session.
func (s *Scheduler) RunOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("growth session panicked: %v", r)
		}
	}()

	if err := s.sessions.EnsureConnected(ctx); err != nil {
		return fmt.Errorf("ensure connected: %w", err)
	}

	s.status.SetState(domain.StateActiveSession)
	if _, err := s.RunGrowthSession(ctx); err != nil {
		switch domain.Classify(err) {
		case domain.ErrorKindSessionInvalid:
			s.sessions.Invalidate(ctx, err)
		case domain.ErrorKindChallenge:
			s.sessions.MarkChallenged(err)
		}
		return err
	}

	// A failed operator reconnect during the session owns the state.
	if s.sessions.Phase().Usable() {
		s.status.SetRecovered(domain.StateConnected)
	}
	return nil
}

// RunGrowthSession runs discovery, engagement and the optional unfollow sweep.
// Only session-level failures are returned; per-target failures are logged
// and skipped.
func (s *Scheduler) RunGrowthSession(ctx context.Context) (SessionReport, error) {
	report := SessionReport{ID: uuid.NewString()}
	logger := s.logger.With("session_id", report.ID)

	targets, topic, err := s.discover(ctx, logger)
	report.Topic = topic
	report.Candidates = len(targets)
	if err != nil {
		return report, fmt.Errorf("discover targets: %w", err)
	}

	limit := drawInRange(s.rng, s.cfg.EngagementsPerRun)
	for _, target := range targets {
		if report.Engaged >= limit {
			break
		}

		if err := s.engage(ctx, logger, target, &report); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			if !domain.Classify(err).Recoverable() {
				return report, fmt.Errorf("engage %s: %w", target.Username, err)
			}
			logger.Warn("engagement failed, skipping target", "target", target.Username, "error", err)
		} else {
			report.Engaged++
		}

		if err := s.pause(ctx, s.cfg.TargetDelay); err != nil {
			return report, err
		}
	}

	if s.rng.Float64() < s.cfg.UnfollowProbability {
		unfollowed, err := s.unfollowSweep(ctx, logger)
		report.Unfollows = unfollowed
		if err != nil {
			return report, fmt.Errorf("unfollow sweep: %w", err)
		}
	}

	if err := s.counters.CompleteSession(ctx); err != nil {
		logger.Warn("session completion not persisted", "error", err)
	}
	s.metrics.GrowthSessionCompleted(report.Engaged)

	today := s.counters.Snapshot()
	logger.Info("growth session finished",
		"topic", report.Topic,
		"engaged", report.Engaged,
		"likes", report.Likes,
		"follows", report.Follows,
		"comments", report.Comments,
		"unfollows", report.Unfollows,
		"daily_follows", today.DailyFollows,
		"daily_likes", today.DailyLikes,
	)
	return report, nil
}

func (s *Scheduler) discover(ctx context.Context, logger *slog.Logger) ([]domain.Target, string, error) {
	if len(s.cfg.Topics) == 0 {
		return nil, "", nil
	}

	topic := s.cfg.Topics[s.rng.IntN(len(s.cfg.Topics))]
	logger.Info("searching topic", "topic", topic)

	media, err := s.platform.TopicMedia(ctx, topic, s.cfg.TopicMediaAmount)
	if err != nil {
		if domain.Classify(err).Recoverable() && ctx.Err() == nil {
			logger.Warn("topic search failed", "topic", topic, "error", err)
			return nil, topic, nil
		}
		return nil, topic, err
	}

	targets := make([]domain.Target, 0, s.cfg.MaxCandidates)
	seen := make(map[domain.UserID]struct{}, len(media))
	for _, item := range media {
		if len(targets) >= s.cfg.MaxCandidates {
			break
		}
		if _, ok := seen[item.OwnerID]; ok {
			continue
		}
		seen[item.OwnerID] = struct{}{}

		info, err := s.platform.UserInfo(ctx, item.OwnerID)
		if err != nil {
			if domain.Classify(err).Recoverable() && ctx.Err() == nil {
				logger.Warn("account lookup failed", "user_id", item.OwnerID, "error", err)
				continue
			}
			return nil, topic, err
		}
		if !s.cfg.Filter.Admits(info) {
			continue
		}
		targets = append(targets, domain.Target{UserInfo: info, Topic: topic})
	}

	logger.Info("targets discovered", "topic", topic, "count", len(targets))
	return targets, topic, nil
}

func (s *Scheduler) engage(ctx context.Context, logger *slog.Logger, target domain.Target, report *SessionReport) error {
	logger = logger.With("target", target.Username)

	media, err := s.platform.UserMedia(ctx, target.ID, s.cfg.MediaPerTarget)
	if err != nil {
		return fmt.Errorf("fetch recent media: %w", err)
	}

	likes := 0
	for _, item := range media[:min(s.cfg.LikesPerTarget, len(media))] {
		if !s.limiter.CanPerform(ctx, domain.ActionLike) {
			continue
		}
		if err := s.platform.LikeMedia(ctx, item.ID); err != nil {
			s.metrics.ActionFailed(domain.ActionLike, domain.Classify(err))
			return fmt.Errorf("like %s: %w", item.ID, err)
		}
		s.recordAction(ctx, logger, domain.ActionLike)
		likes++
		report.Likes++
		logger.Info("liked media", "media_id", item.ID)

		if err := s.pause(ctx, s.cfg.LikeDelay); err != nil {
			return err
		}
	}

	if likes == 0 || !s.limiter.CanPerform(ctx, domain.ActionFollow) {
		return nil
	}

	relationship, err := s.platform.Relationship(ctx, target.ID)
	if err != nil {
		return fmt.Errorf("fetch relationship: %w", err)
	}
	if relationship.Following {
		return nil
	}

	if err := s.platform.Follow(ctx, target.ID); err != nil {
		s.metrics.ActionFailed(domain.ActionFollow, domain.Classify(err))
		return fmt.Errorf("follow: %w", err)
	}
	s.recordAction(ctx, logger, domain.ActionFollow)
	report.Follows++
	logger.Info("followed account")

	if len(media) == 0 || len(s.cfg.Comments) == 0 || s.rng.Float64() >= s.cfg.CommentProbability {
		return nil
	}

	text := s.cfg.Comments[s.rng.IntN(len(s.cfg.Comments))]
	if err := s.platform.CommentMedia(ctx, media[0].ID, text); err != nil {
		s.metrics.ActionFailed(domain.ActionComment, domain.Classify(err))
		return fmt.Errorf("comment %s: %w", media[0].ID, err)
	}
	s.recordAction(ctx, logger, domain.ActionComment)
	report.Comments++
	logger.Info("commented media", "media_id", media[0].ID)
	return nil
}

// unfollowSweep prunes followed accounts that do not follow back. It does not
// track how long ago an account was followed.
func (s *Scheduler) unfollowSweep(ctx context.Context, logger *slog.Logger) (int, error) {
	logger.Info("checking non-reciprocal follows")

	self, err := s.platform.UserIDFromUsername(ctx, s.cfg.Username)
	if err != nil {
		return 0, fmt.Errorf("resolve own account: %w", err)
	}
	following, err := s.platform.Following(ctx, self)
	if err != nil {
		return 0, fmt.Errorf("list following: %w", err)
	}
	followers, err := s.platform.Followers(ctx, self)
	if err != nil {
		return 0, fmt.Errorf("list followers: %w", err)
	}

	followedBack := make(map[domain.UserID]struct{}, len(followers))
	for _, id := range followers {
		followedBack[id] = struct{}{}
	}

	unfollowed := 0
	for _, id := range following[:min(s.cfg.UnfollowScan, len(following))] {
		if unfollowed >= s.cfg.UnfollowMax {
			break
		}
		if _, ok := followedBack[id]; ok {
			continue
		}

		if err := s.platform.Unfollow(ctx, id); err != nil {
			s.metrics.ActionFailed(domain.ActionUnfollow, domain.Classify(err))
			if domain.Classify(err).Recoverable() && ctx.Err() == nil {
				logger.Warn("unfollow failed", "user_id", id, "error", err)
				continue
			}
			return unfollowed, err
		}
		unfollowed++
		s.recordAction(ctx, logger, domain.ActionUnfollow)
		logger.Info("unfollowed non-reciprocal account", "user_id", id)

		if err := s.pause(ctx, s.cfg.UnfollowDelay); err != nil {
			return unfollowed, err
		}
	}

	if unfollowed > 0 {
		logger.Info("unfollow sweep done", "unfollows", unfollowed)
	}
	return unfollowed, nil
}

func (s *Scheduler) recordAction(ctx context.Context, logger *slog.Logger, kind domain.ActionKind) {
	s.metrics.ActionPerformed(kind)
	if err := s.counters.Record(ctx, kind); err != nil {
		logger.Warn("action count not persisted", "action", kind, "error", err)
	}
}

func (s *Scheduler) pause(ctx context.Context, d domain.DelayRange) error {
	return s.sleeper.Sleep(ctx, drawDelay(s.rng, d))
}

// recordFailure keeps the login states the session manager already published
// and turns everything else into the generic error state.
func (s *Scheduler) recordFailure(err error) {
	switch {
	case domain.Classify(err) == domain.ErrorKindChallenge:
		s.logger.Error("growth paused until operator reconnect", "error", err)
	case errors.Is(err, domain.ErrLoginFailed):
		s.logger.Error("growth session skipped, login failed", "error", err, "retry_in", s.cfg.ErrorCooldown)
	default:
		s.logger.Error("growth session failed", "error", err, "retry_in", s.cfg.ErrorCooldown)
		s.status.SetFailure(domain.StateError, err.Error())
	}
}

func (s *Scheduler) untilNextDay() time.Duration {
	now := s.clock.Now()
	year, month, day := now.Date()
	next := time.Date(year, month, day+1, 0, 0, 0, 0, now.Location()).Add(s.cfg.DailyStart)
	return next.Sub(now)
}
