// Package config loads the bot configuration from a TOML file, GROWTHBOT_*
// environment variables and the platform credential variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/precieux0/instagram-repo2/internal/application"
	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/precieux0/instagram-repo2/internal/logging"
	"github.com/spf13/viper"
)

const (
	configDirName   = ".growthbot"
	configFileName  = "config.toml"
	stateFileName   = "bot_state.json"
	sessionsDirName = "sessions"
	envPrefix       = "GROWTHBOT"
	redacted        = "********"
)

type Config struct {
	Username   string           `mapstructure:"username" toml:"username"`
	Password   string           `mapstructure:"password" toml:"password"`
	StateDir   string           `mapstructure:"state_dir" toml:"state_dir"`
	Listen     string           `mapstructure:"listen" toml:"listen"`
	Platform   PlatformConfig   `mapstructure:"platform" toml:"platform"`
	Log        LogConfig        `mapstructure:"log" toml:"log"`
	Engagement EngagementConfig `mapstructure:"engagement" toml:"engagement"`
	Schedule   ScheduleConfig   `mapstructure:"schedule" toml:"schedule"`
}

type PlatformConfig struct {
	BaseURL           string        `mapstructure:"base_url" toml:"base_url"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" toml:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout" toml:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

type EngagementConfig struct {
	Topics             []string `mapstructure:"topics" toml:"topics"`
	Comments           []string `mapstructure:"comments" toml:"comments"`
	FollowerMin        int      `mapstructure:"follower_min" toml:"follower_min"`
	FollowerMax        int      `mapstructure:"follower_max" toml:"follower_max"`
	MediaMin           int      `mapstructure:"media_min" toml:"media_min"`
	CommentProbability float64  `mapstructure:"comment_probability" toml:"comment_probability"`
	FollowBudgetMin    int      `mapstructure:"follow_budget_min" toml:"follow_budget_min"`
	FollowBudgetMax    int      `mapstructure:"follow_budget_max" toml:"follow_budget_max"`
	LikeBudgetMin      int      `mapstructure:"like_budget_min" toml:"like_budget_min"`
	LikeBudgetMax      int      `mapstructure:"like_budget_max" toml:"like_budget_max"`
}

type ScheduleConfig struct {
	SessionsPerDay    int           `mapstructure:"sessions_per_day" toml:"sessions_per_day"`
	DailyStart        string        `mapstructure:"daily_start" toml:"daily_start"`
	ErrorCooldown     time.Duration `mapstructure:"error_cooldown" toml:"error_cooldown"`
	UnifiedDailyReset bool          `mapstructure:"unified_daily_reset" toml:"unified_daily_reset"`
}

// DefaultPath is $HOME/.growthbot/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName, configFileName), nil
}

// Load reads the configuration. An explicit path must exist; when path is
// empty the default file is read if present.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	setDefaults(v, filepath.Join(homeDir, configDirName))

	if err := bindEnv(v); err != nil {
		return Config{}, err
	}

	if err := readConfigFile(v, path, filepath.Join(homeDir, configDirName, configFileName)); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if port := strings.TrimSpace(v.GetString("port")); port != "" && !v.IsSet("listen_override") {
		cfg.Listen = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	scheduler := application.DefaultSchedulerConfig("")
	budgets := domain.DefaultRateBudgets()

	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("state_dir", configDir)
	v.SetDefault("listen", ":8080")

	v.SetDefault("platform.base_url", "http://127.0.0.1:7070")
	v.SetDefault("platform.requests_per_second", 0.125)
	v.SetDefault("platform.timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatText)

	v.SetDefault("engagement.topics", scheduler.Topics)
	v.SetDefault("engagement.comments", scheduler.Comments)
	v.SetDefault("engagement.follower_min", scheduler.Filter.FollowerMin)
	v.SetDefault("engagement.follower_max", scheduler.Filter.FollowerMax)
	v.SetDefault("engagement.media_min", scheduler.Filter.MediaMin)
	v.SetDefault("engagement.comment_probability", scheduler.CommentProbability)
	v.SetDefault("engagement.follow_budget_min", budgets[domain.ActionFollow].Min)
	v.SetDefault("engagement.follow_budget_max", budgets[domain.ActionFollow].Max)
	v.SetDefault("engagement.like_budget_min", budgets[domain.ActionLike].Min)
	v.SetDefault("engagement.like_budget_max", budgets[domain.ActionLike].Max)

	v.SetDefault("schedule.sessions_per_day", scheduler.SessionsPerDay)
	v.SetDefault("schedule.daily_start", formatClock(scheduler.DailyStart))
	v.SetDefault("schedule.error_cooldown", scheduler.ErrorCooldown)
	v.SetDefault("schedule.unified_daily_reset", true)
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"username": "INSTAGRAM_USERNAME",
		"password": "INSTAGRAM_PASSWORD",
		"port":     "PORT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	// GROWTHBOT_LISTEN wins over PORT.
	if err := v.BindEnv("listen_override", envPrefix+"_LISTEN"); err != nil {
		return fmt.Errorf("bind env %s_LISTEN: %w", envPrefix, err)
	}
	return nil
}

func readConfigFile(v *viper.Viper, explicit, fallback string) error {
	path := explicit
	if path == "" {
		if _, err := os.Stat(fallback); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("stat config file: %w", err)
		}
		path = fallback
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format: unsupported value %q", c.Log.Format)
	}
	if _, err := parseClock(c.Schedule.DailyStart); err != nil {
		return fmt.Errorf("schedule.daily_start: %w", err)
	}
	if c.Schedule.SessionsPerDay < 1 {
		return fmt.Errorf("schedule.sessions_per_day must be at least 1, got %d", c.Schedule.SessionsPerDay)
	}
	if c.Schedule.ErrorCooldown < 0 {
		return fmt.Errorf("schedule.error_cooldown must not be negative")
	}
	if c.Engagement.CommentProbability < 0 || c.Engagement.CommentProbability > 1 {
		return fmt.Errorf("engagement.comment_probability must be within [0,1], got %v", c.Engagement.CommentProbability)
	}
	if c.Engagement.FollowerMax <= c.Engagement.FollowerMin {
		return fmt.Errorf("engagement.follower_max must exceed follower_min")
	}
	for name, r := range map[string]domain.Range{
		"follow_budget": {Min: c.Engagement.FollowBudgetMin, Max: c.Engagement.FollowBudgetMax},
		"like_budget":   {Min: c.Engagement.LikeBudgetMin, Max: c.Engagement.LikeBudgetMax},
	} {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("engagement.%s: %w", name, err)
		}
	}
	if strings.TrimSpace(c.StateDir) == "" {
		return fmt.Errorf("state_dir must not be empty")
	}
	return nil
}

func (c Config) Credentials() domain.Credentials {
	return domain.Credentials{Username: strings.TrimSpace(c.Username), Password: c.Password}
}

func (c Config) StatePath() string {
	return filepath.Join(c.StateDir, stateFileName)
}

func (c Config) SessionsDir() string {
	return filepath.Join(c.StateDir, sessionsDirName)
}

// Redacted returns a copy that is safe to print.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = redacted
	}
	c.Engagement.Topics = append([]string(nil), c.Engagement.Topics...)
	c.Engagement.Comments = append([]string(nil), c.Engagement.Comments...)
	return c
}

// BotConfig maps the file settings onto the application defaults.
func (c Config) BotConfig() (application.BotConfig, error) {
	dailyStart, err := parseClock(c.Schedule.DailyStart)
	if err != nil {
		return application.BotConfig{}, fmt.Errorf("schedule.daily_start: %w", err)
	}

	bot := application.DefaultBotConfig(c.Credentials())
	bot.UnifiedReset = c.Schedule.UnifiedDailyReset
	bot.Budgets = domain.RateBudgets{
		domain.ActionFollow: {Min: c.Engagement.FollowBudgetMin, Max: c.Engagement.FollowBudgetMax},
		domain.ActionLike:   {Min: c.Engagement.LikeBudgetMin, Max: c.Engagement.LikeBudgetMax},
	}

	sched := &bot.Scheduler
	if len(c.Engagement.Topics) > 0 {
		sched.Topics = append([]string(nil), c.Engagement.Topics...)
	}
	if len(c.Engagement.Comments) > 0 {
		sched.Comments = append([]string(nil), c.Engagement.Comments...)
	}
	sched.Filter = domain.TargetFilter{
		FollowerMin: c.Engagement.FollowerMin,
		FollowerMax: c.Engagement.FollowerMax,
		MediaMin:    c.Engagement.MediaMin,
	}
	sched.CommentProbability = c.Engagement.CommentProbability
	sched.SessionsPerDay = c.Schedule.SessionsPerDay
	sched.DailyStart = dailyStart
	sched.ErrorCooldown = c.Schedule.ErrorCooldown

	return bot, nil
}

func parseClock(raw string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", raw)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}
