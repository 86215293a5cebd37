package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configDirMode   = 0o700
	configFileMode  = 0o600
	tempFilePattern = ".config-*.toml.tmp"
)

var ErrConfigExists = errors.New("config file already exists")

// fileSchema mirrors Config with durations spelled as strings, the form
// viper accepts back when the file is read.
type fileSchema struct {
	Username   string           `toml:"username,omitempty"`
	Password   string           `toml:"password,omitempty"`
	StateDir   string           `toml:"state_dir"`
	Listen     string           `toml:"listen"`
	Platform   platformSchema   `toml:"platform"`
	Log        LogConfig        `toml:"log"`
	Engagement EngagementConfig `toml:"engagement"`
	Schedule   scheduleSchema   `toml:"schedule"`
}

type platformSchema struct {
	BaseURL           string  `toml:"base_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Timeout           string  `toml:"timeout"`
}

type scheduleSchema struct {
	SessionsPerDay    int    `toml:"sessions_per_day"`
	DailyStart        string `toml:"daily_start"`
	ErrorCooldown     string `toml:"error_cooldown"`
	UnifiedDailyReset bool   `toml:"unified_daily_reset"`
}

func toFileSchema(c Config) fileSchema {
	return fileSchema{
		Username: c.Username,
		Password: c.Password,
		StateDir: c.StateDir,
		Listen:   c.Listen,
		Platform: platformSchema{
			BaseURL:           c.Platform.BaseURL,
			RequestsPerSecond: c.Platform.RequestsPerSecond,
			Timeout:           c.Platform.Timeout.String(),
		},
		Log:        c.Log,
		Engagement: c.Engagement,
		Schedule: scheduleSchema{
			SessionsPerDay:    c.Schedule.SessionsPerDay,
			DailyStart:        c.Schedule.DailyStart,
			ErrorCooldown:     c.Schedule.ErrorCooldown.String(),
			UnifiedDailyReset: c.Schedule.UnifiedDailyReset,
		},
	}
}

// Encode renders c as TOML that Load reads back unchanged.
func Encode(c Config) ([]byte, error) {
	data, err := toml.Marshal(toFileSchema(c))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// WriteFile stores c at path without credentials. An existing file is kept
// unless overwrite is set.
func WriteFile(path string, c Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	c.Username = ""
	c.Password = ""
	data, err := Encode(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
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
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}
