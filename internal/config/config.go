// Package config loads the optional config.yaml beside the data store.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/sisy/internal/constants"
)

const (
	fileName = "config"
	fileType = "yaml"
	fileExt  = "config.yaml"

	KeyAgentURL      = "agent_url"
	KeyAgentTimeout  = "agent_timeout"
	KeyTickInterval  = "tick_interval"
	KeyNotifications = "notifications"
	KeyTab           = "tab"
	KeyLogLevel      = "log_level"

	envPrefix = "SISY"
)

// Keys lists every recognized configuration key.
var Keys = []string{KeyAgentURL, KeyAgentTimeout, KeyTickInterval, KeyNotifications, KeyTab, KeyLogLevel}

const defaultYAML = `# sisy configuration
# Every key can be overridden with a SISY_<KEY> environment variable.

# Chat agent base URL
agent_url: http://127.0.0.1:8000

# Per-request agent timeout
agent_timeout: 30s

# How often routine tasks are regenerated and the timeline refreshed
tick_interval: 60s

# Desktop notifications from 'sisy watch'
notifications: true

# Chat tab sent with each message
tab: home

# Log level override (debug, info, warn, error)
# log_level: warn
`

// Config is the resolved configuration.
type Config struct {
	AgentURL      string
	AgentTimeout  time.Duration
	TickInterval  time.Duration
	Notifications bool
	Tab           string
	LogLevel      string
	// Path is the config file location, whether or not it exists.
	Path string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AgentURL:      constants.DefaultAgentURL,
		AgentTimeout:  constants.DefaultAgentTimeout,
		TickInterval:  constants.DefaultTickInterval,
		Notifications: true,
		Tab:           constants.DefaultChatTab,
	}
}

func newViper(dir string) *viper.Viper {
	def := Default()
	v := viper.New()
	v.SetDefault(KeyAgentURL, def.AgentURL)
	v.SetDefault(KeyAgentTimeout, def.AgentTimeout)
	v.SetDefault(KeyTickInterval, def.TickInterval)
	v.SetDefault(KeyNotifications, def.Notifications)
	v.SetDefault(KeyTab, def.Tab)
	v.SetDefault(KeyLogLevel, "")
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads <dir>/config.yaml, writing the default file on first run. A missing
// file is not an error.
func Load(dir string) (Config, error) {
	if err := ensureDefaultFile(dir); err != nil {
		return Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		AgentURL:      strings.TrimRight(v.GetString(KeyAgentURL), "/"),
		AgentTimeout:  v.GetDuration(KeyAgentTimeout),
		TickInterval:  v.GetDuration(KeyTickInterval),
		Notifications: v.GetBool(KeyNotifications),
		Tab:           v.GetString(KeyTab),
		LogLevel:      v.GetString(KeyLogLevel),
		Path:          filepath.Join(dir, fileExt),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.AgentURL == "" {
		return fmt.Errorf("%s must not be empty", KeyAgentURL)
	}
	if c.AgentTimeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyAgentTimeout)
	}
	if c.TickInterval < time.Second {
		return fmt.Errorf("%s must be at least 1s", KeyTickInterval)
	}
	return nil
}

// Set writes one key to <dir>/config.yaml after checking the result still loads.
func Set(dir, key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	if err := ensureDefaultFile(dir); err != nil {
		return err
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.Set(key, value)

	path := filepath.Join(dir, fileExt)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if _, err := Load(dir); err != nil {
		return fmt.Errorf("config no longer valid after setting %s: %w", key, err)
	}
	return nil
}

func ensureDefaultFile(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, fileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultYAML), 0o644)
}
