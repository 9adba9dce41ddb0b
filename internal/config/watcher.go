package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	URL           string        `yaml:"url"`
	Timeout       time.Duration `yaml:"timeout"`
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryWait     time.Duration `yaml:"retry_wait"`
}

const (
	_timeoutDefault       = 10 * time.Second
	_retryAttemptsDefault = 3
	_retryWaitDefault     = 10 * time.Second
)

func (c *APIConfig) Setup() error {
	if c.URL == "" {
		return fmt.Errorf("api url is required")
	}
	if _, err := url.Parse(c.URL); err != nil {
		return err
	}

	if c.Timeout <= 0 {
		c.Timeout = _timeoutDefault
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = _retryAttemptsDefault
	}
	if c.RetryWait <= 0 {
		c.RetryWait = _retryWaitDefault
	}

	return nil
}

type WatchConfig struct {
	ModelPrefixes      []string      `yaml:"model_prefixes"`
	PollInterval       time.Duration `yaml:"poll_interval"`
	ErrorRetryInterval time.Duration `yaml:"error_retry_interval"`
}

const (
	_pollIntervalDefault       = 30 * time.Second
	_errorRetryIntervalDefault = 2 * time.Minute
)

func (c *WatchConfig) Setup() error {
	if len(c.ModelPrefixes) == 0 {
		return fmt.Errorf("empty model prefixes")
	}

	if c.PollInterval <= 0 {
		c.PollInterval = _pollIntervalDefault
	}
	if c.ErrorRetryInterval <= 0 {
		c.ErrorRetryInterval = _errorRetryIntervalDefault
	}

	return nil
}

type StoreBackend string

const (
	File     StoreBackend = "file"
	Postgres StoreBackend = "postgres"
)

type StoreConfig struct {
	Backend StoreBackend `yaml:"backend"`
	Path    string       `yaml:"path"`
}

const _storePathDefault = "seen_positions.json"

func (c *StoreConfig) Setup() error {
	if c.Backend == "" {
		c.Backend = File
	}
	if c.Backend != File && c.Backend != Postgres {
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	if c.Path == "" {
		c.Path = _storePathDefault
	}

	return nil
}

type NotifierKind string

const (
	Log     NotifierKind = "log"
	Discord NotifierKind = "discord"
)

type NotifyConfig struct {
	Kind       NotifierKind `yaml:"kind"`
	WebhookURL string       `yaml:"-"`
}

func (c *NotifyConfig) Setup() error {
	if c.Kind == "" {
		c.Kind = Log
	}

	switch c.Kind {
	case Log:
	case Discord:
		c.WebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
		if c.WebhookURL == "" {
			return fmt.Errorf("empty DISCORD_WEBHOOK_URL for discord notifier")
		}
	default:
		return fmt.Errorf("unknown notifier kind %q", c.Kind)
	}

	return nil
}

type ServerConfig struct {
	Port string `yaml:"port"` // empty disables the status server
}

type WatcherConfig struct {
	API    APIConfig    `yaml:"api"`
	Watch  WatchConfig  `yaml:"watch"`
	Store  StoreConfig  `yaml:"store"`
	Notify NotifyConfig `yaml:"notify"`
	Server ServerConfig `yaml:"server"`
}

func (c *WatcherConfig) ValidateAndSetup() error {
	if err := c.API.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup api", err)
	}
	if err := c.Watch.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup watch", err)
	}
	if err := c.Store.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup store", err)
	}
	if err := c.Notify.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup notify", err)
	}

	return nil
}

func LoadWatcherConfig(filename string) (WatcherConfig, error) {
	var cfg WatcherConfig
	input, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("%w: can't read file", err)
	}

	if err := yaml.Unmarshal(input, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: can't unmarshal config", err)
	}

	if err := cfg.ValidateAndSetup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}
