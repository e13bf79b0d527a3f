package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration shared by the api, relay and gateway
// binaries. Values come from a YAML file, then environment overrides.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Leagues LeaguesConfig `yaml:"leagues"`
	Matches MatchesConfig `yaml:"matches"`
	NATS    NATSConfig    `yaml:"nats"`
	Outbox  OutboxConfig  `yaml:"outbox"`
	Gateway GatewayConfig `yaml:"gateway"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LeaguesConfig struct {
	InviteCodeAttempts int `yaml:"invite_code_attempts"`
}

type MatchesConfig struct {
	// Timezone applies to kickoff times submitted without an offset.
	Timezone string `yaml:"timezone"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type OutboxConfig struct {
	FallbackInterval time.Duration `yaml:"fallback_interval"`
	BatchSize        int           `yaml:"batch_size"`
	HealthPort       int           `yaml:"health_port"`
}

type GatewayConfig struct {
	Port int `yaml:"port"`
}

func Default() Config {
	return Config{
		Server:  ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		Leagues: LeaguesConfig{InviteCodeAttempts: 10},
		Matches: MatchesConfig{Timezone: "America/Sao_Paulo"},
		NATS:    NATSConfig{URL: "nats://127.0.0.1:4222"},
		Outbox: OutboxConfig{
			FallbackInterval: 30 * time.Second,
			BatchSize:        100,
			HealthPort:       8081,
		},
		Gateway: GatewayConfig{Port: 8082},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

// Path returns CONFIG_PATH or the default file name
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("APP_TIMEZONE"); v != "" {
		c.Matches.Timezone = v
	}
	for key, dst := range map[string]*int{
		"PORT":         &c.Server.Port,
		"HEALTH_PORT":  &c.Outbox.HealthPort,
		"GATEWAY_PORT": &c.Gateway.Port,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
	}
	if v := os.Getenv("FALLBACK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FALLBACK_INTERVAL %q: %w", v, err)
		}
		c.Outbox.FallbackInterval = d
	}
	return nil
}

// MaxOutboxBatchSize bounds how many outbox rows one relay sweep fetches.
const MaxOutboxBatchSize = 10000

func (c Config) validate() error {
	if c.Leagues.InviteCodeAttempts < 1 {
		return fmt.Errorf("leagues.invite_code_attempts must be at least 1, got %d", c.Leagues.InviteCodeAttempts)
	}
	if c.Outbox.FallbackInterval <= 0 {
		return fmt.Errorf("outbox.fallback_interval must be positive")
	}
	if c.Outbox.BatchSize < 1 || c.Outbox.BatchSize > MaxOutboxBatchSize {
		return fmt.Errorf("outbox.batch_size must be between 1 and %d, got %d", MaxOutboxBatchSize, c.Outbox.BatchSize)
	}
	return nil
}
