// Package config loads service and CLI settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/careerpath/roadmappdf/internal/progress"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration structure.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Progress ProgressConfig `yaml:"progress"`
	Server   ServerConfig   `yaml:"server"`
	Debug    bool           `yaml:"debug"`
}

// DocumentConfig holds rendering settings.
type DocumentConfig struct {
	PageSize string `yaml:"page_size" validate:"oneof=A4 Letter Legal A3 A5"`
	Author   string `yaml:"author"`
	Subject  string `yaml:"subject"`
	Keywords string `yaml:"keywords"`
	Creator  string `yaml:"creator"`
	// Logo is a file path or data URL.
	Logo   string `yaml:"logo"`
	Strict bool   `yaml:"strict"`
	// Palette overrides role colors, e.g. {"accent": "#7c3aed"}.
	Palette map[string]string `yaml:"palette"`
}

// ProgressConfig selects the progress store.
type ProgressConfig struct {
	Driver        string `yaml:"driver" validate:"oneof=memory file redis postgres"`
	Dir           string `yaml:"dir" validate:"required_if=Driver file"`
	RedisAddr     string `yaml:"redis_addr" validate:"required_if=Driver redis"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db" validate:"gte=0"`
	DatabaseURL   string `yaml:"database_url" validate:"required_if=Driver postgres"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr" validate:"required"`
	BodyLimit    int           `yaml:"body_limit" validate:"gt=0"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Document: DocumentConfig{
			PageSize: "A4",
			Author:   "AI Resume",
			Subject:  "Career roadmap",
			Creator:  "roadmappdf",
		},
		Progress: ProgressConfig{
			Driver:    "memory",
			Dir:       ".roadmap-progress",
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			BodyLimit:    1 << 20,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or the defaults when path is empty or missing.
// Environment overrides apply either way.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	cfg := Default()
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read via getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, err := strconv.ParseBool(strings.TrimSpace(getenv(key))); err == nil {
			*dst = v
		}
	}

	str("ROADMAP_PAGE_SIZE", &c.Document.PageSize)
	str("ROADMAP_LOGO", &c.Document.Logo)
	boolean("ROADMAP_STRICT", &c.Document.Strict)
	boolean("ROADMAP_DEBUG", &c.Debug)
	str("ROADMAP_ADDR", &c.Server.Addr)
	str("ROADMAP_PROGRESS_DRIVER", &c.Progress.Driver)
	str("ROADMAP_PROGRESS_DIR", &c.Progress.Dir)
	str("REDIS_ADDR", &c.Progress.RedisAddr)
	str("REDIS_PASSWORD", &c.Progress.RedisPassword)
	str("DATABASE_URL", &c.Progress.DatabaseURL)
	if v, err := strconv.Atoi(strings.TrimSpace(getenv("REDIS_DB"))); err == nil {
		c.Progress.RedisDB = v
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ProgressOptions converts the progress section for progress.Open.
func (c *Config) ProgressOptions(logger *log.Logger) progress.Options {
	return progress.Options{
		Driver:        c.Progress.Driver,
		Dir:           c.Progress.Dir,
		RedisAddr:     c.Progress.RedisAddr,
		RedisPassword: c.Progress.RedisPassword,
		RedisDB:       c.Progress.RedisDB,
		DatabaseURL:   c.Progress.DatabaseURL,
		Logger:        logger,
	}
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
