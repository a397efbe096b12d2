package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultReplyText is what the simulated assistant answers with
const DefaultReplyText = "Thank you for your message. I'm analyzing your request and will provide insights shortly."

// Config is the on-disk configuration. It is read once at startup and never written back.
type Config struct {
	Theme     string  `yaml:"theme" validate:"oneof=auto light dark"`
	StartPage string  `yaml:"start_page"`
	Chat      Chat    `yaml:"chat"`
	Log       Log     `yaml:"log"`
	Sidebar   Sidebar `yaml:"sidebar"`
}

// Chat tunes the simulated assistant
type Chat struct {
	ReplyDelay time.Duration `yaml:"reply_delay" validate:"gte=0"`
	// LateReply decides what happens to a reply that comes due after the
	// chat view that asked for it was torn down.
	LateReply string `yaml:"late_reply" validate:"oneof=drop deliver"`
	ReplyText string `yaml:"reply_text" validate:"required"`
}

// Log configures the file logger
type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Sidebar holds initial layout preferences
type Sidebar struct {
	Collapsed bool `yaml:"collapsed"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Theme:     "auto",
		StartPage: "chat",
		Chat: Chat{
			ReplyDelay: 2 * time.Second,
			LateReply:  "drop",
			ReplyText:  DefaultReplyText,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// DefaultPath is where Load looks when no path is given
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "elevate", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error; the
// returned bool reports whether a file was read.
func Load(path string) (Config, bool, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), false, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, true, nil
}

var validate = validator.New()

// Validate checks field constraints
func (c Config) Validate() error {
	return validate.Struct(c)
}
