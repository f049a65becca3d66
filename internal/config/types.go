// Package config loads folio's settings from defaults, an optional YAML file,
// an optional .env file and the environment, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
)

// Config is the complete application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Chat      ChatConfig      `yaml:"chat"`
	Content   ContentConfig   `yaml:"content"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Owner     OwnerConfig     `yaml:"owner"`
	DevServer DevServerConfig `yaml:"devserver"`
}

// APIConfig points at the portfolio backend.
type APIConfig struct {
	Endpoint string        `yaml:"endpoint" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
}

// ChatConfig configures the completion endpoint. APIKey is only ever read
// from the environment.
type ChatConfig struct {
	BaseURL     string        `yaml:"base_url" validate:"required,url"`
	Model       string        `yaml:"model" validate:"required"`
	MaxTokens   int           `yaml:"max_tokens" validate:"gt=0,lte=32768"`
	Temperature float32       `yaml:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	APIKey      string        `yaml:"-"`
}

// ContentConfig tunes the content cache.
type ContentConfig struct {
	StaleAfter time.Duration `yaml:"stale_after" validate:"gte=0"`
	Retries    int           `yaml:"retries" validate:"gte=0,lte=5"`
}

// StorageConfig selects where preferences are persisted.
type StorageConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite file memory"`
	Path   string `yaml:"path" validate:"required_unless=Driver memory"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"log_level"`
	File  string `yaml:"file"`
	Human bool   `yaml:"human"`
}

// OwnerConfig describes whose portfolio this is.
type OwnerConfig struct {
	Name     string   `yaml:"name" validate:"required"`
	FullName string   `yaml:"full_name"`
	Title    string   `yaml:"title"`
	Email    string   `yaml:"email" validate:"omitempty,email"`
	Phone    string   `yaml:"phone"`
	Location string   `yaml:"location"`
	Roles    []string `yaml:"roles" validate:"min=1,dive,required"`
}

// Portfolio converts the owner settings to the domain type.
func (o OwnerConfig) Portfolio() portfolio.Owner {
	return portfolio.Owner{
		Name:     o.Name,
		FullName: o.FullName,
		Title:    o.Title,
		Email:    o.Email,
		Phone:    o.Phone,
		Location: o.Location,
		Roles:    append([]string(nil), o.Roles...),
	}
}

// DevServerConfig configures `folio devserver`.
type DevServerConfig struct {
	Addr     string `yaml:"addr" validate:"required,hostname_port"`
	Fixtures string `yaml:"fixtures"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: "http://localhost:8080",
			Timeout:  10 * time.Second,
		},
		Chat: ChatConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "llama-3.3-70b-versatile",
			MaxTokens:   500,
			Temperature: 0.7,
			Timeout:     30 * time.Second,
		},
		Content: ContentConfig{
			StaleAfter: 5 * time.Minute,
			Retries:    1,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   filepath.Join(configDir(), "folio.db"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(cacheDir(), "folio.log"),
		},
		Owner: OwnerConfig{
			Name:     "Raj",
			FullName: "Raj Shekhar",
			Title:    "Software Developer & Data Engineer",
			Location: "Bangalore, India",
			Roles:    []string{"Software Developer", "Big Data Engineer"},
		},
		DevServer: DevServerConfig{
			Addr: "localhost:8080",
		},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "folio")
	}
	return ".folio"
}

func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "folio")
	}
	return ".folio"
}
