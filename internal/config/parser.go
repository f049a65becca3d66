package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

// Environment variables recognised by Load.
const (
	EnvAPIEndpoint = "FOLIO_API_ENDPOINT"
	EnvAPITimeout  = "FOLIO_API_TIMEOUT"
	EnvAPIKey      = "GROQ_API_KEY"
	EnvChatBaseURL = "FOLIO_CHAT_BASE_URL"
	EnvChatModel   = "FOLIO_CHAT_MODEL"
	EnvLogLevel    = "FOLIO_LOG_LEVEL"
	EnvStorage     = "FOLIO_STORAGE_DRIVER"
	EnvDBPath      = "FOLIO_DB_PATH"
	EnvFixtures    = "FOLIO_FIXTURES"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadOptions controls where Load reads from. Zero values select the
// defaults: DefaultPath() if it exists, ".env" if it exists and os.Getenv.
type LoadOptions struct {
	Path    string
	EnvFile string
	Getenv  func(string) string
}

// Load builds a validated Config.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := overlayFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := readDotenv(envFile, opts.EnvFile != "")
	if err != nil {
		return nil, err
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	expandPaths(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseFile decodes a YAML document over the defaults without consulting the
// environment.
func ParseFile(path string) (*Config, error) {
	cfg := Default()
	if err := overlayFile(cfg, path, true); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return folioerrors.NewParseError(path, 0, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return folioerrors.NewParseError(path, extractLine(err), err)
	}
	return nil
}

func readDotenv(path string, required bool) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, folioerrors.NewParseError(path, extractLine(err), err)
	}
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) string) error {
	if v := lookup(EnvAPIEndpoint); v != "" {
		cfg.API.Endpoint = v
	}
	if v := lookup(EnvAPIKey); v != "" {
		cfg.Chat.APIKey = strings.TrimSpace(v)
	}
	if v := lookup(EnvChatBaseURL); v != "" {
		cfg.Chat.BaseURL = v
	}
	if v := lookup(EnvChatModel); v != "" {
		cfg.Chat.Model = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := lookup(EnvStorage); v != "" {
		cfg.Storage.Driver = v
	}
	if v := lookup(EnvDBPath); v != "" {
		cfg.Storage.Path = v
	}
	if v := lookup(EnvFixtures); v != "" {
		cfg.DevServer.Fixtures = v
	}
	if v := lookup(EnvAPITimeout); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return folioerrors.NewValidationError("api.timeout", fmt.Sprintf("invalid duration %q", v), err)
		}
		cfg.API.Timeout = d
	}
	return nil
}

// expandPaths resolves a leading "~" in every path setting.
func expandPaths(cfg *Config) {
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Log.File = ExpandHome(cfg.Log.File)
	cfg.DevServer.Fixtures = ExpandHome(cfg.DevServer.Fixtures)
}

// ExpandHome replaces a leading "~/" with the user's home directory. Other
// paths, and every path when the home directory is unknown, are returned as is.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// parseDuration accepts Go duration syntax or a bare number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
