package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

func noEnv(string) string { return "" }

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, "llama-3.3-70b-versatile", cfg.Chat.Model)
	require.Equal(t, 500, cfg.Chat.MaxTokens)
	require.InDelta(t, 0.7, cfg.Chat.Temperature, 0.0001)
	require.Equal(t, 5*time.Minute, cfg.Content.StaleAfter)
	require.Equal(t, 1, cfg.Content.Retries)
	require.Equal(t, []string{"Software Developer", "Big Data Engineer"}, cfg.Owner.Roles)
}

func TestLoadOverlaysYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
api:
  endpoint: https://portfolio.example.com
  timeout: 3s
chat:
  temperature: 0.2
storage:
  driver: memory
owner:
  name: Ada
  roles: [Engineer]
`)

	cfg, err := Load(LoadOptions{Path: path, EnvFile: writeFile(t, dir, ".env", ""), Getenv: noEnv})
	require.NoError(t, err)
	require.Equal(t, "https://portfolio.example.com", cfg.API.Endpoint)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.InDelta(t, 0.2, cfg.Chat.Temperature, 0.0001)
	require.Equal(t, 500, cfg.Chat.MaxTokens, "unset keys keep defaults")
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, "Ada", cfg.Owner.Name)
	require.Equal(t, []string{"Engineer"}, cfg.Owner.Roles)
}

func TestLoadMissingOptionalFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(LoadOptions{
		EnvFile: writeFile(t, t.TempDir(), ".env", ""),
		Getenv:  envMap(map[string]string{EnvStorage: "memory"}),
	})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.API.Endpoint)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "nope.yaml"), Getenv: noEnv})
	var parseErr *folioerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadReportsYAMLLine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "api:\n  endpoint: http://x\n  timeout: [oops\n")

	_, err := Load(LoadOptions{Path: path, Getenv: noEnv})
	var parseErr *folioerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, path, parseErr.Path)
	require.Greater(t, parseErr.Line, 0)
}

func TestEnvironmentOverridesDotenvAndFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "api:\n  endpoint: http://from-file\n")
	envFile := writeFile(t, dir, ".env", "GROQ_API_KEY=from-dotenv\nFOLIO_API_ENDPOINT=http://from-dotenv\nFOLIO_LOG_LEVEL=debug\n")

	cfg, err := Load(LoadOptions{
		Path:    path,
		EnvFile: envFile,
		Getenv: envMap(map[string]string{
			EnvAPIEndpoint: "http://from-env",
			EnvStorage:     "memory",
			EnvAPITimeout:  "15",
		}),
	})
	require.NoError(t, err)
	require.Equal(t, "http://from-env", cfg.API.Endpoint)
	require.Equal(t, "from-dotenv", cfg.Chat.APIKey)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestInvalidEnvDuration(t *testing.T) {
	t.Parallel()

	_, err := Load(LoadOptions{
		EnvFile: writeFile(t, t.TempDir(), ".env", ""),
		Getenv:  envMap(map[string]string{EnvAPITimeout: "soon"}),
	})
	var ve *folioerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "api.timeout", ve.Field)
}

func TestValidateReportsYAMLFieldNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"endpoint", func(c *Config) { c.API.Endpoint = "not a url" }, "api.endpoint"},
		{"max tokens", func(c *Config) { c.Chat.MaxTokens = 0 }, "chat.max_tokens"},
		{"temperature", func(c *Config) { c.Chat.Temperature = 3 }, "chat.temperature"},
		{"driver", func(c *Config) { c.Storage.Driver = "redis" }, "storage.driver"},
		{"path", func(c *Config) { c.Storage.Path = "" }, "storage.path"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"owner email", func(c *Config) { c.Owner.Email = "nope" }, "owner.email"},
		{"roles", func(c *Config) { c.Owner.Roles = nil }, "owner.roles"},
		{"devserver addr", func(c *Config) { c.DevServer.Addr = "" }, "devserver.addr"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)

			var ve *folioerrors.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestMemoryDriverNeedsNoPath(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Storage = StorageConfig{Driver: "memory"}
	require.NoError(t, Validate(cfg))
}

func TestOwnerPortfolio(t *testing.T) {
	t.Parallel()

	owner := Default().Owner.Portfolio()
	require.Equal(t, "Raj Shekhar", owner.DisplayName())
	require.Len(t, owner.Roles, 2)
}

func TestExtractLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, 7, extractLine(errString("yaml: line 7: did not find expected key")))
	require.Equal(t, 0, extractLine(errString("no line info")))
	require.Equal(t, 0, extractLine(nil))
}

type errString string

func (e errString) Error() string { return string(e) }

func TestLoadExpandsHomeInPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
storage:
  driver: file
  path: ~/folio/prefs.json
log:
  file: /var/log/folio.log
`)

	cfg, err := Load(LoadOptions{Path: path, EnvFile: writeFile(t, dir, ".env", ""), Getenv: noEnv})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "folio", "prefs.json"), cfg.Storage.Path)
	require.Equal(t, "/var/log/folio.log", cfg.Log.File)
	require.Equal(t, "relative/path", ExpandHome("relative/path"))
	require.Equal(t, "~user/x", ExpandHome("~user/x"))
}
