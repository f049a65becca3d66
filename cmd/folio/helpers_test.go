package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rajshekhar/folio/internal/infrastructure/devserver"
	"github.com/rajshekhar/folio/internal/infrastructure/logging"
)

const completionBody = `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Raj builds streaming data platforms."},"finish_reason":"stop"}]}`

type completionRequest struct {
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// cliEnv runs commands against an in-process portfolio backend and a fake
// completion endpoint.
type cliEnv struct {
	t          *testing.T
	backend    *devserver.Server
	api        *httptest.Server
	dir        string
	configPath string
	envFile    string
	env        map[string]string

	mu       sync.Mutex
	requests []completionRequest
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	e := &cliEnv{t: t, dir: t.TempDir(), env: map[string]string{}}
	e.backend = devserver.New(devserver.DefaultFixtures(), logging.NewNoOpLogger())
	e.api = httptest.NewServer(e.backend.Handler())
	t.Cleanup(e.api.Close)

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		e.mu.Lock()
		e.requests = append(e.requests, req)
		e.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	}))
	t.Cleanup(llm.Close)

	e.configPath = e.write("config.yaml", fmt.Sprintf(`
api:
  endpoint: %s
  timeout: 5s
chat:
  base_url: %s
content:
  retries: 0
storage:
  driver: file
  path: %s
log:
  level: info
  file: ""
`, e.api.URL, llm.URL, filepath.Join(e.dir, "state", "folio.db")))
	e.envFile = e.write(".env", "")
	return e
}

func (e *cliEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e *cliEnv) getenv(key string) string { return e.env[key] }

func (e *cliEnv) completions() []completionRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]completionRequest(nil), e.requests...)
}

// run executes args and returns stdout and stderr.
func (e *cliEnv) run(args ...string) (string, string, error) {
	e.t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := e.execute(context.Background(), stdout, stderr, args...)
	return stdout.String(), stderr.String(), err
}

func (e *cliEnv) execute(ctx context.Context, stdout, stderr io.Writer, args ...string) error {
	app := &AppContext{Getenv: e.getenv}
	root := newRootCmd(app)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(append([]string{"--config=" + e.configPath, "--env-file=" + e.envFile}, args...))

	err := root.ExecuteContext(ctx)
	if closeErr := app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// syncBuffer is a bytes.Buffer safe to read while a command writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
