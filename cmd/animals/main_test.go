package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/animals-site/internal/app"
	"github.com/heartmarshall/animals-site/internal/config"
	"github.com/heartmarshall/animals-site/internal/site"
	"github.com/heartmarshall/animals-site/internal/transport/middleware"
)

const testKeyEnv = "ANIMALS_CLI_TEST_KEY"

// upstream fakes the animals API and records the queried names.
type upstream struct {
	srv   *httptest.Server
	calls atomic.Int32

	mu    sync.Mutex
	names []string
}

func (u *upstream) queried() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.names...)
}

func newUpstream(t *testing.T, body string) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		u.mu.Lock()
		u.names = append(u.names, r.URL.Query().Get("name"))
		u.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

// setupCLI isolates config loading: an empty working directory, the API
// pointed at u and a template file. It returns the template and output paths.
func setupCLI(t *testing.T, u *upstream) (string, string) {
	t.Helper()

	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	require.NoError(t, os.Chdir(dir))

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ANIMALS_API_BASE_URL", u.srv.URL+"/v1/animals")
	t.Setenv("ANIMALS_API_KEY_ENV", testKeyEnv)
	t.Setenv(testKeyEnv, "secret")
	t.Setenv("LOG_LEVEL", "error")

	tmpl := filepath.Join(dir, "animals_template.html")
	require.NoError(t, os.WriteFile(tmpl, []byte(site.DefaultTemplate()), 0o644))
	return tmpl, filepath.Join(dir, "public", "animals.html")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerate_WithNameFlag(t *testing.T) {
	u := newUpstream(t, `[{"name": "Red Fox", "locations": ["Europe"]}]`)
	tmpl, output := setupCLI(t, u)

	stdout, err := execute(t, "", "generate", "--name", "fox", "--template", tmpl, "--output", output)
	require.NoError(t, err)

	assert.Equal(t, "Website was successfully generated to the file "+output+".\n", stdout)
	assert.Equal(t, []string{"fox"}, u.queried())

	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), `<h2 class="card__title">Red Fox</h2>`)
	assert.NotContains(t, string(page), site.Placeholder)
}

func TestGenerate_PromptsWithoutNameFlag(t *testing.T) {
	u := newUpstream(t, `[]`)
	tmpl, output := setupCLI(t, u)

	stdout, err := execute(t, "  Okapi \n", "generate", "-t", tmpl, "-o", output)
	require.NoError(t, err)

	assert.Equal(t,
		`Enter a name of an animal (default: "Fox"): `+
			"Website was successfully generated to the file "+output+".\n",
		stdout)
	assert.Equal(t, []string{"Okapi"}, u.queried())

	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), `The animal "Okapi" doesn't exist.`)
}

func TestGenerate_EmptyPromptUsesDefault(t *testing.T) {
	u := newUpstream(t, `[]`)
	tmpl, output := setupCLI(t, u)
	t.Setenv("SITE_DEFAULT_ANIMAL", "Heron")

	_, err := execute(t, "\n", "generate", "-t", tmpl, "-o", output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Heron"}, u.queried())
}

func TestGenerate_MissingCredentialStillWritesPage(t *testing.T) {
	u := newUpstream(t, `[]`)
	tmpl, output := setupCLI(t, u)
	require.NoError(t, os.Unsetenv(testKeyEnv))

	stdout, err := execute(t, "", "generate", "--name", "fox", "-t", tmpl, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Website was successfully generated")
	assert.Equal(t, int32(0), u.calls.Load())

	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Configuration error: missing credential.")
}

func TestGenerate_TemplateWithoutPlaceholderFails(t *testing.T) {
	u := newUpstream(t, `[]`)
	tmpl, output := setupCLI(t, u)
	require.NoError(t, os.WriteFile(tmpl, []byte("<html></html>"), 0o644))

	stdout, err := execute(t, "", "generate", "--name", "fox", "-t", tmpl, "-o", output)
	require.ErrorIs(t, err, site.ErrPlaceholderMissing)
	assert.NotContains(t, stdout, "successfully")

	_, statErr := os.Stat(output)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestGenerate_EmptyOutputRejected(t *testing.T) {
	u := newUpstream(t, `[]`)
	tmpl, _ := setupCLI(t, u)

	_, err := execute(t, "", "generate", "--name", "fox", "-t", tmpl, "--output", "")
	require.Error(t, err)
	assert.Equal(t, int32(0), u.calls.Load())
}

func TestVersion(t *testing.T) {
	stdout, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, app.BuildVersion()+"\n", stdout)
}

func TestServe_PagesAndGracefulShutdown(t *testing.T) {
	u := newUpstream(t, `[{"name": "Snow Leopard"}]`)
	t.Setenv(testKeyEnv, "secret")

	cfg := config.Config{
		API:       config.APIConfig{BaseURL: u.srv.URL + "/v1/animals", KeyEnv: testKeyEnv, Timeout: 5 * time.Second},
		Site:      config.SiteConfig{DefaultAnimal: "Fox", OutputPath: "unused.html"},
		Server:    config.ServerConfig{ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second, IdleTimeout: 5 * time.Second, ShutdownTimeout: 5 * time.Second},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 100, CleanupInterval: time.Minute},
	}
	a := app.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, a, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	base := "http://" + ln.Addr().String()

	resp, err := client.Get(base + "/animals?name=snow+leopard")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	_, err = uuid.Parse(resp.Header.Get(middleware.RequestIDHeader))
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Snow Leopard")
	assert.Equal(t, []string{"snow leopard"}, u.queried())

	resp, err = client.Get(base + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewHandler_RateLimited(t *testing.T) {
	u := newUpstream(t, `[]`)
	t.Setenv(testKeyEnv, "secret")

	cfg := config.Config{
		API:       config.APIConfig{BaseURL: u.srv.URL, KeyEnv: testKeyEnv, Timeout: 5 * time.Second},
		Site:      config.SiteConfig{DefaultAnimal: "Fox"},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 1, CleanupInterval: time.Minute},
	}
	a := app.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer rl.Stop()
	h := newHandler(a, rl)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals?name=fox", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals?name=fox", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, int32(1), u.calls.Load(), "rejected requests must not reach the API")
}
