package ninjas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/animals-site/internal/config"
	"github.com/heartmarshall/animals-site/internal/domain"
	"github.com/heartmarshall/animals-site/pkg/ctxutil"
)

// apiKeyHeader carries the API Ninjas credential.
const apiKeyHeader = "X-Api-Key"

// maxBodyBytes caps the response body read into memory.
const maxBodyBytes = 1 << 20

// Provider fetches animal records from the API Ninjas animals endpoint.
// It holds no per-call state and is safe for concurrent use.
type Provider struct {
	baseURL    string
	keyEnv     string
	httpClient *http.Client
	lookupEnv  func(string) (string, bool)
	log        *slog.Logger
}

// NewProvider creates a Provider from the API config.
// The credential is read from the environment variable cfg.KeyEnv on every call.
func NewProvider(cfg config.APIConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.BaseURL,
		keyEnv:     cfg.KeyEnv,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		lookupEnv:  os.LookupEnv,
		log:        logger.With("adapter", "ninjas"),
	}
}

// CredentialConfigured reports whether the credential variable is set and non-empty.
func (p *Provider) CredentialConfigured() bool {
	_, ok := p.credential()
	return ok
}

// FetchAnimals returns the animals matching name.
// An empty slice means the species was not found and is not an error.
// Failures are returned as *domain.FetchError; there are no retries.
func (p *Provider) FetchAnimals(ctx context.Context, name string) ([]domain.Animal, error) {
	apiKey, ok := p.credential()
	if !ok {
		p.log.ErrorContext(ctx, "ninjas credential missing", slog.String("env", p.keyEnv))
		return nil, domain.NewFetchError(domain.KindConfig, "missing credential", nil)
	}

	reqURL, err := p.requestURL(name)
	if err != nil {
		return nil, domain.NewFetchError(domain.KindConfig, "invalid base url", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewFetchError(domain.KindConfig, "create request", err)
	}
	req.Header.Set(apiKeyHeader, apiKey)
	req.Header.Set("Accept", "application/json")

	p.log.DebugContext(ctx, "ninjas request",
		slog.String("name", name),
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
	)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		fetchErr := classifyTransportError("request failed", err)
		p.log.ErrorContext(ctx, "ninjas request failed",
			slog.String("name", name),
			slog.String("kind", string(fetchErr.Kind)),
			slog.String("error", err.Error()),
		)
		return nil, fetchErr
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		p.log.WarnContext(ctx, "ninjas unexpected status",
			slog.String("name", name),
			slog.Int("status", resp.StatusCode),
		)
		return nil, domain.NewFetchError(domain.KindHTTPStatus, strconv.Itoa(resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, classifyTransportError("read body", err)
	}
	if len(body) > maxBodyBytes {
		p.log.WarnContext(ctx, "ninjas response too large",
			slog.String("name", name),
			slog.Int("limit", maxBodyBytes),
		)
		return nil, domain.NewFetchError(domain.KindDecode, "response body too large", nil)
	}

	animals, err := decodeAnimals(body)
	if err != nil {
		p.log.WarnContext(ctx, "ninjas bad response body",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	p.log.DebugContext(ctx, "ninjas response",
		slog.String("name", name),
		slog.Int("status", resp.StatusCode),
		slog.Int("animals", len(animals)),
	)

	return animals, nil
}

func (p *Provider) credential() (string, bool) {
	v, ok := p.lookupEnv(p.keyEnv)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// requestURL appends name=<name> to the base URL, keeping any existing query.
func (p *Provider) requestURL(name string) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeAnimals parses the body as a JSON array of animal records.
// Elements are not validated; each one goes through domain.AnimalFromJSON.
func decodeAnimals(body []byte) ([]domain.Animal, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, domain.NewFetchError(domain.KindDecode, "invalid response body", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, domain.NewFetchError(domain.KindDecode, "invalid response body", fmt.Errorf("trailing data after JSON value"))
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, domain.NewFetchError(domain.KindShape, "unexpected response format", nil)
	}

	animals := make([]domain.Animal, 0, len(items))
	for _, item := range items {
		animals = append(animals, domain.AnimalFromJSON(item))
	}
	return animals, nil
}

// classifyTransportError maps client and body-read errors to Timeout or Network.
func classifyTransportError(message string, err error) *domain.FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewFetchError(domain.KindTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewFetchError(domain.KindTimeout, "request timed out", err)
	}
	return domain.NewFetchError(domain.KindNetwork, message, err)
}
