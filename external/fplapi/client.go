package fplapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/logging"
	"github.com/fplhq/companion/internal/platform/resilience"
	"github.com/fplhq/companion/internal/usecase"
)

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "fpl-companion/1.0"
	maxResponseBytes = 6 << 20
)

var errFPLTransient = crerr.New("fpl transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerSettings
}

// Client is a read-only client for the public FPL API. Requests run through
// a circuit breaker and a per-URL singleflight; transient upstream failures
// retry with linearly growing backoff.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	settings := resilience.NormalizeBreakerSettings(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(settings.MaxFailures, settings.Cooldown, settings.MaxProbes),
		circuitEnabled: settings.Enabled,
	}
}

// FetchBootstrap loads the full element/team/gameweek catalogue.
func (c *Client) FetchBootstrap(ctx context.Context) (usecase.Bootstrap, error) {
	var envelope bootstrapEnvelope
	if err := c.doJSON(ctx, "/bootstrap-static/", &envelope); err != nil {
		return usecase.Bootstrap{}, fmt.Errorf("fetch bootstrap: %w", err)
	}
	return mapBootstrap(envelope), nil
}

// FetchFixtures loads the fixtures of one gameweek, or the full season list
// when event is zero.
func (c *Client) FetchFixtures(ctx context.Context, event int) ([]fixture.Fixture, error) {
	path := "/fixtures/"
	if event > 0 {
		path = fmt.Sprintf("/fixtures/?event=%d", event)
	}

	var items []fixtureItem
	if err := c.doJSON(ctx, path, &items); err != nil {
		return nil, fmt.Errorf("fetch fixtures event=%d: %w", event, err)
	}
	return mapFixtures(items), nil
}

// FetchEventLive loads per-element live stats for one gameweek.
func (c *Client) FetchEventLive(ctx context.Context, event int) (map[int]scoring.LiveStat, error) {
	if event <= 0 {
		return nil, fmt.Errorf("%w: event must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope liveEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/event/%d/live/", event), &envelope); err != nil {
		return nil, fmt.Errorf("fetch live event=%d: %w", event, err)
	}
	return mapLive(envelope), nil
}

// FetchEntryPicks loads one manager's picks for one gameweek.
func (c *Client) FetchEntryPicks(ctx context.Context, entryID, event int) (entry.PicksSnapshot, error) {
	if entryID <= 0 || event <= 0 {
		return entry.PicksSnapshot{}, fmt.Errorf("%w: entry id and event must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope picksEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, event), &envelope); err != nil {
		return entry.PicksSnapshot{}, fmt.Errorf("fetch picks entry=%d event=%d: %w", entryID, event, err)
	}
	return mapPicks(entryID, event, envelope), nil
}

// FetchEntryHistory loads one manager's season-to-date history.
func (c *Client) FetchEntryHistory(ctx context.Context, entryID int) (entry.History, error) {
	if entryID <= 0 {
		return entry.History{}, fmt.Errorf("%w: entry id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope historyEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/history/", entryID), &envelope); err != nil {
		return entry.History{}, fmt.Errorf("fetch history entry=%d: %w", entryID, err)
	}
	return mapHistory(entryID, envelope), nil
}

// FetchRaw returns the raw body of a GET against the FPL API, for the proxy
// surface. The path keeps its query string.
func (c *Client) FetchRaw(ctx context.Context, path string) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	raw, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	raw, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode fpl payload: %w", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: fpl api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFPLTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusServiceUnavailable:
				// The game flips to 503 while points are recalculated.
				return nil, fmt.Errorf("%w: fpl api status=503", usecase.ErrServiceUpdating)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: fpl api status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("fpl api status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("fpl request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	// The recalculation window is expected behavior; it must not trip the
	// breaker the way genuine upstream failures do.
	if crerr.Is(err, usecase.ErrServiceUpdating) {
		return false
	}
	return crerr.Is(err, errFPLTransient)
}

func abbreviateBody(raw []byte) string {
	const limit = 200
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
