package statsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/fplhq/companion/internal/platform/logging"
	"github.com/fplhq/companion/internal/usecase"
)

const maxResponseBytes = 1 << 20

type ownershipRowItem struct {
	Element            int     `json:"element"`
	EffectiveOwnership float64 `json:"effective_ownership"`
	CaptaincyPercent   float64 `json:"captaincy_percent"`
}

type ownershipEnvelope struct {
	Event int                `json:"event"`
	Rows  []ownershipRowItem `json:"rows"`
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client talks to the companion statistics backend. It is a thin JSON
// client; the backend is optional and a failed call degrades the summary
// rather than breaking it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:     logger,
	}
}

// FetchOwnership loads effective-ownership and captaincy aggregates for one
// gameweek.
func (c *Client) FetchOwnership(ctx context.Context, event int) ([]usecase.OwnershipRow, error) {
	if event <= 0 {
		return nil, fmt.Errorf("%w: event must be greater than zero", usecase.ErrInvalidInput)
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: stats backend is not configured", usecase.ErrDependencyUnavailable)
	}

	fullURL := fmt.Sprintf("%s/v1/events/%d/ownership", c.baseURL, event)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, fmt.Errorf("%w: stats backend status=503", usecase.ErrServiceUpdating)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("stats backend status=%d", resp.StatusCode)
	}

	var envelope ownershipEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode stats payload: %w", err)
	}

	rows := make([]usecase.OwnershipRow, 0, len(envelope.Rows))
	for _, item := range envelope.Rows {
		rows = append(rows, usecase.OwnershipRow{
			Element:            item.Element,
			EffectiveOwnership: item.EffectiveOwnership,
			CaptaincyPercent:   item.CaptaincyPercent,
		})
	}
	return rows, nil
}
