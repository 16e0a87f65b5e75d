// Package helpdesk implements the ticket, metrics and agent provider ports
// against the upstream helpdesk HTTP API. The upstream enforces hard
// per-minute quotas, so every request passes through a shared rate limiter
// and failed requests are retried with exponential backoff; a short-TTL
// cache keeps repeated dashboard loads from refetching identical payloads.
package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/ports"
	"github.com/Asha9112/ticket-dashboard/internal/infrastructure/cache"
	"github.com/Asha9112/ticket-dashboard/internal/infrastructure/logging"
)

// Config holds the upstream connection settings.
type Config struct {
	BaseURL           string
	OrgID             string
	AuthToken         string
	RequestsPerMinute int
	Burst             int
	MaxRetries        int
	PageSize          int
	MetricsLimit      int // upstream caps how many tickets can be enriched
	CacheTTL          time.Duration
	Timeout           time.Duration
}

// Client talks to the upstream helpdesk API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
	logger     *slog.Logger
}

var (
	_ ports.TicketProvider  = (*Client)(nil)
	_ ports.MetricsProvider = (*Client)(nil)
	_ ports.AgentDirectory  = (*Client)(nil)
)

// NewClient creates a client enforcing the upstream's per-minute quota.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.Burst),
		cache:      cache.New(),
		logger:     logger.With("adapter", "helpdesk"),
	}
}

// ActiveTickets fetches the currently-open ticket set, paging until the
// upstream returns a short page. Results are cached for the configured TTL.
func (c *Client) ActiveTickets(ctx context.Context) ([]domain.Ticket, error) {
	value, err := c.cache.GetOrCompute(ctx, "tickets:active", c.cfg.CacheTTL, func(ctx context.Context) (any, error) {
		return c.fetchTicketPages(ctx, "/tickets", domain.ProvenanceActiveClosed)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Ticket), nil
}

// ArchivedTickets fetches the archived/closed ticket set.
func (c *Client) ArchivedTickets(ctx context.Context) ([]domain.Ticket, error) {
	value, err := c.cache.GetOrCompute(ctx, "tickets:archived", c.cfg.CacheTTL, func(ctx context.Context) (any, error) {
		return c.fetchTicketPages(ctx, "/tickets/archived", domain.ProvenanceArchived)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Ticket), nil
}

// TicketMetrics enriches tickets one at a time, up to the configured cap.
// A ticket without a metrics record upstream (404) is skipped, not an
// error; absence contributes zero to every aggregate.
func (c *Client) TicketMetrics(ctx context.Context, ticketNumbers []string) ([]domain.TicketMetrics, error) {
	limit := c.cfg.MetricsLimit
	if limit <= 0 || limit > len(ticketNumbers) {
		limit = len(ticketNumbers)
	}

	metrics := make([]domain.TicketMetrics, 0, limit)
	for _, number := range ticketNumbers[:limit] {
		body, status, err := c.get(ctx, "/tickets/"+url.PathEscape(number)+"/metrics", nil)
		if err != nil {
			return nil, err
		}
		if status == http.StatusNotFound {
			continue
		}

		var dto metricsDTO
		if err := json.Unmarshal(body, &dto); err != nil {
			return nil, fmt.Errorf("decode metrics for ticket %s: %w", number, err)
		}
		if dto.TicketNumber == "" {
			dto.TicketNumber = number
		}
		metrics = append(metrics, dto.toDomain())
	}

	logging.LoggerFromContext(ctx, c.logger).Debug("ticket metrics fetched", "requested", len(ticketNumbers), "enriched", len(metrics))
	return metrics, nil
}

// AgentNames fetches the agent directory keyed by assignee ID.
func (c *Client) AgentNames(ctx context.Context) (map[string]string, error) {
	value, err := c.cache.GetOrCompute(ctx, "agents", c.cfg.CacheTTL, func(ctx context.Context) (any, error) {
		body, _, err := c.get(ctx, "/agents", nil)
		if err != nil {
			return nil, err
		}

		var dto agentListDTO
		if err := json.Unmarshal(body, &dto); err != nil {
			return nil, fmt.Errorf("decode agents: %w", err)
		}

		names := make(map[string]string, len(dto.Data))
		for _, agent := range dto.Data {
			if agent.ID != "" && agent.Name != "" {
				names[agent.ID] = agent.Name
			}
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(map[string]string), nil
}

// Ping checks upstream reachability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.get(ctx, "/agents", url.Values{"limit": {"1"}})
	return err
}

func (c *Client) fetchTicketPages(ctx context.Context, path string, provenance domain.Provenance) ([]domain.Ticket, error) {
	var tickets []domain.Ticket

	for from := 0; ; from += c.cfg.PageSize {
		query := url.Values{
			"from":  {strconv.Itoa(from)},
			"limit": {strconv.Itoa(c.cfg.PageSize)},
		}

		body, status, err := c.get(ctx, path, query)
		if err != nil {
			return nil, err
		}
		// Some helpdesk deployments 404 on the page past the last instead of
		// returning an empty list; treat it as the end of the collection.
		if status == http.StatusNotFound {
			break
		}

		var page ticketListDTO
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode ticket page from %s: %w", path, err)
		}

		for _, dto := range page.Data {
			tickets = append(tickets, dto.toDomain(provenance))
		}

		if len(page.Data) < c.cfg.PageSize {
			break
		}
	}

	logging.LoggerFromContext(ctx, c.logger).Debug("ticket pages fetched", "path", path, "count", len(tickets))
	return tickets, nil
}

// get performs one rate-limited GET with exponential-backoff retries on
// 429 and 5xx responses. 404 is returned to the caller (some resources are
// legitimately absent); other 4xx responses fail immediately since
// retrying cannot fix them.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body []byte
	var status int

	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
		if c.cfg.OrgID != "" {
			req.Header.Set("X-Org-ID", c.cfg.OrgID)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		switch {
		case status == http.StatusOK:
			body, err = io.ReadAll(resp.Body)
			return err
		case status == http.StatusNotFound:
			body = nil
			return nil
		case status == http.StatusTooManyRequests || status >= 500:
			c.logger.Warn("upstream request retryable", "path", path, "status", status)
			return fmt.Errorf("upstream returned %d for %s", status, path)
		default:
			return backoff.Permanent(fmt.Errorf("upstream returned %d for %s", status, path))
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, status, err
	}
	return body, status, nil
}
