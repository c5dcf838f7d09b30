package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"postwatch/internal/pkg/circuitbreaker"
	"postwatch/internal/pkg/config"
	"postwatch/internal/pkg/logger"
	"postwatch/internal/pkg/metrics"
	"postwatch/internal/pkg/models"
)

// Reported when the upstream posts API cannot be reached or answers with a
// non-2xx status. Anything else bubbling out of a request is unexpected.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch posts: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTP client for the JSONPlaceholder posts API. Each fetch is a single
// attempt bounded by the configured timeout; there is no retrying and no
// caching. Outbound calls pass through a rate limiter and a circuit breaker
// so a misbehaving upstream fails fast instead of piling up requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
}

// Creates a new Client from config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.UpstreamURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeout) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		breaker: circuitbreaker.NewCircuitBreaker(
			"posts-api",
			cfg.CBFailureThreshold,
			time.Duration(cfg.CBResetTimeout)*time.Second,
		),
	}
}

// Fetches all posts, truncated client-side to limit when limit > 0.
func (c *Client) Posts(ctx context.Context, limit int) ([]models.Post, error) {
	posts, err := c.fetch(ctx, nil)
	if err != nil {
		return nil, err
	}

	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}

	logger.Log.Info("Fetched posts from upstream", zap.Int("count", len(posts)))
	return posts, nil
}

// Fetches the posts of a single user, filtered server-side by the upstream.
func (c *Client) PostsByUser(ctx context.Context, userID int) ([]models.Post, error) {
	params := url.Values{"userId": []string{strconv.Itoa(userID)}}
	posts, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Fetched posts for user",
		zap.Int("user_id", userID),
		zap.Int("count", len(posts)))
	return posts, nil
}

func (c *Client) fetch(ctx context.Context, params url.Values) ([]models.Post, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Err: err}
	}

	var posts []models.Post
	err := c.breaker.Execute(func() error {
		endpoint := c.baseURL + "/posts"
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		start := time.Now()
		metrics.UpstreamRequests.Inc()

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.UpstreamErrors.Inc()
			return err
		}
		defer resp.Body.Close()

		metrics.UpstreamLatency.Observe(time.Since(start).Seconds())

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			metrics.UpstreamErrors.Inc()
			return fmt.Errorf("upstream returned status %d", resp.StatusCode)
		}

		return json.NewDecoder(resp.Body).Decode(&posts)
	})
	if err != nil {
		logger.Log.Error("Upstream fetch failed", zap.Error(err))
		return nil, &FetchError{Err: err}
	}

	return posts, nil
}
