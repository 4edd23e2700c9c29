package cfbd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"cfb-catalog/internal/platform/logging"
	"cfb-catalog/internal/platform/resilience"
	"cfb-catalog/internal/usecase"
)

const (
	defaultBaseURL  = "https://api.collegefootballdata.com"
	defaultTimeout  = 20 * time.Second
	defaultMaxPages = 200
	pageCapCeiling  = 500
	maxBodyBytes    = 8 << 20
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	MaxPages       int
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client walks the provider's paginated endpoints strictly serially,
// one page at a time, with no retries. Everything that goes wrong is
// reported as a problem string in the fetch result; the client never
// returns a Go error and keeps whatever pages it already fetched.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxPages       int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
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
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxPages := cfg.MaxPages
	if maxPages == 0 {
		maxPages = defaultMaxPages
	}
	if maxPages < 1 {
		maxPages = 1
	}
	if maxPages > pageCapCeiling {
		maxPages = pageCapCeiling
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxPages:       maxPages,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchPlayers walks /players page by page until an empty page, the
// page cap, or the first problem. Elements without a usable id are
// skipped with a problem note instead of aborting the page.
func (c *Client) FetchPlayers(ctx context.Context, season int) usecase.PlayerFetchResult {
	var result usecase.PlayerFetchResult

	for page := 1; page <= c.maxPages; page++ {
		label := fmt.Sprintf("players page %d", page)
		query := url.Values{}
		query.Set("year", strconv.Itoa(season))
		query.Set("page", strconv.Itoa(page))

		items, problem, ok := c.fetchArray(ctx, "/players", label, query, &result.APICalls)
		if !ok {
			result.Problems = append(result.Problems, problem)
			break
		}
		if len(items) == 0 {
			break
		}

		for idx, item := range items {
			obj, isObject := item.(map[string]any)
			if !isObject {
				result.Problems = append(result.Problems, fmt.Sprintf("%s item %d: skipped: not an object", label, idx))
				continue
			}
			rec := normalizePlayer(obj)
			if rec.ID == "" {
				result.Problems = append(result.Problems, fmt.Sprintf("%s item %d: skipped: missing id", label, idx))
				continue
			}
			result.Records = append(result.Records, rec)
		}
	}

	return result
}

// FetchTeams pulls the season's team list in a single request.
func (c *Client) FetchTeams(ctx context.Context, season int) usecase.TeamFetchResult {
	var result usecase.TeamFetchResult

	query := url.Values{}
	query.Set("year", strconv.Itoa(season))

	items, problem, ok := c.fetchArray(ctx, "/teams", "teams", query, &result.APICalls)
	if !ok {
		result.Problems = append(result.Problems, problem)
		return result
	}

	for idx, item := range items {
		obj, isObject := item.(map[string]any)
		if !isObject {
			result.Problems = append(result.Problems, fmt.Sprintf("teams item %d: skipped: not an object", idx))
			continue
		}
		rec := normalizeTeam(obj)
		if rec.School == "" {
			result.Problems = append(result.Problems, fmt.Sprintf("teams item %d: skipped: missing school", idx))
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result
}

// fetchArray runs one request and expects a JSON array back. ok=false
// means the walk must stop; the problem string classifies why. The
// call counter is incremented for every attempted request before its
// outcome is known.
func (c *Client) fetchArray(ctx context.Context, endpoint, label string, query url.Values, calls *int) ([]any, string, bool) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return nil, fmt.Sprintf("%s: network: provider circuit is open", label), false
		}
	}

	fullURL := c.baseURL + endpoint
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	*calls++
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Sprintf("%s: network: build request: %v", label, err), false
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		problem := fmt.Sprintf("%s: network: %s", label, sanitizeSensitiveText(err.Error(), c.apiKey))
		c.logger.WarnContext(ctx, "cfbd request failed", "url", fullURL, "error", problem)
		return nil, problem, false
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		c.recordFailure()
		return nil, fmt.Sprintf("%s: network: read response body: %v", label, readErr), false
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.recordFailure()
		return nil, fmt.Sprintf("%s: auth: provider rejected credentials (status %d)", label, resp.StatusCode), false
	case resp.StatusCode >= 400:
		c.recordFailure()
		return nil, fmt.Sprintf("%s: http: unexpected status %d", label, resp.StatusCode), false
	}
	c.recordSuccess()

	// A literal null decodes into a nil slice without error; it is not
	// an array and must not pass for an empty page.
	var items []any
	if err := sonic.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, fmt.Sprintf("%s: shape: expected a JSON array", label), false
	}

	return items, "", true
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}

	return strings.ReplaceAll(value, apiKey, "REDACTED")
}
