// Package kit talks to the Kit (ConvertKit) v4 API to mirror newsletter
// subscribers and their tags.
package kit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

const (
	DefaultBaseURL = "https://api.kit.com"
	apiKeyHeader   = "X-Kit-Api-Key"
	maxBackoff     = 10 * time.Second
)

type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

type Client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	backoff    time.Duration
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing KIT_API_KEY")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Client{
		log:        log.With("client", "KitClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		backoff:    500 * time.Millisecond,
	}, nil
}

type subscriberRequest struct {
	EmailAddress string            `json:"email_address"`
	State        string            `json:"state"`
	Fields       map[string]string `json:"fields,omitempty"`
}

type tagRequest struct {
	Name string `json:"name"`
}

type tagResponse struct {
	Tag struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"tag"`
}

type tagSubscriberRequest struct {
	EmailAddress string `json:"email_address"`
}

// SyncSubscriber upserts the subscriber, then creates and attaches each tag.
// An existing subscriber (409) counts as success. A failing tag is logged and
// the remaining tags are still attempted.
func (c *Client) SyncSubscriber(ctx context.Context, subscriber *domain.EmailSubscriber) error {
	if subscriber == nil {
		return fmt.Errorf("kit: subscriber required")
	}

	if err := c.UpsertSubscriber(ctx, subscriber); err != nil {
		return err
	}

	for _, tag := range subscriber.Tags() {
		if err := c.tag(ctx, tag, subscriber.Email); err != nil {
			c.log.Warn("Kit tagging failed", "tag", tag, "email", subscriber.Email, "error", err.Error())
		}
	}
	return nil
}

func (c *Client) UpsertSubscriber(ctx context.Context, subscriber *domain.EmailSubscriber) error {
	body := subscriberRequest{
		EmailAddress: subscriber.Email,
		State:        "active",
		Fields: map[string]string{
			"consented_at": subscriber.ConsentedAt.UTC().Format(time.RFC3339Nano),
			"source":       subscriber.Source,
		},
	}

	_, err := c.do(ctx, http.MethodPost, "/v4/subscribers", body)
	var he *HTTPError
	if errors.As(err, &he) && he.StatusCode == http.StatusConflict {
		return nil
	}
	if err != nil {
		return fmt.Errorf("kit: upsert subscriber: %w", err)
	}
	return nil
}

// EnsureTag creates the tag (Kit returns the existing one for a known name)
// and returns its id.
func (c *Client) EnsureTag(ctx context.Context, name string) (int64, error) {
	raw, err := c.do(ctx, http.MethodPost, "/v4/tags", tagRequest{Name: name})
	if err != nil {
		return 0, fmt.Errorf("kit: create tag %q: %w", name, err)
	}

	var resp tagResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Tag.ID == 0 {
		return 0, fmt.Errorf("kit: create tag %q: missing tag.id in response: %s", name, truncate(string(raw)))
	}
	return resp.Tag.ID, nil
}

func (c *Client) AddSubscriberToTag(ctx context.Context, tagID int64, email string) error {
	path := "/v4/tags/" + strconv.FormatInt(tagID, 10) + "/subscribers"
	if _, err := c.do(ctx, http.MethodPost, path, tagSubscriberRequest{EmailAddress: email}); err != nil {
		return fmt.Errorf("kit: attach tag %d: %w", tagID, err)
	}
	return nil
}

func (c *Client) tag(ctx context.Context, name, email string) error {
	id, err := c.EnsureTag(ctx, name)
	if err != nil {
		return err
	}
	return c.AddSubscriberToTag(ctx, id, email)
}

type HTTPError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	return fmt.Sprintf("kit http %d: %s", e.StatusCode, truncate(msg))
}

func (e *HTTPError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	backoff := c.backoff

	for attempt := 0; ; attempt++ {
		raw, err := c.doOnce(ctx, method, path, body)
		if err == nil {
			return raw, nil
		}
		if attempt >= c.cfg.MaxRetries || !isRetryable(err) {
			return nil, err
		}

		wait := backoff
		var he *HTTPError
		if errors.As(err, &he) && he.RetryAfter > 0 {
			wait = he.RetryAfter
		}
		wait = min(wait, maxBackoff)
		wait += time.Duration(rand.Int63n(int64(wait)/4 + 1))

		c.log.Warn("Kit request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.cfg.MaxRetries,
			"sleep", wait.String(),
			"error", err.Error(),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
		if secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After"))); err == nil && secs > 0 {
			he.RetryAfter = time.Duration(secs) * time.Second
		}
		return nil, he
	}
	return raw, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.retryable()
	}
	// Transport-level failure.
	return true
}

func truncate(s string) string {
	const limit = 2000
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
