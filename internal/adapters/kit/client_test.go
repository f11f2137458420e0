package kit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

type recordedCall struct {
	Method string
	Path   string
	APIKey string
	Body   map[string]any
}

type fakeKit struct {
	mu       sync.Mutex
	calls    []recordedCall
	handlers map[string]http.HandlerFunc
}

func (f *fakeKit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Method: r.Method, Path: r.URL.Path, APIKey: r.Header.Get(apiKeyHeader), Body: body})
	h, ok := f.handlers[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
		return
	}
	h(w, r)
}

func (f *fakeKit) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Path)
	}
	return out
}

func tagHandler(ids map[string]int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"tag": map[string]any{"id": ids["next"], "name": "x"}})
	}
}

func newTestClient(t *testing.T, srv *httptest.Server, retries int) *Client {
	t.Helper()
	c, err := New(logger.Nop(), Config{APIKey: "kit-test-key", BaseURL: srv.URL + "/", MaxRetries: retries, Timeout: 2 * time.Second})
	require.NoError(t, err)
	c.backoff = time.Millisecond
	return c
}

func testSubscriber(t *testing.T) *domain.EmailSubscriber {
	t.Helper()
	sub, err := domain.NewEmailSubscriber("fan@example.com", true, "home_hero", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return sub
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, Config{APIKey: "k"})
	assert.Error(t, err)

	_, err = New(logger.Nop(), Config{})
	assert.ErrorContains(t, err, "KIT_API_KEY")

	c, err := New(logger.Nop(), Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
}

func TestSyncSubscriber_HappyPath(t *testing.T) {
	fake := &fakeKit{handlers: map[string]http.HandlerFunc{
		"/v4/subscribers": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) },
		"/v4/tags":        tagHandler(map[string]int64{"next": 42}),
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := newTestClient(t, srv, 0)

	require.NoError(t, client.SyncSubscriber(context.Background(), testSubscriber(t)))

	assert.Equal(t, []string{
		"/v4/subscribers",
		"/v4/tags", "/v4/tags/42/subscribers",
		"/v4/tags", "/v4/tags/42/subscribers",
	}, fake.paths())

	fake.mu.Lock()
	defer fake.mu.Unlock()
	first := fake.calls[0]
	assert.Equal(t, "kit-test-key", first.APIKey)
	assert.Equal(t, "fan@example.com", first.Body["email_address"])
	assert.Equal(t, "active", first.Body["state"])
	fields := first.Body["fields"].(map[string]any)
	assert.Equal(t, "home_hero", fields["source"])
	assert.Equal(t, "2024-05-01T09:00:00Z", fields["consented_at"])
	assert.Equal(t, domain.MarketingListTag, fake.calls[1].Body["name"])
	assert.Equal(t, "source_home_hero", fake.calls[3].Body["name"])
	assert.Equal(t, "fan@example.com", fake.calls[2].Body["email_address"])
}

func TestSyncSubscriber_ConflictIsSuccess(t *testing.T) {
	fake := &fakeKit{handlers: map[string]http.HandlerFunc{
		"/v4/subscribers": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"errors":["already exists"]}`, http.StatusConflict)
		},
		"/v4/tags": tagHandler(map[string]int64{"next": 7}),
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	assert.NoError(t, newTestClient(t, srv, 0).SyncSubscriber(context.Background(), testSubscriber(t)))
	assert.Len(t, fake.paths(), 5)
}

func TestSyncSubscriber_SubscriberFailureStops(t *testing.T) {
	fake := &fakeKit{handlers: map[string]http.HandlerFunc{
		"/v4/subscribers": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		},
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	err := newTestClient(t, srv, 3).SyncSubscriber(context.Background(), testSubscriber(t))

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.StatusCode)
	assert.Equal(t, []string{"/v4/subscribers"}, fake.paths())
}

func TestSyncSubscriber_TagFailureContinues(t *testing.T) {
	var tagCalls int
	var mu sync.Mutex
	fake := &fakeKit{handlers: map[string]http.HandlerFunc{
		"/v4/tags": func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			tagCalls++
			n := tagCalls
			mu.Unlock()
			if n == 1 {
				// First tag: response without an id.
				_, _ = w.Write([]byte(`{"tag":{}}`))
				return
			}
			_, _ = w.Write([]byte(`{"tag":{"id":9,"name":"source_home_hero"}}`))
		},
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	err := newTestClient(t, srv, 0).SyncSubscriber(context.Background(), testSubscriber(t))

	assert.NoError(t, err)
	assert.Equal(t, []string{"/v4/subscribers", "/v4/tags", "/v4/tags", "/v4/tags/9/subscribers"}, fake.paths())
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var attempts int
	var mu sync.Mutex
	fake := &fakeKit{handlers: map[string]http.HandlerFunc{
		"/v4/subscribers": func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			attempts++
			n := attempts
			mu.Unlock()
			if n < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusCreated)
		},
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	err := newTestClient(t, srv, 2).UpsertSubscriber(context.Background(), testSubscriber(t))

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	fake := &fakeKit{handlers: map[string]http.HandlerFunc{
		"/v4/tags": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	_, err := newTestClient(t, srv, 1).EnsureTag(context.Background(), "quit_smoking_tracker")

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusServiceUnavailable, he.StatusCode)
	assert.Len(t, fake.paths(), 2)
}

func TestDo_RespectsContextCancel(t *testing.T) {
	fake := &fakeKit{handlers: map[string]http.HandlerFunc{
		"/v4/tags": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		},
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := newTestClient(t, srv, 5)
	client.backoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.EnsureTag(ctx, "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
