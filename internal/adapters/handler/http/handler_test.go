package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/smokefree-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/services"
	"github.com/comitanigiacomo/smokefree-tracker/internal/observability"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type dispatchRecorder struct {
	subscribers []*domain.EmailSubscriber
}

func (d *dispatchRecorder) Dispatch(s *domain.EmailSubscriber) {
	d.subscribers = append(d.subscribers, s)
}

type testEnv struct {
	router     *gin.Engine
	users      *repository.InMemoryUserRepository
	dispatched *dispatchRecorder
}

func setupRouter(t *testing.T, demo bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Nop()
	users := repository.NewInMemoryUserRepository()
	profiles := repository.NewInMemoryQuitProfileRepository()
	checkIns := repository.NewInMemoryCheckInRepository()
	subscribers := repository.NewInMemorySubscriberRepository()

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	tokens := services.NewTokenService("test-secret", "smokefree-test", time.Hour, users)
	authSvc := services.NewAuthService(users, tokens)
	dispatched := &dispatchRecorder{}

	var resolver middleware.IdentityResolver = middleware.NewPersistedGuestResolver(authSvc, false)
	if demo {
		resolver = middleware.DemoResolver{UserID: services.DemoUserID}
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:         adapterHTTP.NewAuthHandler(authSvc, tokens.TTL(), false, log),
		ProfileHandler:      adapterHTTP.NewProfileHandler(services.NewProfileService(profiles), log),
		CheckInHandler:      adapterHTTP.NewCheckInHandler(services.NewCheckInService(checkIns), log),
		ProgressHandler:     adapterHTTP.NewProgressHandler(services.NewProgressService(profiles, checkIns, 30, metrics), log),
		SubscriptionHandler: adapterHTTP.NewSubscriptionHandler(services.NewSubscriptionService(subscribers, dispatched), authSvc, log),
		Tokens:              tokens,
		Resolver:            resolver,
		Metrics:             metrics,
		Gatherer:            reg,
		Log:                 log,
		AllowedOrigins:      []string{"*"},
		StartTime:           time.Now(),
	})

	return &testEnv{router: router, users: users, dispatched: dispatched}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func today() string {
	return time.Now().UTC().Format(domain.DateLayout)
}

func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format(domain.DateLayout)
}
