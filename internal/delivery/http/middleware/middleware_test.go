package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dawrni-api/config"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/pkg/jwt"
	"dawrni-api/pkg/response"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestLocale(t *testing.T) {
	tests := []struct {
		header string
		want   entity.Language
	}{
		{header: "ar", want: entity.LanguageArabic},
		{header: "en", want: entity.LanguageEnglish},
		{header: "", want: entity.LanguageEnglish},
		{header: "ar-EG,ar;q=0.9", want: entity.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			var got entity.Language
			handler := Locale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetLanguageFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       *entity.Role
		wantStatus int
		wantCode   string
	}{
		{name: "matching role", role: rolePtr(entity.RoleClient), wantStatus: http.StatusOK},
		{name: "other role", role: rolePtr(entity.RoleCompany), wantStatus: http.StatusForbidden, wantCode: response.CodeForbidden},
		{name: "no role", wantStatus: http.StatusUnauthorized, wantCode: response.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != nil {
				req = req.WithContext(withRole(req, *tt.role))
			}
			rec := httptest.NewRecorder()

			RequireClient(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeEnvelope(t, rec).Code)
			}
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	handler := NewRecoverMiddleware(log).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, response.CodeInternal, body.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

// TestRateLimitMiddleware tests that each client IP gets its own bucket
func TestRateLimitMiddleware(t *testing.T) {
	m := NewRateLimitMiddleware(config.RateLimitConfig{RPS: 1, Burst: 2})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	handler := m.Handle(okHandler())

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	limited := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Equal(t, response.CodeTooManyRequests, decodeEnvelope(t, limited).Code)

	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code, "other clients are unaffected")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code, "bucket refills over time")
}

func TestRateLimitMiddleware_EvictsIdleVisitors(t *testing.T) {
	m := NewRateLimitMiddleware(config.RateLimitConfig{RPS: 1, Burst: 1})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	assert.True(t, m.allow("10.0.0.1"))
	now = now.Add(limiterIdleTTL + time.Minute)
	assert.True(t, m.allow("10.0.0.2"))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.NotContains(t, m.visitors, "10.0.0.1")
	assert.Contains(t, m.visitors, "10.0.0.2")
}

func TestRateLimitMiddleware_IgnoresForwardedForByDefault(t *testing.T) {
	m := NewRateLimitMiddleware(config.RateLimitConfig{RPS: 1, Burst: 1})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	handler := m.Handle(okHandler())

	passed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "198.51.100.9:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			passed++
		}
	}
	assert.Equal(t, 1, passed, "a changing X-Forwarded-For must not open new buckets")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		trustProxy bool
		want       string
	}{
		{name: "peer address", want: "192.0.2.1"},
		{name: "header ignored without trusted proxy", forwarded: "203.0.113.7", want: "192.0.2.1"},
		{name: "trusted proxy uses last hop", forwarded: "203.0.113.7, 10.0.0.1", trustProxy: true, want: "10.0.0.1"},
		{name: "trusted proxy without header", trustProxy: true, want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trustProxy))
		})
	}
}

// TestAuthenticate tests token validation against the Redis allow-list
func TestAuthenticate(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	userID := uuid.New()

	access, accessID, err := jwtService.GenerateAccessToken(userID, "a@example.com", string(entity.RoleCompany))
	require.NoError(t, err)
	require.NoError(t, mr.Set(fmt.Sprintf("access_token:%s:%s", userID, accessID), "valid"))

	revoked, _, err := jwtService.GenerateAccessToken(userID, "a@example.com", string(entity.RoleCompany))
	require.NoError(t, err)

	refresh, _, err := jwtService.GenerateRefreshToken(userID, "a@example.com", string(entity.RoleCompany))
	require.NoError(t, err)

	var gotUser uuid.UUID
	var gotRole entity.Role
	handler := NewAuthMiddleware(jwtService, redisClient).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUserIDFromContext(r.Context())
		gotRole, _ = GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + access, wantStatus: http.StatusOK},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + access, wantStatus: http.StatusUnauthorized},
		{name: "revoked token", header: "Bearer " + revoked, wantStatus: http.StatusUnauthorized},
		{name: "refresh token", header: "Bearer " + refresh, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, userID, gotUser)
	assert.Equal(t, entity.RoleCompany, gotRole)
}
