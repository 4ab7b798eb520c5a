package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
)

var testLogger = errors.NewLogger(slog.LevelError)

func newTestServer(apiKeys []string) *Server {
	return NewServer(&config.Config{}, ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1024,
	}, testLogger)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		apiKeys    []string
		header     string
		value      string
		wantStatus int
	}{
		{
			name:       "no keys configured skips auth",
			apiKeys:    nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			apiKeys:    []string{"secret-key-12345"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid X-API-Key accepted",
			apiKeys:    []string{"secret-key-12345"},
			header:     "X-API-Key",
			value:      "secret-key-12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid Bearer token accepted",
			apiKeys:    []string{"secret-key-12345"},
			header:     "Authorization",
			value:      "Bearer secret-key-12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid key rejected",
			apiKeys:    []string{"secret-key-12345"},
			header:     "X-API-Key",
			value:      "wrong-key",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.apiKeys)
			handler := s.authMiddleware(okHandler)

			req := httptest.NewRequest(http.MethodPost, "/optimize", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   string
	}{
		{"short key fully masked", "abc", "****"},
		{"exactly 8 chars fully masked", "12345678", "****"},
		{"long key shows prefix", "secret-key-12345", "secret-k****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.apiKey); got != tt.want {
				t.Errorf("maskAPIKey(%q) = %q, want %q", tt.apiKey, got, tt.want)
			}
		})
	}
}

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(60, time.Minute, 2, testLogger)
	defer limiter.Close()

	// Burst capacity of 2: two immediate requests pass, the third is rejected
	if !limiter.Allow("api:key1") {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow("api:key1") {
		t.Error("second request within burst should be allowed")
	}
	if limiter.Allow("api:key1") {
		t.Error("third request should exceed burst capacity")
	}

	// Independent key gets its own bucket
	if !limiter.Allow("api:key2") {
		t.Error("different key should have its own limiter")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.0.2.10:51234",
			want:       "192.0.2.10",
		},
		{
			name:       "x-forwarded-for takes precedence",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip used when forwarded-for absent",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "198.51.100.3"},
			want:       "198.51.100.3",
		},
		{
			name:       "invalid forwarded-for falls through",
			remoteAddr: "192.0.2.10:51234",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:       "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		want     string
	}{
		{
			name:     "api key preferred",
			byAPIKey: true,
			byIP:     true,
			headers:  map[string]string{"X-API-Key": "k1"},
			want:     "api:k1",
		},
		{
			name:     "bearer token used as api key",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer k2"},
			want:     "api:k2",
		},
		{
			name: "ip fallback",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name: "nothing enabled yields empty key",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getRateLimitKey(req, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
