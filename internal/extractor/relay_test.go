package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
)

func testExtractorConfig(relays ...config.RelayConfig) *config.ExtractorConfig {
	return &config.ExtractorConfig{
		Relays:         relays,
		RelayTimeout:   5 * time.Second,
		MinFetchLength: 100,
		MaxTextLength:  8000,
		MinTextLength:  50,
		Classification: testClassificationConfig(),
	}
}

func TestUnwrapEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		envelope string
		raw      string
		expected string
		wantErr  bool
	}{
		{
			name:     "raw passthrough",
			envelope: "raw",
			raw:      "<html>sida</html>",
			expected: "<html>sida</html>",
		},
		{
			name:     "contents wrapper",
			envelope: "contents",
			raw:      `{"contents": "<html>sida</html>", "status": {"http_code": 200}}`,
			expected: "<html>sida</html>",
		},
		{
			name:     "contents wrapper with empty body",
			envelope: "contents",
			raw:      `{"contents": ""}`,
			wantErr:  true,
		},
		{
			name:     "contents wrapper with invalid JSON",
			envelope: "contents",
			raw:      "<html>inte json</html>",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unwrapEnvelope(tt.envelope, []byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unwrapEnvelope failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("unwrapEnvelope() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRelayChainFallsThroughToNextRelay(t *testing.T) {
	body := "<html><body>" + strings.Repeat("jobbannons ", 20) + "</body></html>"

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer working.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "broken", URL: broken.URL + "/?url=", Envelope: "raw"},
		config.RelayConfig{Name: "working", URL: working.URL + "/?url=", Envelope: "raw"},
	)

	rc := newRelayClient(cfg, testLogger)
	result, err := rc.fetch(context.Background(), "https://example.com/jobb/123")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if result.Relay != "working" {
		t.Errorf("Expected the second relay to win, got %q", result.Relay)
	}
	if result.Body != body {
		t.Errorf("Unexpected body: %q", result.Body)
	}
}

func TestRelayChainStopsAtFirstSuccess(t *testing.T) {
	body := strings.Repeat("first relay content ", 10)

	firstCalls := 0
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstCalls++
		fmt.Fprint(w, body)
	}))
	defer first.Close()

	secondCalls := 0
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondCalls++
		fmt.Fprint(w, body)
	}))
	defer second.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "first", URL: first.URL + "/?url=", Envelope: "raw"},
		config.RelayConfig{Name: "second", URL: second.URL + "/?url=", Envelope: "raw"},
	)

	rc := newRelayClient(cfg, testLogger)
	result, err := rc.fetch(context.Background(), "https://example.com/jobb/123")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if result.Relay != "first" {
		t.Errorf("Expected the first relay to win, got %q", result.Relay)
	}
	if firstCalls != 1 || secondCalls != 0 {
		t.Errorf("Expected exactly one call to the first relay, got first=%d second=%d", firstCalls, secondCalls)
	}
}

func TestRelayChainRejectsShortResponses(t *testing.T) {
	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "kort")
	}))
	defer short.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "short", URL: short.URL + "/?url=", Envelope: "raw"},
	)

	rc := newRelayClient(cfg, testLogger)
	_, err := rc.fetch(context.Background(), "https://example.com/jobb/123")
	if err == nil {
		t.Fatal("Expected error for short response")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeAllRelaysFailed {
		t.Errorf("Expected ALL_RELAYS_FAILED, got %s", code)
	}
}

func TestRelayChainReportsNetworkBlocked(t *testing.T) {
	// Unroutable relay addresses fail at the transport level
	cfg := testExtractorConfig(
		config.RelayConfig{Name: "unreachable", URL: "http://127.0.0.1:1/?url=", Envelope: "raw"},
	)

	rc := newRelayClient(cfg, testLogger)
	_, err := rc.fetch(context.Background(), "https://example.com/jobb/123")
	if err == nil {
		t.Fatal("Expected error for unreachable relay")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeNetworkBlocked {
		t.Errorf("Expected NETWORK_BLOCKED, got %s", code)
	}
}

func TestRelayChainUnwrapsContentsEnvelope(t *testing.T) {
	inner := "<html><body>" + strings.Repeat("innehåll ", 20) + "</body></html>"

	wrapped := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"contents": %q}`, inner)
	}))
	defer wrapped.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "wrapped", URL: wrapped.URL + "/?url=", Envelope: "contents"},
	)

	rc := newRelayClient(cfg, testLogger)
	result, err := rc.fetch(context.Background(), "https://example.com/jobb/123")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if result.Body != inner {
		t.Errorf("Expected unwrapped body, got %q", result.Body)
	}
}

func TestRelayChainPassesEscapedTargetURL(t *testing.T) {
	var gotQuery string
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, strings.Repeat("innehåll ", 20))
	}))
	defer relay.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "relay", URL: relay.URL + "/?url=", Envelope: "raw"},
	)

	rc := newRelayClient(cfg, testLogger)
	if _, err := rc.fetch(context.Background(), "https://example.com/jobb?id=123&lang=sv"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !strings.Contains(gotQuery, "url=https%3A%2F%2Fexample.com") {
		t.Errorf("Expected query-escaped target URL, got %q", gotQuery)
	}
}
