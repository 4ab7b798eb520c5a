package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
	"cvoptimera/internal/optimizer"
	"cvoptimera/internal/types"
)

var testLogger = errors.NewLogger(slog.LevelDebug)

const jobPageHTML = `<html>
<head><title>Ledig tjänst</title><script>trackPageView();</script></head>
<body>
<nav>Hem | Lediga jobb | Om oss</nav>
<main>
<h1>Utvecklare till Acme AB</h1>
<p>Vi söker en utvecklare med erfarenhet av React och TypeScript.
Tjänsten är en tillsvidareanställning på heltid i Stockholm.</p>
<h2>Krav</h2>
<ul><li>Minst tre års erfarenhet av webbutveckling</li>
<li>Goda kunskaper i JavaScript</li></ul>
<h2>Ansökan</h2>
<p>Skicka din ansökan senast 30 september. Rekrytering sker löpande.</p>
</main>
<footer>Acme AB, Storgatan 1</footer>
</body>
</html>`

// refineStub implements the provider interface for refinement tests
type refineStub struct {
	refined string
	usage   *optimizer.TokenUsage
	err     error
}

func (r *refineStub) OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, *optimizer.TokenUsage, error) {
	return types.OptimizedResume{}, nil, fmt.Errorf("not supported")
}

func (r *refineStub) RefineJobContent(ctx context.Context, rawText string) (string, *optimizer.TokenUsage, error) {
	if r.err != nil {
		return "", nil, r.err
	}
	return r.refined, r.usage, nil
}

func (r *refineStub) GetModelInfo(ctx context.Context) *optimizer.ModelInfo {
	return &optimizer.ModelInfo{Name: "stub", Available: true}
}

func (r *refineStub) Close() error { return nil }

func newTestService(cfg *config.ExtractorConfig, provider optimizer.Provider) *Service {
	return &Service{
		cfg:        cfg,
		relay:      newRelayClient(cfg, testLogger),
		classifier: newClassifier(cfg.Classification),
		provider:   provider,
		logger:     testLogger,
	}
}

func TestExtractWithoutRefinement(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, jobPageHTML)
	}))
	defer relay.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "testrelay", URL: relay.URL + "/?url=", Envelope: "raw"},
	)

	svc := newTestService(cfg, nil)
	output, usage, err := svc.Extract(context.Background(), "https://example.com/jobb/123")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if output.Source != "testrelay" {
		t.Errorf("Expected relay name as source, got %q", output.Source)
	}
	if usage != nil {
		t.Error("Expected no token usage without AI refinement")
	}
	if output.URL != "https://example.com/jobb/123" {
		t.Errorf("Unexpected URL: %q", output.URL)
	}
	if strings.Contains(output.Content, "trackPageView") {
		t.Error("Expected scripts to be stripped")
	}
	if strings.Contains(output.Content, "Lediga jobb | Om oss") {
		t.Error("Expected navigation to be stripped")
	}
	if !strings.Contains(output.Content, "Vi söker en utvecklare") {
		t.Errorf("Expected job text in content, got %q", output.Content)
	}
}

func TestExtractRejectsCookieWall(t *testing.T) {
	cookieHTML := `<html><body><p>Vi använder cookies. Acceptera alla kakor enligt vår integritetspolicy för att fortsätta till sidan. Fel 404 visas annars.</p></body></html>`

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cookieHTML)
	}))
	defer relay.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "testrelay", URL: relay.URL + "/?url=", Envelope: "raw"},
	)

	svc := newTestService(cfg, nil)
	_, _, err := svc.Extract(context.Background(), "https://example.com/jobb/123")
	if err == nil {
		t.Fatal("Expected error for cookie wall")
	}
	// The consent wall classification outranks the error page check
	if code := errors.CodeOf(err); code != errors.ErrCodeCookieOnlyPage {
		t.Errorf("Expected COOKIE_ONLY_PAGE, got %s", code)
	}
}

func TestExtractWithRefinement(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, jobPageHTML)
	}))
	defer relay.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "testrelay", URL: relay.URL + "/?url=", Envelope: "raw"},
	)

	refined := "Utvecklare till Acme AB. Vi söker en utvecklare med erfarenhet av React och TypeScript på heltid i Stockholm."
	svc := newTestService(cfg, &refineStub{
		refined: refined,
		usage:   &optimizer.TokenUsage{InputTokens: 200, OutputTokens: 40, TotalTokens: 240},
	})

	output, usage, err := svc.Extract(context.Background(), "https://example.com/jobb/123")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if output.Source != SourceAIRefined {
		t.Errorf("Expected ai-refined source, got %q", output.Source)
	}
	if output.Content != refined {
		t.Errorf("Expected refined content, got %q", output.Content)
	}
	if usage == nil || usage.TotalTokens != 240 {
		t.Errorf("Expected token usage to pass through, got %v", usage)
	}
}

func TestExtractKeepsRelayTextWhenRefinementFails(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, jobPageHTML)
	}))
	defer relay.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "testrelay", URL: relay.URL + "/?url=", Envelope: "raw"},
	)

	svc := newTestService(cfg, &refineStub{err: fmt.Errorf("model unavailable")})

	output, usage, err := svc.Extract(context.Background(), "https://example.com/jobb/123")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if output.Source != "testrelay" {
		t.Errorf("Expected relay source when refinement fails, got %q", output.Source)
	}
	if usage != nil {
		t.Error("Expected no token usage when refinement fails")
	}
	if !strings.Contains(output.Content, "Vi söker en utvecklare") {
		t.Errorf("Expected cleaned relay text, got %q", output.Content)
	}
}

func TestExtractHonorsNoContentToken(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, jobPageHTML)
	}))
	defer relay.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "testrelay", URL: relay.URL + "/?url=", Envelope: "raw"},
	)

	svc := newTestService(cfg, &refineStub{refined: optimizer.NoJobContentToken})

	_, _, err := svc.Extract(context.Background(), "https://example.com/jobb/123")
	if err == nil {
		t.Fatal("Expected error when the model reports no job content")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeNoJobContent {
		t.Errorf("Expected NO_JOB_CONTENT_FOUND, got %s", code)
	}
}

func TestExtractRejectsShortFinalContent(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, jobPageHTML)
	}))
	defer relay.Close()

	cfg := testExtractorConfig(
		config.RelayConfig{Name: "testrelay", URL: relay.URL + "/?url=", Envelope: "raw"},
	)

	// The model trimmed the posting below the usable minimum
	svc := newTestService(cfg, &refineStub{refined: "Vi söker."})

	_, _, err := svc.Extract(context.Background(), "https://example.com/jobb/123")
	if err == nil {
		t.Fatal("Expected error for too short refined content")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeInsufficientContent {
		t.Errorf("Expected INSUFFICIENT_CONTENT, got %s", code)
	}
}

func TestExtractValidatesURL(t *testing.T) {
	cfg := testExtractorConfig()
	svc := newTestService(cfg, nil)

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "relative path", url: "/jobb/123"},
		{name: "unsupported scheme", url: "ftp://example.com/jobb"},
		{name: "missing host", url: "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Extract(context.Background(), tt.url)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if code := errors.CodeOf(err); code != errors.ErrCodeInvalidRequest {
				t.Errorf("Expected INVALID_REQUEST, got %s", code)
			}
		})
	}
}

func TestExtractFallbackModeReporting(t *testing.T) {
	cfg := testExtractorConfig()

	withoutAI := newTestService(cfg, nil)
	if !withoutAI.FallbackMode() {
		t.Error("Expected fallback mode without a provider")
	}

	withAI := newTestService(cfg, &refineStub{})
	if withAI.FallbackMode() {
		t.Error("Expected fallback mode off with a provider")
	}
}
