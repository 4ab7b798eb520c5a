package extractor

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
)

// fetchResult is a successful relay fetch: the raw page body and the name of
// the relay that produced it.
type fetchResult struct {
	Body  string
	Relay string
}

// relayClient fetches a target URL through a chain of public relays. The
// relays are tried strictly in order; the first response whose unwrapped body
// exceeds the minimum length wins.
type relayClient struct {
	relays    []config.RelayConfig
	client    *http.Client
	minLength int
	logger    *errors.Logger
}

func newRelayClient(cfg *config.ExtractorConfig, logger *errors.Logger) *relayClient {
	return &relayClient{
		relays: cfg.Relays,
		client: &http.Client{
			Timeout:   cfg.RelayTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		minLength: cfg.MinFetchLength,
		logger:    logger,
	}
}

// fetch tries each relay in order and returns the first body longer than the
// configured minimum. All relays failing yields ALL_RELAYS_FAILED, unless
// every attempt died at the transport level, which reports NETWORK_BLOCKED.
func (rc *relayClient) fetch(ctx context.Context, targetURL string) (fetchResult, error) {
	if len(rc.relays) == 0 {
		return fetchResult{}, errors.NewExtractionError(errors.ErrCodeAllRelaysFailed,
			"No fetch relays configured", nil)
	}

	transportFailures := 0
	for _, relay := range rc.relays {
		if err := ctx.Err(); err != nil {
			return fetchResult{}, err
		}

		body, err := rc.fetchVia(ctx, relay, targetURL)
		if err != nil {
			var transportErr *transportError
			if stderrors.As(err, &transportErr) {
				transportFailures++
			}
			rc.logger.Debug("Relay fetch failed",
				"relay", relay.Name,
				"error", err.Error())
			continue
		}

		if len(body) <= rc.minLength {
			rc.logger.Debug("Relay response too short",
				"relay", relay.Name,
				"length", len(body))
			continue
		}

		rc.logger.Debug("Relay fetch succeeded",
			"relay", relay.Name,
			"length", len(body))
		return fetchResult{Body: body, Relay: relay.Name}, nil
	}

	if transportFailures == len(rc.relays) {
		return fetchResult{}, errors.NewNetworkError(errors.ErrCodeNetworkBlocked,
			"Network access appears blocked, no relay could be reached", nil)
	}

	return fetchResult{}, errors.NewExtractionError(errors.ErrCodeAllRelaysFailed,
		fmt.Sprintf("All %d relays failed to fetch usable content", len(rc.relays)), nil)
}

// fetchVia performs a single relay request and unwraps the relay's envelope.
func (rc *relayClient) fetchVia(ctx context.Context, relay config.RelayConfig, targetURL string) (string, error) {
	requestURL := relay.URL + url.QueryEscape(targetURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("building relay request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/json")

	resp, err := rc.client.Do(req)
	if err != nil {
		return "", &transportError{cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading relay response: %w", err)
	}

	return unwrapEnvelope(relay.Envelope, raw)
}

// unwrapEnvelope extracts the page body from a relay response. Relays either
// return the body directly ("raw") or wrap it in a JSON object with a
// "contents" field.
func unwrapEnvelope(envelope string, raw []byte) (string, error) {
	switch envelope {
	case "contents":
		var wrapped struct {
			Contents string `json:"contents"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return "", fmt.Errorf("decoding relay envelope: %w", err)
		}
		if strings.TrimSpace(wrapped.Contents) == "" {
			return "", fmt.Errorf("relay envelope has empty contents")
		}
		return wrapped.Contents, nil
	default:
		return string(raw), nil
	}
}

// transportError marks failures where the relay itself was unreachable, as
// opposed to the relay answering with an unusable response.
type transportError struct {
	cause error
}

func (e *transportError) Error() string { return e.cause.Error() }
func (e *transportError) Unwrap() error { return e.cause }
