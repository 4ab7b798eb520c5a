package extractor

import (
	"context"
	"net/url"
	"strings"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
	"cvoptimera/internal/optimizer"
	"cvoptimera/internal/types"
)

// Source value reported when the AI refinement step rewrote the relay text.
const SourceAIRefined = "ai-refined"

// Service extracts job posting text from public job listing URLs. Pages are
// fetched through a relay chain, stripped down to visible text, classified to
// reject consent walls and error pages, and optionally refined by an AI
// provider. The AI step is best effort: without an API key, or when the model
// fails, the cleaned relay text is the result.
type Service struct {
	cfg        *config.ExtractorConfig
	relay      *relayClient
	classifier *classifier
	provider   optimizer.Provider
	logger     *errors.Logger
}

// NewService builds an extraction service. aiCfg configures the optional
// refinement provider; an empty API key disables refinement entirely.
func NewService(cfg *config.ExtractorConfig, aiCfg *config.OperationAIConfig, logger *errors.Logger) (*Service, error) {
	svc := &Service{
		cfg:        cfg,
		relay:      newRelayClient(cfg, logger),
		classifier: newClassifier(cfg.Classification),
		logger:     logger,
	}

	if aiCfg != nil && aiCfg.APIKey != "" {
		provider, err := optimizer.NewGeminiProvider(aiCfg, "extract", logger)
		if err != nil {
			return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
				"Failed to create AI provider for job content refinement", err)
		}
		svc.provider = provider
	} else {
		logger.Info("No AI API key configured, job extraction skips AI refinement")
	}

	return svc, nil
}

// Extract fetches the page at rawURL and returns its job posting text.
func (s *Service) Extract(ctx context.Context, rawURL string) (types.ExtractJobOutput, *optimizer.TokenUsage, error) {
	if err := validateURL(rawURL); err != nil {
		return types.ExtractJobOutput{}, nil, err
	}

	fetched, err := s.relay.fetch(ctx, rawURL)
	if err != nil {
		return types.ExtractJobOutput{}, nil, err
	}

	cleaned := cleanHTML(fetched.Body, s.cfg.MaxTextLength)

	if err := s.classifier.classify(cleaned); err != nil {
		return types.ExtractJobOutput{}, nil, err
	}

	content := cleaned
	source := fetched.Relay
	var tokenUsage *optimizer.TokenUsage

	if s.provider != nil {
		refined, usage, err := s.refine(ctx, cleaned)
		if err != nil {
			return types.ExtractJobOutput{}, nil, err
		}
		if refined != "" {
			content = refined
			source = SourceAIRefined
			tokenUsage = usage
		}
	}

	if len(content) < s.cfg.MinTextLength {
		return types.ExtractJobOutput{}, nil, errors.NewExtractionError(errors.ErrCodeInsufficientContent,
			"Extracted content is too short to be a job posting", nil)
	}

	return types.ExtractJobOutput{
		URL:     rawURL,
		Content: content,
		Source:  source,
	}, tokenUsage, nil
}

// refine asks the AI provider to strip residual noise from the cleaned text.
// Model failures are swallowed: the caller keeps the cleaned text. The model
// answering with the no-content token is authoritative and fails the
// extraction.
func (s *Service) refine(ctx context.Context, cleaned string) (string, *optimizer.TokenUsage, error) {
	refined, usage, err := s.provider.RefineJobContent(ctx, cleaned)
	if err != nil {
		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}
		s.logger.Warn("AI refinement failed, keeping relay text",
			"error", err.Error())
		return "", nil, nil
	}

	refined = strings.TrimSpace(refined)
	if strings.Contains(refined, optimizer.NoJobContentToken) {
		return "", nil, errors.NewExtractionError(errors.ErrCodeNoJobContent,
			"AI refinement found no job posting in the page", nil)
	}
	if refined == "" {
		return "", nil, nil
	}

	return refined, usage, nil
}

// FallbackMode reports whether the service runs without AI refinement
func (s *Service) FallbackMode() bool {
	return s.provider == nil
}

// GetModelInfo returns information about the refinement model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *optimizer.ModelInfo {
	if s.provider == nil {
		return &optimizer.ModelInfo{
			Name:      "none",
			Available: true,
		}
	}
	return s.provider.GetModelInfo(ctx)
}

// Close releases the AI provider, if any
func (s *Service) Close() error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Close()
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"A valid absolute http(s) URL is required", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Only http and https URLs are supported", nil)
	}
	return nil
}
