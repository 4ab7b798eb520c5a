package optimizer

import (
	"context"
	"fmt"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
	"cvoptimera/internal/types"
)

// Optimization notes attached to the output, telling the consumer which path
// produced the resume.
const (
	NotesAI            = "CV optimerat med AI för att matcha jobbeskrivningen"
	NotesAIAdjustments = NotesAI + " (några fält kan behöva justeras)"
	NotesFallback      = "Mock-optimering skapad (AI ej tillgänglig) - Redo för PDF-export"
)

// Service handles resume optimization. With no API key configured the service
// runs in fallback mode: Provider stays nil and every optimization is served
// by the deterministic builder. This is a normal operating mode, not an error.
type Service struct {
	Provider Provider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates an optimization service for the given operation config
func NewService(cfg *config.OperationAIConfig, logger *errors.Logger) (*Service, error) {
	if cfg.APIKey == "" {
		logger.Info("No AI API key configured, optimization runs in deterministic fallback mode")
		return &Service{
			config: cfg,
			logger: logger,
		}, nil
	}

	logger.Debug("Initializing optimization service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	var provider Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, "optimize", logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// FallbackMode reports whether the service runs without an AI provider
func (s *Service) FallbackMode() bool {
	return s.Provider == nil
}

// Optimize produces an optimized resume for the given input. The AI path is
// tried once when a provider exists; any model or parse failure falls back to
// the deterministic builder. Validation warnings are advisory and never turn
// Success off.
func (s *Service) Optimize(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizeResumeOutput, *TokenUsage, error) {
	if s.Provider == nil {
		return s.fallbackOutput(input), nil, nil
	}

	resume, tokenUsage, err := s.Provider.OptimizeResume(ctx, input)
	if err != nil {
		// Respect cancellation instead of serving fallback content
		if ctx.Err() != nil {
			return types.OptimizeResumeOutput{}, nil, ctx.Err()
		}

		s.logger.Warn("AI optimization failed, using deterministic fallback",
			"error", err.Error())
		return s.fallbackOutput(input), nil, nil
	}

	warnings := ValidateOptimizedResume(resume)
	notes := NotesAI
	if len(warnings) > 0 {
		notes = NotesAIAdjustments
		s.logger.Warn("Optimized resume has validation warnings",
			"warning_count", len(warnings))
	}

	return types.OptimizeResumeOutput{
		Success:            true,
		OptimizedResume:    resume,
		ValidationWarnings: warnings,
		OptimizationNotes:  notes,
	}, tokenUsage, nil
}

// fallbackOutput builds the deterministic result and attaches any advisory
// validation warnings.
func (s *Service) fallbackOutput(input types.OptimizeResumeInput) types.OptimizeResumeOutput {
	resume := BuildFallback(input)

	return types.OptimizeResumeOutput{
		Success:            true,
		OptimizedResume:    resume,
		ValidationWarnings: ValidateOptimizedResume(resume),
		OptimizationNotes:  NotesFallback,
	}
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	if s.Provider == nil {
		return &ModelInfo{
			Name:      "fallback",
			Available: true,
		}
	}
	return s.Provider.GetModelInfo(ctx)
}
