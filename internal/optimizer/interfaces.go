package optimizer

import (
	"context"

	"cvoptimera/internal/types"
)

// Provider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type Provider interface {
	OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, *TokenUsage, error)
	RefineJobContent(ctx context.Context, rawText string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
