package optimizer

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"cvoptimera/internal/config"
	cvErrors "cvoptimera/internal/errors"
	"cvoptimera/internal/types"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *cvErrors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *cvErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, cvErrors.NewAIError(cvErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// generateContent runs one generation through the circuit breaker, transport
// retries and a trace span, returning the raw response.
func (g *GeminiProvider) generateContent(
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (*genai.GenerateContentResponse, error) {
	tracer := otel.Tracer("cvoptimera.optimizer.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, cvErrors.NewAIError(cvErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return result, nil
}

// OptimizeResume implements Provider for resume optimization
func (g *GeminiProvider) OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt()
	userPrompt := fmt.Sprintf(g.getUserPrompt(), buildResumeBlock(input.Resume), input.JobDescription)

	result, err := g.generateContent(
		ctx,
		"optimize_resume",
		userPrompt,
		systemPrompt,
		g.buildOptimizeSchema(),
		attribute.Int("input.experience_count", len(input.Resume.Experience)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)
	if err != nil {
		return types.OptimizedResume{}, nil, err
	}

	resume, err := ParseOptimizedResume(result.Text())
	if err != nil {
		return types.OptimizedResume{}, nil, cvErrors.NewAIError("AI_RESPONSE_PARSE_FAILED",
			"Failed to parse AI response for optimize_resume", err)
	}

	return resume, extractTokenUsage(result), nil
}

// RefineJobContent implements Provider for job content refinement. The model
// returns plain text, or the no-content sentinel when the page text holds no
// job posting.
func (g *GeminiProvider) RefineJobContent(ctx context.Context, rawText string) (string, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt()
	userPrompt := fmt.Sprintf(g.getUserPrompt(), rawText)

	genaiConfig := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	result, err := g.generateContent(
		ctx,
		"refine_job_content",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.raw_length", len(rawText)),
	)
	if err != nil {
		return "", nil, err
	}

	return strings.TrimSpace(result.Text()), extractTokenUsage(result), nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements Provider
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// buildOptimizeSchema creates the response schema for optimization requests
func (g *GeminiProvider) buildOptimizeSchema() *genai.GenerateContentConfig {
	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"personalInfo": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":    {Type: genai.TypeString},
						"email":   {Type: genai.TypeString},
						"phone":   {Type: genai.TypeString},
						"address": {Type: genai.TypeString},
					},
					Required: []string{"name", "email", "phone", "address"},
				},
				"profileSummary": {Type: genai.TypeString},
				"workExperience": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":       {Type: genai.TypeString},
							"company":     {Type: genai.TypeString},
							"location":    {Type: genai.TypeString},
							"startDate":   {Type: genai.TypeString},
							"endDate":     {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
							"keyAchievements": {
								Type:  genai.TypeArray,
								Items: &genai.Schema{Type: genai.TypeString},
							},
						},
						Required: []string{"title", "company", "startDate", "endDate", "description", "keyAchievements"},
					},
				},
				"education": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"degree":      {Type: genai.TypeString},
							"institution": {Type: genai.TypeString},
							"location":    {Type: genai.TypeString},
							"startDate":   {Type: genai.TypeString},
							"endDate":     {Type: genai.TypeString},
						},
						Required: []string{"degree", "institution", "startDate", "endDate"},
					},
				},
				"coreCompetencies": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"technicalSkills": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"programmingLanguages": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"frameworks":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"tools":                {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"databases":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"cloud":                {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"other":                {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					},
					Required: []string{"programmingLanguages", "frameworks", "tools"},
				},
				"languages": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"language":    {Type: genai.TypeString},
							"proficiency": {Type: genai.TypeString},
						},
						Required: []string{"language", "proficiency"},
					},
				},
			},
			Required: []string{"personalInfo", "profileSummary", "workExperience", "education", "coreCompetencies", "technicalSkills"},
		},
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	return genaiConfig
}

// getSystemPrompt returns the appropriate system prompt for the operation
func (g *GeminiProvider) getSystemPrompt() string {
	loadedPrompts := config.GetPromptsForOperation(g.operationType)
	configPrompts := g.config.CustomPrompts.SystemPrompts

	switch g.operationType {
	case "optimize":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.OptimizeResume,
			configPrompts.OptimizeResume,
			DefaultSystemPrompts.OptimizeResume,
		)
	case "extract":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.ExtractJob,
			configPrompts.ExtractJob,
			DefaultSystemPrompts.ExtractJob,
		)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template for the operation
func (g *GeminiProvider) getUserPrompt() string {
	loadedPrompts := config.GetPromptsForOperation(g.operationType)
	configPrompts := g.config.CustomPrompts.UserPrompts

	switch g.operationType {
	case "optimize":
		return resolvePrompt(
			loadedPrompts.UserPrompts.OptimizeResume,
			configPrompts.OptimizeResume,
			DefaultUserPrompts.OptimizeResume,
		)
	case "extract":
		return resolvePrompt(
			loadedPrompts.UserPrompts.ExtractJob,
			configPrompts.ExtractJob,
			DefaultUserPrompts.ExtractJob,
		)
	default:
		return ""
	}
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
