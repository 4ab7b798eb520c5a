package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"cvoptimera/internal/extractor"
	"cvoptimera/internal/observability"
	"cvoptimera/internal/optimizer"
	"cvoptimera/internal/parser"
	"cvoptimera/internal/types"
)

// createOptimizeHandler wraps the optimize handler with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("cvoptimera.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		// Parse request
		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.Resume.Name) == "" && len(req.Resume.Experience) == 0 && len(req.Resume.Skills) == 0 {
			err := fmt.Errorf("missing resume data")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume data", "resume field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.experience_entries", len(req.Resume.Experience)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "optimize"),
		)

		input := types.OptimizeResumeInput{
			Resume:         req.Resume,
			JobDescription: req.JobDescription,
		}

		// Create optimization service for this operation
		optimizeConfig := s.AppConfig.GetOptimizeConfig()
		optimizeService, err := optimizer.NewService(&optimizeConfig, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create optimization service", err.Error(), http.StatusInternalServerError)
			return
		}

		// Track the operation with observability and token usage
		metrics := om.GetMetrics()
		var result types.OptimizeResumeOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "optimize", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, opErr := optimizeService.Optimize(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      opErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_optimized", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to optimize resume", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		fallback := result.OptimizationNotes == optimizer.NotesFallback
		metrics.RecordBusinessMetric(ctx, "resume_optimized", true, om,
			attribute.Bool("fallback", fallback),
			attribute.Int("warnings_count", len(result.ValidationWarnings)))
		if fallback {
			metrics.RecordBusinessMetric(ctx, "fallback_used", true, om)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("fallback", fallback),
			attribute.Int("response.competencies", len(result.OptimizedResume.CoreCompetencies)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createParseHandler wraps the parse handler with observability.
// Parsing is purely heuristic, no AI provider is involved.
func (s *Server) createParseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("cvoptimera.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		var req ParseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(req.ResumeText)),
			attribute.String("operation", "parse"),
		)

		result := parser.Parse(req.ResumeText)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.Int("experience_entries", len(result.Experience)),
			attribute.Int("skills_count", len(result.Skills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.experience_entries", len(result.Experience)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createExtractHandler wraps the extract handler with observability
func (s *Server) createExtractHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("cvoptimera.api")
		ctx, span := tracer.Start(ctx, "api.extract")
		defer span.End()

		var req ExtractRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.URL) == "" {
			err := fmt.Errorf("missing url")
			span.RecordError(err)
			writeErrorResponse(w, "Missing URL", "url field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.url", req.URL),
			attribute.String("operation", "extract"),
		)

		extractConfig := s.AppConfig.GetExtractConfig()
		extractService, err := extractor.NewService(&s.AppConfig.Extractor, &extractConfig, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create extraction service", err.Error(), http.StatusInternalServerError)
			return
		}
		defer func() {
			if err := extractService.Close(); err != nil {
				s.Logger.Warn("Failed to close extraction service", "error", err.Error())
			}
		}()

		metrics := om.GetMetrics()
		var result types.ExtractJobOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "extract", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, opErr := extractService.Extract(ctx, req.URL)
			result = output
			return &observability.AIOperationResult{
				Error:      opErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "job_extracted", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to extract job content", err.Error(), http.StatusUnprocessableEntity)
			return
		}

		metrics.RecordBusinessMetric(ctx, "job_extracted", true, om,
			attribute.String("source", result.Source),
			attribute.Int("content_length", len(result.Content)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("response.source", result.Source),
			attribute.Int("response.content_length", len(result.Content)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
