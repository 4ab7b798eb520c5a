package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
	"cvoptimera/internal/types"
)

// Helper functions to create pointers for test values
func timePtr(d time.Duration) *time.Duration { return &d }
func intPtr(i int) *int                      { return &i }
func float32Ptr(f float32) *float32          { return &f }
func boolPtr(b bool) *bool                   { return &b }

var testLogger = errors.NewLogger(slog.LevelDebug)

func testOperationConfig(apiKey string) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider:         "gemini",
		Model:            "gemini-2.0-flash",
		APIKey:           apiKey,
		Timeout:          timePtr(30 * time.Second),
		MaxRetries:       intPtr(1),
		Temperature:      float32Ptr(0.3),
		UseSystemPrompts: boolPtr(true),
	}
}

func testResumeInput() types.OptimizeResumeInput {
	return types.OptimizeResumeInput{
		Resume: types.ResumeData{
			Name:     "Anna Svensson",
			Email:    "anna@example.com",
			Phone:    "0701112233",
			Location: "Stockholm, Sverige",
			Summary:  "Erfaren utvecklare.",
			Experience: []types.ExperienceEntry{
				{
					Title:       "Utvecklare",
					Company:     "Acme AB",
					StartDate:   "2020",
					EndDate:     "Nuvarande",
					Description: "Byggde saker.",
				},
			},
			Education: []types.EducationEntry{
				{
					Degree:      "Kandidat",
					Institution: "KTH",
					StartDate:   "2015",
					EndDate:     "2018",
				},
			},
			Skills: []string{"JavaScript", "React", "Git", "Scrum"},
		},
		JobDescription: "Vi söker en utvecklare med erfarenhet av React och teamarbete.",
	}
}

// fakeProvider returns a canned resume or error without any network calls
type fakeProvider struct {
	resume types.OptimizedResume
	usage  *TokenUsage
	err    error
}

func (f *fakeProvider) OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, *TokenUsage, error) {
	if f.err != nil {
		return types.OptimizedResume{}, nil, f.err
	}
	return f.resume, f.usage, nil
}

func (f *fakeProvider) RefineJobContent(ctx context.Context, rawText string) (string, *TokenUsage, error) {
	return rawText, f.usage, f.err
}

func (f *fakeProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	return &ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func TestServiceFallbackModeWithoutAPIKey(t *testing.T) {
	svc, err := NewService(testOperationConfig(""), testLogger)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	if !svc.FallbackMode() {
		t.Error("Expected fallback mode when no API key is configured")
	}

	output, usage, err := svc.Optimize(context.Background(), testResumeInput())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if usage != nil {
		t.Error("Expected no token usage in fallback mode")
	}
	if !output.Success {
		t.Error("Expected fallback output to report success")
	}
	if output.OptimizationNotes != NotesFallback {
		t.Errorf("Expected fallback notes, got %q", output.OptimizationNotes)
	}
}

func TestServiceFallbackDeterminism(t *testing.T) {
	svc, err := NewService(testOperationConfig(""), testLogger)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	input := testResumeInput()
	first, _, err := svc.Optimize(context.Background(), input)
	if err != nil {
		t.Fatalf("first Optimize failed: %v", err)
	}
	second, _, err := svc.Optimize(context.Background(), input)
	if err != nil {
		t.Fatalf("second Optimize failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output for identical input in fallback mode")
	}
}

func TestServiceFallbackContent(t *testing.T) {
	svc, err := NewService(testOperationConfig(""), testLogger)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	output, _, err := svc.Optimize(context.Background(), testResumeInput())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	resume := output.OptimizedResume

	t.Run("PersonalInfoCopiedVerbatim", func(t *testing.T) {
		if resume.PersonalInfo.Name != "Anna Svensson" {
			t.Errorf("Expected original name, got %q", resume.PersonalInfo.Name)
		}
		if resume.PersonalInfo.Email != "anna@example.com" {
			t.Errorf("Expected original email, got %q", resume.PersonalInfo.Email)
		}
		if resume.PersonalInfo.Address != "Stockholm, Sverige" {
			t.Errorf("Expected original location as address, got %q", resume.PersonalInfo.Address)
		}
	})

	t.Run("ProfileSummaryInterpolation", func(t *testing.T) {
		if !strings.HasPrefix(resume.ProfileSummary, "Erfaren Utvecklare med stark bakgrund inom ") {
			t.Errorf("Unexpected summary prefix: %q", resume.ProfileSummary)
		}
		// React and Teamarbete are in the job description, in vocabulary order
		if !strings.Contains(resume.ProfileSummary, "React") {
			t.Errorf("Expected React in summary, got %q", resume.ProfileSummary)
		}
	})

	t.Run("ExperienceSuffixAndAchievements", func(t *testing.T) {
		if len(resume.WorkExperience) != 1 {
			t.Fatalf("Expected 1 experience entry, got %d", len(resume.WorkExperience))
		}
		exp := resume.WorkExperience[0]
		if exp.Description != "Byggde saker. - Optimerat för att matcha nyckelkrav i jobbeskrivningen." {
			t.Errorf("Unexpected description: %q", exp.Description)
		}
		if len(exp.KeyAchievements) != 3 {
			t.Errorf("Expected 3 fixed achievements, got %d", len(exp.KeyAchievements))
		}
	})

	t.Run("CoreCompetencies", func(t *testing.T) {
		if len(resume.CoreCompetencies) > 10 {
			t.Errorf("Expected at most 10 competencies, got %d", len(resume.CoreCompetencies))
		}
		if !containsString(resume.CoreCompetencies, "React") {
			t.Errorf("Expected React in competencies, got %v", resume.CoreCompetencies)
		}
		if !containsString(resume.CoreCompetencies, "Teamarbete") {
			t.Errorf("Expected Teamarbete in competencies, got %v", resume.CoreCompetencies)
		}
		if !containsString(resume.CoreCompetencies, "Problemlösning") {
			t.Errorf("Expected fixed generic competency, got %v", resume.CoreCompetencies)
		}
	})

	t.Run("Languages", func(t *testing.T) {
		want := []types.LanguageSkill{
			{Language: "Svenska", Proficiency: "Modersmål"},
			{Language: "Engelska", Proficiency: "Flyt"},
		}
		if !reflect.DeepEqual(resume.Languages, want) {
			t.Errorf("Unexpected languages: %v", resume.Languages)
		}
	})
}

func TestServiceAIPathWithFakeProvider(t *testing.T) {
	resume := BuildFallback(testResumeInput())

	svc := &Service{
		Provider: &fakeProvider{
			resume: resume,
			usage:  &TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
		},
		logger: testLogger,
	}

	output, usage, err := svc.Optimize(context.Background(), testResumeInput())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if !output.Success {
		t.Error("Expected success")
	}
	if output.OptimizationNotes != NotesAI {
		t.Errorf("Expected AI notes, got %q", output.OptimizationNotes)
	}
	if usage == nil || usage.TotalTokens != 150 {
		t.Errorf("Expected token usage to pass through, got %v", usage)
	}
}

func TestServiceValidationWarningsDoNotBlockSuccess(t *testing.T) {
	// Resume missing education and competencies still succeeds with warnings
	incomplete := types.OptimizedResume{
		PersonalInfo:   types.PersonalInfo{Name: "Anna Svensson"},
		ProfileSummary: "Sammanfattning.",
		WorkExperience: []types.OptimizedExperience{
			{Title: "Utvecklare", Company: "Acme AB", Description: "Byggde saker."},
		},
	}

	svc := &Service{
		Provider: &fakeProvider{resume: incomplete},
		logger:   testLogger,
	}

	output, _, err := svc.Optimize(context.Background(), testResumeInput())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if !output.Success {
		t.Error("Expected success despite validation warnings")
	}
	if output.OptimizationNotes != NotesAIAdjustments {
		t.Errorf("Expected adjustment notes, got %q", output.OptimizationNotes)
	}
	if !containsString(output.ValidationWarnings, "At least one education entry is required") {
		t.Errorf("Expected education warning, got %v", output.ValidationWarnings)
	}
	if !containsString(output.ValidationWarnings, "Core competencies are required") {
		t.Errorf("Expected competencies warning, got %v", output.ValidationWarnings)
	}
}

func TestServiceFallsBackOnProviderError(t *testing.T) {
	svc := &Service{
		Provider: &fakeProvider{err: fmt.Errorf("model unavailable")},
		logger:   testLogger,
	}

	output, usage, err := svc.Optimize(context.Background(), testResumeInput())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if usage != nil {
		t.Error("Expected no token usage when falling back")
	}
	if !output.Success {
		t.Error("Expected fallback to report success")
	}
	if output.OptimizationNotes != NotesFallback {
		t.Errorf("Expected fallback notes, got %q", output.OptimizationNotes)
	}
}

func TestServiceRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := &Service{
		Provider: &fakeProvider{err: fmt.Errorf("canceled mid-call")},
		logger:   testLogger,
	}

	_, _, err := svc.Optimize(ctx, testResumeInput())
	if err == nil {
		t.Error("Expected error when context is canceled")
	}
}

func TestServiceUnsupportedProvider(t *testing.T) {
	cfg := testOperationConfig("some-key")
	cfg.Provider = "unknown"

	if _, err := NewService(cfg, testLogger); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func BenchmarkBuildFallback(b *testing.B) {
	input := testResumeInput()
	for b.Loop() {
		BuildFallback(input)
	}
}
