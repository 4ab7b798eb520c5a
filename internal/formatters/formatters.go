package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"cvoptimera/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "OptimizeResumeOutput", &OptimizeTextFormatter{})
	registry.RegisterFormatter("markdown", "OptimizeResumeOutput", &OptimizeMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeData", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeData", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "ExtractJobOutput", &ExtractTextFormatter{})
	registry.RegisterFormatter("markdown", "ExtractJobOutput", &ExtractMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.OptimizeResumeOutput:
		return "OptimizeResumeOutput"
	case types.ResumeData:
		return "ResumeData"
	case types.ExtractJobOutput:
		return "ExtractJobOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// OptimizeTextFormatter handles text formatting for optimization results
type OptimizeTextFormatter struct{}

func (otf *OptimizeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizeResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected OptimizeResumeOutput, got %T", data)
	}

	resume := result.OptimizedResume
	var output strings.Builder

	output.WriteString("=== OPTIMIZED RESUME ===\n\n")
	output.WriteString(resume.PersonalInfo.Name)
	output.WriteString("\n")
	writeContactLine(&output, resume.PersonalInfo)
	output.WriteString("\n")

	output.WriteString("=== PROFILE ===\n")
	output.WriteString(resume.ProfileSummary)
	output.WriteString("\n\n")

	if len(resume.WorkExperience) > 0 {
		output.WriteString("=== WORK EXPERIENCE ===\n")
		for _, exp := range resume.WorkExperience {
			output.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate))
			output.WriteString(exp.Description)
			output.WriteString("\n")
			for _, achievement := range exp.KeyAchievements {
				output.WriteString(fmt.Sprintf("  - %s\n", achievement))
			}
			output.WriteString("\n")
		}
	}

	if len(resume.Education) > 0 {
		output.WriteString("=== EDUCATION ===\n")
		for _, edu := range resume.Education {
			output.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", edu.Degree, edu.Institution, edu.StartDate, edu.EndDate))
		}
		output.WriteString("\n")
	}

	if len(resume.CoreCompetencies) > 0 {
		output.WriteString("=== CORE COMPETENCIES ===\n")
		output.WriteString(strings.Join(resume.CoreCompetencies, ", "))
		output.WriteString("\n\n")
	}

	writeTechnicalSkillsText(&output, resume.TechnicalSkills)

	if len(resume.Languages) > 0 {
		output.WriteString("=== LANGUAGES ===\n")
		for _, lang := range resume.Languages {
			output.WriteString(fmt.Sprintf("%s: %s\n", lang.Language, lang.Proficiency))
		}
		output.WriteString("\n")
	}

	if len(result.ValidationWarnings) > 0 {
		output.WriteString("=== WARNINGS ===\n")
		for _, warning := range result.ValidationWarnings {
			output.WriteString(fmt.Sprintf("- %s\n", warning))
		}
		output.WriteString("\n")
	}

	if result.OptimizationNotes != "" {
		output.WriteString("Notes: ")
		output.WriteString(result.OptimizationNotes)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (otf *OptimizeTextFormatter) SupportedType() string {
	return "OptimizeResumeOutput"
}

func writeContactLine(output *strings.Builder, info types.PersonalInfo) {
	parts := []string{}
	for _, part := range []string{info.Email, info.Phone, info.Address} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 0 {
		output.WriteString(strings.Join(parts, " | "))
		output.WriteString("\n")
	}
}

func writeTechnicalSkillsText(output *strings.Builder, skills types.TechnicalSkills) {
	buckets := []struct {
		label  string
		values []string
	}{
		{"Programming Languages", skills.ProgrammingLanguages},
		{"Frameworks", skills.Frameworks},
		{"Tools", skills.Tools},
		{"Databases", skills.Databases},
		{"Cloud", skills.Cloud},
		{"Other", skills.Other},
	}

	wroteHeader := false
	for _, bucket := range buckets {
		if len(bucket.values) == 0 {
			continue
		}
		if !wroteHeader {
			output.WriteString("=== TECHNICAL SKILLS ===\n")
			wroteHeader = true
		}
		output.WriteString(fmt.Sprintf("%s: %s\n", bucket.label, strings.Join(bucket.values, ", ")))
	}
	if wroteHeader {
		output.WriteString("\n")
	}
}

// OptimizeMarkdownFormatter handles markdown formatting for optimization results
type OptimizeMarkdownFormatter struct{}

func (omf *OptimizeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizeResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected OptimizeResumeOutput, got %T", data)
	}

	resume := result.OptimizedResume
	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", resume.PersonalInfo.Name))
	writeContactLine(&output, resume.PersonalInfo)
	output.WriteString("\n")

	output.WriteString("## Profile\n\n")
	output.WriteString(resume.ProfileSummary)
	output.WriteString("\n\n")

	if len(resume.WorkExperience) > 0 {
		output.WriteString("## Work Experience\n\n")
		for _, exp := range resume.WorkExperience {
			output.WriteString(fmt.Sprintf("### %s, %s\n\n", exp.Title, exp.Company))
			output.WriteString(fmt.Sprintf("*%s - %s*\n\n", exp.StartDate, exp.EndDate))
			output.WriteString(exp.Description)
			output.WriteString("\n\n")
			for _, achievement := range exp.KeyAchievements {
				output.WriteString(fmt.Sprintf("- %s\n", achievement))
			}
			if len(exp.KeyAchievements) > 0 {
				output.WriteString("\n")
			}
		}
	}

	if len(resume.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range resume.Education {
			output.WriteString(fmt.Sprintf("- **%s**, %s (%s - %s)\n", edu.Degree, edu.Institution, edu.StartDate, edu.EndDate))
		}
		output.WriteString("\n")
	}

	if len(resume.CoreCompetencies) > 0 {
		output.WriteString("## Core Competencies\n\n")
		output.WriteString(strings.Join(resume.CoreCompetencies, ", "))
		output.WriteString("\n\n")
	}

	writeTechnicalSkillsMarkdown(&output, resume.TechnicalSkills)

	if len(resume.Languages) > 0 {
		output.WriteString("## Languages\n\n")
		for _, lang := range resume.Languages {
			output.WriteString(fmt.Sprintf("- %s: %s\n", lang.Language, lang.Proficiency))
		}
		output.WriteString("\n")
	}

	if len(result.ValidationWarnings) > 0 {
		output.WriteString("## Warnings\n\n")
		for _, warning := range result.ValidationWarnings {
			output.WriteString(fmt.Sprintf("- %s\n", warning))
		}
		output.WriteString("\n")
	}

	if result.OptimizationNotes != "" {
		output.WriteString(fmt.Sprintf("*%s*\n", result.OptimizationNotes))
	}

	return output.String(), nil
}

func (omf *OptimizeMarkdownFormatter) SupportedType() string {
	return "OptimizeResumeOutput"
}

func writeTechnicalSkillsMarkdown(output *strings.Builder, skills types.TechnicalSkills) {
	buckets := []struct {
		label  string
		values []string
	}{
		{"Programming Languages", skills.ProgrammingLanguages},
		{"Frameworks", skills.Frameworks},
		{"Tools", skills.Tools},
		{"Databases", skills.Databases},
		{"Cloud", skills.Cloud},
		{"Other", skills.Other},
	}

	wroteHeader := false
	for _, bucket := range buckets {
		if len(bucket.values) == 0 {
			continue
		}
		if !wroteHeader {
			output.WriteString("## Technical Skills\n\n")
			wroteHeader = true
		}
		output.WriteString(fmt.Sprintf("- **%s:** %s\n", bucket.label, strings.Join(bucket.values, ", ")))
	}
	if wroteHeader {
		output.WriteString("\n")
	}
}

// ResumeTextFormatter handles text formatting for parsed resumes
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	resume, ok := data.(types.ResumeData)
	if !ok {
		return "", fmt.Errorf("expected ResumeData, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PARSED RESUME ===\n\n")
	output.WriteString(fmt.Sprintf("Name: %s\n", resume.Name))
	output.WriteString(fmt.Sprintf("Email: %s\n", resume.Email))
	output.WriteString(fmt.Sprintf("Phone: %s\n", resume.Phone))
	output.WriteString(fmt.Sprintf("Location: %s\n\n", resume.Location))

	if resume.Summary != "" {
		output.WriteString("Summary:\n")
		output.WriteString(resume.Summary)
		output.WriteString("\n\n")
	}

	if len(resume.Experience) > 0 {
		output.WriteString("=== EXPERIENCE ===\n")
		for _, exp := range resume.Experience {
			output.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate))
			if exp.Description != "" {
				output.WriteString(exp.Description)
				output.WriteString("\n")
			}
			output.WriteString("\n")
		}
	}

	if len(resume.Education) > 0 {
		output.WriteString("=== EDUCATION ===\n")
		for _, edu := range resume.Education {
			output.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", edu.Degree, edu.Institution, edu.StartDate, edu.EndDate))
		}
		output.WriteString("\n")
	}

	if len(resume.Skills) > 0 {
		output.WriteString("=== SKILLS ===\n")
		output.WriteString(strings.Join(resume.Skills, ", "))
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeData"
}

// ResumeMarkdownFormatter handles markdown formatting for parsed resumes
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	resume, ok := data.(types.ResumeData)
	if !ok {
		return "", fmt.Errorf("expected ResumeData, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", resume.Name))
	contact := []string{}
	for _, part := range []string{resume.Email, resume.Phone, resume.Location} {
		if part != "" {
			contact = append(contact, part)
		}
	}
	if len(contact) > 0 {
		output.WriteString(strings.Join(contact, " | "))
		output.WriteString("\n\n")
	}

	if resume.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(resume.Summary)
		output.WriteString("\n\n")
	}

	if len(resume.Experience) > 0 {
		output.WriteString("## Experience\n\n")
		for _, exp := range resume.Experience {
			output.WriteString(fmt.Sprintf("### %s, %s\n\n", exp.Title, exp.Company))
			output.WriteString(fmt.Sprintf("*%s - %s*\n\n", exp.StartDate, exp.EndDate))
			if exp.Description != "" {
				output.WriteString(exp.Description)
				output.WriteString("\n\n")
			}
		}
	}

	if len(resume.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range resume.Education {
			output.WriteString(fmt.Sprintf("- **%s**, %s (%s - %s)\n", edu.Degree, edu.Institution, edu.StartDate, edu.EndDate))
		}
		output.WriteString("\n")
	}

	if len(resume.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		output.WriteString(strings.Join(resume.Skills, ", "))
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeData"
}

// ExtractTextFormatter handles text formatting for job extraction results
type ExtractTextFormatter struct{}

func (etf *ExtractTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractJobOutput)
	if !ok {
		return "", fmt.Errorf("expected ExtractJobOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== EXTRACTED JOB POSTING ===\n\n")
	output.WriteString(fmt.Sprintf("URL: %s\n", result.URL))
	output.WriteString(fmt.Sprintf("Source: %s\n\n", result.Source))
	output.WriteString(result.Content)
	output.WriteString("\n")

	return output.String(), nil
}

func (etf *ExtractTextFormatter) SupportedType() string {
	return "ExtractJobOutput"
}

// ExtractMarkdownFormatter handles markdown formatting for job extraction results
type ExtractMarkdownFormatter struct{}

func (emf *ExtractMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractJobOutput)
	if !ok {
		return "", fmt.Errorf("expected ExtractJobOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Extracted Job Posting\n\n")
	output.WriteString(fmt.Sprintf("**URL:** %s\n\n", result.URL))
	output.WriteString(fmt.Sprintf("**Source:** %s\n\n", result.Source))
	output.WriteString(result.Content)
	output.WriteString("\n")

	return output.String(), nil
}

func (emf *ExtractMarkdownFormatter) SupportedType() string {
	return "ExtractJobOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
