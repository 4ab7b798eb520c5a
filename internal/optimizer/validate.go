package optimizer

import (
	"fmt"

	"cvoptimera/internal/types"
)

// ValidateOptimizedResume checks an optimized resume for missing required
// content and returns advisory warnings. Warnings never fail an optimization;
// the caller attaches them to the output for the consumer to act on.
func ValidateOptimizedResume(r types.OptimizedResume) []string {
	var warnings []string

	if r.PersonalInfo.Name == "" {
		warnings = append(warnings, "Personal info: Name is required")
	}

	if r.ProfileSummary == "" {
		warnings = append(warnings, "Profile summary is required")
	}

	if len(r.WorkExperience) == 0 {
		warnings = append(warnings, "At least one work experience is required")
	}
	for i, exp := range r.WorkExperience {
		if exp.Title == "" {
			warnings = append(warnings, fmt.Sprintf("Work experience %d: Title is required", i+1))
		}
		if exp.Company == "" {
			warnings = append(warnings, fmt.Sprintf("Work experience %d: Company is required", i+1))
		}
		if exp.Description == "" {
			warnings = append(warnings, fmt.Sprintf("Work experience %d: Description is required", i+1))
		}
	}

	if len(r.Education) == 0 {
		warnings = append(warnings, "At least one education entry is required")
	}
	for i, edu := range r.Education {
		if edu.Degree == "" {
			warnings = append(warnings, fmt.Sprintf("Education %d: Degree is required", i+1))
		}
		if edu.Institution == "" {
			warnings = append(warnings, fmt.Sprintf("Education %d: Institution is required", i+1))
		}
	}

	if len(r.CoreCompetencies) == 0 {
		warnings = append(warnings, "Core competencies are required")
	}

	return warnings
}
