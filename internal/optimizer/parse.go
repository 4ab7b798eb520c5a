package optimizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"cvoptimera/internal/types"
)

// ExtractJSONObject returns the first top-level JSON object substring of s.
// Models sometimes wrap their JSON answer in prose or code fences; taking the
// span from the first '{' to the last '}' recovers the object in those cases.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// ParseOptimizedResume decodes a model response into an OptimizedResume.
// A direct unmarshal is tried first, then the JSON-object rescue.
func ParseOptimizedResume(responseText string) (types.OptimizedResume, error) {
	var resume types.OptimizedResume

	if err := json.Unmarshal([]byte(responseText), &resume); err == nil {
		return CleanOptimizedResume(resume), nil
	}

	candidate, ok := ExtractJSONObject(responseText)
	if !ok {
		return resume, fmt.Errorf("no JSON object found in model response")
	}

	if err := json.Unmarshal([]byte(candidate), &resume); err != nil {
		return resume, err
	}

	return CleanOptimizedResume(resume), nil
}

// CleanOptimizedResume normalizes a decoded resume: fills required defaults,
// replaces nil slices with empty ones and caps core competencies at ten.
func CleanOptimizedResume(r types.OptimizedResume) types.OptimizedResume {
	if r.ProfileSummary == "" {
		r.ProfileSummary = "Erfaren professionell med bred kompetens och stark bakgrund."
	}

	if r.WorkExperience == nil {
		r.WorkExperience = []types.OptimizedExperience{}
	}
	for i := range r.WorkExperience {
		if r.WorkExperience[i].KeyAchievements == nil {
			r.WorkExperience[i].KeyAchievements = []string{}
		}
	}

	if r.Education == nil {
		r.Education = []types.OptimizedEducation{}
	}

	if r.CoreCompetencies == nil {
		r.CoreCompetencies = []string{}
	}
	if len(r.CoreCompetencies) > 10 {
		r.CoreCompetencies = r.CoreCompetencies[:10]
	}

	r.TechnicalSkills = cleanTechnicalSkills(r.TechnicalSkills)

	if r.Languages == nil {
		r.Languages = []types.LanguageSkill{}
	}
	if r.Certifications == nil {
		r.Certifications = []types.Certification{}
	}

	return r
}

func cleanTechnicalSkills(ts types.TechnicalSkills) types.TechnicalSkills {
	if ts.ProgrammingLanguages == nil {
		ts.ProgrammingLanguages = []string{}
	}
	if ts.Frameworks == nil {
		ts.Frameworks = []string{}
	}
	if ts.Tools == nil {
		ts.Tools = []string{}
	}
	if ts.Databases == nil {
		ts.Databases = []string{}
	}
	if ts.Cloud == nil {
		ts.Cloud = []string{}
	}
	if ts.Other == nil {
		ts.Other = []string{}
	}
	return ts
}
