package optimizer

import (
	"strings"

	"cvoptimera/internal/types"
)

// keywordVocabulary lists the skill terms matched against job descriptions.
// Order matters: fallback output keeps the vocabulary order, not the order
// terms appear in the job text.
var keywordVocabulary = []string{
	"React", "JavaScript", "TypeScript", "Node.js", "Python", "Java", "C#",
	"AWS", "Azure", "Docker", "Kubernetes", "Git", "CI/CD", "Agil", "Scrum",
	"SQL", "MongoDB", "PostgreSQL", "Redis", "Elasticsearch",
	"Projektledning", "Teamarbete", "Problemlösning", "Kommunikation",
}

// Skill bucket vocabularies for the deterministic fallback. Matching is
// case-insensitive substring containment.
var (
	languageTerms  = []string{"javascript", "typescript", "python", "java", "c#", "go", "rust"}
	frameworkTerms = []string{"react", "vue", "angular", "node", "express", "spring", "django"}
	toolTerms      = []string{"git", "docker", "kubernetes", "jenkins", "jira", "confluence"}
	commonTerms    = []string{"javascript", "typescript", "python", "java", "react", "vue", "angular", "git", "docker"}
)

// ExtractKeywords returns the vocabulary terms present in the job description,
// matched case-insensitively, in vocabulary order.
func ExtractKeywords(jobDescription string) []string {
	lowered := strings.ToLower(jobDescription)

	var matched []string
	for _, term := range keywordVocabulary {
		if strings.Contains(lowered, strings.ToLower(term)) {
			matched = append(matched, term)
		}
	}
	return matched
}

// CategorizeSkills sorts flat skill strings into presentation buckets. A skill
// can land in several buckets; "other" collects skills matching none of the
// common technology terms.
func CategorizeSkills(skills []string) types.TechnicalSkills {
	ts := types.TechnicalSkills{
		ProgrammingLanguages: filterSkills(skills, languageTerms, true),
		Frameworks:           filterSkills(skills, frameworkTerms, true),
		Tools:                filterSkills(skills, toolTerms, true),
		Databases:            []string{},
		Cloud:                []string{},
		Other:                filterSkills(skills, commonTerms, false),
	}
	return ts
}

// filterSkills keeps skills that match (or, when keepMatch is false, do not
// match) any of the given terms as a case-insensitive substring.
func filterSkills(skills, terms []string, keepMatch bool) []string {
	result := []string{}
	for _, skill := range skills {
		lowered := strings.ToLower(skill)
		matched := false
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				matched = true
				break
			}
		}
		if matched == keepMatch {
			result = append(result, skill)
		}
	}
	return result
}
