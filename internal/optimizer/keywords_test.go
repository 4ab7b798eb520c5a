package optimizer

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		jobText  string
		expected []string
	}{
		{
			name:     "matches in vocabulary order",
			jobText:  "Vi söker någon med Teamarbete, Docker och React i bagaget.",
			expected: []string{"React", "Docker", "Teamarbete"},
		},
		{
			name:     "case-insensitive matching",
			jobText:  "erfarenhet av JAVASCRIPT och scrum",
			expected: []string{"JavaScript", "Java", "Scrum"},
		},
		{
			name:     "no matches",
			jobText:  "Vi söker en trädgårdsmästare.",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.jobText)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractKeywords() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCategorizeSkills(t *testing.T) {
	skills := []string{"JavaScript", "React", "Git", "Scrum", "Figma"}
	ts := CategorizeSkills(skills)

	if !reflect.DeepEqual(ts.ProgrammingLanguages, []string{"JavaScript"}) {
		t.Errorf("Unexpected programming languages: %v", ts.ProgrammingLanguages)
	}
	if !reflect.DeepEqual(ts.Frameworks, []string{"React"}) {
		t.Errorf("Unexpected frameworks: %v", ts.Frameworks)
	}
	if !reflect.DeepEqual(ts.Tools, []string{"Git"}) {
		t.Errorf("Unexpected tools: %v", ts.Tools)
	}
	// Other collects skills matching no common technology term
	if !reflect.DeepEqual(ts.Other, []string{"Scrum", "Figma"}) {
		t.Errorf("Unexpected other bucket: %v", ts.Other)
	}
	if len(ts.Databases) != 0 || len(ts.Cloud) != 0 {
		t.Error("Expected empty databases and cloud buckets")
	}
}

func TestCategorizeSkillsEmpty(t *testing.T) {
	ts := CategorizeSkills(nil)
	if ts.ProgrammingLanguages == nil || ts.Other == nil {
		t.Error("Expected empty slices, not nil")
	}
	if len(ts.ProgrammingLanguages) != 0 || len(ts.Other) != 0 {
		t.Error("Expected no skills in any bucket")
	}
}
