// Package parser extracts structured resume data from free-form text.
//
// The heuristics target Swedish-language resumes with the common layout of a
// contact block, a "Profil" summary, an "Arbetslivserfarenhet" section and an
// "Utbildning" section. Parsing is pure and deterministic: no I/O, no errors.
// Every field fails closed to its zero value (or documented default) when the
// text does not match, so a partially recognized resume still yields a usable
// result.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"cvoptimera/internal/types"
)

// DefaultName is used when no candidate name line is found.
const DefaultName = "Okänd namn"

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+46\s?[0-9\s-]{8,15}|0[0-9\s-]{8,12}`)

	nameWordRe = regexp.MustCompile(`^[A-ZÅÄÖ][a-zåäö]+$`)

	profileHeadingRe = regexp.MustCompile(`(?i)Profil\s*`)
	// A summary section ends at the next section heading, a bullet list or a
	// line starting with a digit (typically a date range).
	summaryEndRe = regexp.MustCompile(`\n\s*[A-ZÅÄÖ][a-zåäö]+\s*\n|\n\s*•|\n\s*\d`)

	workHeadingRe = regexp.MustCompile(`(?i)Arbetslivserfarenhet\s*`)
	eduHeadingRe  = regexp.MustCompile(`(?i)Utbildning\s*`)

	// Entries start with a year followed by an en dash or hyphen, e.g.
	// "2022 – 2024" or "2025 –".
	entryStartRe = regexp.MustCompile(`\d{4}\s*[–-]`)
	entryRe      = regexp.MustCompile(`^(\d{4})\s*[–-][ \t]*([^\n]*)\n\s*([^\n]+?)\s*\n\s*([^\n]+?)[ \t]*\n?([\s\S]*)$`)
	yearRe       = regexp.MustCompile(`^\d{4}$`)

	bulletRe      = regexp.MustCompile(`•\s*([^\n•]+)`)
	parentheticRe = regexp.MustCompile(`\(([^)]+)\)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)

	capitalOrDigitRe = regexp.MustCompile(`^[A-ZÅÄÖ\d]`)
)

var swedishCities = []string{
	"Stockholm", "Göteborg", "Malmö", "Uppsala", "Luleå",
	"Linköping", "Örebro", "Västerås", "Helsingborg", "Norrköping",
}

// Parse extracts structured resume data from raw resume text.
func Parse(text string) types.ResumeData {
	return types.ResumeData{
		Name:       extractName(text),
		Email:      extractEmail(text),
		Phone:      extractPhone(text),
		Location:   extractLocation(text),
		Summary:    extractSummary(text),
		Experience: extractExperience(text),
		Education:  extractEducation(text),
		Skills:     extractSkills(text),
	}
}

// extractName scans the first five non-empty lines for one that looks like a
// person's name: two or three capitalized words. Lines containing common
// header words are skipped.
func extractName(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if strings.Contains(lower, "cv") ||
			strings.Contains(lower, "resume") ||
			strings.Contains(lower, "developer") ||
			strings.Contains(lower, "profil") {
			continue
		}

		words := strings.Fields(trimmed)
		if len(words) < 2 || len(words) > 3 {
			continue
		}
		allNames := true
		for _, word := range words {
			if !nameWordRe.MatchString(word) {
				allNames = false
				break
			}
		}
		if allNames {
			return trimmed
		}
	}

	return DefaultName
}

func extractEmail(text string) string {
	return emailRe.FindString(text)
}

// extractPhone matches Swedish phone formats (+46 prefix or a leading zero)
// and strips all internal whitespace.
func extractPhone(text string) string {
	match := phoneRe.FindString(text)
	if match == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(match, "")
}

// extractLocation returns "<city>, Sverige" for the first known Swedish city
// mentioned anywhere in the text.
func extractLocation(text string) string {
	for _, city := range swedishCities {
		if strings.Contains(text, city) {
			return city + ", Sverige"
		}
	}
	return ""
}

// extractSummary prefers the text of a "Profil" section. Without one it falls
// back to the first descriptive line near the top of the document, pulling in
// up to three continuation lines.
func extractSummary(text string) string {
	if loc := profileHeadingRe.FindStringIndex(text); loc != nil {
		section := text[loc[1]:]
		if end := summaryEndRe.FindStringIndex(section); end != nil {
			section = section[:end[0]]
		}
		return collapseWhitespace(section)
	}

	lines := strings.Split(text, "\n")
	limit := min(len(lines), 15)
	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if (utf8.RuneCountInString(line) > 50 && strings.Contains(line, "Developer")) ||
			strings.Contains(line, "utvecklare") {
			summary := line
			for j := i + 1; j < min(len(lines), i+4); j++ {
				next := strings.TrimSpace(lines[j])
				if utf8.RuneCountInString(next) > 20 && !capitalOrDigitRe.MatchString(next) {
					summary += " " + next
				} else {
					break
				}
			}
			return collapseWhitespace(summary)
		}
	}

	return ""
}

// extractExperience parses the section between "Arbetslivserfarenhet" and
// "Utbildning". Each entry is a year range line followed by a company line, a
// title line and an optional free-text description. An open-ended range means
// the position is current.
func extractExperience(text string) []types.ExperienceEntry {
	var experiences []types.ExperienceEntry

	loc := workHeadingRe.FindStringIndex(text)
	if loc == nil {
		return experiences
	}
	section := text[loc[1]:]
	if end := eduHeadingRe.FindStringIndex(section); end != nil {
		section = section[:end[0]]
	}

	for _, segment := range splitEntries(section) {
		m := entryRe.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		endInfo := strings.TrimSpace(m[2])
		endDate := "Nuvarande"
		if yearRe.MatchString(endInfo) {
			endDate = endInfo
		}
		experiences = append(experiences, types.ExperienceEntry{
			Title:       strings.TrimSpace(m[4]),
			Company:     strings.TrimSpace(m[3]),
			StartDate:   m[1],
			EndDate:     endDate,
			Description: collapseWhitespace(m[5]),
		})
	}

	return experiences
}

// extractEducation parses the "Utbildning" section to the end of the text.
// Entries follow the same shape as work experience with the institution line
// first; single-year entries default the end date to the start year.
func extractEducation(text string) []types.EducationEntry {
	var education []types.EducationEntry

	loc := eduHeadingRe.FindStringIndex(text)
	if loc == nil {
		return education
	}
	section := text[loc[1]:]

	for _, segment := range splitEntries(section) {
		m := entryRe.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		endInfo := strings.TrimSpace(m[2])
		endDate := m[1]
		if yearRe.MatchString(endInfo) {
			endDate = endInfo
		}
		education = append(education, types.EducationEntry{
			Degree:      strings.TrimSpace(m[4]),
			Institution: strings.TrimSpace(m[3]),
			StartDate:   m[1],
			EndDate:     endDate,
		})
	}

	return education
}

// splitEntries cuts a section into per-entry segments at each year range
// marker.
func splitEntries(section string) []string {
	starts := entryStartRe.FindAllStringIndex(section, -1)
	segments := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(section)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		segments = append(segments, section[start[0]:end])
	}
	return segments
}

// extractSkills collects bullet point fragments and parenthetical lists.
// Comma-separated fragments are split into individual skills and the result
// is deduplicated preserving first occurrence order.
func extractSkills(text string) []string {
	var skills []string

	for _, m := range bulletRe.FindAllStringSubmatch(text, -1) {
		skill := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(skill) <= 1 {
			continue
		}
		if strings.Contains(skill, ",") {
			for _, part := range strings.Split(skill, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					skills = append(skills, trimmed)
				}
			}
		} else {
			skills = append(skills, skill)
		}
	}

	for _, m := range parentheticRe.FindAllStringSubmatch(text, -1) {
		content := strings.TrimSpace(m[1])
		if !strings.Contains(content, ",") {
			continue
		}
		for _, part := range strings.Split(content, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
	}

	return dedupe(skills)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var result []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
