package types

// ResumeData is the structured result of parsing free-text resume content.
// Parsing is best effort: fields that cannot be recovered from the text are
// left empty (or hold their documented default) rather than causing an error.
type ResumeData struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Location   string           `json:"location"`
	Summary    string           `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
}

// ExperienceEntry is a single work history item in source-document order.
// Location is rarely recoverable from free text and is usually empty.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// EducationEntry is a single education item in source-document order.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// PersonalInfo carries the contact block of an optimized resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
}

// OptimizedExperience is a work history item rewritten for a target job.
type OptimizedExperience struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	Description     string   `json:"description"`
	KeyAchievements []string `json:"keyAchievements"`
}

// OptimizedEducation is an education item in the optimized resume.
type OptimizedEducation struct {
	Degree             string   `json:"degree"`
	Institution        string   `json:"institution"`
	Location           string   `json:"location"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	GPA                string   `json:"gpa,omitempty"`
	RelevantCoursework []string `json:"relevantCoursework,omitempty"`
}

// TechnicalSkills groups skills into presentation buckets.
type TechnicalSkills struct {
	ProgrammingLanguages []string `json:"programmingLanguages"`
	Frameworks           []string `json:"frameworks"`
	Tools                []string `json:"tools"`
	Databases            []string `json:"databases"`
	Cloud                []string `json:"cloud"`
	Other                []string `json:"other"`
}

// LanguageSkill pairs a language with a proficiency level
// (Grundläggande, Goda kunskaper, Flyt or Modersmål).
type LanguageSkill struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Certification is an optional credential entry.
type Certification struct {
	Name           string `json:"name"`
	Issuer         string `json:"issuer"`
	Date           string `json:"date"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	CredentialID   string `json:"credentialId,omitempty"`
}

// OptimizedResume is the complete export-ready resume document.
type OptimizedResume struct {
	PersonalInfo     PersonalInfo          `json:"personalInfo"`
	ProfileSummary   string                `json:"profileSummary"`
	WorkExperience   []OptimizedExperience `json:"workExperience"`
	Education        []OptimizedEducation  `json:"education"`
	CoreCompetencies []string              `json:"coreCompetencies"`
	TechnicalSkills  TechnicalSkills       `json:"technicalSkills"`
	Languages        []LanguageSkill       `json:"languages"`
	Certifications   []Certification       `json:"certifications"`
}

// OptimizeResumeInput represents the input for optimizing a resume
type OptimizeResumeInput struct {
	Resume         ResumeData `json:"resume"`
	JobDescription string     `json:"jobDescription"`
}

// OptimizeResumeOutput represents the result of an optimization run.
// Success stays true when validation finds problems; warnings are advisory.
type OptimizeResumeOutput struct {
	Success            bool            `json:"success"`
	OptimizedResume    OptimizedResume `json:"optimizedResume"`
	ValidationWarnings []string        `json:"validationWarnings,omitempty"`
	OptimizationNotes  string          `json:"optimizationNotes,omitempty"`
}

// ParseResumeInput represents the input for parsing resume text
type ParseResumeInput struct {
	ResumeText string `json:"resumeText"`
}

// ExtractJobInput represents the input for extracting job content from a URL
type ExtractJobInput struct {
	URL string `json:"url"`
}

// ExtractJobOutput represents the extracted job posting text
type ExtractJobOutput struct {
	URL     string `json:"url"`
	Content string `json:"content"`
	Source  string `json:"source"`
}
