package extractor

import (
	"strings"
	"testing"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
)

func testClassificationConfig() config.ClassificationConfig {
	return config.ClassificationConfig{
		CookieIndicators: []string{
			"cookie policy", "cookies", "gdpr", "consent", "samtycke", "kakor",
			"acceptera alla", "accept all", "integritetspolicy", "privacy policy",
		},
		ErrorIndicators: []string{
			"404", "403", "500", "page not found", "access denied",
			"sidan kunde inte hittas", "sidan finns inte", "ett fel uppstod",
		},
		LoginIndicators: []string{
			"log in", "logga in", "sign in", "password", "lösenord",
			"username", "användarnamn", "skapa konto", "create account",
		},
		JobIndicators: []string{
			"ansvar", "responsibilities", "krav", "requirements",
			"kvalifikationer", "qualifications", "erfarenhet", "experience",
			"ansökan", "application", "lön", "salary", "vi söker", "tjänsten",
			"meriterande", "anställning", "heltid", "deltid", "rekrytering",
		},
		CookieMaxLength: 2000,
		LoginMaxLength:  1000,
		JobMinLength:    500,
	}
}

func TestClassify(t *testing.T) {
	c := newClassifier(testClassificationConfig())

	// Padding free of any indicator terms
	pad := func(n int) string { return strings.Repeat("x ", n/2) }

	tests := []struct {
		name     string
		text     string
		wantCode string
	}{
		{
			name:     "cookie consent wall",
			text:     "Vi använder cookies. Acceptera alla kakor för att fortsätta. " + pad(200),
			wantCode: errors.ErrCodeCookieOnlyPage,
		},
		{
			name: "cookie wall wins over error indicators",
			// Contains "404" but the consent wall classification runs first
			text:     "Vi använder cookies enligt vår integritetspolicy, artikel 404. " + pad(200),
			wantCode: errors.ErrCodeCookieOnlyPage,
		},
		{
			name:     "error page",
			text:     "Sidan kunde inte hittas. " + pad(100),
			wantCode: errors.ErrCodeErrorPage,
		},
		{
			name:     "login wall",
			text:     "Logga in med ditt lösenord för att se annonsen. " + pad(100),
			wantCode: errors.ErrCodeAccessWalled,
		},
		{
			name:     "long page without job vocabulary",
			text:     "Företaget grundades 1987 och har kontor i hela Norden. " + pad(900),
			wantCode: errors.ErrCodeNoJobContent,
		},
		{
			name: "job posting passes",
			text: "Vi söker en utvecklare. Krav: erfarenhet av React. Ansökan sker via vår hemsida. " + pad(1400),
		},
		{
			name: "short text with job vocabulary passes",
			// Below the no-content length threshold, so the final check never fires
			text: "Vi söker en utvecklare med erfarenhet.",
		},
		{
			name: "long cookie text falls through to job check",
			// Two cookie indicators but too long for a pure consent page
			text: "Vi använder cookies enligt gdpr. Vi söker en utvecklare. Krav: erfarenhet. " + pad(2100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.classify(tt.text)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("classify() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("classify() = nil, want code %s", tt.wantCode)
			}
			if code := errors.CodeOf(err); code != tt.wantCode {
				t.Errorf("classify() code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestClassifyAcceptsMediumLengthJobText(t *testing.T) {
	c := newClassifier(testClassificationConfig())

	// 1500 characters with clear job vocabulary must pass even though it is
	// longer than the consent and login thresholds
	text := "Vi söker en senior utvecklare. Krav: fem års erfarenhet. " + strings.Repeat("a ", 721)
	if len(text) < 1400 || len(text) > 1600 {
		t.Fatalf("Fixture drifted, length %d", len(text))
	}
	if err := c.classify(text); err != nil {
		t.Errorf("classify() = %v, want nil", err)
	}
}

func TestCountIndicators(t *testing.T) {
	lowered := "vi använder cookies och fler cookies enligt gdpr"
	// "cookies" repeats but counts once
	if got := countIndicators(lowered, []string{"cookies", "gdpr", "consent"}); got != 2 {
		t.Errorf("countIndicators() = %d, want 2", got)
	}
}
