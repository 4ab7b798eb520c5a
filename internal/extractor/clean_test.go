package extractor

import (
	"strings"
	"testing"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		maxLength int
		expected  string
	}{
		{
			name:      "strips scripts and navigation chrome",
			html:      `<html><head><script>var x = 1;</script><style>body{}</style></head><body><nav>Meny</nav><header>Topp</header><p>Vi söker en utvecklare.</p><footer>Sidfot</footer><aside>Annons</aside></body></html>`,
			maxLength: 8000,
			expected:  "Vi söker en utvecklare.",
		},
		{
			name:      "collapses whitespace",
			html:      "<p>Vi   söker\n\n\ten\t utvecklare.</p>",
			maxLength: 8000,
			expected:  "Vi söker en utvecklare.",
		},
		{
			name:      "truncates to the limit",
			html:      "<p>" + strings.Repeat("a", 100) + "</p>",
			maxLength: 10,
			expected:  strings.Repeat("a", 10),
		},
		{
			name:      "plain text passes through",
			html:      "  Bara   text  ",
			maxLength: 8000,
			expected:  "Bara text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanHTML(tt.html, tt.maxLength)
			if got != tt.expected {
				t.Errorf("cleanHTML() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCleanHTMLRuneSafeTruncation(t *testing.T) {
	text := strings.Repeat("å", 20)
	got := cleanHTML(text, 5)
	if got != "ååååå" {
		t.Errorf("cleanHTML() = %q, want five å", got)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := collapseWhitespace(" a \n b\t\tc "); got != "a b c" {
		t.Errorf("collapseWhitespace() = %q", got)
	}
}
