package extractor

import (
	"strings"

	"cvoptimera/internal/config"
	"cvoptimera/internal/errors"
)

// classifier rejects pages that carry no usable job posting. Checks run in a
// fixed order against the lowercased text: cookie walls first, then error
// pages, then login walls, then a final job-vocabulary check. Order matters:
// a consent page quoting an error code is still a consent page.
type classifier struct {
	cfg config.ClassificationConfig
}

func newClassifier(cfg config.ClassificationConfig) *classifier {
	return &classifier{cfg: cfg}
}

// classify returns nil when the text looks like a job posting, or an
// extraction error naming what the page actually is.
func (c *classifier) classify(text string) error {
	lowered := strings.ToLower(text)
	length := len(text)

	if countIndicators(lowered, c.cfg.CookieIndicators) >= 2 && length < c.cfg.CookieMaxLength {
		return errors.NewExtractionError(errors.ErrCodeCookieOnlyPage,
			"Page contains only a cookie consent wall", nil)
	}

	if countIndicators(lowered, c.cfg.ErrorIndicators) >= 1 {
		return errors.NewExtractionError(errors.ErrCodeErrorPage,
			"Page is an error page", nil)
	}

	if countIndicators(lowered, c.cfg.LoginIndicators) >= 2 && length < c.cfg.LoginMaxLength {
		return errors.NewExtractionError(errors.ErrCodeAccessWalled,
			"Page requires login to view the job posting", nil)
	}

	if countIndicators(lowered, c.cfg.JobIndicators) < 2 && length > c.cfg.JobMinLength {
		return errors.NewExtractionError(errors.ErrCodeNoJobContent,
			"Page does not look like a job posting", nil)
	}

	return nil
}

// countIndicators counts how many vocabulary terms occur in the lowered text.
// Each term counts once no matter how often it repeats.
func countIndicators(lowered string, indicators []string) int {
	count := 0
	for _, indicator := range indicators {
		if strings.Contains(lowered, strings.ToLower(indicator)) {
			count++
		}
	}
	return count
}
