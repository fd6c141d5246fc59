package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// datePatterns are tried in order against page text when no
// structured date is available. The first three capture what follows
// a label; the last two match bare date shapes.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)release date:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)published:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)date:\s*([^\n]+)`),
	regexp.MustCompile(`[A-Z][a-z]+ \d{1,2}, \d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
}

// parseLooseDate parses a free-form date string leniently. A date we
// cannot parse is simply absent, never an error.
func parseLooseDate(s string) *time.Time {
	s = strings.Trim(strings.TrimSpace(s), " .,)")
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// dateFromText scans page text for the first recognizable date.
func dateFromText(text string) *time.Time {
	for _, pat := range datePatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := m[0]
		if len(m) > 1 {
			candidate = m[1]
		}
		if t := parseLooseDate(candidate); t != nil {
			return t
		}
	}
	return nil
}
