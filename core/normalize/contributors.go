package normalize

import (
	"regexp"
	"strings"
)

// mention matches GitHub-style @handle mentions, including linked
// ones like [@user](url). Handles are case-insensitive upstream, so
// deduplication folds case but the first-seen spelling is kept.
var mention = regexp.MustCompile(`(?:^|[\s(,\[])@([A-Za-z0-9](?:[A-Za-z0-9-]{0,37}[A-Za-z0-9])?)`)

// contributorSet collects the release author plus @mentions from the
// given bodies. Absence is valid; the result may be empty.
func contributorSet(author string, bodies ...string) []string {
	var handles []string
	seen := map[string]bool{}
	add := func(h string) {
		h = strings.TrimSpace(h)
		if h == "" {
			return
		}
		key := strings.ToLower(h)
		if seen[key] {
			return
		}
		seen[key] = true
		handles = append(handles, h)
	}

	add(author)
	for _, body := range bodies {
		for _, m := range mention.FindAllStringSubmatch(body, -1) {
			add(m[1])
		}
	}
	return handles
}
