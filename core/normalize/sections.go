package normalize

import (
	"regexp"
	"strings"

	"github.com/pranav-iyer/relscribe/core"
)

// sectionHeading matches the markdown headings that open a new
// section. Levels 3+ stay inside the enclosing section body; release
// notes use them for sub-structure, not for new topics.
var sectionHeading = regexp.MustCompile(`^(#{1,2})\s+(.+)$`)

// markdownSections partitions a markdown body into heading-delimited
// sections. Content before the first heading lands under
// defaultHeading. Empty sections are dropped and duplicate headings
// are merged into their first occurrence.
func markdownSections(body, defaultHeading string) []core.Section {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	var (
		sections []core.Section
		index    = map[string]int{}
		heading  = defaultHeading
		buf      []string
	)
	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = nil
		if text == "" || heading == "" {
			return
		}
		if i, ok := index[heading]; ok {
			sections[i].Body += "\n\n" + text
			return
		}
		index[heading] = len(sections)
		sections = append(sections, core.Section{Heading: heading, Body: text})
	}

	for _, line := range strings.Split(body, "\n") {
		if m := sectionHeading.FindStringSubmatch(line); m != nil {
			flush()
			heading = strings.TrimSpace(m[2])
			continue
		}
		buf = append(buf, line)
	}
	flush()
	return sections
}
