package normalize

import (
	"github.com/pranav-iyer/relscribe/core"
)

// fromRelease normalizes an API release payload. The identifier hint
// carries the owner/repo pair, which is the project name.
func fromRelease(raw *core.RawDocument) (*core.ReleaseRecord, error) {
	rel := raw.Release
	if rel == nil {
		return nil, &core.MalformedSourceError{Reason: "missing release payload"}
	}
	project := raw.ProjectHint
	if project == "" {
		return nil, &core.MalformedSourceError{Reason: "missing project name"}
	}
	version := core.CanonicalVersion(rel.TagName)
	if version == "" {
		return nil, &core.MalformedSourceError{Reason: "missing release tag"}
	}

	rec := &core.ReleaseRecord{
		ProjectName: project,
		Version:     version,
	}
	if rel.PublishedAt != nil {
		t := rel.PublishedAt.UTC()
		rec.ReleaseDate = &t
	}

	rec.Sections = markdownSections(rel.Body, "Overview")

	for _, a := range rel.Assets {
		rec.DownloadLinks = appendLink(rec.DownloadLinks, core.DownloadLink{Label: a.Name, URL: a.URL})
	}
	for _, l := range downloadLinksFromMarkdown(rel.Body) {
		rec.DownloadLinks = appendLink(rec.DownloadLinks, l)
	}

	rec.Contributors = contributorSet(rel.Author, rel.Body)
	return rec, nil
}
