// Package normalize converts fetched raw documents into canonical
// release records. Normalization is pure: no network, no filesystem.
// Only the minimum fields (project name, version) are required;
// everything else degrades to empty or absent rather than failing
// the record.
package normalize

import (
	"time"

	"github.com/pranav-iyer/relscribe/core"
)

// Normalize converts a raw document into a ReleaseRecord, branching
// on the source kind. It returns MalformedSourceError only when the
// project name or version cannot be determined.
func Normalize(raw *core.RawDocument) (*core.ReleaseRecord, error) {
	if raw == nil {
		return nil, &core.MalformedSourceError{Reason: "nil document"}
	}

	var (
		rec *core.ReleaseRecord
		err error
	)
	switch raw.SourceKind {
	case core.KindGitHub:
		rec, err = fromRelease(raw)
	case core.KindVSCode:
		rec, err = fromVSCodePage(raw)
	case core.KindWeb:
		rec, err = fromWebPage(raw)
	default:
		return nil, &core.MalformedSourceError{Reason: "unknown source kind " + raw.SourceKind}
	}
	if err != nil {
		return nil, err
	}

	rec.SourceKind = raw.SourceKind
	rec.OriginURL = raw.OriginURL
	rec.ScrapedAt = time.Now().UTC()
	if rec.ScrapedAt.Before(raw.FetchedAt) {
		rec.ScrapedAt = raw.FetchedAt
	}
	return rec, nil
}
