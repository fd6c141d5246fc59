// Package store persists rendered release notes. Paths derive
// deterministically from the dedup key, and writes are atomic: the
// content lands in a temp file in the destination directory and is
// renamed into place, so a reader never observes a partial file and
// a crash leaves the previous complete content or no file at all.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pranav-iyer/relscribe/core"
)

// Layout: {root}/github/{owner}/{repo}/{version}.md nested by
// project, {root}/vscode/{version}.md flat (single-product vendor),
// {root}/web/{name}/{slug}.md.

const entryExt = ".md"

// tempPattern names in-flight writes. Stray temp files from a
// crashed run are ignored by List and Read.
const tempPattern = ".relscribe-*.tmp"

// Store is a release-note store rooted at one directory.
type Store struct {
	Root string
}

// New creates a Store rooted at dir, creating it if missing.
// dir defaults to "releases".
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "releases"
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving store root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, classify(err, abs)
	}
	return &Store{Root: abs}, nil
}

// PathFor derives the entry path for a dedup key. Identifiers are
// sanitized segment by segment; traversal sequences are rejected
// rather than silently rewritten.
func (s *Store) PathFor(kind, project, version string) (string, error) {
	if err := checkTraversal(version); err != nil {
		return "", err
	}
	if err := checkTraversal(project); err != nil {
		return "", err
	}

	segs := []string{sanitize(kind)}
	if kind != core.KindVSCode {
		for _, part := range strings.Split(project, "/") {
			if p := sanitize(part); p != "" {
				segs = append(segs, p)
			}
		}
	}
	v := sanitize(version)
	if v == "" {
		return "", &core.StorePathError{Path: version}
	}
	segs = append(segs, v+entryExt)

	path := filepath.Join(append([]string{s.Root}, segs...)...)

	// Defense in depth: nothing sanitized should escape the root.
	rel, err := filepath.Rel(s.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &core.StorePathError{Path: path}
	}
	return path, nil
}

// Write atomically persists text at path, creating parent
// directories as needed.
func (s *Store) Write(path, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return classify(err, dir)
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return classify(err, dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return classify(err, path)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return classify(err, path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return classify(err, path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return classify(err, path)
	}
	return nil
}

// Read returns the stored entry text. ok is false when no entry
// exists at path.
func (s *Store) Read(path string) (text string, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify(err, path)
	}
	return string(data), true, nil
}

// List returns the version keys already stored for a (kind, project)
// scope. The directory listing is the only index; there is no
// sidecar state to drift out of sync.
func (s *Store) List(kind, project string) ([]string, error) {
	dir, err := s.PathFor(kind, project, "probe")
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Dir(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, filepath.Dir(dir))
	}

	var versions []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, entryExt) {
			continue
		}
		versions = append(versions, strings.TrimSuffix(name, entryExt))
	}
	return versions, nil
}

// VersionKey returns the sanitized form of a version, the key under
// which its entry file is stored.
func VersionKey(version string) string {
	return sanitize(version)
}

func checkTraversal(raw string) error {
	normalized := strings.ReplaceAll(raw, `\`, "/")
	for _, part := range strings.Split(normalized, "/") {
		if part == ".." {
			return &core.StorePathError{Path: raw}
		}
	}
	return nil
}

var (
	unsafeRunes    = regexp.MustCompile(`[<>:"/\\|?*]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// sanitize makes one path segment filesystem-safe: unsafe runes
// become underscores, leading/trailing dots and spaces go away, and
// underscore runs collapse.
func sanitize(s string) string {
	out := unsafeRunes.ReplaceAllString(s, "_")
	out = strings.Trim(out, ". ")
	return underscoreRuns.ReplaceAllString(out, "_")
}

func classify(err error, path string) error {
	if errors.Is(err, fs.ErrPermission) {
		return &core.StorePermissionError{Path: path, Err: err}
	}
	return fmt.Errorf("store: %s: %w", path, err)
}
