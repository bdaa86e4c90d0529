package entities

import (
	"strings"
	"time"
)

// GistLocator points at a CLA document, optionally pinned to a revision.
type GistLocator struct {
	URL     string
	Version string
}

// ID extracts the gist id, the last path segment of the URL. A pinned
// version must be a single path segment of the same alphabet.
func (l GistLocator) ID() (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(l.URL), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return "", &LocatorError{URL: l.URL}
	}
	id := trimmed[idx+1:]
	if id == "" || !validGistID(id) {
		return "", &LocatorError{URL: l.URL}
	}
	if l.Version != "" && !validGistID(l.Version) {
		return "", &LocatorError{URL: l.URL}
	}
	return id, nil
}

func validGistID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Gist is the resolved state of a CLA document at check time.
type Gist struct {
	URL       string
	Version   string
	Files     map[string]string
	UpdatedAt time.Time
}
