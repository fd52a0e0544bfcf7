package domain

import (
	"path"
	"strings"
)

// Locator is an opaque reference to an audio clip or document: a local path,
// a file:// URL or a remote http(s) URL.
type Locator string

func (l Locator) IsZero() bool {
	return l == ""
}

func (l Locator) IsRemote() bool {
	s := string(l)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Path returns the local filesystem path for non-remote locators.
func (l Locator) Path() string {
	return strings.TrimPrefix(string(l), "file://")
}

func (l Locator) Base() string {
	s := string(l)
	if i := strings.IndexAny(s, "?#"); i >= 0 && l.IsRemote() {
		s = s[:i]
	}
	return path.Base(strings.ReplaceAll(s, "\\", "/"))
}

func (l Locator) String() string {
	return string(l)
}
