package slackmoji

import (
	"net/url"
	"strings"
)

// ExtensionCheck classifies how plausible a resolved extension is.
type ExtensionCheck int

const (
	// ExtensionOK means the URL ends in a normal-looking extension.
	ExtensionOK ExtensionCheck = iota
	// ExtensionMissing means no "." was found; the extension is empty.
	ExtensionMissing
	// ExtensionDodgy means the extension is shorter than 4 characters
	// including the dot. It is still used.
	ExtensionDodgy
)

// minExtensionLen is the shortest extension, dot included, that is not dodgy.
const minExtensionLen = 4

// ResolveExtension returns the file extension of the resource at rawURL,
// including the leading dot. Only the final path segment is inspected, so
// dots in the host or query never count.
func ResolveExtension(rawURL string) (string, ExtensionCheck) {
	segment := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		segment = u.Path
	}
	if i := strings.LastIndex(segment, "/"); i != -1 {
		segment = segment[i+1:]
	}

	start := strings.LastIndex(segment, ".")
	if start == -1 {
		return "", ExtensionMissing
	}

	ext := segment[start:]
	if len(ext) < minExtensionLen {
		return ext, ExtensionDodgy
	}
	return ext, ExtensionOK
}

// Filename returns the output filename for the pair: its name followed by
// the extension resolved from its URL.
func (p EmojiPair) Filename() (string, ExtensionCheck) {
	ext, check := ResolveExtension(p.URL)
	return p.Name + ext, check
}
