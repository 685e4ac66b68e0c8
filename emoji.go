package slackmoji

import (
	"net/url"
	"strings"
)

// EmojiPair is a named image resource extracted from the emoji page.
// Names are not guaranteed unique: a later pair with the same name
// overwrites the file written for an earlier one.
type EmojiPair struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Validate returns an error if the pair contains invalid fields. Names must
// be usable as a plain file name inside the output directory.
func (p EmojiPair) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "emoji name required")
	}
	if p.Name == "." || p.Name == ".." || strings.ContainsAny(p.Name, `/\`) {
		return Errorf(EINVALID, "emoji name %q is not a plain file name", p.Name)
	}
	if p.URL == "" {
		return Errorf(EINVALID, "emoji %q: url required", p.Name)
	}
	u, err := url.Parse(p.URL)
	if err != nil {
		return Errorf(EINVALID, "emoji %q: invalid url: %w", p.Name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "emoji %q: url must be absolute http(s): %s", p.Name, p.URL)
	}
	return nil
}
