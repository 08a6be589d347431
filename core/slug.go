package core

import (
	"fmt"
	"strings"
)

// Slug identifies a blog post. It is the post's filename without its markup extension.
type Slug string

func (s Slug) String() string {
	return string(s)
}

// ParseSlug validates a slug taken from a request path or a directory entry.
// A slug is a single path segment: it must not be empty, "." or "..", and must not contain a path
// separator or a NUL byte. Invalid slugs are rejected with ErrInvalidPath.
func ParseSlug(value string) (Slug, error) {
	if len(value) == 0 {
		return "", fmt.Errorf("slug is empty: %w", ErrInvalidPath)
	}
	if value == "." || value == ".." {
		return "", fmt.Errorf("slug %q names a directory: %w", value, ErrInvalidPath)
	}
	if strings.ContainsAny(value, "/\\\x00") {
		return "", fmt.Errorf("slug %q contains a path separator: %w", value, ErrInvalidPath)
	}
	return Slug(value), nil
}

// DisplayName returns the slug with word separators replaced by spaces.
func (s Slug) DisplayName() string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, string(s))
}

// BlogIndexEntry is one line of the blog index.
type BlogIndexEntry struct {
	Slug        Slug
	DisplayName string
}

// NewBlogIndexEntry builds an index entry from a filename ending in ext.
// It returns false if the filename does not carry the extension or does not form a valid slug.
func NewBlogIndexEntry(filename string, ext string) (BlogIndexEntry, bool) {
	name, ok := strings.CutSuffix(filename, ext)
	if !ok {
		return BlogIndexEntry{}, false
	}
	slug, err := ParseSlug(name)
	if err != nil {
		return BlogIndexEntry{}, false
	}
	return BlogIndexEntry{Slug: slug, DisplayName: slug.DisplayName()}, true
}
