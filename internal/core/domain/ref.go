package domain

import (
	"net/url"
	"strings"
)

// Drive file IDs are at least this long; shorter path segments in a share
// URL are routing components, not IDs.
const minFileIDLength = 25

const fileIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

// ExtractFileID resolves a source reference - a bare Drive file ID or a
// share URL containing one - to the file ID. It fails with ErrInvalidFileID
// when no plausible ID can be found; existence is checked separately
// against the API.
func ExtractFileID(value string) (string, error) {
	value = strings.TrimSpace(value)

	if strings.Contains(value, ":") {
		id, err := fileIDFromURL(value)
		if err != nil {
			return "", err
		}
		value = id
	} else if len(value) < minFileIDLength {
		return "", ErrInvalidFileID
	}

	for _, ch := range value {
		if !strings.ContainsRune(fileIDAlphabet, ch) {
			return "", ErrInvalidFileID
		}
	}
	return value, nil
}

// fileIDFromURL pulls the file ID out of a Drive or Docs share URL.
// Two shapes exist: an "id" query parameter (old-style open links) and a
// long path segment (docs.google.com/document/d/<id>/edit and friends).
func fileIDFromURL(value string) (string, error) {
	u, err := url.Parse(value)
	if err != nil {
		return "", ErrInvalidFileID
	}

	if id := u.Query().Get("id"); id != "" {
		return id, nil
	}

	var id string
	for _, part := range strings.Split(u.Path, "/") {
		if len(part) >= minFileIDLength {
			id = part
		}
	}
	if id == "" {
		return "", ErrInvalidFileID
	}
	return id, nil
}
