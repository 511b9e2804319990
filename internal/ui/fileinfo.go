package ui

import "github.com/gabriel-vasile/mimetype"

// detectMime returns the detected MIME type of the file at path, or an
// empty string when detection fails.
func detectMime(path string) string {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return m.String()
}
