package errors

import (
	"strings"
	"unicode"
)

// maxItemIDLength bounds item IDs; portal IDs are 32 characters.
const maxItemIDLength = 128

// ValidateItemID validates a portal item ID before it is placed in a URL path.
//
// Rules:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No whitespace or control characters
//   - No path separators, query or fragment characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItemID, "item id cannot be empty")
	}
	if len(id) > maxItemIDLength {
		return New(ErrCodeInvalidItemID, "item id too long (max %d characters)", maxItemIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidItemID, "item id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, "/\\?#%") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidItemID, "item id %q contains invalid characters", id)
	}
	return nil
}

// ValidateItemIDs validates every ID and rejects duplicates.
func ValidateItemIDs(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if err := ValidateItemID(id); err != nil {
			return err
		}
		if seen[id] {
			return New(ErrCodeInvalidItemID, "duplicate item id %q", id)
		}
		seen[id] = true
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateOutputPath validates a destination file path.
// Unlike repository paths, absolute paths are allowed; the path only has to
// name a file and be free of control characters.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory, not a file", path)
	}
	return nil
}
