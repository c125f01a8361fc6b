package errors

import (
	"strings"
	"unicode"
)

// ValidateSlicingName validates a slicing name for use in configuration and
// reports. Names appear in file names and report URLs, so the rules are
// intentionally conservative.
func ValidateSlicingName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSlicing, "slicing name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidSlicing, "slicing name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSlicing, "slicing name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\ ") {
		return New(ErrCodeInvalidSlicing, "slicing name cannot contain spaces or path separators")
	}

	return nil
}

// ValidateClasspathEntry validates a classpath entry for safety. Entries are
// local directories or archives; remote locations are rejected here before
// any file access happens.
func ValidateClasspathEntry(path string) error {
	if path == "" {
		return New(ErrCodeClasspathNotFound, "classpath entry cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeClasspathNotFound, "classpath entry contains invalid characters")
		}
	}

	if strings.Contains(path, "://") {
		return New(ErrCodeClasspathNotFound, "classpath entry must be a local path: %q", path)
	}

	return nil
}
